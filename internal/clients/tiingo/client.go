package tiingo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.tiingo.com/tiingo"

// DailyBar is one trading day of adjusted price history.
type DailyBar struct {
	Date     time.Time `json:"date"`
	AdjClose float64   `json:"adjClose"`
}

// Client is a Tiingo end-of-day price history client
type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a new Tiingo client
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		log:     log.With().Str("client", "tiingo").Logger(),
	}
}

// SetBaseURL overrides the API base URL, used in tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// DailyHistory fetches adjusted daily closes for a symbol between two
// dates, oldest first.
func (c *Client) DailyHistory(symbol string, start, end time.Time) ([]DailyBar, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no Tiingo API key configured")
	}

	url := fmt.Sprintf("%s/daily/%s/prices?startDate=%s&endDate=%s&token=%s",
		c.baseURL, symbol,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		c.apiKey,
	)

	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("tiingo API error for %s: %s", symbol, resp.Status)
	}

	var bars []DailyBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("failed to decode history for %s: %w", symbol, err)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no price history for %s", symbol)
	}

	c.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("Fetched price history")
	return bars, nil
}
