package finnhub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// KeyRotator cycles through the configured API keys so free-tier rate
// limits spread across them. Safe for concurrent use.
type KeyRotator struct {
	mu   sync.Mutex
	keys []string
	next int
}

// NewKeyRotator creates a rotator over the given keys.
func NewKeyRotator(keys []string) *KeyRotator {
	return &KeyRotator{keys: keys}
}

// Next returns the next key in round-robin order.
func (r *KeyRotator) Next() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return "", fmt.Errorf("no Finnhub API keys configured")
	}

	key := r.keys[r.next]
	r.next = (r.next + 1) % len(r.keys)
	return key, nil
}

// Len returns the number of configured keys.
func (r *KeyRotator) Len() int {
	return len(r.keys)
}

// Client is a Finnhub market data client
type Client struct {
	client  *http.Client
	rotator *KeyRotator
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a new Finnhub client
func NewClient(keys []string, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		rotator: NewKeyRotator(keys),
		baseURL: defaultBaseURL,
		log:     log.With().Str("client", "finnhub").Logger(),
	}
}

// SetBaseURL overrides the API base URL, used in tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// GetQuote fetches profile, quote and dividend metrics for a symbol and
// folds them into a single MarketData value. Partial upstream failures
// degrade field by field; the name falls back to a ticker search and
// finally to the symbol itself, so callers always get a usable value.
func (c *Client) GetQuote(symbol string) (*MarketData, error) {
	data := &MarketData{Symbol: symbol}

	var profile profileResponse
	if err := c.fetch("/stock/profile2?symbol="+symbol, &profile); err == nil {
		data.Name = profile.Name
	}

	var quote quoteResponse
	if err := c.fetch("/quote?symbol="+symbol, &quote); err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote fetch failed")
	} else {
		data.Price = quote.Current
	}

	var metric metricResponse
	if err := c.fetch("/stock/metric?symbol="+symbol+"&metric=all", &metric); err == nil {
		if metric.Metric.CurrentDividendYieldTTM > 0 {
			data.Yield = metric.Metric.CurrentDividendYieldTTM
		} else {
			data.Yield = metric.Metric.DividendYieldIndicatedAnnual
		}
	}

	// profile2 often has no name for ETFs; the search endpoint does.
	if strings.TrimSpace(data.Name) == "" {
		data.Name = c.searchName(symbol)
	}
	if strings.TrimSpace(data.Name) == "" {
		data.Name = symbol
	}

	return data, nil
}

// searchName looks a symbol up via the search endpoint, preferring an
// exact symbol match.
func (c *Client) searchName(symbol string) string {
	var search searchResponse
	if err := c.fetch("/search?q="+symbol, &search); err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("Search fallback failed")
		return ""
	}

	for _, result := range search.Result {
		if result.Symbol == symbol {
			return result.Description
		}
	}
	if len(search.Result) > 0 {
		return search.Result[0].Description
	}
	return ""
}

// fetch performs a GET against the API, rotating keys on rate limits.
// Gives every key two chances before giving up.
func (c *Client) fetch(endpoint string, out interface{}) error {
	maxAttempts := c.rotator.Len() * 2
	if maxAttempts == 0 {
		return fmt.Errorf("no Finnhub API keys configured")
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		key, err := c.rotator.Next()
		if err != nil {
			return err
		}

		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}

		resp, err := c.client.Get(c.baseURL + endpoint + sep + "token=" + key)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.log.Warn().Str("endpoint", endpoint).Int("attempt", attempt+1).Msg("Rate limit hit, rotating key")
			lastErr = fmt.Errorf("rate limited")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return fmt.Errorf("finnhub API error: %s", resp.Status)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("rate limit exceeded on all keys after retries: %w", lastErr)
}
