package tiingo

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/daily/SPY/prices", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("token"))
		assert.Equal(t, "2021-01-01", r.URL.Query().Get("startDate"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date": "2021-01-04T00:00:00.000Z", "adjClose": 370.50},
			{"date": "2021-01-05T00:00:00.000Z", "adjClose": 373.10}
		]`))
	}))
	defer server.Close()

	client := NewClient("test-key", zerolog.Nop())
	client.SetBaseURL(server.URL)

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC)

	bars, err := client.DailyHistory("SPY", start, end)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 370.50, bars[0].AdjClose)
	assert.Equal(t, 4, bars[0].Date.Day())
}

func TestDailyHistoryNoKey(t *testing.T) {
	client := NewClient("", zerolog.Nop())
	_, err := client.DailyHistory("SPY", time.Now().AddDate(-1, 0, 0), time.Now())
	assert.Error(t, err)
}

func TestDailyHistoryEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("test-key", zerolog.Nop())
	client.SetBaseURL(server.URL)

	_, err := client.DailyHistory("SPY", time.Now().AddDate(-1, 0, 0), time.Now())
	assert.Error(t, err)
}

func TestDailyHistoryUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("test-key", zerolog.Nop())
	client.SetBaseURL(server.URL)

	_, err := client.DailyHistory("SPY", time.Now().AddDate(-1, 0, 0), time.Now())
	assert.Error(t, err)
}
