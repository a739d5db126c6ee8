package finnhub

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRotator_RoundRobin(t *testing.T) {
	rotator := NewKeyRotator([]string{"k1", "k2", "k3"})

	for _, want := range []string{"k1", "k2", "k3", "k1"} {
		key, err := rotator.Next()
		require.NoError(t, err)
		assert.Equal(t, want, key)
	}
}

func TestKeyRotator_NoKeys(t *testing.T) {
	rotator := NewKeyRotator(nil)
	_, err := rotator.Next()
	assert.Error(t, err)
}

func TestGetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/profile2":
			w.Write([]byte(`{"name":"Apple Inc"}`))
		case "/quote":
			w.Write([]byte(`{"c":185.50}`))
		case "/stock/metric":
			w.Write([]byte(`{"metric":{"currentDividendYieldTTM":0.5}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient([]string{"test-key"}, zerolog.Nop())
	client.SetBaseURL(server.URL)

	data, err := client.GetQuote("AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", data.Name)
	assert.Equal(t, 185.50, data.Price)
	assert.Equal(t, 0.5, data.Yield)
}

func TestGetQuote_ETFNameFallsBackToSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/profile2":
			w.Write([]byte(`{}`))
		case "/quote":
			w.Write([]byte(`{"c":240.20}`))
		case "/stock/metric":
			w.Write([]byte(`{"metric":{}}`))
		case "/search":
			w.Write([]byte(`{"result":[{"symbol":"VTI","description":"Vanguard Total Stock Market"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient([]string{"test-key"}, zerolog.Nop())
	client.SetBaseURL(server.URL)

	data, err := client.GetQuote("VTI")
	require.NoError(t, err)
	assert.Equal(t, "Vanguard Total Stock Market", data.Name)
}

func TestGetQuote_DegradesToSymbolAndZeroPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient([]string{"test-key"}, zerolog.Nop())
	client.SetBaseURL(server.URL)

	data, err := client.GetQuote("XXXX")
	require.NoError(t, err)
	assert.Equal(t, "XXXX", data.Name)
	assert.Equal(t, 0.0, data.Price)
}

func TestFetch_RotatesOnRateLimit(t *testing.T) {
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		tokens = append(tokens, token)
		if token == "k1" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"c":1.0}`))
	}))
	defer server.Close()

	client := NewClient([]string{"k1", "k2"}, zerolog.Nop())
	client.SetBaseURL(server.URL)

	var quote quoteResponse
	err := client.fetch("/quote?symbol=X", &quote)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, tokens)
	assert.Equal(t, 1.0, quote.Current)
}
