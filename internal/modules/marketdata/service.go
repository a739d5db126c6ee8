package marketdata

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/clients/finnhub"
	"github.com/advisordash/rebalancer/internal/domain"
	"github.com/advisordash/rebalancer/internal/events"
	"github.com/advisordash/rebalancer/internal/modules/books"
)

const quoteTTL = 60 * time.Second

// Service serves quotes from Finnhub through a short-lived cache and
// pushes refreshed prices back into the book.
type Service struct {
	client    *finnhub.Client
	positions *books.PositionRepository
	cache     *Cache
	events    *events.Manager
	log       zerolog.Logger
}

// NewService creates a new market data service
func NewService(
	client *finnhub.Client,
	positions *books.PositionRepository,
	events *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		client:    client,
		positions: positions,
		cache:     NewCache(quoteTTL),
		events:    events,
		log:       log.With().Str("service", "marketdata").Logger(),
	}
}

// Quote returns current market data for a symbol, cached for a minute.
// Satisfies books.Quoter.
func (s *Service) Quote(symbol string) (books.Quote, error) {
	if cached := s.cache.Get(symbol); cached != nil {
		return cached.(books.Quote), nil
	}

	data, err := s.client.GetQuote(symbol)
	if err != nil {
		return books.Quote{}, err
	}

	quote := books.Quote{
		Symbol: data.Symbol,
		Name:   data.Name,
		Price:  data.Price,
		Yield:  data.Yield,
	}
	s.cache.Set(symbol, quote)
	return quote, nil
}

// RefreshAll re-quotes every held symbol and writes prices back into
// the book. Bond identifiers are skipped; they are not quotable on
// Finnhub and their prices are entered by the advisor. Returns the
// number of symbols refreshed.
func (s *Service) RefreshAll() (int, error) {
	symbols, err := s.positions.HeldSymbols()
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, symbol := range symbols {
		if domain.KindForSymbol(symbol) == domain.KindBond {
			continue
		}

		quote, err := s.Quote(symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to refresh symbol")
			continue
		}
		if quote.Price <= 0 {
			// A dead quote must not zero out stored values.
			continue
		}

		if err := s.positions.UpdatePrice(symbol, quote.Price, quote.Yield); err != nil {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to store refreshed price")
			continue
		}
		refreshed++
	}

	s.events.Emit(events.PricesRefreshed, "marketdata", map[string]interface{}{
		"symbols":   len(symbols),
		"refreshed": refreshed,
	})

	return refreshed, nil
}
