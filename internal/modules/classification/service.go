package classification

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/domain"
	"github.com/advisordash/rebalancer/internal/events"
)

// Store is the slice of the position repository the scanner needs.
type Store interface {
	GetByClient(clientID string) ([]domain.Position, error)
	SetClassification(id, assetClass, sector, stateCode, logoTicker string) error
}

// Scanner produces classification results for a set of positions.
type Scanner interface {
	Scan(ctx context.Context, positions []domain.Position) map[string]Result
}

// Service runs classification scans over a client's positions and
// persists the results.
type Service struct {
	store   Store
	scanner Scanner
	events  *events.Manager
	log     zerolog.Logger
}

// NewService creates a new classification service
func NewService(store Store, scanner Scanner, events *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		scanner: scanner,
		events:  events,
		log:     log.With().Str("service", "classification").Logger(),
	}
}

// ScanClient classifies every position held by a client and writes the
// results back. Returns the number of positions updated.
func (s *Service) ScanClient(ctx context.Context, clientID string) (int, error) {
	positions, err := s.store.GetByClient(clientID)
	if err != nil {
		return 0, err
	}
	if len(positions) == 0 {
		return 0, nil
	}

	results := s.scanner.Scan(ctx, positions)

	updated := 0
	for _, pos := range positions {
		res, ok := results[pos.Symbol]
		if !ok {
			continue
		}
		if err := s.store.SetClassification(pos.ID, res.AssetClass, res.Sector, res.StateCode, res.LogoTicker); err != nil {
			s.log.Error().Err(err).Str("position_id", pos.ID).Msg("Failed to store classification")
			continue
		}
		updated++
	}

	s.events.Emit(events.ClassificationComplete, "classification", map[string]interface{}{
		"client_id": clientID,
		"updated":   updated,
	})

	return updated, nil
}
