package books

import (
	"github.com/google/uuid"

	"github.com/advisordash/rebalancer/internal/domain"
	"github.com/advisordash/rebalancer/internal/modules/classification"
)

// SeedDemo populates an empty book with a demonstration client so the
// dashboard has something to render on first boot. A non-empty book is
// left untouched.
func (s *Service) SeedDemo() error {
	existing, err := s.clients.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	client := domain.Client{ID: uuid.NewString(), Name: "Tom's Retirement"}
	if err := s.clients.Create(client); err != nil {
		return err
	}

	account := domain.Account{
		ID:       uuid.NewString(),
		ClientID: client.ID,
		Name:     "Schwab IRA",
		Type:     "IRA",
		Cash:     5000,
	}
	if err := s.accounts.Create(account); err != nil {
		return err
	}

	seedPositions := []domain.Position{
		{
			Symbol:       "AAPL",
			Description:  "Apple Inc.",
			Quantity:     150,
			Price:        185.50,
			CurrentValue: 27825,
			Yield:        0.5,
			TargetPct:    25,
		},
		{
			Symbol:       "VTI",
			Description:  "Vanguard Total Stock Market",
			Quantity:     400,
			Price:        240.20,
			CurrentValue: 96080,
			Yield:        1.4,
			TargetPct:    75,
		},
	}

	for _, pos := range seedPositions {
		pos.ID = uuid.NewString()
		pos.AccountID = account.ID
		pos.Kind = domain.KindForSymbol(pos.Symbol)
		pos.RoundingMode = domain.RoundNearest

		fallback := classification.Classify(pos.Symbol, pos.Description)
		pos.AssetClass = fallback.AssetClass
		pos.Sector = fallback.Sector
		pos.LogoTicker = fallback.LogoTicker

		if err := s.positions.Create(pos); err != nil {
			return err
		}
	}

	s.log.Info().Str("client_id", client.ID).Msg("Seeded demo client")
	return nil
}
