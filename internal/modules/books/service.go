package books

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/advisordash/rebalancer/internal/domain"
	"github.com/advisordash/rebalancer/internal/events"
	"github.com/advisordash/rebalancer/internal/modules/classification"
)

// Quote is the subset of market data the book needs when a new
// position is added.
type Quote struct {
	Symbol string
	Name   string
	Price  float64
	Yield  float64
}

// Quoter resolves a freshly added symbol to a current quote. A failed
// lookup degrades to a zero quote; it never blocks position creation.
type Quoter interface {
	Quote(symbol string) (Quote, error)
}

// ClientSummary is the list-view shape: a client plus its aggregate value.
type ClientSummary struct {
	domain.Client
	TotalValue float64 `json:"total_value"`
}

// Service owns the advisor book: clients, accounts and positions.
type Service struct {
	clients   *ClientRepository
	accounts  *AccountRepository
	positions *PositionRepository
	quotes    Quoter
	events    *events.Manager
	log       zerolog.Logger
}

// NewService creates a new books service
func NewService(
	clients *ClientRepository,
	accounts *AccountRepository,
	positions *PositionRepository,
	quotes Quoter,
	events *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		clients:   clients,
		accounts:  accounts,
		positions: positions,
		quotes:    quotes,
		events:    events,
		log:       log.With().Str("service", "books").Logger(),
	}
}

// Clients returns every client with its aggregate value.
func (s *Service) Clients() ([]ClientSummary, error) {
	clients, err := s.clients.GetAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		total, err := s.ClientValue(c.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ClientSummary{Client: c, TotalValue: total})
	}

	return summaries, nil
}

// GetClient loads a client with its full account and position tree.
func (s *Service) GetClient(id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}

	accounts, err := s.accounts.GetByClient(id)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		positions, err := s.positions.GetByAccount(accounts[i].ID)
		if err != nil {
			return nil, err
		}
		accounts[i].Positions = positions
	}
	client.Accounts = accounts

	return client, nil
}

// ClientValue computes the client-wide portfolio value: the sum over
// all accounts of stored position values plus cash. This is the
// totalPortfolioValue the rebalancing engine divides by.
func (s *Service) ClientValue(clientID string) (float64, error) {
	accounts, err := s.accounts.GetByClient(clientID)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, account := range accounts {
		positions, err := s.positions.GetByAccount(account.ID)
		if err != nil {
			return 0, err
		}
		total += account.Cash + lo.SumBy(positions, func(p domain.Position) float64 {
			return p.CurrentValue
		})
	}

	return total, nil
}

// CreateClient adds a new client to the book.
func (s *Service) CreateClient(name string) (*domain.Client, error) {
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	client := domain.Client{ID: uuid.NewString(), Name: name}
	if err := s.clients.Create(client); err != nil {
		return nil, err
	}

	s.events.Emit(events.ClientCreated, "books", map[string]interface{}{
		"client_id": client.ID,
		"name":      client.Name,
	})

	return &client, nil
}

// RenameClient renames a client.
func (s *Service) RenameClient(id, name string) error {
	if name == "" {
		return fmt.Errorf("client name is required")
	}
	return s.clients.Rename(id, name)
}

// DeleteClient removes a client and everything under it.
func (s *Service) DeleteClient(id string) error {
	return s.clients.Delete(id)
}

// CreateAccount adds an account under a client.
func (s *Service) CreateAccount(clientID, name, accountType string, cash float64) (*domain.Account, error) {
	client, err := s.clients.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("client %s not found", clientID)
	}

	account := domain.Account{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Name:     name,
		Type:     accountType,
		Cash:     cash,
	}
	if err := s.accounts.Create(account); err != nil {
		return nil, err
	}

	_ = s.clients.Touch(clientID)
	return &account, nil
}

// UpdateAccountCash sets an account's sweep balance.
func (s *Service) UpdateAccountCash(accountID string, cash float64) error {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("account %s not found", accountID)
	}

	if err := s.accounts.UpdateCash(accountID, cash); err != nil {
		return err
	}
	return s.clients.Touch(account.ClientID)
}

// DeleteAccount removes an account and its positions.
func (s *Service) DeleteAccount(id string) error {
	return s.accounts.Delete(id)
}

// AddPosition creates a position for a ticker the advisor typed in.
// The instrument kind is stamped once here from the symbol; the quote
// fills description, price and yield; the heuristic classifier fills
// asset class and sector so the dashboard has something to show before
// an AI scan runs.
func (s *Service) AddPosition(accountID, symbol string) (*domain.Position, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s not found", accountID)
	}

	pos := domain.Position{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Symbol:       symbol,
		Kind:         domain.KindForSymbol(symbol),
		RoundingMode: domain.RoundNearest,
	}

	if s.quotes != nil && pos.Kind != domain.KindBond {
		quote, err := s.quotes.Quote(symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote lookup failed, adding unpriced position")
		} else {
			pos.Description = quote.Name
			pos.Price = quote.Price
			pos.Yield = quote.Yield
		}
	}
	if pos.Description == "" {
		pos.Description = pos.Symbol
	}

	fallback := classification.Classify(pos.Symbol, pos.Description)
	pos.AssetClass = fallback.AssetClass
	pos.Sector = fallback.Sector
	pos.StateCode = fallback.StateCode
	pos.LogoTicker = fallback.LogoTicker

	if err := s.positions.Create(pos); err != nil {
		return nil, err
	}

	_ = s.clients.Touch(account.ClientID)
	return &pos, nil
}

// UpdatePosition applies an edit to quantity, price, rounding mode or
// description. Target percentage edits go through the rebalance module
// so dollar edits back-solve consistently.
func (s *Service) UpdatePosition(pos domain.Position) error {
	existing, err := s.positions.GetByID(pos.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("position %s not found", pos.ID)
	}

	// A symbol change re-stamps the instrument kind.
	if pos.Symbol != existing.Symbol {
		pos.Kind = domain.KindForSymbol(pos.Symbol)
	} else {
		pos.Kind = existing.Kind
	}
	pos.AccountID = existing.AccountID

	return s.positions.Update(pos)
}

// RemovePosition deletes a position.
func (s *Service) RemovePosition(id string) error {
	return s.positions.Delete(id)
}
