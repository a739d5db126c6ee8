package books

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisordash/rebalancer/internal/database"
	"github.com/advisordash/rebalancer/internal/domain"
	"github.com/advisordash/rebalancer/internal/events"
)

type stubQuoter struct {
	quotes map[string]Quote
	calls  []string
}

func (q *stubQuoter) Quote(symbol string) (Quote, error) {
	q.calls = append(q.calls, symbol)
	quote, ok := q.quotes[symbol]
	if !ok {
		return Quote{}, fmt.Errorf("no quote for %s", symbol)
	}
	return quote, nil
}

func newTestService(t *testing.T, quoter Quoter) *Service {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	log := zerolog.Nop()
	clients := NewClientRepository(db.Conn(), log)
	accounts := NewAccountRepository(db.Conn(), log)
	positions := NewPositionRepository(db.Conn(), log)

	return NewService(clients, accounts, positions, quoter, events.NewManager(log), log)
}

func TestCreateClientAndAccount(t *testing.T) {
	svc := newTestService(t, nil)

	client, err := svc.CreateClient("Tom's Retirement")
	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)

	_, err = svc.CreateClient("")
	assert.Error(t, err)

	account, err := svc.CreateAccount(client.ID, "Schwab IRA", "IRA", 5000)
	require.NoError(t, err)
	assert.Equal(t, client.ID, account.ClientID)

	_, err = svc.CreateAccount("missing", "Schwab IRA", "IRA", 0)
	assert.Error(t, err)

	loaded, err := svc.GetClient(client.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Accounts, 1)
	assert.Equal(t, 5000.0, loaded.Accounts[0].Cash)
}

func TestAddPositionStampsKindAndQuotes(t *testing.T) {
	quoter := &stubQuoter{quotes: map[string]Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", Price: 185.50, Yield: 0.5},
	}}
	svc := newTestService(t, quoter)

	client, err := svc.CreateClient("Quote Test")
	require.NoError(t, err)
	account, err := svc.CreateAccount(client.ID, "Taxable", "Individual", 0)
	require.NoError(t, err)

	pos, err := svc.AddPosition(account.ID, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, domain.KindEquity, pos.Kind)
	assert.Equal(t, "Apple Inc.", pos.Description)
	assert.Equal(t, 185.50, pos.Price)
	assert.Equal(t, domain.RoundNearest, pos.RoundingMode)

	// Nine character CUSIPs are bonds and never hit the quote API.
	bond, err := svc.AddPosition(account.ID, "912828YK0")
	require.NoError(t, err)
	assert.Equal(t, domain.KindBond, bond.Kind)
	assert.Equal(t, []string{"AAPL"}, quoter.calls)

	// A failed lookup still creates the position, unpriced.
	unknown, err := svc.AddPosition(account.ID, "ZZZT")
	require.NoError(t, err)
	assert.Equal(t, "ZZZT", unknown.Description)
	assert.Zero(t, unknown.Price)
}

func TestUpdatePositionRestampsKindOnSymbolChange(t *testing.T) {
	svc := newTestService(t, nil)

	client, err := svc.CreateClient("Kind Test")
	require.NoError(t, err)
	account, err := svc.CreateAccount(client.ID, "IRA", "IRA", 0)
	require.NoError(t, err)

	pos, err := svc.AddPosition(account.ID, "VTI")
	require.NoError(t, err)
	require.Equal(t, domain.KindEquity, pos.Kind)

	edit := *pos
	edit.Symbol = "13063DGA0"
	edit.Quantity = 10000
	edit.Price = 98.5
	require.NoError(t, svc.UpdatePosition(edit))

	stored, err := svc.positions.GetByID(pos.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.KindBond, stored.Kind)

	// Unchanged symbol keeps the stored kind even if the caller zeroes it.
	edit2 := *stored
	edit2.Kind = ""
	edit2.Quantity = 20000
	require.NoError(t, svc.UpdatePosition(edit2))

	stored2, err := svc.positions.GetByID(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindBond, stored2.Kind)
}

func TestClientValueSumsCashAndPositions(t *testing.T) {
	svc := newTestService(t, nil)

	client, err := svc.CreateClient("Value Test")
	require.NoError(t, err)

	ira, err := svc.CreateAccount(client.ID, "IRA", "IRA", 5000)
	require.NoError(t, err)
	taxable, err := svc.CreateAccount(client.ID, "Taxable", "Individual", 1000)
	require.NoError(t, err)

	positions := []domain.Position{
		{ID: "p1", AccountID: ira.ID, Symbol: "AAPL", Kind: domain.KindEquity, Quantity: 150, Price: 185.50, CurrentValue: 27825, RoundingMode: domain.RoundNearest},
		{ID: "p2", AccountID: taxable.ID, Symbol: "912828YK0", Kind: domain.KindBond, Quantity: 10000, Price: 98.5, CurrentValue: 9850, RoundingMode: domain.RoundNearest},
	}
	for _, pos := range positions {
		require.NoError(t, svc.positions.Create(pos))
	}

	total, err := svc.ClientValue(client.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5000+1000+27825+9850, total, 0.001)

	// Empty client values to zero, not an error.
	empty, err := svc.CreateClient("Empty")
	require.NoError(t, err)
	total, err = svc.ClientValue(empty.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	svc := newTestService(t, nil)

	require.NoError(t, svc.SeedDemo())
	clients, err := svc.clients.GetAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	require.NoError(t, svc.SeedDemo())
	clients, err = svc.clients.GetAll()
	require.NoError(t, err)
	assert.Len(t, clients, 1)

	total, err := svc.ClientValue(clients[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 5000+27825+96080, total, 0.001)
}

func TestDeleteClientCascades(t *testing.T) {
	svc := newTestService(t, nil)
	require.NoError(t, svc.SeedDemo())

	clients, err := svc.clients.GetAll()
	require.NoError(t, err)
	require.Len(t, clients, 1)

	require.NoError(t, svc.DeleteClient(clients[0].ID))

	symbols, err := svc.positions.HeldSymbols()
	require.NoError(t, err)
	assert.Empty(t, symbols)
}
