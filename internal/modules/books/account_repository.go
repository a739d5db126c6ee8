package books

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/domain"
)

// AccountRepository handles account database operations.
type AccountRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB, log zerolog.Logger) *AccountRepository {
	return &AccountRepository{
		db:  db,
		log: log.With().Str("repo", "account").Logger(),
	}
}

// GetByClient returns all accounts for a client.
func (r *AccountRepository) GetByClient(clientID string) ([]domain.Account, error) {
	rows, err := r.db.Query(
		"SELECT id, client_id, name, type, cash FROM accounts WHERE client_id = ? ORDER BY name",
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Name, &a.Type, &a.Cash); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// GetByID returns an account by id, or nil when not found.
func (r *AccountRepository) GetByID(id string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRow(
		"SELECT id, client_id, name, type, cash FROM accounts WHERE id = ?", id,
	).Scan(&a.ID, &a.ClientID, &a.Name, &a.Type, &a.Cash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &a, nil
}

// Create inserts a new account.
func (r *AccountRepository) Create(account domain.Account) error {
	if account.Type == "" {
		account.Type = "Taxable"
	}

	_, err := r.db.Exec(
		"INSERT INTO accounts (id, client_id, name, type, cash) VALUES (?, ?, ?, ?, ?)",
		account.ID, account.ClientID, account.Name, account.Type, account.Cash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	r.log.Info().Str("account_id", account.ID).Str("client_id", account.ClientID).Msg("Account created")
	return nil
}

// UpdateCash sets the account cash balance.
func (r *AccountRepository) UpdateCash(id string, cash float64) error {
	result, err := r.db.Exec("UPDATE accounts SET cash = ? WHERE id = ?", cash, id)
	if err != nil {
		return fmt.Errorf("failed to update cash: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("account %s not found", id)
	}
	return nil
}

// Delete removes an account and its positions.
func (r *AccountRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Info().Str("account_id", id).Int64("rows_affected", rowsAffected).Msg("Account deleted")
	return nil
}
