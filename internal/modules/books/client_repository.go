package books

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/domain"
)

// ClientRepository handles client database operations.
type ClientRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sql.DB, log zerolog.Logger) *ClientRepository {
	return &ClientRepository{
		db:  db,
		log: log.With().Str("repo", "client").Logger(),
	}
}

// GetAll returns all clients, most recently updated first.
func (r *ClientRepository) GetAll() ([]domain.Client, error) {
	rows, err := r.db.Query("SELECT id, name, last_updated FROM clients ORDER BY last_updated DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// GetByID returns a client by id, or nil when not found.
func (r *ClientRepository) GetByID(id string) (*domain.Client, error) {
	var c domain.Client
	err := r.db.QueryRow("SELECT id, name, last_updated FROM clients WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query client: %w", err)
	}
	return &c, nil
}

// Create inserts a new client.
func (r *ClientRepository) Create(client domain.Client) error {
	if client.LastUpdated == "" {
		client.LastUpdated = time.Now().Format(time.RFC3339)
	}

	_, err := r.db.Exec(
		"INSERT INTO clients (id, name, last_updated) VALUES (?, ?, ?)",
		client.ID, client.Name, client.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}

	r.log.Info().Str("client_id", client.ID).Str("name", client.Name).Msg("Client created")
	return nil
}

// Rename updates the client name.
func (r *ClientRepository) Rename(id, name string) error {
	result, err := r.db.Exec(
		"UPDATE clients SET name = ?, last_updated = ? WHERE id = ?",
		name, time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename client: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("client %s not found", id)
	}
	return nil
}

// Touch bumps the last_updated stamp after any nested edit.
func (r *ClientRepository) Touch(id string) error {
	_, err := r.db.Exec(
		"UPDATE clients SET last_updated = ? WHERE id = ?",
		time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("failed to touch client: %w", err)
	}
	return nil
}

// Delete removes a client; accounts and positions cascade.
func (r *ClientRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Info().Str("client_id", id).Int64("rows_affected", rowsAffected).Msg("Client deleted")
	return nil
}
