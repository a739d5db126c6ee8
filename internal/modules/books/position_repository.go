package books

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/domain"
)

// PositionRepository handles position database operations.
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "position").Logger(),
	}
}

const positionColumns = `id, account_id, symbol, description, kind, quantity, price,
	current_value, yield, target_pct, rounding_mode, asset_class, sector, state_code, logo_ticker`

// GetByAccount returns all positions in an account.
func (r *PositionRepository) GetByAccount(accountID string) ([]domain.Position, error) {
	rows, err := r.db.Query(
		"SELECT "+positionColumns+" FROM positions WHERE account_id = ? ORDER BY symbol",
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// GetByID returns a position by id, or nil when not found.
func (r *PositionRepository) GetByID(id string) (*domain.Position, error) {
	rows, err := r.db.Query("SELECT "+positionColumns+" FROM positions WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query position: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}

	pos, err := r.scanPosition(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan position: %w", err)
	}
	return &pos, nil
}

// GetByClient returns every position across a client's accounts,
// used by the classification scan.
func (r *PositionRepository) GetByClient(clientID string) ([]domain.Position, error) {
	rows, err := r.db.Query(`
		SELECT `+positionColumns+` FROM positions
		WHERE account_id IN (SELECT id FROM accounts WHERE client_id = ?)
		ORDER BY symbol`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query client positions: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// HeldSymbols returns every distinct symbol across the whole book,
// used by the price refresh job.
func (r *PositionRepository) HeldSymbols() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT symbol FROM positions ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query held symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return symbols, nil
}

// Create inserts a new position.
func (r *PositionRepository) Create(pos domain.Position) error {
	pos.Symbol = strings.ToUpper(strings.TrimSpace(pos.Symbol))

	_, err := r.db.Exec(`
		INSERT INTO positions
		(id, account_id, symbol, description, kind, quantity, price,
		 current_value, yield, target_pct, rounding_mode,
		 asset_class, sector, state_code, logo_ticker)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pos.ID, pos.AccountID, pos.Symbol, pos.Description, string(pos.Kind),
		pos.Quantity, pos.Price, pos.CurrentValue, pos.Yield, pos.TargetPct,
		string(pos.RoundingMode),
		nullString(pos.AssetClass), nullString(pos.Sector),
		nullString(pos.StateCode), nullString(pos.LogoTicker),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}

	r.log.Info().Str("position_id", pos.ID).Str("symbol", pos.Symbol).Msg("Position created")
	return nil
}

// Update rewrites the editable fields of a position.
func (r *PositionRepository) Update(pos domain.Position) error {
	result, err := r.db.Exec(`
		UPDATE positions SET
			symbol = ?, description = ?, kind = ?, quantity = ?, price = ?,
			current_value = ?, yield = ?, target_pct = ?, rounding_mode = ?,
			asset_class = ?, sector = ?, state_code = ?, logo_ticker = ?
		WHERE id = ?`,
		pos.Symbol, pos.Description, string(pos.Kind), pos.Quantity, pos.Price,
		pos.CurrentValue, pos.Yield, pos.TargetPct, string(pos.RoundingMode),
		nullString(pos.AssetClass), nullString(pos.Sector),
		nullString(pos.StateCode), nullString(pos.LogoTicker),
		pos.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("position %s not found", pos.ID)
	}
	return nil
}

// SetTargetPct stores the canonical target percentage for a position.
func (r *PositionRepository) SetTargetPct(id string, pct float64) error {
	result, err := r.db.Exec("UPDATE positions SET target_pct = ? WHERE id = ?", pct, id)
	if err != nil {
		return fmt.Errorf("failed to set target pct: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("position %s not found", id)
	}
	return nil
}

// UpdatePrice writes a refreshed quote for every position holding the
// symbol and recomputes the stored current value. Bonds price as
// percent of par.
func (r *PositionRepository) UpdatePrice(symbol string, price, yield float64) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	result, err := r.db.Exec(`
		UPDATE positions SET
			price = ?,
			yield = ?,
			current_value = CASE WHEN kind = 'bond'
				THEN quantity * ? / 100
				ELSE quantity * ?
			END
		WHERE symbol = ?`,
		price, yield, price, price, symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Debug().
		Str("symbol", symbol).
		Float64("price", price).
		Int64("rows_affected", rowsAffected).
		Msg("Position price updated")
	return nil
}

// SetClassification applies classifier output to a position.
func (r *PositionRepository) SetClassification(id, assetClass, sector, stateCode, logoTicker string) error {
	_, err := r.db.Exec(`
		UPDATE positions SET asset_class = ?, sector = ?, state_code = ?, logo_ticker = ?
		WHERE id = ?`,
		nullString(assetClass), nullString(sector),
		nullString(stateCode), nullString(logoTicker), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set classification: %w", err)
	}
	return nil
}

// Delete removes a position.
func (r *PositionRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM positions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Info().Str("position_id", id).Int64("rows_affected", rowsAffected).Msg("Position deleted")
	return nil
}

func (r *PositionRepository) collect(rows *sql.Rows) ([]domain.Position, error) {
	var positions []domain.Position
	for rows.Next() {
		pos, err := r.scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

func (r *PositionRepository) scanPosition(rows *sql.Rows) (domain.Position, error) {
	var pos domain.Position
	var kind, roundingMode string
	var assetClass, sector, stateCode, logoTicker sql.NullString

	err := rows.Scan(
		&pos.ID,
		&pos.AccountID,
		&pos.Symbol,
		&pos.Description,
		&kind,
		&pos.Quantity,
		&pos.Price,
		&pos.CurrentValue,
		&pos.Yield,
		&pos.TargetPct,
		&roundingMode,
		&assetClass,
		&sector,
		&stateCode,
		&logoTicker,
	)
	if err != nil {
		return pos, err
	}

	pos.Kind = domain.Kind(kind)
	pos.RoundingMode = domain.ParseRoundingMode(roundingMode)
	if assetClass.Valid {
		pos.AssetClass = assetClass.String
	}
	if sector.Valid {
		pos.Sector = sector.String
	}
	if stateCode.Valid {
		pos.StateCode = stateCode.String
	}
	if logoTicker.Valid {
		pos.LogoTicker = logoTicker.String
	}

	pos.Symbol = strings.ToUpper(strings.TrimSpace(pos.Symbol))

	return pos, nil
}

func nullString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: val, Valid: true}
}
