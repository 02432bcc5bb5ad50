package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Repository handles journal data persistence.
// Trades, notes and events are stored/queried here only.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new journal repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const tradeColumns = `
	id, user_id, symbol, side, entry_price, exit_price,
	entry_time, exit_time, quantity, profit_loss,
	strategy, tags, emotional_state, notes, created_at
`

// ListTrades returns a user's trades ordered by entry time ascending.
// Soft-deleted trades are excluded.
func (r *Repository) ListTrades(ctx context.Context, userID string, filter TradeFilter) ([]Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM journal.trades
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	args := []interface{}{userID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND entry_time >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND entry_time <= $%d", len(args))
	}
	if filter.Symbol != "" {
		args = append(args, filter.Symbol)
		query += fmt.Sprintf(" AND symbol = $%d", len(args))
	}

	query += " ORDER BY entry_time ASC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]Trade, 0)

	for rows.Next() {
		var t Trade
		if err := scanTrade(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return trades, nil
}

// GetTrade retrieves a single trade by id
func (r *Repository) GetTrade(ctx context.Context, userID, tradeID string) (*Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM journal.trades
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	var t Trade
	row := r.pool.QueryRow(ctx, query, tradeID, userID)
	if err := scanTrade(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	return &t, nil
}

// CreateTrade inserts a new trade and returns it with generated fields
func (r *Repository) CreateTrade(ctx context.Context, t *Trade) error {
	query := `
		INSERT INTO journal.trades (
			user_id, symbol, side, entry_price, exit_price,
			entry_time, exit_time, quantity, profit_loss,
			strategy, tags, emotional_state, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		t.UserID, t.Symbol, t.Side, t.EntryPrice, t.ExitPrice,
		t.EntryTime, t.ExitTime, t.Quantity, t.ProfitLoss,
		nullable(t.Strategy), t.Tags, nullable(t.EmotionalState), nullable(t.Notes),
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	return nil
}

// UpdateTrade updates an existing trade
func (r *Repository) UpdateTrade(ctx context.Context, t *Trade) error {
	query := `
		UPDATE journal.trades SET
			symbol = $3, side = $4, entry_price = $5, exit_price = $6,
			entry_time = $7, exit_time = $8, quantity = $9, profit_loss = $10,
			strategy = $11, tags = $12, emotional_state = $13, notes = $14
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query,
		t.ID, t.UserID, t.Symbol, t.Side, t.EntryPrice, t.ExitPrice,
		t.EntryTime, t.ExitTime, t.Quantity, t.ProfitLoss,
		nullable(t.Strategy), t.Tags, nullable(t.EmotionalState), nullable(t.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteTrade soft-deletes a trade. Rows stay recoverable until the
// maintenance job purges them past the retention window.
func (r *Repository) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	query := `
		UPDATE journal.trades SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, tradeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// PurgeDeleted hard-deletes trades soft-deleted before the cutoff.
// Returns the number of rows removed.
func (r *Repository) PurgeDeleted(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		DELETE FROM journal.trades
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
	`

	tag, err := r.pool.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to purge deleted trades: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountTradesByUser returns per-user trade counts (maintenance reporting)
func (r *Repository) CountTradesByUser(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT user_id, COUNT(*)
		FROM journal.trades
		WHERE deleted_at IS NULL
		GROUP BY user_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count trades: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)

	for rows.Next() {
		var userID string
		var count int64
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[userID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// scanTrade scans a trade row into t
func scanTrade(row pgx.Row, t *Trade) error {
	var strategy, emotionalState, notes *string

	err := row.Scan(
		&t.ID, &t.UserID, &t.Symbol, &t.Side, &t.EntryPrice, &t.ExitPrice,
		&t.EntryTime, &t.ExitTime, &t.Quantity, &t.ProfitLoss,
		&strategy, &t.Tags, &emotionalState, &notes, &t.CreatedAt,
	)
	if err != nil {
		return err
	}

	if strategy != nil {
		t.Strategy = *strategy
	}
	if emotionalState != nil {
		t.EmotionalState = *emotionalState
	}
	if notes != nil {
		t.Notes = *notes
	}

	return nil
}

// nullable maps empty strings to SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
