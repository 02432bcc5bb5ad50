package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Note and event persistence. Same repository, separate file to keep
// trade CRUD readable.

const noteColumns = `
	id, user_id, trade_id, title, content, tags, created_at, updated_at
`

// ListNotes returns a user's notes, newest first
func (r *Repository) ListNotes(ctx context.Context, userID string) ([]Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM journal.notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]Note, 0)

	for rows.Next() {
		var n Note
		if err := scanNote(rows, &n); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// GetNote retrieves a single note by id
func (r *Repository) GetNote(ctx context.Context, userID, noteID string) (*Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM journal.notes
		WHERE id = $1 AND user_id = $2
	`

	var n Note
	row := r.pool.QueryRow(ctx, query, noteID, userID)
	if err := scanNote(row, &n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &n, nil
}

// CreateNote inserts a new note
func (r *Repository) CreateNote(ctx context.Context, n *Note) error {
	query := `
		INSERT INTO journal.notes (user_id, trade_id, title, content, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		n.UserID, nullable(n.TradeID), n.Title, n.Content, n.Tags,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// UpdateNote updates an existing note
func (r *Repository) UpdateNote(ctx context.Context, n *Note) error {
	query := `
		UPDATE journal.notes SET
			title = $3, content = $4, tags = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, n.ID, n.UserID, n.Title, n.Content, n.Tags)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteNote removes a note
func (r *Repository) DeleteNote(ctx context.Context, userID, noteID string) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM journal.notes WHERE id = $1 AND user_id = $2", noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListEvents returns a user's events within a date range, earliest first
func (r *Repository) ListEvents(ctx context.Context, userID string, filter TradeFilter) ([]Event, error) {
	query := `
		SELECT id, user_id, title, kind, event_time, description, created_at
		FROM journal.events
		WHERE user_id = $1
	`

	args := []interface{}{userID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND event_time >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND event_time <= $%d", len(args))
	}

	query += " ORDER BY event_time ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]Event, 0)

	for rows.Next() {
		var e Event
		var description *string
		err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Kind, &e.EventTime, &description, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if description != nil {
			e.Description = *description
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}

// CreateEvent inserts a new event
func (r *Repository) CreateEvent(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO journal.events (user_id, title, kind, event_time, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		e.UserID, e.Title, e.Kind, e.EventTime, nullable(e.Description),
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// DeleteEvent removes an event
func (r *Repository) DeleteEvent(ctx context.Context, userID, eventID string) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM journal.events WHERE id = $1 AND user_id = $2", eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// scanNote scans a note row into n
func scanNote(row pgx.Row, n *Note) error {
	var tradeID *string

	err := row.Scan(
		&n.ID, &n.UserID, &tradeID, &n.Title, &n.Content, &n.Tags,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tradeID != nil {
		n.TradeID = *tradeID
	}

	return nil
}
