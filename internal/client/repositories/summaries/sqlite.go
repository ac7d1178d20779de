package summaries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll is not atomic on its own; run it through dbx.WithTx.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Summary) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}

	for i, s := range items {
		sources, err := json.Marshal(s.Sources)
		if err != nil {
			return fmt.Errorf("failed to encode sources of %s: %w", s.ID, err)
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO summaries (id, position, topic, title, body, sources, created_at, is_read)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, s.ID.String(), i, s.Topic, s.Title, s.Text, string(sources), s.Timestamp, s.IsRead)
		if err != nil {
			return fmt.Errorf("failed to insert summary %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, topic, title, body, sources, created_at, is_read
		FROM summaries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	result := make([]models.Summary, 0)
	for rows.Next() {
		var (
			s       models.Summary
			id      string
			sources string
		)
		if err := rows.Scan(&id, &s.Topic, &s.Title, &s.Text, &sources, &s.Timestamp, &s.IsRead); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		s.ID = models.ID(id)
		if err := json.Unmarshal([]byte(sources), &s.Sources); err != nil {
			return nil, fmt.Errorf("failed to decode sources of %s: %w", s.ID, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summary rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) MarkRead(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE summaries SET is_read = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark summary %s read: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM summaries`); err != nil {
		return fmt.Errorf("failed to clear summaries: %w", err)
	}
	return nil
}
