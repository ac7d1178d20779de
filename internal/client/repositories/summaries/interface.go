package summaries

import (
	"context"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
)

type Repository interface {
	// ReplaceAll swaps the cached list for items, keeping their order.
	ReplaceAll(ctx context.Context, items []models.Summary) error
	GetAll(ctx context.Context) ([]models.Summary, error)
	MarkRead(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
