// Package services contains the page-level services of the newsdigest
// client. Each one wraps the API client for a single view and adds what the
// view needs on top: offline fallback for summaries, chat history for the
// assistant.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/summaries"
	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

// SummaryPage is the summary list plus where it came from.
type SummaryPage struct {
	Items []models.Summary
	// Offline is set when Items come from the local cache because the
	// backend was unreachable.
	Offline bool
}

// SummaryService lists summaries and marks them read.
//
// List caches every successful response and serves the cache when the
// backend is unavailable. Other errors (401, 5xx) are returned as is so the
// view can show them with a retry prompt.
type SummaryService interface {
	List(ctx context.Context) (*SummaryPage, error)
	MarkRead(ctx context.Context, summaryID string) (*models.ReadResult, error)
	// Forget drops the cached list; the cache belongs to the signed-in user.
	Forget(ctx context.Context) error
}

type summaryService struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger
}

func NewSummaryService(client api.Client, db *sql.DB, log logging.Logger) SummaryService {
	return &summaryService{client: client, db: db, log: log}
}

func (s *summaryService) List(ctx context.Context) (*SummaryPage, error) {
	items, err := s.client.ListSummaries(ctx)
	if err == nil {
		if cerr := s.cache(ctx, items); cerr != nil {
			s.log.Warn(ctx, "summary cache update failed", "error", cerr)
		}
		return &SummaryPage{Items: items}, nil
	}

	if !errors.Is(err, api.ErrUnavailable) {
		return nil, fmt.Errorf("list summaries: %w", err)
	}

	cached, cerr := summaries.NewSQLiteRepository(s.db).GetAll(ctx)
	if cerr != nil {
		s.log.Warn(ctx, "summary cache read failed", "error", cerr)
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	if len(cached) == 0 {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	s.log.Info(ctx, "serving cached summaries", "count", len(cached))
	return &SummaryPage{Items: cached, Offline: true}, nil
}

func (s *summaryService) cache(ctx context.Context, items []models.Summary) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return summaries.NewSQLiteRepository(tx).ReplaceAll(ctx, items)
	})
}

func (s *summaryService) MarkRead(ctx context.Context, summaryID string) (*models.ReadResult, error) {
	res, err := s.client.MarkRead(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	if err := summaries.NewSQLiteRepository(s.db).MarkRead(ctx, summaryID); err != nil {
		s.log.Warn(ctx, "summary cache update failed", "summary_id", summaryID, "error", err)
	}
	return res, nil
}

func (s *summaryService) Forget(ctx context.Context) error {
	if err := summaries.NewSQLiteRepository(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("forget summaries: %w", err)
	}
	return nil
}
