package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
)

type DashboardService interface {
	Get(ctx context.Context) (*models.Dashboard, error)
}

type dashboardService struct {
	client api.Client
}

func NewDashboardService(client api.Client) DashboardService {
	return &dashboardService{client: client}
}

func (s *dashboardService) Get(ctx context.Context) (*models.Dashboard, error) {
	d, err := s.client.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return d, nil
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Follow(ctx context.Context, userID string) (*models.FollowResult, error)
}

type profileService struct {
	client api.Client
}

func NewProfileService(client api.Client) ProfileService {
	return &profileService{client: client}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.client.Profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", userID, err)
	}
	return p, nil
}

func (s *profileService) Follow(ctx context.Context, userID string) (*models.FollowResult, error) {
	r, err := s.client.Follow(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("follow %s: %w", userID, err)
	}
	return r, nil
}
