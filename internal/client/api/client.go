package api

import (
	"context"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
)

// Credentials is the login/register request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login/register response body. Older backend builds
// answer with "token", newer ones with "access_token".
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	TokenType   string `json:"token_type"`
}

func (r TokenResponse) Bearer() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
	ListSummaries(ctx context.Context) ([]models.Summary, error)
	MarkRead(ctx context.Context, summaryID string) (*models.ReadResult, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	Follow(ctx context.Context, userID string) (*models.FollowResult, error)
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error)
}
