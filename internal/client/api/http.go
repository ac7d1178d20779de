package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// TokenFunc returns the current bearer token, or "" when anonymous.
type TokenFunc func() string

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
	log        logging.Logger
}

// NewHTTPClient creates a client for the backend at baseURL.
// token may be nil; it is consulted on every request.
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenFunc, log logging.Logger) *HTTPClient {
	if token == nil {
		token = func() string { return "" }
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
		log:        log,
	}
}

// SetTokenFunc replaces the token source. The session store is created
// after the client, so the CLI wires it in afterwards.
func (c *HTTPClient) SetTokenFunc(token TokenFunc) {
	c.token = token
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

func (c *HTTPClient) authenticate(ctx context.Context, path, email, password string) (string, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, path, Credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	token := resp.Bearer()
	if token == "" {
		return "", fmt.Errorf("%s: response carries no token", path)
	}
	return token, nil
}

func (c *HTTPClient) ListSummaries(ctx context.Context) ([]models.Summary, error) {
	var out []models.Summary
	if err := c.do(ctx, http.MethodGet, "/api/summaries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) MarkRead(ctx context.Context, summaryID string) (*models.ReadResult, error) {
	var out models.ReadResult
	if err := c.do(ctx, http.MethodPost, "/api/summaries/read/"+url.PathEscape(summaryID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(userID)+"/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Follow(ctx context.Context, userID string) (*models.FollowResult, error) {
	var out models.FollowResult
	if err := c.do(ctx, http.MethodPost, "/api/follow/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error) {
	var out models.ChatReply
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one JSON request and decodes a JSON response into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
		c.log.Debug(ctx, "api error", "path", path, "status", resp.StatusCode, "request_id", requestID)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// readDetail extracts the human-readable message from an error body. The
// backend uses "detail", but "error" and "message" are also seen; a plain
// text body is returned as is.
func readDetail(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		if raw[0] == '{' || raw[0] == '[' {
			return ""
		}
		return string(raw)
	}
	for _, key := range []string{"detail", "error", "message"} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil && s != "" {
			return s
		}
		// Validation errors come as a list of {"msg": ...}.
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(v, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
			return items[0].Msg
		}
	}
	return ""
}
