package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/config"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/client/storage"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "")
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.lines = append(o.lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func mintToken(t *testing.T, userID, email string, ttl time.Duration) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"points":  10,
		"exp":     time.Now().Add(ttl).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestApp(t *testing.T, r chi.Router, variant string) *App {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerURL = srv.URL
	cfg.DataDir = t.TempDir()
	if variant != "" {
		cfg.CardVariant = variant
	}

	client := api.NewHTTPClient(srv.URL, 2*time.Second, nil, logging.Discard())
	a := newApp(cfg, db, client, logging.Discard())
	a.reader = bufio.NewReader(strings.NewReader(""))
	t.Cleanup(a.Close)
	return a
}

// signIn persists a valid token and bootstraps the session from it.
func signIn(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()
	tok := mintToken(t, "7", "reader@example.com", time.Hour)
	require.NoError(t, metadata.NewSQLiteRepository(a.db).Set(ctx, metadata.KeyToken, tok))
	require.NoError(t, a.session.Init(ctx))
	require.True(t, a.isLoggedIn())
}

type failingClipboard struct{}

func (failingClipboard) Copy(string) error { return ErrNoTerminal }

type recordingClipboard struct{ text string }

func (c *recordingClipboard) Copy(text string) error {
	c.text = text
	return nil
}
