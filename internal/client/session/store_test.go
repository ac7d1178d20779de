package session

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/client/storage"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	f.calls++
	return f.token, f.err
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (string, error) {
	f.calls++
	return f.token, f.err
}

type memTokens struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newMemTokens() *memTokens { return &memTokens{values: map[string]string{}} }

func (m *memTokens) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memTokens) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memTokens) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
	return nil
}

// ---- helpers ----

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func validToken(t *testing.T, exp time.Time) string {
	return mintToken(t, jwt.MapClaims{"user_id": "u-1", "email": "a@b.com", "points": 5, "exp": exp.Unix()})
}

func newStore(auth Authenticator, tokens metadata.Repository, c *clock) *Store {
	return NewStore(auth, tokens, logging.Discard(), WithClock(c.Now))
}

// ---- Init ----

func TestInit_NoToken_Anonymous(t *testing.T) {
	s := newStore(&fakeAuth{}, newMemTokens(), &clock{testNow})

	require.Equal(t, StatusPending, s.Current().Status)
	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, StatusAnonymous, s.Current().Status)
	assert.False(t, s.IsAuthenticated())
}

func TestInit_ExpiredToken_AnonymousAndDeleted(t *testing.T) {
	tokens := newMemTokens()
	tokens.values[metadata.KeyToken] = validToken(t, testNow.Add(-time.Second))
	s := newStore(&fakeAuth{}, tokens, &clock{testNow})

	require.NoError(t, s.Init(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, StatusAnonymous, s.Current().Status)
	assert.NotContains(t, tokens.values, metadata.KeyToken)
}

func TestInit_MalformedToken_SilentlyDiscarded(t *testing.T) {
	tokens := newMemTokens()
	tokens.values[metadata.KeyToken] = "garbage"
	s := newStore(&fakeAuth{}, tokens, &clock{testNow})

	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, StatusAnonymous, s.Current().Status)
	assert.Empty(t, tokens.values)
}

func TestInit_ValidToken_Authenticated(t *testing.T) {
	tokens := newMemTokens()
	tok := validToken(t, testNow.Add(time.Hour))
	tokens.values[metadata.KeyToken] = tok
	s := newStore(&fakeAuth{}, tokens, &clock{testNow})

	require.NoError(t, s.Init(context.Background()))

	st := s.Current()
	assert.Equal(t, StatusAuthenticated, st.Status)
	assert.Equal(t, "u-1", st.Session.UserID)
	assert.Equal(t, "a@b.com", st.Session.Email)
	assert.Equal(t, tok, s.Token())
}

func TestInit_StorageError_AnonymousWithError(t *testing.T) {
	tokens := newMemTokens()
	tokens.getErr = errors.New("disk gone")
	s := newStore(&fakeAuth{}, tokens, &clock{testNow})

	err := s.Init(context.Background())
	require.ErrorContains(t, err, "disk gone")
	assert.Equal(t, StatusAnonymous, s.Current().Status)
}

func TestInit_WithSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := metadata.NewSQLiteRepository(db)

	c := &clock{testNow}
	first := newStore(&fakeAuth{token: validToken(t, testNow.Add(time.Hour))}, repo, c)
	require.NoError(t, first.Init(ctx))
	require.NoError(t, first.Login(ctx, "a@b.com", "secret"))

	second := newStore(&fakeAuth{}, repo, c)
	require.NoError(t, second.Init(ctx))
	assert.True(t, second.IsAuthenticated())
}

// ---- Login / Register ----

func TestLogin_Success_PersistsAndNotifies(t *testing.T) {
	tokens := newMemTokens()
	tok := validToken(t, testNow.Add(time.Hour))
	s := newStore(&fakeAuth{token: tok}, tokens, &clock{testNow})
	require.NoError(t, s.Init(context.Background()))

	var seen []Status
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st.Status) })
	defer unsubscribe()

	require.NoError(t, s.Login(context.Background(), "a@b.com", "secret"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, tok, tokens.values[metadata.KeyToken])
	assert.Equal(t, []Status{StatusAnonymous, StatusAuthenticated}, seen)
}

func TestLogin_401_RejectsWithMessage(t *testing.T) {
	auth := &fakeAuth{err: &api.Error{Status: http.StatusUnauthorized}}
	s := newStore(auth, newMemTokens(), &clock{testNow})
	require.NoError(t, s.Init(context.Background()))

	err := s.Login(context.Background(), "a@b.com", "secret")

	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", api.Message(err, "Invalid email or password"))
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 1, auth.calls, "login must not retry")
}

func TestLogin_ServerDetailWins(t *testing.T) {
	auth := &fakeAuth{err: &api.Error{Status: http.StatusUnauthorized, Detail: "Account locked"}}
	s := newStore(auth, newMemTokens(), &clock{testNow})

	err := s.Login(context.Background(), "a@b.com", "secret")
	assert.Equal(t, "Account locked", api.Message(err, "Invalid email or password"))
}

func TestLogin_ExpiredTokenFromServer_Rejected(t *testing.T) {
	tokens := newMemTokens()
	s := newStore(&fakeAuth{token: validToken(t, testNow.Add(-time.Minute))}, tokens, &clock{testNow})

	err := s.Login(context.Background(), "a@b.com", "secret")
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.Empty(t, tokens.values)
}

func TestLogin_PersistFailureKeepsSession(t *testing.T) {
	tokens := newMemTokens()
	tokens.setErr = errors.New("read-only")
	s := newStore(&fakeAuth{token: validToken(t, testNow.Add(time.Hour))}, tokens, &clock{testNow})

	require.NoError(t, s.Login(context.Background(), "a@b.com", "secret"))
	assert.True(t, s.IsAuthenticated())
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	auth := &fakeAuth{err: &api.Error{Status: http.StatusConflict, Detail: "Email already registered"}}
	s := newStore(auth, newMemTokens(), &clock{testNow})

	err := s.Register(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, api.ErrAlreadyRegistered)
}

func TestRegister_Success(t *testing.T) {
	s := newStore(&fakeAuth{token: validToken(t, testNow.Add(time.Hour))}, newMemTokens(), &clock{testNow})

	require.NoError(t, s.Register(context.Background(), "a@b.com", "pw"))
	assert.Equal(t, "u-1", s.Current().Session.UserID)
}

// ---- Logout / expiry / Invalidate ----

func TestLogout_ClearsSynchronously(t *testing.T) {
	tokens := newMemTokens()
	s := newStore(&fakeAuth{token: validToken(t, testNow.Add(time.Hour))}, tokens, &clock{testNow})
	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	require.NoError(t, s.Logout(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, State{Status: StatusAnonymous}, s.Current())
	assert.Empty(t, s.Token())
	assert.Empty(t, tokens.values)
}

func TestIsAuthenticated_FalseOnceExpired(t *testing.T) {
	c := &clock{testNow}
	s := newStore(&fakeAuth{token: validToken(t, testNow.Add(time.Minute))}, newMemTokens(), c)
	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))
	require.True(t, s.IsAuthenticated())

	c.now = testNow.Add(2 * time.Minute)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestInvalidate(t *testing.T) {
	tokens := newMemTokens()
	s := newStore(&fakeAuth{token: validToken(t, testNow.Add(time.Hour))}, tokens, &clock{testNow})
	require.NoError(t, s.Invalidate(context.Background()), "no-op while anonymous")

	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))
	require.NoError(t, s.Invalidate(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, tokens.values)
}

// ---- Subscribe / Dispose ----

func TestSubscribe_DeliversCurrentAndUnsubscribes(t *testing.T) {
	s := newStore(&fakeAuth{}, newMemTokens(), &clock{testNow})

	var got []Status
	unsubscribe := s.Subscribe(func(st State) { got = append(got, st.Status) })
	require.Equal(t, []Status{StatusPending}, got)

	require.NoError(t, s.Init(context.Background()))
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Logout(context.Background()))

	assert.Equal(t, []Status{StatusPending, StatusAnonymous}, got)
}

func TestDispose(t *testing.T) {
	auth := &fakeAuth{token: validToken(t, testNow.Add(time.Hour))}
	s := newStore(auth, newMemTokens(), &clock{testNow})

	calls := 0
	s.Subscribe(func(State) { calls++ })
	s.Dispose()
	s.Dispose()

	assert.ErrorIs(t, s.Init(context.Background()), ErrDisposed)
	assert.ErrorIs(t, s.Login(context.Background(), "a@b.com", "pw"), ErrDisposed)
	assert.ErrorIs(t, s.Logout(context.Background()), ErrDisposed)
	assert.Equal(t, 0, auth.calls)
	assert.Equal(t, 1, calls, "only the initial delivery")

	late := 0
	s.Subscribe(func(State) { late++ })()
	assert.Equal(t, 0, late)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "anonymous", StatusAnonymous.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
	assert.Equal(t, "unknown", Status(9).String())
}
