// Package session owns the client's authentication state.
//
// Store is created once at startup and passed to whoever needs it; it is
// not global. Its lifecycle is:
//
//  1. NewStore          state is Pending
//  2. Init              the persisted token is decoded; state becomes
//     Authenticated or Anonymous. A malformed or expired token is deleted
//     and never reported as an error.
//  3. Login / Register / Logout / Invalidate  mutate state and notify
//     subscribers
//  4. Dispose           subscribers are dropped and mutations fail with
//     ErrDisposed
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

var ErrDisposed = errors.New("session store disposed")

type Status int

const (
	StatusPending Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is a snapshot of the session. Session is the zero value unless
// Status is StatusAuthenticated.
type State struct {
	Status  Status
	Session Session
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
}

type Option func(*Store)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	auth   Authenticator
	tokens metadata.Repository
	log    logging.Logger
	now    func() time.Time

	mu       sync.RWMutex
	state    State
	token    string
	subs     map[int]func(State)
	nextSub  int
	disposed bool
}

func NewStore(auth Authenticator, tokens metadata.Repository, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		auth:   auth,
		tokens: tokens,
		log:    log,
		now:    time.Now,
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init bootstraps the session from the persisted token. The returned error
// only reports storage failures; the state is resolved either way.
func (s *Store) Init(ctx context.Context) error {
	if s.isDisposed() {
		return ErrDisposed
	}

	token, ok, err := s.tokens.Get(ctx, metadata.KeyToken)
	if err != nil {
		s.set(State{Status: StatusAnonymous}, "")
		return fmt.Errorf("read persisted token: %w", err)
	}
	if !ok || token == "" {
		s.set(State{Status: StatusAnonymous}, "")
		return nil
	}

	sess, err := Decode(token, s.now())
	if err != nil {
		s.log.Debug(ctx, "discarding persisted token", "reason", err)
		s.set(State{Status: StatusAnonymous}, "")
		if derr := s.tokens.Delete(ctx, metadata.KeyToken); derr != nil {
			return fmt.Errorf("delete stale token: %w", derr)
		}
		return nil
	}

	s.set(State{Status: StatusAuthenticated, Session: sess}, token)
	return nil
}

// Login authenticates against the backend and stores the returned token.
// Backend errors are returned wrapped; callers match them with errors.Is
// and show api.Message to the user. There is no retry.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "login", s.auth.Login, email, password)
}

// Register creates an account and signs in with the returned token.
func (s *Store) Register(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "register", s.auth.Register, email, password)
}

func (s *Store) authenticate(ctx context.Context, op string,
	call func(ctx context.Context, email, password string) (string, error),
	email, password string) error {
	if s.isDisposed() {
		return ErrDisposed
	}

	token, err := call(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sess, err := Decode(token, s.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.tokens.Set(ctx, metadata.KeyToken, token); err != nil {
		// The session still works until the process exits.
		s.log.Warn(ctx, "could not persist token", "error", err)
	}

	s.set(State{Status: StatusAuthenticated, Session: sess}, token)
	s.log.Info(ctx, op+" succeeded", "user_id", sess.UserID)
	return nil
}

// Logout clears the session immediately; no server call is made. The
// in-memory state is cleared even when deleting the stored token fails.
func (s *Store) Logout(ctx context.Context) error {
	if s.isDisposed() {
		return ErrDisposed
	}
	s.set(State{Status: StatusAnonymous}, "")
	if err := s.tokens.Delete(ctx, metadata.KeyToken); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Invalidate drops a session the backend has rejected (HTTP 401).
func (s *Store) Invalidate(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return nil
	}
	s.log.Info(ctx, "session rejected by server")
	return s.Logout(ctx)
}

// Current returns the latest state.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a session exists and has not expired
// since it was loaded.
func (s *Store) IsAuthenticated() bool {
	st := s.Current()
	return st.Status == StatusAuthenticated && s.now().Before(st.Session.ExpiresAt)
}

// Token returns the bearer token, or "" when there is no live session.
func (s *Store) Token() string {
	if !s.IsAuthenticated() {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn for state changes and calls it once with the
// current state. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Dispose drops all subscribers. It is safe to call more than once.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.subs = make(map[int]func(State))
}

func (s *Store) isDisposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disposed
}

func (s *Store) set(st State, token string) {
	s.mu.Lock()
	s.state = st
	s.token = token
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}
