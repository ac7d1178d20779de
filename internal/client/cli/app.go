package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/card"
	"github.com/dmitrijs2005/newsdigest/internal/client/config"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/client/router"
	"github.com/dmitrijs2005/newsdigest/internal/client/services"
	"github.com/dmitrijs2005/newsdigest/internal/client/session"
	"github.com/dmitrijs2005/newsdigest/internal/client/storage"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	log       logging.Logger
	session   *session.Store
	router    *router.Router
	summaries services.SummaryService
	dashboard services.DashboardService
	profiles  services.ProfileService
	chat      services.ChatService
	toasts    *card.Toaster
	clipboard card.Clipboard
	variant   card.Variant
	reader    *bufio.Reader

	cards   []*card.Card
	offline bool
	// pending is the page to resume after login.
	pending string
	retry   *pageLoad

	unsubscribe func()
}

// pageLoad is a page fetch that can be repeated with "retry".
type pageLoad struct {
	path string
	load func(ctx context.Context) error
}

// NewApp opens the local database and wires the client together.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	client := api.NewHTTPClient(c.ServerURL, c.RequestTimeout, nil, log)
	a := newApp(c, db, client, log)
	a.clipboard = NewOSC52Clipboard(os.Stdout)
	return a, nil
}

func newApp(c *config.Config, db *sql.DB, client *api.HTTPClient, log logging.Logger) *App {
	store := session.NewStore(client, metadata.NewSQLiteRepository(db), log)
	client.SetTokenFunc(store.Token)

	summaries := services.NewSummaryService(client, db, log)
	a := &App{
		config:    c,
		db:        db,
		log:       log,
		session:   store,
		router:    router.New(store, router.DefaultRoutes()...),
		summaries: summaries,
		dashboard: services.NewDashboardService(client),
		profiles:  services.NewProfileService(client),
		chat:      services.NewChatService(client),
		toasts:    card.NewToaster(card.SystemClock, c.ToastDelay, newToastPrinter().print),
		variant:   card.VariantByName(c.CardVariant),
		reader:    bufio.NewReader(os.Stdin),
	}
	a.unsubscribe = store.Subscribe(a.onSession)
	return a
}

// Run bootstraps the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.session.Init(ctx); err != nil {
		a.log.Warn(ctx, "session bootstrap", "error", err)
	}

	printlnFn("Welcome to newsdigest (type 'help' for commands)")
	if a.isLoggedIn() {
		_ = a.Open(ctx, router.DefaultPath)
	} else {
		_ = a.Open(ctx, router.JoinPath)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// Close releases timers, subscribers and the database.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.closeCards()
	a.toasts.Close()
	a.session.Dispose()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	s := "guest"
	if a.isLoggedIn() {
		s = a.session.Current().Session.Email
	}
	if a.offline {
		s += " offline"
	}
	return "(" + s + ")"
}

// onSession drops per-user state whenever the session ends. The summary
// cache survives the pending bootstrap state and is only cleared once the
// session is known to be anonymous.
func (a *App) onSession(st session.State) {
	if st.Status == session.StatusAuthenticated {
		return
	}
	a.closeCards()
	a.chat.Reset()
	a.offline = false
	a.retry = nil
	if st.Status != session.StatusAnonymous {
		return
	}
	ctx := context.Background()
	if err := a.summaries.Forget(ctx); err != nil {
		a.log.Warn(ctx, "clear summary cache", "error", err)
	}
}

func (a *App) closeCards() {
	for _, c := range a.cards {
		c.Close()
	}
	a.cards = nil
}
