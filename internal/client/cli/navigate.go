package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/router"
)

// Open resolves path through the router guard and renders the view.
// Anonymous users asking for a protected view land on the join view and the
// path is kept in a.pending for after login.
func (a *App) Open(ctx context.Context, path string) error {
	d := a.router.Resolve(path)

	switch d.Outcome {
	case router.NotFound:
		printlnFn("Page not found:", path)
		return nil
	case router.Loading:
		printlnFn("Checking your session...")
		return nil
	case router.Redirect:
		a.log.Debug(ctx, "redirect", "from", path, "to", d.Location)
		return a.Open(ctx, d.Location)
	}

	return a.render(ctx, d, path)
}

func (a *App) render(ctx context.Context, d router.Decision, path string) error {
	switch d.Route.Name {
	case "home":
		printlnFn("newsdigest: AI summaries of the day's tech news. Type 'summaries' to start reading.")
		return nil

	case "join":
		if next := router.NextFrom(path); next != "" {
			a.pending = next
			printlnFn("Please log in or register to continue.")
		}
		printlnFn("Type 'login' if you have an account or 'register' to create one.")
		return nil

	case "summaries":
		return a.load(ctx, path, a.listSummaries)

	case "summary":
		id := d.Params["id"]
		return a.load(ctx, path, func(ctx context.Context) error { return a.showSummary(ctx, id) })

	case "dashboard":
		return a.load(ctx, path, a.showDashboard)

	case "profile":
		id := d.Params["id"]
		return a.load(ctx, path, func(ctx context.Context) error { return a.showProfile(ctx, id) })

	case "chat":
		a.showChat()
		return nil
	}

	printlnFn("Page not found:", path)
	return nil
}

// load runs a page fetch. Failures are printed with a retry hint and
// remembered for Retry; a 401 ends the session instead.
func (a *App) load(ctx context.Context, path string, fn func(context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		a.retry = nil
		return nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		a.expire(ctx, path)
		return err
	}

	a.log.Warn(ctx, "page load failed", "path", path, "error", err)
	a.retry = &pageLoad{path: path, load: fn}
	printlnFn("Error:", api.Message(err, "Something went wrong"))
	printlnFn("Type 'retry' to try again.")
	return err
}

// Retry repeats the last failed page load.
func (a *App) Retry(ctx context.Context) error {
	if a.retry == nil {
		printlnFn("Nothing to retry.")
		return nil
	}
	p := a.retry
	if d := a.router.Resolve(p.path); d.Outcome != router.Render {
		return a.Open(ctx, p.path)
	}
	return a.load(ctx, p.path, p.load)
}

// guard reports whether path may be shown now; if not, it performs the
// redirect.
func (a *App) guard(ctx context.Context, path string) bool {
	if d := a.router.Resolve(path); d.Outcome != router.Render {
		_ = a.Open(ctx, path)
		return false
	}
	return true
}

// expire ends a session the backend no longer accepts.
func (a *App) expire(ctx context.Context, path string) {
	if err := a.session.Invalidate(ctx); err != nil {
		a.log.Warn(ctx, "invalidate session", "error", err)
	}
	printlnFn("Your session has expired. Please log in again.")
	_ = a.Open(ctx, router.JoinLocation(path))
}
