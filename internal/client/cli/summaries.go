package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/card"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/router"
)

func (a *App) listSummaries(ctx context.Context) error {
	if err := a.fetchCards(ctx); err != nil {
		return err
	}
	if a.offline {
		printlnFn("Offline: showing saved summaries.")
	}
	if len(a.cards) == 0 {
		printlnFn("No summaries yet. Check back later.")
		return nil
	}
	for i, c := range a.cards {
		printlnFn(renderCard(i+1, c.View(ctx)))
	}
	return nil
}

func (a *App) fetchCards(ctx context.Context) error {
	page, err := a.summaries.List(ctx)
	if err != nil {
		return err
	}
	a.setCards(page.Items)
	a.offline = page.Offline
	return nil
}

func (a *App) setCards(items []models.Summary) {
	a.closeCards()
	a.cards = make([]*card.Card, 0, len(items))
	for _, s := range items {
		a.cards = append(a.cards, card.New(s, a.variant, card.Deps{
			Reader:    a.summaries,
			Clipboard: a.clipboard,
			Toasts:    a.toasts,
			Log:       a.log,
		}))
	}
}

func (a *App) showSummary(ctx context.Context, id string) error {
	i, c := a.cardByID(id)
	if c == nil {
		if err := a.fetchCards(ctx); err != nil {
			return err
		}
		i, c = a.cardByID(id)
	}
	if c == nil {
		printlnFn("Summary not found:", id)
		return nil
	}
	printlnFn(renderDetail(i+1, c.View(ctx)))
	return nil
}

func (a *App) cardByID(id string) (int, *card.Card) {
	for i, c := range a.cards {
		if c.ID() == id {
			return i, c
		}
	}
	return -1, nil
}

// cardAt returns card n (1-based) of the last list, printing why not when
// it cannot.
func (a *App) cardAt(ctx context.Context, n string) (int, *card.Card, bool) {
	if !a.guard(ctx, router.DefaultPath) {
		return 0, nil, false
	}
	if len(a.cards) == 0 {
		printlnFn("No summaries loaded. Type 'summaries' first.")
		return 0, nil, false
	}
	i, err := strconv.Atoi(n)
	if err != nil || i < 1 || i > len(a.cards) {
		printlnFn(fmt.Sprintf("No card %q, pick 1-%d.", n, len(a.cards)))
		return 0, nil, false
	}
	return i, a.cards[i-1], true
}

// Show opens the detail view of card n.
func (a *App) Show(ctx context.Context, n string) error {
	_, c, ok := a.cardAt(ctx, n)
	if !ok {
		return nil
	}
	return a.Open(ctx, "/summaries/"+url.PathEscape(c.ID()))
}

// Flip turns card n over. The terminal has drawn the new side once the
// card is printed, so the animation ends right there.
func (a *App) Flip(ctx context.Context, n string) error {
	i, c, ok := a.cardAt(ctx, n)
	if !ok {
		return nil
	}
	flipped, err := c.ToggleFlip()
	switch {
	case errors.Is(err, card.ErrUnsupported):
		printlnFn("This card does not flip. Try 'expand' or start with -v flip.")
		return nil
	case !flipped:
		printlnFn("Card is still turning, try again in a moment.")
		return nil
	}
	printlnFn(renderCard(i, c.View(ctx)))
	c.FlipDone()
	return nil
}

// Expand opens or collapses the full text of card n.
func (a *App) Expand(ctx context.Context, n string) error {
	i, c, ok := a.cardAt(ctx, n)
	if !ok {
		return nil
	}
	expanded, err := c.ToggleExpand()
	switch {
	case errors.Is(err, card.ErrUnsupported):
		printlnFn("This card has no expanded view. Try 'show' instead.")
		return nil
	case !expanded:
		printlnFn("Card is still opening, try again in a moment.")
		return nil
	}
	printlnFn(renderCard(i, c.View(ctx)))
	c.ExpandDone()
	return nil
}

// Read marks card n as read. Points and streak updates arrive as toasts.
func (a *App) Read(ctx context.Context, n string) error {
	_, c, ok := a.cardAt(ctx, n)
	if !ok {
		return nil
	}

	_, err := c.MarkRead(ctx)
	switch {
	case err == nil:
		printlnFn(fmt.Sprintf("Marked %q as read.", c.View(ctx).Summary.Title))
	case errors.Is(err, card.ErrAlreadyRead):
		printlnFn("Already marked as read.")
	case errors.Is(err, card.ErrInFlight):
		printlnFn("Still marking as read...")
	case errors.Is(err, api.ErrUnauthorized):
		a.expire(ctx, router.DefaultPath)
	default:
		a.log.Warn(ctx, "mark read failed", "summary_id", c.ID(), "error", err)
		printlnFn("Error:", api.Message(err, "Could not mark as read, try again."))
	}
	return err
}

// Share copies card n to the clipboard; the outcome is shown as a toast.
func (a *App) Share(ctx context.Context, n string) error {
	_, c, ok := a.cardAt(ctx, n)
	if !ok {
		return nil
	}
	if !c.View(ctx).Variant.Share {
		printlnFn("Sharing is not available for this card.")
		return nil
	}
	c.Share(ctx)
	return nil
}
