// Package card holds the interaction state of one summary card: flip and
// expand transitions guarded by a Lock, the once-only "mark as read"
// action with its toasts, and best-effort sharing. A single Card type
// covers every look; the differences live in Variant.
package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

var (
	ErrAlreadyRead = errors.New("summary already marked as read")
	ErrInFlight    = errors.New("mark as read already in progress")
	ErrUnsupported = errors.New("not supported by this card")
)

// Reader performs the mark-as-read backend call.
type Reader interface {
	MarkRead(ctx context.Context, summaryID string) (*models.ReadResult, error)
}

// Clipboard receives shared text.
type Clipboard interface {
	Copy(text string) error
}

type Deps struct {
	Reader    Reader
	Clipboard Clipboard
	Toasts    *Toaster
	Clock     Clock
	Log       logging.Logger
}

type readState int

const (
	unread readState = iota
	marking
	read
)

// View is a snapshot of a card for rendering.
type View struct {
	Summary   models.Summary
	Variant   Variant
	Flipped   bool
	Expanded  bool
	Marking   bool
	Read      bool
	Published string
	Body      string
}

type Card struct {
	summary models.Summary
	variant Variant
	deps    Deps

	flipLock   *Lock
	expandLock *Lock

	mu       sync.Mutex
	flipped  bool
	expanded bool
	read     readState
}

func New(s models.Summary, v Variant, deps Deps) *Card {
	if deps.Clock == nil {
		deps.Clock = SystemClock
	}
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	c := &Card{
		summary:    s,
		variant:    v,
		deps:       deps,
		flipLock:   NewLock(deps.Clock, v.FlipDuration, v.Cooldown),
		expandLock: NewLock(deps.Clock, v.ExpandDuration, v.Cooldown),
	}
	if s.IsRead {
		c.read = read
	}
	return c
}

func (c *Card) ID() string { return c.summary.ID.String() }

// ToggleFlip flips the card unless a flip is still running. It reports
// whether the card flipped.
func (c *Card) ToggleFlip() (bool, error) {
	if !c.variant.Flip {
		return false, ErrUnsupported
	}
	if !c.flipLock.Begin() {
		return false, nil
	}
	c.mu.Lock()
	c.flipped = !c.flipped
	c.mu.Unlock()
	return true, nil
}

// FlipDone is the renderer's animation-end event for a flip.
func (c *Card) FlipDone() { c.flipLock.End() }

// ToggleExpand opens or closes the full view unless a transition is running.
func (c *Card) ToggleExpand() (bool, error) {
	if !c.variant.Expand {
		return false, ErrUnsupported
	}
	if !c.expandLock.Begin() {
		return false, nil
	}
	c.mu.Lock()
	c.expanded = !c.expanded
	c.mu.Unlock()
	return true, nil
}

// ExpandDone is the renderer's animation-end event for expand/collapse.
func (c *Card) ExpandDone() { c.expandLock.End() }

// CanMarkRead reports whether the mark-as-read control is enabled.
func (c *Card) CanMarkRead() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read == unread
}

// MarkRead calls the backend once. After a success the control stays
// disabled and further calls return ErrAlreadyRead without a request; a
// failure re-enables it.
func (c *Card) MarkRead(ctx context.Context) (*models.ReadResult, error) {
	c.mu.Lock()
	switch c.read {
	case read:
		c.mu.Unlock()
		return nil, ErrAlreadyRead
	case marking:
		c.mu.Unlock()
		return nil, ErrInFlight
	}
	c.read = marking
	c.mu.Unlock()

	res, err := c.deps.Reader.MarkRead(ctx, c.ID())

	c.mu.Lock()
	if err != nil {
		c.read = unread
		c.mu.Unlock()
		return nil, fmt.Errorf("mark %s read: %w", c.summary.ID, err)
	}
	c.read = read
	c.summary.IsRead = true
	c.mu.Unlock()

	c.toastResult(res)
	return res, nil
}

func (c *Card) toastResult(res *models.ReadResult) {
	if c.deps.Toasts == nil || res == nil {
		return
	}
	if c.variant.ToastPoints && res.PointsEarned > 0 {
		c.deps.Toasts.Show(ToastSuccess, fmt.Sprintf("+%d points! Total: %d", res.PointsEarned, res.TotalPoints))
	}
	if c.variant.ToastStreak && res.StreakUpdated {
		c.deps.Toasts.Show(ToastInfo, fmt.Sprintf("Reading streak: %d %s", res.ReadingStreak, plural(res.ReadingStreak, "day")))
	}
}

// ShareText is the text placed on the clipboard by Share.
func (c *Card) ShareText() string {
	var b strings.Builder
	b.WriteString(c.summary.Title)
	b.WriteString("\n\n")
	b.WriteString(c.summary.Text)
	if len(c.summary.Sources) > 0 {
		b.WriteString("\n\nSources:")
		for _, src := range c.summary.Sources {
			b.WriteString("\n")
			b.WriteString(src)
		}
	}
	return b.String()
}

// Share copies the card to the clipboard. Failures are shown as a toast and
// logged, never returned: sharing is best effort.
func (c *Card) Share(ctx context.Context) bool {
	if !c.variant.Share || c.deps.Clipboard == nil {
		return false
	}
	if err := c.deps.Clipboard.Copy(c.ShareText()); err != nil {
		c.deps.Log.Warn(ctx, "clipboard copy failed", "summary_id", c.summary.ID, "error", err)
		if c.deps.Toasts != nil {
			c.deps.Toasts.Show(ToastError, "Could not copy to clipboard")
		}
		return false
	}
	if c.deps.Toasts != nil {
		c.deps.Toasts.Show(ToastSuccess, "Copied to clipboard")
	}
	return true
}

// Published formats the timestamp, falling back to the raw value.
func (c *Card) Published(ctx context.Context) string {
	t, err := c.summary.ParseTimestamp()
	if err != nil {
		if c.summary.Timestamp != "" {
			c.deps.Log.Debug(ctx, "unparsable summary timestamp", "summary_id", c.summary.ID, "timestamp", c.summary.Timestamp)
		}
		return c.summary.Timestamp
	}
	return t.Format("Jan 2, 2006 15:04")
}

// View snapshots the card for rendering.
func (c *Card) View(ctx context.Context) View {
	c.mu.Lock()
	v := View{
		Summary:  c.summary,
		Variant:  c.variant,
		Flipped:  c.flipped,
		Expanded: c.expanded,
		Marking:  c.read == marking,
		Read:     c.read == read,
	}
	c.mu.Unlock()

	v.Published = c.Published(ctx)
	v.Body = c.summary.Text
	if !v.Expanded && c.variant.PreviewChars > 0 {
		v.Body = truncate(v.Body, c.variant.PreviewChars)
	}
	return v
}

// Close cancels the card's transition timers.
func (c *Card) Close() {
	c.flipLock.Close()
	c.expandLock.Close()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
