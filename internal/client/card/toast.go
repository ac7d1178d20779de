package card

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// DefaultToastDelay is how long a toast stays up.
const DefaultToastDelay = 3 * time.Second

type Toast struct {
	ID   string
	Kind ToastKind
	Text string
}

// Toaster holds transient notifications shared by all cards. Each toast is
// dismissed automatically after the delay.
type Toaster struct {
	clock    Clock
	delay    time.Duration
	onChange func([]Toast)

	mu     sync.Mutex
	toasts []Toast
	timers map[string]Timer
	closed bool
}

// NewToaster creates a Toaster. onChange, if not nil, receives the active
// toasts after every change; it runs without the Toaster's lock held.
func NewToaster(clock Clock, delay time.Duration, onChange func([]Toast)) *Toaster {
	if delay <= 0 {
		delay = DefaultToastDelay
	}
	return &Toaster{clock: clock, delay: delay, onChange: onChange, timers: make(map[string]Timer)}
}

// Show adds a toast and returns its id.
func (t *Toaster) Show(kind ToastKind, text string) string {
	id := uuid.NewString()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ""
	}
	t.toasts = append(t.toasts, Toast{ID: id, Kind: kind, Text: text})
	t.timers[id] = t.clock.AfterFunc(t.delay, func() { t.Dismiss(id) })
	snapshot := t.snapshot()
	t.mu.Unlock()

	t.notify(snapshot)
	return id
}

// Dismiss removes a toast early. Unknown ids are ignored.
func (t *Toaster) Dismiss(id string) {
	t.mu.Lock()
	timer, ok := t.timers[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	timer.Stop()
	delete(t.timers, id)
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			break
		}
	}
	snapshot := t.snapshot()
	t.mu.Unlock()

	t.notify(snapshot)
}

func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// Close stops all dismissal timers and drops the toasts.
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.toasts = nil
}

func (t *Toaster) snapshot() []Toast {
	return append([]Toast(nil), t.toasts...)
}

func (t *Toaster) notify(toasts []Toast) {
	if t.onChange != nil {
		t.onChange(toasts)
	}
}
