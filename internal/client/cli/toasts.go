package cli

import (
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/card"
)

// toastPrinter prints each toast once, when it first appears. Dismissals
// need no output in a scrolling terminal.
type toastPrinter struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newToastPrinter() *toastPrinter {
	return &toastPrinter{seen: make(map[string]struct{})}
}

func (p *toastPrinter) print(active []card.Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()

	live := make(map[string]struct{}, len(active))
	for _, t := range active {
		live[t.ID] = struct{}{}
		if _, ok := p.seen[t.ID]; ok {
			continue
		}
		printlnFn(toastPrefix(t.Kind), t.Text)
	}
	p.seen = live
}

func toastPrefix(kind card.ToastKind) string {
	switch kind {
	case card.ToastSuccess:
		return "[+]"
	case card.ToastError:
		return "[!]"
	}
	return "[i]"
}
