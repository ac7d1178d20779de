package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/google/uuid"
)

// Result is the one-line JSON report printed by the mail tool.
type Result struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Notifier struct {
	cfg    Config
	sender Sender
	log    logging.Logger
	now    func() time.Time
	newID  func() string
}

func NewNotifier(cfg Config, sender Sender, log logging.Logger) *Notifier {
	return &Notifier{cfg: cfg, sender: sender, log: log, now: time.Now, newID: uuid.NewString}
}

// Notify sends the operator notification and then the user confirmation.
// It stops at the first failure.
func (n *Notifier) Notify(ctx context.Context, email string) error {
	addr, err := ParseRecipient(email)
	if err != nil {
		return err
	}
	now := n.now()
	data := templateData{Email: addr, Time: now.UTC().Format(time.RFC1123)}

	sends := []struct {
		kind string
		to   string
		tmpl emailTemplate
	}{
		{"operator notification", n.cfg.Operator, operatorTemplate},
		{"confirmation", addr, confirmationTemplate},
	}
	for _, s := range sends {
		subject, body, err := s.tmpl.render(data)
		if err != nil {
			return fmt.Errorf("%s: %w", s.kind, err)
		}
		msg := Message{From: n.cfg.From, To: s.to, Subject: subject, Body: body}
		id := n.newID()
		if err := n.sender.Send(ctx, envelopeFrom(n.cfg.From), []string{s.to}, msg.Bytes(now, id)); err != nil {
			return fmt.Errorf("%s: %w", s.kind, err)
		}
		n.log.Info(ctx, "email sent", "kind", s.kind, "to", s.to, "message_id", id)
	}
	return nil
}
