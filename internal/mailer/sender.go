package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// SMTPSender sends through an SMTP server with STARTTLS when offered and
// PLAIN auth when a username is configured.
type SMTPSender struct {
	addr     string
	auth     smtp.Auth
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{addr: cfg.Addr(), auth: auth, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, from string, to []string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sendMail(s.addr, s.auth, from, to, msg); err != nil {
		return fmt.Errorf("smtp send to %v: %w", to, err)
	}
	return nil
}
