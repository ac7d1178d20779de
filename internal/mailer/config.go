// Package mailer sends the two signup emails: a notification to the
// operator and a confirmation to the new user. Messages are plain text,
// rendered from templates and delivered over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
)

const DefaultPort = 587

var (
	ErrMissingConfig = errors.New("missing mail configuration")
	ErrInvalidEmail  = errors.New("invalid email address")
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender, either "addr@host" or "Name <addr@host>".
	From string
	// Operator receives the signup notifications.
	Operator string
}

// FromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD,
// SMTP_FROM and OPERATOR_EMAIL. SMTP_FROM falls back to SMTP_USERNAME.
func FromEnv(getenv func(string) string) Config {
	port, err := strconv.Atoi(getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = DefaultPort
	}
	user := getenv("SMTP_USERNAME")
	return Config{
		Host:     getenv("SMTP_HOST"),
		Port:     port,
		Username: user,
		Password: getenv("SMTP_PASSWORD"),
		From:     fallback(getenv("SMTP_FROM"), user),
		Operator: getenv("OPERATOR_EMAIL"),
	}
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Validate reports every missing setting at once.
func (c Config) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.From == "" {
		missing = append(missing, "SMTP_FROM")
	}
	if c.Operator == "" {
		missing = append(missing, "OPERATOR_EMAIL")
	}
	if c.Username != "" && c.Password == "" {
		missing = append(missing, "SMTP_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	if _, err := mail.ParseAddress(c.From); err != nil {
		return fmt.Errorf("SMTP_FROM: %w", err)
	}
	if _, err := ParseRecipient(c.Operator); err != nil {
		return fmt.Errorf("OPERATOR_EMAIL: %w", err)
	}
	return nil
}

// Addr is the SMTP server address.
func (c Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// ParseRecipient accepts a bare address only; display names and anything
// that could smuggle extra headers are rejected.
func ParseRecipient(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return addr.Address, nil
}
