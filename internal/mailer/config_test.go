package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func validConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "bot@example.com",
		Password: "pw",
		From:     "newsdigest <bot@example.com>",
		Operator: "ops@example.com",
	}
}

func TestFromEnv(t *testing.T) {
	cfg := FromEnv(envFrom(map[string]string{
		"SMTP_HOST":      "smtp.example.com",
		"SMTP_PORT":      "2525",
		"SMTP_USERNAME":  "bot@example.com",
		"SMTP_PASSWORD":  "pw",
		"OPERATOR_EMAIL": "ops@example.com",
	}))

	assert.Equal(t, Config{
		Host:     "smtp.example.com",
		Port:     2525,
		Username: "bot@example.com",
		Password: "pw",
		From:     "bot@example.com",
		Operator: "ops@example.com",
	}, cfg)
	assert.Equal(t, "smtp.example.com:2525", cfg.Addr())
}

func TestFromEnv_BadPortUsesDefault(t *testing.T) {
	cfg := FromEnv(envFrom(map[string]string{"SMTP_PORT": "smtp"}))
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	err := Config{Port: 587}.Validate()
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "SMTP_HOST, SMTP_FROM, OPERATOR_EMAIL")

	noPassword := validConfig()
	noPassword.Password = ""
	require.ErrorIs(t, noPassword.Validate(), ErrMissingConfig)

	badOperator := validConfig()
	badOperator.Operator = "not-an-address"
	require.ErrorIs(t, badOperator.Validate(), ErrInvalidEmail)

	badFrom := validConfig()
	badFrom.From = "<<>>"
	require.Error(t, badFrom.Validate())
}

func TestParseRecipient(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"a@b.com", "a@b.com", true},
		{"  a@b.com\n", "a@b.com", true},
		{"", "", false},
		{"a.b.com", "", false},
		{"Alice <a@b.com>", "", false},
		{"a@b.com\r\nBcc: x@y.com", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRecipient(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
