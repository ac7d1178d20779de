package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/flagx"
)

// parseFlags overlays cfg with the flags it owns, ignoring all others.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l", "-v"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.CardVariant, "v", cfg.CardVariant, "card variant")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// -t overrides only when given.
	var timeoutSet bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			timeoutSet = true
		}
	})
	if !timeoutSet {
		return nil
	}
	if *timeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", *timeout)
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
