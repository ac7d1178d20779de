package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/newsdigest/internal/flagx"
	"github.com/dmitrijs2005/newsdigest/internal/timex"
)

// jsonConfig is the on-disk form. Absent fields keep earlier values.
type jsonConfig struct {
	ServerURL      string          `json:"server_url"`
	DataDir        string          `json:"data_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ToastDelay     *timex.Duration `json:"toast_delay"`
	LogLevel       string          `json:"log_level"`
	CardVariant    string          `json:"card_variant"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout != nil {
		if jc.RequestTimeout.Duration <= 0 {
			return fmt.Errorf("config %s: request_timeout must be positive, got %s", path, jc.RequestTimeout.Duration)
		}
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ToastDelay != nil {
		cfg.ToastDelay = jc.ToastDelay.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.CardVariant != "" {
		cfg.CardVariant = jc.CardVariant
	}
	return nil
}
