package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	ServerURL      string
	DataDir        string
	RequestTimeout time.Duration
	ToastDelay     time.Duration
	LogLevel       string
	CardVariant    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DataDir = defaultDataDir()
	c.RequestTimeout = 10 * time.Second
	c.ToastDelay = 3 * time.Second
	c.LogLevel = "info"
	c.CardVariant = "classic"
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "newsdigest")
	}
	return ".newsdigest"
}

// LoadConfig applies defaults, then the JSON file, then flags from args
// (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogFile is where the client writes its log.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "client.log")
}
