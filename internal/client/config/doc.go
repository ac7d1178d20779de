// Package config loads runtime configuration for the newsdigest client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   data directory (database and log file)
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//	-v string   card variant: classic, compact, flip, modal
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "data_dir": "/home/me/.config/newsdigest",
//	  "request_timeout": "10s",
//	  "toast_delay": "3s",
//	  "log_level": "info",
//	  "card_variant": "flip"
//	}
package config
