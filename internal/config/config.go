// Package config loads runtime settings from built-in defaults, an optional
// YAML file and LEMBRETE_ environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "LEMBRETE_"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Suggest   SuggestConfig   `koanf:"suggest"`
	Notify    NotifyConfig    `koanf:"notify"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File receives terminal UI logs; the other commands log to stderr.
	File string `koanf:"file"`
}

type SchedulerConfig struct {
	Buffer int `koanf:"buffer"`
	// Hour of the due day at which a pending reminder fires.
	Hour int `koanf:"hour"`
}

type SuggestConfig struct {
	// History caps how many past reminder texts feed frequency analysis.
	History int `koanf:"history"`
}

type NotifyConfig struct {
	// Desktop also sends due reminders to the OS notification center.
	Desktop bool `koanf:"desktop"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.addr":      ":8080",
		"database.path":    "lembretes.db",
		"log.level":        "info",
		"log.format":       "text",
		"log.file":         "lembrete.log",
		"scheduler.buffer": 64,
		"scheduler.hour":   9,
		"suggest.history":  200,
		"notify.desktop":   false,
	}
}

func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults do not load: %v", err))
	}
	return *cfg
}

// Load reads configPath when it exists; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps LEMBRETE_SERVER_ADDR to server.addr.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log.format must be text, json or logfmt, got %q", c.Log.Format)
	}
	if c.Scheduler.Buffer <= 0 {
		return fmt.Errorf("scheduler.buffer must be positive")
	}
	if c.Scheduler.Hour < 0 || c.Scheduler.Hour > 23 {
		return fmt.Errorf("scheduler.hour must be between 0 and 23")
	}
	if c.Suggest.History < 0 {
		return fmt.Errorf("suggest.history must not be negative")
	}
	return nil
}
