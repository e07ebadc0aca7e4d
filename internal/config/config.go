// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App        AppConfig        `koanf:"app"`
	Database   DatabaseConfig   `koanf:"database"`
	LoginLimit LoginLimitConfig `koanf:"login_limit"`
	Log        LogConfig        `koanf:"log"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type DatabaseConfig struct {
	Path        string        `koanf:"path"`
	BusyTimeout time.Duration `koanf:"busy_timeout"`
	ForeignKeys bool          `koanf:"foreign_keys"`
}

type LoginLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Attempts int           `koanf:"attempts"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		k := koanf.New(".")

		if err := loadDefaults(k); err != nil {
			loadErr = fmt.Errorf("load defaults: %w", err)
			return
		}

		if configPath != "" {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				loadErr = fmt.Errorf("load config file: %w", err)
				return
			}
		}

		if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
			loadErr = fmt.Errorf("load env vars: %w", err)
			return
		}

		cfg = &Config{}
		if err := k.Unmarshal("", cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if err := validate(cfg); err != nil {
			loadErr = fmt.Errorf("validate config: %w", err)
			return
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Cantina Core",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"database.path":         "data/cantina.db",
		"database.busy_timeout": "5s",
		"database.foreign_keys": true,

		"login_limit.enabled":  true,
		"login_limit.attempts": 5,
		"login_limit.window":   "1m",
		"login_limit.burst":    5,

		"log.level":  "info",
		"log.format": "text",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_PATH":         "database.path",
	"DATABASE_BUSY_TIMEOUT": "database.busy_timeout",
	"DATABASE_FOREIGN_KEYS": "database.foreign_keys",
	"ENVIRONMENT":           "app.environment",
	"LOG_LEVEL":             "log.level",
	"LOG_FORMAT":            "log.format",
	"LOGIN_LIMIT_ENABLED":   "login_limit.enabled",
	"LOGIN_LIMIT_ATTEMPTS":  "login_limit.attempts",
	"LOGIN_LIMIT_WINDOW":    "login_limit.window",
	"LOGIN_LIMIT_BURST":     "login_limit.burst",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	if c.LoginLimit.Enabled {
		if c.LoginLimit.Attempts < 1 {
			return fmt.Errorf("LOGIN_LIMIT_ATTEMPTS must be at least 1")
		}
		if c.LoginLimit.Window <= 0 {
			return fmt.Errorf("LOGIN_LIMIT_WINDOW must be positive")
		}
	}

	return nil
}
