// Package config loads quizionix settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/logging"
	"github.com/abhisek/quizionix/internal/store"
)

// Config is the top-level configuration document.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Quiz    QuizConfig    `toml:"quiz"`
	Zone    ZoneConfig    `toml:"zone"`
	Catalog CatalogConfig `toml:"catalog"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Backend     string `toml:"backend"`
	Path        string `toml:"path"`
	RedisURL    string `toml:"redis_url"`
	PostgresURL string `toml:"postgres_url"`
	KeyPrefix   string `toml:"key_prefix"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Mode  string `toml:"mode"`
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// QuizConfig holds defaults for linear quizzes.
type QuizConfig struct {
	TotalQuestions int    `toml:"total_questions"`
	TimeAllowedSec int    `toml:"time_allowed_sec"`
	LearningGoal   string `toml:"learning_goal"`
}

// ZoneConfig holds zone challenge settings.
type ZoneConfig struct {
	TickInterval Duration `toml:"tick_interval"`
}

// CatalogConfig points at an optional external catalog file.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// Duration is a time.Duration that reads and writes as a TOML string
// such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:   "sqlite",
			KeyPrefix: "quizionix:",
		},
		Logging: LoggingConfig{
			Mode:  "production",
			Level: "info",
		},
		Quiz: QuizConfig{
			TotalQuestions: 10,
			TimeAllowedSec: 30,
			LearningGoal:   string(adapt.PracticeBasics),
		},
		Zone: ZoneConfig{
			TickInterval: Duration{250 * time.Millisecond},
		},
	}
}

// Load reads the config file at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from QUIZIONIX_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("QUIZIONIX_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("QUIZIONIX_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("QUIZIONIX_REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("QUIZIONIX_POSTGRES_URL"); v != "" {
		c.Storage.PostgresURL = v
	}
	if v := os.Getenv("QUIZIONIX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("QUIZIONIX_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("QUIZIONIX_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Quiz.TotalQuestions = n
		}
	}
	if v := os.Getenv("QUIZIONIX_GOAL"); v != "" {
		c.Quiz.LearningGoal = v
	}
	if v := os.Getenv("QUIZIONIX_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case "", "sqlite", "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redis_url is required for the redis backend")
		}
	case "postgres":
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("storage.postgres_url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	if c.Quiz.TotalQuestions < 1 {
		return fmt.Errorf("quiz.total_questions must be at least 1, got %d", c.Quiz.TotalQuestions)
	}
	if c.Quiz.TimeAllowedSec < 5 {
		return fmt.Errorf("quiz.time_allowed_sec must be at least 5, got %d", c.Quiz.TimeAllowedSec)
	}
	if !adapt.Goal(c.Quiz.LearningGoal).Valid() {
		return fmt.Errorf("unknown learning goal: %q", c.Quiz.LearningGoal)
	}
	if c.Zone.TickInterval.Duration <= 0 {
		return fmt.Errorf("zone.tick_interval must be positive")
	}
	return nil
}

// StoreOptions maps the storage section to store.Options.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     c.Storage.Backend,
		Path:        c.Storage.Path,
		RedisURL:    c.Storage.RedisURL,
		PostgresURL: c.Storage.PostgresURL,
		KeyPrefix:   c.Storage.KeyPrefix,
	}
}

// LogOptions maps the logging section to logging.Options.
func (c Config) LogOptions() logging.Options {
	return logging.Options{
		Mode:  c.Logging.Mode,
		Level: c.Logging.Level,
		File:  c.Logging.File,
	}
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// DefaultPath resolves the config file location.
func DefaultPath() (string, error) {
	if p := os.Getenv("QUIZIONIX_CONFIG"); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quizionix", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "quizionix", "config.toml"), nil
}
