package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Zone.TickInterval.Duration != 250*time.Millisecond {
		t.Errorf("TickInterval = %v, want 250ms", cfg.Zone.TickInterval.Duration)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Quiz.TotalQuestions != 10 {
		t.Errorf("TotalQuestions = %d, want 10", cfg.Quiz.TotalQuestions)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[storage]
backend = "memory"

[quiz]
total_questions = 5
learning_goal = "challenge_mode"

[zone]
tick_interval = "1s"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Quiz.TotalQuestions != 5 {
		t.Errorf("TotalQuestions = %d, want 5", cfg.Quiz.TotalQuestions)
	}
	if cfg.Quiz.TimeAllowedSec != 30 {
		t.Errorf("TimeAllowedSec = %d, want default 30", cfg.Quiz.TimeAllowedSec)
	}
	if cfg.Zone.TickInterval.Duration != time.Second {
		t.Errorf("TickInterval = %v, want 1s", cfg.Zone.TickInterval.Duration)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[quiz\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.Quiz.TotalQuestions = 7
	cfg.Zone.TickInterval = Duration{500 * time.Millisecond}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("QUIZIONIX_STORAGE", "redis")
	t.Setenv("QUIZIONIX_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("QUIZIONIX_QUESTIONS", "3")
	t.Setenv("QUIZIONIX_GOAL", "weak_areas")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Storage.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Quiz.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", cfg.Quiz.TotalQuestions)
	}
	if cfg.Quiz.LearningGoal != "weak_areas" {
		t.Errorf("LearningGoal = %q, want weak_areas", cfg.Quiz.LearningGoal)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "mongo" }},
		{"redis without url", func(c *Config) { c.Storage.Backend = "redis" }},
		{"postgres without url", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"zero questions", func(c *Config) { c.Quiz.TotalQuestions = 0 }},
		{"short timer", func(c *Config) { c.Quiz.TimeAllowedSec = 2 }},
		{"bad goal", func(c *Config) { c.Quiz.LearningGoal = "speedrun" }},
		{"zero tick", func(c *Config) { c.Zone.TickInterval = Duration{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("QUIZIONIX_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "quizionix", "config.toml"); p != want {
		t.Errorf("DefaultPath() = %q, want %q", p, want)
	}

	t.Setenv("QUIZIONIX_CONFIG", "/etc/quizionix.toml")
	p, _ = DefaultPath()
	if p != "/etc/quizionix.toml" {
		t.Errorf("DefaultPath() = %q, want override", p)
	}
}
