package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/config"
	"github.com/abhisek/quizionix/internal/logging"
	"github.com/abhisek/quizionix/internal/practice"
	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/store"
	"github.com/abhisek/quizionix/internal/usermodel"
	"github.com/abhisek/quizionix/internal/zone"
)

// env is everything a command needs: configuration, the open store and
// the engines of the selected learner.
type env struct {
	ctx      context.Context
	cfg      config.Config
	log      *logging.Logger
	kv       *store.Fallback
	cat      *catalog.Catalog
	users    *usermodel.Model
	zone     *zone.Engine
	practice *practice.Game
	quiz     *quiz.Engine

	// memoryOnly is set when the configured store could not be opened.
	memoryOnly bool
}

// bootstrap resolves configuration, opens the store and loads the
// learner's state. With tui set, logs go to a file so they never draw
// over the terminal UI.
func bootstrap(cmd *cobra.Command, tui bool) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := openLogger(cfg, tui)
	if err != nil {
		return nil, err
	}

	e := &env{ctx: ctx, cfg: cfg, log: log}
	e.kv, err = store.Open(ctx, cfg.StoreOptions(), log)
	if err != nil {
		log.Warn("storage unavailable, progress will not be saved", "error", err, "backend", cfg.Storage.Backend)
		e.kv = store.NewFallback(store.NewMemory(), log)
		e.memoryOnly = true
		if !tui {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s storage unavailable (%v); running memory-only\n", cfg.Storage.Backend, err)
		}
	}
	e.cat = loadCatalog(cfg, log)

	userID := usermodel.ResolveUserID(resolveUser(cmd))
	e.users, err = usermodel.Open(ctx, e.kv, userID, log)
	if err != nil {
		log.Warn("user model load failed, starting fresh", "error", err, "user_id", userID)
	}

	zs, err := zone.LoadState(ctx, e.kv, userID, e.cat.Zones())
	if err != nil {
		log.Warn("zone state load failed, starting fresh", "error", err, "user_id", userID)
		zs = nil
	}
	e.zone = zone.NewEngine(e.cat, zs)

	ps, err := practice.LoadState(ctx, e.kv, userID)
	if err != nil {
		log.Warn("practice state load failed, starting fresh", "error", err, "user_id", userID)
		ps = practice.NewState()
	}
	e.practice = practice.NewGame(e.cat.ZoneWideTemplates(), ps)

	e.quiz = quiz.NewEngine(e.cat, e.users, log)
	return e, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.log.Warn("close store failed", "error", err)
	}
	e.log.Sync()
}

func (e *env) services() *screen.Services {
	return &screen.Services{
		Catalog:  e.cat,
		Users:    e.users,
		Quiz:     e.quiz,
		Zone:     e.zone,
		Practice: e.practice,
		KV:       e.kv,
		Log:      e.log,
		QuizDefaults: quiz.Options{
			Goal:           adapt.Goal(e.cfg.Quiz.LearningGoal),
			TotalQuestions: e.cfg.Quiz.TotalQuestions,
		},
		TimeAllowed:  time.Duration(e.cfg.Quiz.TimeAllowedSec) * time.Second,
		TickInterval: e.cfg.Zone.TickInterval.Duration,
	}
}

// loadConfig reads the config file from --config, QUIZIONIX_CONFIG or
// the XDG default, applies the environment and the --db flag, then
// validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Storage.Path = p
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openLogger(cfg config.Config, tui bool) (*logging.Logger, error) {
	opts := cfg.LogOptions()
	if tui && opts.File == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		opts.File = filepath.Join(dir, "quizionix.log")
	}
	log, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}

// loadCatalog reads the configured catalog file, falling back to the
// built-in catalog when none is set or the file is unusable.
func loadCatalog(cfg config.Config, log *logging.Logger) *catalog.Catalog {
	if cfg.Catalog.Path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(cfg.Catalog.Path, log)
	if err != nil {
		log.Warn("catalog load failed, using built-in catalog", "error", err, "path", cfg.Catalog.Path)
		return catalog.Default()
	}
	return cat
}

func resolveUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	return os.Getenv("QUIZIONIX_USER")
}
