package store

import (
	"context"
	"fmt"

	"github.com/abhisek/quizionix/internal/logging"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string // sqlite, memory, redis, postgres
	Path        string // sqlite database file
	RedisURL    string
	PostgresURL string
	KeyPrefix   string // redis key namespace
}

// Open connects the configured backend and wraps it in a Fallback.
func Open(ctx context.Context, opts Options, log *logging.Logger) (*Fallback, error) {
	b, err := openBackend(ctx, opts)
	if err != nil {
		return nil, err
	}
	logging.OrNop(log).Debug("storage opened", "backend", b.Name())
	return NewFallback(b, log), nil
}

func openBackend(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case "", "sqlite":
		path := opts.Path
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		} else if err := ensureDir(path); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		return OpenSQLite(ctx, path)
	case "memory":
		return NewMemory(), nil
	case "redis":
		return OpenRedis(ctx, opts.RedisURL, opts.KeyPrefix)
	case "postgres":
		return OpenPostgres(ctx, opts.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
