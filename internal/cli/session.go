package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/mockdata/internal/client"
	"github.com/rpggio/mockdata/internal/config"
	"github.com/rpggio/mockdata/internal/repository"
	"github.com/rpggio/mockdata/internal/sqlite"
	"github.com/rpggio/mockdata/internal/store"
)

// session is the state one command works with: a backend client, the
// local parameter database and a store with the persisted selection restored.
type session struct {
	api    *client.Client
	db     *sqlite.DB
	params *sqlite.ParamRepository
	store  *store.Store
}

func openSession(ctx context.Context, cfg config.Config, notifier store.Notifier, logger *slog.Logger) (*session, error) {
	if err := ensureDir(cfg.State.Path); err != nil {
		return nil, fmt.Errorf("prepare state path: %w", err)
	}
	db, err := sqlite.New(cfg.State.Path)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate state: %w", err)
	}

	api := client.New(client.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	params := sqlite.NewParamRepository(db)
	st := store.New(store.Options{
		API:            api,
		Notifier:       notifier,
		Params:         params,
		PreviewBaseURL: cfg.Preview.BaseURL,
		Logger:         logger,
	})

	s := &session{api: api, db: db, params: params, store: st}
	s.restore(ctx, logger)
	return s, nil
}

// restore selects the project persisted by an earlier command, if any.
func (s *session) restore(ctx context.Context, logger *slog.Logger) {
	id, err := s.params.GetParam(ctx, store.ParamProjectID)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err != nil {
		logger.Warn("failed to read selected project", "error", err)
		return
	}

	env, err := s.api.GetProject(ctx, id)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		logger.Warn("selected project is unavailable", "project_id", id, "error", err)
		return
	}
	if env.Data != nil {
		s.store.SetProject(ctx, env.Data)
	}
}

func (s *session) Close() error {
	return s.db.Close()
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
