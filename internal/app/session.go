package app

import (
	"context"
	"errors"
	"os"
	"strings"

	"go.trai.ch/tasklist/internal/adapters/telemetry"
	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/core/ports"
	"go.trai.ch/tasklist/internal/engine/taskstore"
	"go.trai.ch/zerr"
)

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// session is one opened repository with the task store mirroring it.
type session struct {
	store    *taskstore.Store
	repo     ports.TaskRepository
	shutdown func(context.Context) error
}

func (a *App) open(ctx context.Context, opts Options) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if l, ok := a.logger.(jsonSwitcher); ok {
		l.SetJSON(cfg.Log.JSON)
	}

	shutdown := func(context.Context) error { return nil }
	if cfg.Log.Trace {
		shutdown = telemetry.Install(a.logger)
	}

	repo, err := a.repos.Open(ctx, cfg.Storage)
	if err != nil {
		_ = shutdown(ctx)
		return nil, errors.Join(domain.ErrStoreOpenFailed, err)
	}

	storeOpts := append([]taskstore.Option{
		taskstore.WithTimestampLayout(cfg.Display.TimestampLayout),
		taskstore.WithWriteRetries(cfg.Storage.WriteRetries, cfg.Storage.RetryBackoff),
	}, a.storeOptions...)

	store := taskstore.New(repo, a.logger, a.tracer, storeOpts...)
	if err := store.Initialize(ctx); err != nil {
		a.logger.Warn(strings.ReplaceAll(err.Error(), "\n", ": ") + ", starting with an empty list")
	}

	return &session{store: store, repo: repo, shutdown: shutdown}, nil
}

// close waits for pending writes, then releases the repository. Cancelling ctx
// only skips the remaining write retries. A write that still failed is
// returned wrapped in ErrPersistenceWrite, since no later write can repair it.
func (s *session) close(ctx context.Context) error {
	err := s.store.Close(ctx)
	err = errors.Join(err, s.repo.Close())
	return errors.Join(err, s.shutdown(context.WithoutCancel(ctx)))
}
