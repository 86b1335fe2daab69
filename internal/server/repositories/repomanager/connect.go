package repomanager

import (
	"context"
	"errors"
	"time"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
)

var ErrNoDatabaseURI = errors.New("no database uri configured")

// migrationTimeoutFactor scales ConnectTimeout into the bound for running
// migrations on a freshly opened store.
const migrationTimeoutFactor = 3

type target struct {
	name string
	uri  string
}

// Connect tries the primary URI, then the fallback URI, each bounded by
// ConnectTimeout (migrations get migrationTimeoutFactor times that), and
// sleeps RetryDelay between rounds. It keeps going until
// one of them opens and migrates, or ctx is done. Empty URIs are skipped.
func Connect(ctx context.Context, open Opener, opts ConnectOptions, logger logging.Logger) (RepositoryManager, error) {
	var targets []target
	for _, t := range []target{{"primary", opts.PrimaryURI}, {"fallback", opts.FallbackURI}} {
		if t.uri != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return nil, ErrNoDatabaseURI
	}

	for attempt := 1; ; attempt++ {
		for _, t := range targets {
			m, err := tryOpen(ctx, open, t.uri, opts.ConnectTimeout)
			if err == nil {
				logger.Info(ctx, "connected to database", "target", t.name, "attempt", attempt)
				return m, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn(ctx, "database connection failed", "target", t.name, "attempt", attempt, "error", err)
		}

		logger.Info(ctx, "retrying database connection", "delay", opts.RetryDelay.String())

		timer := time.NewTimer(opts.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func tryOpen(ctx context.Context, open Opener, uri string, timeout time.Duration) (RepositoryManager, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	m, err := open(attemptCtx, uri)
	if err != nil {
		return nil, err
	}

	migrateCtx, cancelMigrate := context.WithTimeout(ctx, migrationTimeoutFactor*timeout)
	defer cancelMigrate()

	if err := m.RunMigrations(migrateCtx); err != nil {
		_ = m.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	return m, nil
}
