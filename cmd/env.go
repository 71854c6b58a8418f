package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cre-datagen/internal/db"
	"github.com/sells-group/cre-datagen/internal/ledger"
)

// openLedger opens and migrates the run ledger, or returns a NopLedger when
// the ledger is disabled.
func openLedger(ctx context.Context) (ledger.Ledger, error) {
	if !cfg.Ledger.Enabled {
		return ledger.NopLedger{}, nil
	}

	l, err := ledger.NewSQLite(cfg.Ledger.Path)
	if err != nil {
		return nil, err
	}
	if err := l.Migrate(ctx); err != nil {
		_ = l.Close()
		return nil, eris.Wrap(err, "migrate ledger")
	}
	return l, nil
}

// openPool connects to Postgres when loading is enabled. The returned pool is
// nil otherwise.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if !cfg.Postgres.Load {
		return nil, nil
	}

	pool, err := db.Connect(ctx, cfg.Postgres.DatabaseURL)
	if err != nil {
		return nil, err
	}
	zap.L().Info("connected to postgres", zap.String("schema", cfg.Postgres.Schema))
	return pool, nil
}
