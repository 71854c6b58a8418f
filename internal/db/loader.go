package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cre-datagen/internal/export"
	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/resilience"
)

// Key columns prepended to every dataset table. Together they identify a row
// so reloading a run replaces its rows instead of duplicating them.
var keyColumns = []string{"run_id", "category", "row_num"}

// DatasetColumns returns the table columns for kind k: the key columns
// followed by the kind's dictionary fields.
func DatasetColumns(k model.Kind) []string {
	docs := model.Dictionary(k)
	cols := make([]string, 0, len(keyColumns)+len(docs))
	cols = append(cols, keyColumns...)
	for _, d := range docs {
		cols = append(cols, d.Name)
	}
	return cols
}

// EnsureTable creates schema and a text-typed table for kind k if missing.
func EnsureTable(ctx context.Context, pool Pool, schema string, k model.Kind) error {
	if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		return eris.Wrapf(err, "db: create schema %s", schema)
	}

	var defs []string
	for _, c := range DatasetColumns(k) {
		typ := "TEXT"
		switch c {
		case "row_num":
			typ = "INTEGER NOT NULL"
		case "run_id", "category":
			typ = "TEXT NOT NULL"
		}
		defs = append(defs, pgx.Identifier{c}.Sanitize()+" "+typ)
	}
	defs = append(defs, "PRIMARY KEY ("+quoteAndJoin(keyColumns)+")")

	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{schema, string(k)}.Sanitize(), strings.Join(defs, ", "))
	if _, err := pool.Exec(ctx, sql); err != nil {
		return eris.Wrapf(err, "db: create table %s.%s", schema, k)
	}
	return nil
}

// DatasetRows renders records as COPY rows in DatasetColumns order. Values
// are stored as text; absent and null fields become NULL.
func DatasetRows(runID string, cat model.PropertyCategory, k model.Kind, records []model.Record) [][]any {
	docs := model.Dictionary(k)
	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		row := make([]any, 0, len(keyColumns)+len(docs))
		row = append(row, runID, string(cat), i+1)
		for _, d := range docs {
			v, ok := rec.Get(d.Name)
			if !ok || v == nil {
				row = append(row, nil)
				continue
			}
			row = append(row, export.FormatValue(v))
		}
		rows = append(rows, row)
	}
	return rows
}

// Loader writes dataset batches into one schema.
type Loader struct {
	pool   Pool
	schema string
	retry  resilience.RetryConfig
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRetry sets how transient Postgres failures are retried.
func WithRetry(cfg resilience.RetryConfig) LoaderOption {
	return func(l *Loader) { l.retry = cfg }
}

// NewLoader creates a Loader writing into schema.
func NewLoader(pool Pool, schema string, opts ...LoaderOption) *Loader {
	l := &Loader{pool: pool, schema: schema, retry: resilience.DefaultRetryConfig()}
	for _, o := range opts {
		o(l)
	}
	if l.retry.OnRetry == nil {
		l.retry.OnRetry = resilience.RetryLogger("db: load")
	}
	return l
}

// Load upserts records for one run, category and kind, creating the table
// first if needed.
func (l *Loader) Load(ctx context.Context, runID string, k model.Kind, cat model.PropertyCategory, records []model.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := EnsureTable(ctx, l.pool, l.schema, k); err != nil {
		return 0, err
	}

	rows := DatasetRows(runID, cat, k, records)
	n, err := resilience.DoVal(ctx, l.retry, func(ctx context.Context) (int64, error) {
		return replaceBatch(ctx, l.pool, l.schema, k, rows)
	})
	if err != nil {
		return 0, eris.Wrapf(err, "db: load %s/%s", k, cat)
	}

	zap.L().Debug("db: loaded dataset",
		zap.String("kind", string(k)),
		zap.String("category", string(cat)),
		zap.Int64("rows", n),
	)
	return n, nil
}
