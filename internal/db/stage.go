package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/model"
)

// stageTable names the temp table a batch is copied into before the merge.
func stageTable(schema string, k model.Kind) string {
	return fmt.Sprintf("_stage_%s_%s", schema, k)
}

// quoteAndJoin quotes each column name and joins with commas.
func quoteAndJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}

// mergeSQL moves every staged row into target. Rows whose key columns already
// exist are overwritten field by field.
func mergeSQL(target, stage pgx.Identifier, cols []string) string {
	isKey := make(map[string]bool, len(keyColumns))
	for _, k := range keyColumns {
		isKey[k] = true
	}
	var sets []string
	for _, c := range cols {
		if isKey[c] {
			continue
		}
		q := pgx.Identifier{c}.Sanitize()
		sets = append(sets, q+" = EXCLUDED."+q)
	}

	colList := quoteAndJoin(cols)
	return fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO UPDATE SET %s",
		target.Sanitize(), colList, colList, stage.Sanitize(),
		quoteAndJoin(keyColumns), strings.Join(sets, ", "))
}

// replaceBatch writes rows for kind k in one transaction: COPY into a stage
// table dropped on commit, then merge into <schema>.<kind>. It returns the
// number of rows inserted or updated.
func replaceBatch(ctx context.Context, pool Pool, schema string, k model.Kind, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	target := pgx.Identifier{schema, string(k)}
	stage := pgx.Identifier{stageTable(schema, k)}
	cols := DatasetColumns(k)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "db: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	create := fmt.Sprintf("CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP",
		stage.Sanitize(), target.Sanitize())
	if _, err := tx.Exec(ctx, create); err != nil {
		return 0, eris.Wrapf(err, "db: create stage table for %s", k)
	}

	if _, err := tx.CopyFrom(ctx, stage, cols, pgx.CopyFromRows(rows)); err != nil {
		return 0, eris.Wrapf(err, "db: copy %s rows into stage", k)
	}

	tag, err := tx.Exec(ctx, mergeSQL(target, stage, cols))
	if err != nil {
		return 0, eris.Wrapf(err, "db: merge %s", k)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "db: commit")
	}
	return tag.RowsAffected(), nil
}
