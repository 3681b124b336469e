package seeder

import (
	"context"
	"fmt"
	"strings"

	"resume-evaluator/internal/database"
)

// EnsureTableColumns fails when table lacks any of columns, which means the
// migrations have not been applied yet.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return database.ErrNilDB
	}
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("ensure columns: empty table or column list")
	}

	rows, err := db.Query(ctx,
		`SELECT want.col
		 FROM unnest($2::text[]) AS want(col)
		 WHERE NOT EXISTS (
		     SELECT 1 FROM information_schema.columns c
		     WHERE c.table_schema = 'public' AND c.table_name = $1 AND c.column_name = want.col
		 )`,
		table, columns,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return err
		}
		missing = append(missing, table+"."+col)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}
