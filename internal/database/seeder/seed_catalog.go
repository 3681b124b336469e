package seeder

import (
	"context"
	"fmt"

	"resume-evaluator/internal/database"
	"resume-evaluator/internal/database/postgres"
)

// CatalogSeeder adds a few sample job roles. A role that already exists is
// left alone, skills included, so admin edits survive a restart.
type CatalogSeeder struct{}

func (CatalogSeeder) Name() string { return "catalog" }

var sampleCatalog = []struct {
	Role   string
	Skills []string
}{
	{Role: "Backend Engineer", Skills: []string{"Go", "PostgreSQL", "Docker", "REST", "Redis"}},
	{Role: "Data Analyst", Skills: []string{"SQL", "Python", "Excel", "Tableau"}},
	{Role: "Frontend Developer", Skills: []string{"JavaScript", "TypeScript", "React", "CSS"}},
}

func (CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_roles", "id", "name", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "job_role_id", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range sampleCatalog {
			var id string
			err := tx.QueryRow(
				ctx,
				`INSERT INTO job_roles (id, name) VALUES (gen_random_uuid(), $1)
				 ON CONFLICT (name) DO NOTHING
				 RETURNING id::text`,
				it.Role,
			).Scan(&id)
			if err != nil {
				if postgres.IsNoRows(err) {
					continue
				}
				return fmt.Errorf("insert job role %q: %w", it.Role, err)
			}

			for _, s := range it.Skills {
				if _, err := tx.Exec(
					ctx,
					`INSERT INTO skills (id, name, job_role_id) VALUES (gen_random_uuid(), $1, $2::uuid)`,
					s,
					id,
				); err != nil {
					return fmt.Errorf("insert skill %q: %w", s, err)
				}
			}
		}
		return nil
	})
}
