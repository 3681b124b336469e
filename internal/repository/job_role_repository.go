package repository

import (
	"context"
	"strings"

	"resume-evaluator/internal/database"
	"resume-evaluator/internal/domain/jobrole"

	"github.com/google/uuid"
)

type JobRoleRepository interface {
	Create(ctx context.Context, name string) (jobrole.JobRole, error)
	GetByID(ctx context.Context, id uuid.UUID) (jobrole.JobRole, bool, error)
	List(ctx context.Context) ([]jobrole.JobRole, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (bool, error)
	// Delete removes the role together with its skills and resume uploads
	// and returns the filenames of the removed uploads.
	Delete(ctx context.Context, id uuid.UUID) ([]string, bool, error)
}

type PostgresJobRoleRepository struct {
	db database.DB
}

func NewPostgresJobRoleRepository(db database.DB) *PostgresJobRoleRepository {
	return &PostgresJobRoleRepository{db: db}
}

func (r *PostgresJobRoleRepository) Create(ctx context.Context, name string) (jobrole.JobRole, error) {
	jr := jobrole.JobRole{ID: uuid.New(), Name: strings.TrimSpace(name)}
	err := r.db.QueryRow(ctx,
		`INSERT INTO job_roles (id, name) VALUES ($1, $2) RETURNING created_at`,
		jr.ID, jr.Name,
	).Scan(&jr.CreatedAt)
	if err != nil {
		if isDuplicateJobRoleName(err) {
			return jobrole.JobRole{}, jobrole.ErrNameTaken
		}
		return jobrole.JobRole{}, err
	}
	return jr, nil
}

func (r *PostgresJobRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (jobrole.JobRole, bool, error) {
	var jr jobrole.JobRole
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM job_roles WHERE id = $1`,
		id,
	).Scan(&jr.ID, &jr.Name, &jr.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return jobrole.JobRole{}, false, nil
		}
		return jobrole.JobRole{}, false, err
	}
	return jr, true, nil
}

func (r *PostgresJobRoleRepository) List(ctx context.Context) ([]jobrole.JobRole, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM job_roles ORDER BY created_at ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]jobrole.JobRole, 0)
	for rows.Next() {
		var jr jobrole.JobRole
		if err := rows.Scan(&jr.ID, &jr.Name, &jr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRoleRepository) Rename(ctx context.Context, id uuid.UUID, name string) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE job_roles SET name = $2 WHERE id = $1`,
		id, strings.TrimSpace(name),
	)
	if err != nil {
		if isDuplicateJobRoleName(err) {
			return false, jobrole.ErrNameTaken
		}
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresJobRoleRepository) Delete(ctx context.Context, id uuid.UUID) ([]string, bool, error) {
	var (
		filenames []string
		found     bool
	)

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM job_roles WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if isNoRows(err) {
				return nil
			}
			return err
		}
		found = true

		rows, err := tx.Query(ctx, `DELETE FROM resume_uploads WHERE job_role_id = $1 RETURNING filename`, id)
		if err != nil {
			return err
		}
		filenames = make([]string, 0)
		for rows.Next() {
			var fn string
			if err := rows.Scan(&fn); err != nil {
				rows.Close()
				return err
			}
			filenames = append(filenames, fn)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE job_role_id = $1`, id); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM job_roles WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return filenames, found, nil
}
