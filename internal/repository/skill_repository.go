package repository

import (
	"context"
	"strings"

	"resume-evaluator/internal/database"
	"resume-evaluator/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	Create(ctx context.Context, jobRoleID uuid.UUID, name string) (skill.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, bool, error)
	ListByJobRole(ctx context.Context, jobRoleID uuid.UUID) ([]skill.Skill, error)
	ListAll(ctx context.Context) ([]skill.Skill, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) Create(ctx context.Context, jobRoleID uuid.UUID, name string) (skill.Skill, error) {
	s := skill.Skill{ID: uuid.New(), Name: strings.TrimSpace(name), JobRoleID: jobRoleID}
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, job_role_id) VALUES ($1, $2, $3) RETURNING created_at`,
		s.ID, s.Name, s.JobRoleID,
	).Scan(&s.CreatedAt)
	if err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, bool, error) {
	var s skill.Skill
	err := r.db.QueryRow(ctx,
		`SELECT id, name, job_role_id, created_at FROM skills WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.JobRoleID, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, false, nil
		}
		return skill.Skill{}, false, err
	}
	return s, true, nil
}

func (r *PostgresSkillRepository) ListByJobRole(ctx context.Context, jobRoleID uuid.UUID) ([]skill.Skill, error) {
	return r.list(ctx,
		`SELECT id, name, job_role_id, created_at FROM skills WHERE job_role_id = $1 ORDER BY created_at ASC, id ASC`,
		jobRoleID,
	)
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]skill.Skill, error) {
	return r.list(ctx,
		`SELECT id, name, job_role_id, created_at FROM skills ORDER BY job_role_id, created_at ASC, id ASC`,
	)
}

func (r *PostgresSkillRepository) list(ctx context.Context, query string, args ...any) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.JobRoleID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) Rename(ctx context.Context, id uuid.UUID, name string) (bool, error) {
	affected, err := r.db.Exec(ctx, `UPDATE skills SET name = $2 WHERE id = $1`, id, strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
