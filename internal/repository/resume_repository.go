package repository

import (
	"context"

	"resume-evaluator/internal/database"
	"resume-evaluator/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	Create(ctx context.Context, filename string, jobRoleID uuid.UUID) (resume.Upload, error)
	GetByID(ctx context.Context, id uuid.UUID) (resume.Upload, bool, error)
	ListRecent(ctx context.Context) ([]resume.UploadView, error)
	ListByJobRole(ctx context.Context, jobRoleID uuid.UUID) ([]resume.Upload, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountByFilename(ctx context.Context, filename string) (int, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Create(ctx context.Context, filename string, jobRoleID uuid.UUID) (resume.Upload, error) {
	u := resume.Upload{ID: uuid.New(), Filename: filename, JobRoleID: jobRoleID}
	err := r.db.QueryRow(ctx,
		`INSERT INTO resume_uploads (id, filename, job_role_id) VALUES ($1, $2, $3) RETURNING uploaded_at`,
		u.ID, u.Filename, u.JobRoleID,
	).Scan(&u.UploadedAt)
	if err != nil {
		return resume.Upload{}, err
	}
	return u, nil
}

func (r *PostgresResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Upload, bool, error) {
	var u resume.Upload
	err := r.db.QueryRow(ctx,
		`SELECT id, filename, job_role_id, uploaded_at FROM resume_uploads WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Filename, &u.JobRoleID, &u.UploadedAt)
	if err != nil {
		if isNoRows(err) {
			return resume.Upload{}, false, nil
		}
		return resume.Upload{}, false, err
	}
	return u, true, nil
}

func (r *PostgresResumeRepository) ListRecent(ctx context.Context) ([]resume.UploadView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ru.id, ru.filename, ru.job_role_id, ru.uploaded_at, jr.name
		 FROM resume_uploads ru
		 JOIN job_roles jr ON jr.id = ru.job_role_id
		 ORDER BY ru.uploaded_at DESC, ru.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.UploadView, 0)
	for rows.Next() {
		var v resume.UploadView
		if err := rows.Scan(&v.ID, &v.Filename, &v.JobRoleID, &v.UploadedAt, &v.JobRoleName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) ListByJobRole(ctx context.Context, jobRoleID uuid.UUID) ([]resume.Upload, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, filename, job_role_id, uploaded_at FROM resume_uploads WHERE job_role_id = $1 ORDER BY uploaded_at DESC`,
		jobRoleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Upload, 0)
	for rows.Next() {
		var u resume.Upload
		if err := rows.Scan(&u.ID, &u.Filename, &u.JobRoleID, &u.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx, `DELETE FROM resume_uploads WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresResumeRepository) CountByFilename(ctx context.Context, filename string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM resume_uploads WHERE filename = $1`, filename).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
