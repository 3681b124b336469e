package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"resume-evaluator/internal/domain/event"
	"resume-evaluator/internal/domain/matching"
	"resume-evaluator/internal/domain/resume"
	"resume-evaluator/internal/extractor"
	"resume-evaluator/internal/infrastructure/storage"
	"resume-evaluator/internal/repository"
)

type EvaluateInput struct {
	JobRoleID string
	Filename  string
	Content   []byte
}

type EvaluateResult struct {
	Upload          resume.Upload
	MatchedSkills   []string
	MissingSkills   []string
	MatchPercentage float64
}

type ResumeUsecase interface {
	Evaluate(ctx context.Context, in EvaluateInput) (EvaluateResult, error)
	ListRecent(ctx context.Context) ([]resume.UploadView, error)
	DeleteResume(ctx context.Context, id string) error
	OpenUpload(ctx context.Context, filename string) ([]byte, error)
}

type Resume struct {
	roles   repository.JobRoleRepository
	skills  repository.SkillRepository
	resumes repository.ResumeRepository
	files   storage.Store
	events  EventPublisher
	logger  *log.Logger
}

func NewResumeUsecase(
	roles repository.JobRoleRepository,
	skills repository.SkillRepository,
	resumes repository.ResumeRepository,
	files storage.Store,
	events EventPublisher,
	logger *log.Logger,
) *Resume {
	if logger == nil {
		logger = log.Default()
	}
	return &Resume{roles: roles, skills: skills, resumes: resumes, files: files, events: events, logger: logger}
}

// Evaluate scores the uploaded resume against the skills of the chosen job
// role, then stores the file and records the upload. Nothing is written
// when the job role is invalid.
func (u *Resume) Evaluate(ctx context.Context, in EvaluateInput) (EvaluateResult, error) {
	roleID, ok := parseID(in.JobRoleID)
	if !ok {
		return EvaluateResult{}, ErrInvalidJobRole
	}
	role, found, err := u.roles.GetByID(ctx, roleID)
	if err != nil {
		return EvaluateResult{}, ErrInternal
	}
	if !found {
		return EvaluateResult{}, ErrInvalidJobRole
	}

	name, err := storage.SanitizeFilename(in.Filename)
	if err != nil {
		return EvaluateResult{}, ErrInvalidFilename
	}

	required, err := u.skills.ListByJobRole(ctx, role.ID)
	if err != nil {
		return EvaluateResult{}, ErrInternal
	}
	names := make([]string, 0, len(required))
	for _, s := range required {
		names = append(names, strings.ToLower(s.Name))
	}

	text := extractor.Extract(in.Filename, in.Content)
	res := matching.Evaluate(text, names)

	if err := u.files.Save(ctx, name, in.Content); err != nil {
		u.logger.Printf("[Storage] save failed file=%s err=%v", name, err)
		return EvaluateResult{}, ErrInternal
	}
	up, err := u.resumes.Create(ctx, name, role.ID)
	if err != nil {
		return EvaluateResult{}, ErrInternal
	}

	pct := res.Percent
	evt := event.New(event.TypeResumeEvaluated)
	evt.JobRoleID = role.ID.String()
	evt.Filename = name
	evt.MatchPercentage = &pct
	u.publish(ctx, evt)

	return EvaluateResult{
		Upload:          up,
		MatchedSkills:   res.Matched,
		MissingSkills:   res.Missing,
		MatchPercentage: res.Percent,
	}, nil
}

func (u *Resume) ListRecent(ctx context.Context) ([]resume.UploadView, error) {
	items, err := u.resumes.ListRecent(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// DeleteResume removes the upload record. The stored file goes too unless
// another record was saved under the same name.
func (u *Resume) DeleteResume(ctx context.Context, rawID string) error {
	id, ok := parseID(rawID)
	if !ok {
		return nil
	}

	up, found, err := u.resumes.GetByID(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if !found {
		return nil
	}

	deleted, err := u.resumes.Delete(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if !deleted {
		return nil
	}

	removeUnreferencedFiles(ctx, u.resumes, u.files, u.logger, up.Filename)

	evt := event.New(event.TypeResumeDeleted)
	evt.JobRoleID = up.JobRoleID.String()
	evt.Filename = up.Filename
	u.publish(ctx, evt)
	return nil
}

// OpenUpload reads a stored resume by its stored name, which is the
// sanitized form recorded on the upload (e.g. "My CV.PDF" is stored as
// "my-cv.pdf"). The name the client originally uploaded does not resolve.
func (u *Resume) OpenUpload(ctx context.Context, filename string) ([]byte, error) {
	data, err := u.files.Read(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			return nil, ErrFileNotFound
		}
		u.logger.Printf("[Storage] read failed file=%s err=%v", filename, err)
		return nil, ErrInternal
	}
	return data, nil
}

func (u *Resume) publish(ctx context.Context, evt event.Event) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, evt); err != nil {
		u.logger.Printf("[Events] publish failed type=%s err=%v", evt.Type, err)
	}
}
