package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"resume-evaluator/internal/domain/event"
	"resume-evaluator/internal/domain/jobrole"
	"resume-evaluator/internal/domain/skill"
	"resume-evaluator/internal/infrastructure/storage"
	"resume-evaluator/internal/repository"

	"github.com/google/uuid"
)

type JobRoleItem struct {
	ID     uuid.UUID
	Name   string
	Skills []skill.Skill
}

// CatalogUsecase manages job roles and their required skills. Mutations that
// reference a missing record or carry a blank name are silent no-ops.
type CatalogUsecase interface {
	ListJobRoles(ctx context.Context) ([]JobRoleItem, error)
	AddJobRole(ctx context.Context, name string) error
	RenameJobRole(ctx context.Context, id, name string) error
	DeleteJobRole(ctx context.Context, id string) error
	AddSkill(ctx context.Context, jobRoleID, name string) error
	RenameSkill(ctx context.Context, id, name string) error
	DeleteSkill(ctx context.Context, id string) error
}

type Catalog struct {
	roles   repository.JobRoleRepository
	skills  repository.SkillRepository
	resumes repository.ResumeRepository
	files   storage.Store
	events  EventPublisher
	logger  *log.Logger
}

func NewCatalogUsecase(
	roles repository.JobRoleRepository,
	skills repository.SkillRepository,
	resumes repository.ResumeRepository,
	files storage.Store,
	events EventPublisher,
	logger *log.Logger,
) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{roles: roles, skills: skills, resumes: resumes, files: files, events: events, logger: logger}
}

func (u *Catalog) ListJobRoles(ctx context.Context) ([]JobRoleItem, error) {
	roles, err := u.roles.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	all, err := u.skills.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	byRole := make(map[uuid.UUID][]skill.Skill, len(roles))
	for _, s := range all {
		byRole[s.JobRoleID] = append(byRole[s.JobRoleID], s)
	}

	out := make([]JobRoleItem, 0, len(roles))
	for _, r := range roles {
		skills := byRole[r.ID]
		if skills == nil {
			skills = []skill.Skill{}
		}
		out = append(out, JobRoleItem{ID: r.ID, Name: r.Name, Skills: skills})
	}
	return out, nil
}

func (u *Catalog) AddJobRole(ctx context.Context, name string) error {
	name, ok, err := normalizeName(name)
	if err != nil || !ok {
		return err
	}

	created, err := u.roles.Create(ctx, name)
	if err != nil {
		return mapJobRoleErr(err)
	}
	u.publish(ctx, created.ID)
	return nil
}

func (u *Catalog) RenameJobRole(ctx context.Context, rawID, name string) error {
	id, ok := parseID(rawID)
	if !ok {
		return nil
	}
	name, ok, err := normalizeName(name)
	if err != nil || !ok {
		return err
	}

	updated, err := u.roles.Rename(ctx, id, name)
	if err != nil {
		return mapJobRoleErr(err)
	}
	if updated {
		u.publish(ctx, id)
	}
	return nil
}

func (u *Catalog) DeleteJobRole(ctx context.Context, rawID string) error {
	id, ok := parseID(rawID)
	if !ok {
		return nil
	}

	filenames, found, err := u.roles.Delete(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if !found {
		return nil
	}

	removeUnreferencedFiles(ctx, u.resumes, u.files, u.logger, filenames...)
	u.publish(ctx, id)
	return nil
}

func (u *Catalog) AddSkill(ctx context.Context, rawRoleID, name string) error {
	roleID, ok := parseID(rawRoleID)
	if !ok {
		return nil
	}
	name, ok, err := normalizeName(name)
	if err != nil || !ok {
		return err
	}

	_, found, err := u.roles.GetByID(ctx, roleID)
	if err != nil {
		return ErrInternal
	}
	if !found {
		return nil
	}

	if _, err := u.skills.Create(ctx, roleID, name); err != nil {
		return ErrInternal
	}
	u.publish(ctx, roleID)
	return nil
}

func (u *Catalog) RenameSkill(ctx context.Context, rawID, name string) error {
	id, ok := parseID(rawID)
	if !ok {
		return nil
	}
	name, ok, err := normalizeName(name)
	if err != nil || !ok {
		return err
	}

	s, found, err := u.skills.GetByID(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if !found {
		return nil
	}

	if _, err := u.skills.Rename(ctx, id, name); err != nil {
		return ErrInternal
	}
	u.publish(ctx, s.JobRoleID)
	return nil
}

func (u *Catalog) DeleteSkill(ctx context.Context, rawID string) error {
	id, ok := parseID(rawID)
	if !ok {
		return nil
	}

	s, found, err := u.skills.GetByID(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if !found {
		return nil
	}

	if _, err := u.skills.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	u.publish(ctx, s.JobRoleID)
	return nil
}

func (u *Catalog) publish(ctx context.Context, roleID uuid.UUID) {
	if u.events == nil {
		return
	}
	evt := event.New(event.TypeCatalogUpdated)
	evt.JobRoleID = roleID.String()
	if err := u.events.Publish(ctx, evt); err != nil {
		u.logger.Printf("[Events] publish failed type=%s err=%v", evt.Type, err)
	}
}

// normalizeName trims name. ok is false for a blank name; names longer than
// the column allows are ErrInvalidInput.
func normalizeName(name string) (string, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, nil
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", false, ErrInvalidInput
	}
	return name, true, nil
}

func mapJobRoleErr(err error) error {
	if errors.Is(err, jobrole.ErrNameTaken) {
		return ErrJobRoleNameTaken
	}
	return ErrInternal
}
