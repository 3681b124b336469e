package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-evaluator/internal/domain/event"
	"resume-evaluator/internal/domain/jobrole"
	"resume-evaluator/internal/domain/resume"
	"resume-evaluator/internal/domain/skill"
	"resume-evaluator/internal/infrastructure/storage"

	"github.com/google/uuid"
)

// memDB backs the three repositories with slices so ordering is stable.
type memDB struct {
	mu      sync.Mutex
	roles   []jobrole.JobRole
	skills  []skill.Skill
	uploads []resume.Upload
	clock   time.Time
	err     error
}

func newMemDB() *memDB {
	return &memDB{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memRoles struct{ *memDB }
type memSkills struct{ *memDB }
type memResumes struct{ *memDB }

func (r memRoles) Create(_ context.Context, name string) (jobrole.JobRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return jobrole.JobRole{}, r.err
	}
	for _, x := range r.roles {
		if x.Name == name {
			return jobrole.JobRole{}, jobrole.ErrNameTaken
		}
	}
	jr := jobrole.JobRole{ID: uuid.New(), Name: name, CreatedAt: r.tick()}
	r.roles = append(r.roles, jr)
	return jr, nil
}

func (r memRoles) GetByID(_ context.Context, id uuid.UUID) (jobrole.JobRole, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return jobrole.JobRole{}, false, r.err
	}
	for _, x := range r.roles {
		if x.ID == id {
			return x, true, nil
		}
	}
	return jobrole.JobRole{}, false, nil
}

func (r memRoles) List(context.Context) ([]jobrole.JobRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]jobrole.JobRole(nil), r.roles...), nil
}

func (r memRoles) Rename(_ context.Context, id uuid.UUID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, x := range r.roles {
		if x.Name == name && x.ID != id {
			return false, jobrole.ErrNameTaken
		}
		if x.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return false, nil
	}
	r.roles[idx].Name = name
	return true, nil
}

func (r memRoles) Delete(_ context.Context, id uuid.UUID) ([]string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, false, r.err
	}
	found := false
	roles := r.roles[:0]
	for _, x := range r.roles {
		if x.ID == id {
			found = true
			continue
		}
		roles = append(roles, x)
	}
	r.roles = roles
	if !found {
		return nil, false, nil
	}

	var names []string
	uploads := r.uploads[:0]
	for _, u := range r.uploads {
		if u.JobRoleID == id {
			names = append(names, u.Filename)
			continue
		}
		uploads = append(uploads, u)
	}
	r.uploads = uploads

	skills := r.skills[:0]
	for _, s := range r.skills {
		if s.JobRoleID != id {
			skills = append(skills, s)
		}
	}
	r.skills = skills
	return names, true, nil
}

func (r memSkills) Create(_ context.Context, roleID uuid.UUID, name string) (skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := skill.Skill{ID: uuid.New(), Name: name, JobRoleID: roleID, CreatedAt: r.tick()}
	r.skills = append(r.skills, s)
	return s, nil
}

func (r memSkills) GetByID(_ context.Context, id uuid.UUID) (skill.Skill, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.skills {
		if s.ID == id {
			return s, true, nil
		}
	}
	return skill.Skill{}, false, nil
}

func (r memSkills) ListByJobRole(_ context.Context, roleID uuid.UUID) ([]skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []skill.Skill
	for _, s := range r.skills {
		if s.JobRoleID == roleID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r memSkills) ListAll(context.Context) ([]skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]skill.Skill(nil), r.skills...), nil
}

func (r memSkills) Rename(_ context.Context, id uuid.UUID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.skills {
		if r.skills[i].ID == id {
			r.skills[i].Name = name
			return true, nil
		}
	}
	return false, nil
}

func (r memSkills) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.skills {
		if s.ID == id {
			r.skills = append(r.skills[:i], r.skills[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r memResumes) Create(_ context.Context, filename string, roleID uuid.UUID) (resume.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return resume.Upload{}, r.err
	}
	u := resume.Upload{ID: uuid.New(), Filename: filename, JobRoleID: roleID, UploadedAt: r.tick()}
	r.uploads = append(r.uploads, u)
	return u, nil
}

func (r memResumes) GetByID(_ context.Context, id uuid.UUID) (resume.Upload, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.uploads {
		if u.ID == id {
			return u, true, nil
		}
	}
	return resume.Upload{}, false, nil
}

func (r memResumes) ListRecent(context.Context) ([]resume.UploadView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]resume.UploadView, 0, len(r.uploads))
	for i := len(r.uploads) - 1; i >= 0; i-- {
		u := r.uploads[i]
		v := resume.UploadView{Upload: u}
		for _, jr := range r.roles {
			if jr.ID == u.JobRoleID {
				v.JobRoleName = jr.Name
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (r memResumes) ListByJobRole(_ context.Context, roleID uuid.UUID) ([]resume.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []resume.Upload
	for _, u := range r.uploads {
		if u.JobRoleID == roleID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memResumes) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.uploads {
		if u.ID == id {
			r.uploads = append(r.uploads[:i], r.uploads[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r memResumes) CountByFilename(_ context.Context, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.uploads {
		if u.Filename == name {
			n++
		}
	}
	return n, nil
}

type memFiles struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
}

func newMemFiles() *memFiles { return &memFiles{data: map[string][]byte{}} }

func (f *memFiles) Save(_ context.Context, name string, b []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[name] = append([]byte(nil), b...)
	return nil
}

func (f *memFiles) Read(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (f *memFiles) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, name)
	return nil
}

func (f *memFiles) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[name]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errBoom = errors.New("boom")
