package resume

import (
	"time"

	"github.com/google/uuid"
)

// Upload records that a resume file was evaluated against a job role. The
// extracted text and the score are not kept.
type Upload struct {
	ID         uuid.UUID
	Filename   string
	JobRoleID  uuid.UUID
	UploadedAt time.Time
}

// UploadView is an Upload joined with the name of its job role.
type UploadView struct {
	Upload
	JobRoleName string
}
