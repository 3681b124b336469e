package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is one keyword a job role requires. Names are not unique within a role.
type Skill struct {
	ID        uuid.UUID
	Name      string
	JobRoleID uuid.UUID
	CreatedAt time.Time
}
