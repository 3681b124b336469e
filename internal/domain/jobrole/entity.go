package jobrole

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNameTaken = errors.New("job role name already exists")

type JobRole struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
