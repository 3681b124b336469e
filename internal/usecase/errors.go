package usecase

import (
	"context"
	"errors"
	"strings"

	"resume-evaluator/internal/domain/event"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidJobRole     = errors.New("invalid job role")
	ErrInvalidFilename    = errors.New("invalid file name")
	ErrJobRoleNameTaken   = errors.New("job role name already exists")
	ErrFileNotFound       = errors.New("file not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternal           = errors.New("internal error")
)

const maxNameLength = 100

// EventPublisher receives change notifications. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

// parseID treats anything that is not a UUID as an id that matches nothing.
func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
