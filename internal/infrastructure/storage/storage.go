package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/kennygrant/sanitize"
)

var (
	ErrNotFound    = errors.New("stored file not found")
	ErrInvalidName = errors.New("invalid file name")
)

// Store keeps uploaded resumes in one flat namespace keyed by file name.
// Saving an existing name overwrites it.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// SanitizeFilename reduces a client supplied name to a safe base name:
// directories are dropped, the result is lower-cased ASCII with separators
// turned into dashes. An empty result is ErrInvalidName.
func SanitizeFilename(name string) (string, error) {
	clean := sanitize.Name(strings.TrimSpace(name))
	clean = strings.TrimLeft(clean, ".-")
	if !validName(clean) {
		return "", ErrInvalidName
	}
	return clean, nil
}

// validName guards lookups by name coming from the URL.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return strings.Trim(name, ".-") != ""
}
