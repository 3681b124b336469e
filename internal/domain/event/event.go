package event

import (
	"time"
)

const (
	TypeResumeEvaluated = "resume.evaluated"
	TypeResumeDeleted   = "resume.deleted"
	TypeCatalogUpdated  = "catalog.updated"
)

// Event is a change notification fanned out to websocket clients and, when
// configured, the message bus. The routing key on the bus is Type.
type Event struct {
	Type            string   `json:"type"`
	JobRoleID       string   `json:"job_role_id,omitempty"`
	Filename        string   `json:"filename,omitempty"`
	MatchPercentage *float64 `json:"match_percentage,omitempty"`
	Timestamp       string   `json:"timestamp"`
}

func New(typ string) Event {
	return Event{Type: typ, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}
