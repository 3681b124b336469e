package dto

import (
	"time"

	"github.com/google/uuid"
)

type IndexResponse struct {
	JobRoles      []JobRoleResponse      `json:"job_roles"`
	ResumeUploads []ResumeUploadResponse `json:"resume_uploads"`
	IsAdmin       bool                   `json:"is_admin"`
}

type JobRoleResponse struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Skills []SkillResponse `json:"skills"`
}

type SkillResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ResumeUploadResponse struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	JobRoleID   uuid.UUID `json:"job_role_id"`
	JobRoleName string    `json:"job_role_name"`
	UploadedAt  time.Time `json:"uploaded_at"`
	URL         string    `json:"url"`
}
