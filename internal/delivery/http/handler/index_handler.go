package handler

import (
	"net/url"

	"resume-evaluator/internal/delivery/http/dto"
	"resume-evaluator/internal/delivery/http/middleware"
	"resume-evaluator/internal/pkg/response"
	"resume-evaluator/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type IndexHandler struct {
	catalog usecase.CatalogUsecase
	resumes usecase.ResumeUsecase
	admin   *middleware.AdminAuth
}

func NewIndexHandler(catalog usecase.CatalogUsecase, resumes usecase.ResumeUsecase, admin *middleware.AdminAuth) *IndexHandler {
	return &IndexHandler{catalog: catalog, resumes: resumes, admin: admin}
}

func (h *IndexHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Index)
}

// Index lists every job role with its skills and the uploads, newest first.
func (h *IndexHandler) Index(c fiber.Ctx) error {
	roles, err := h.catalog.ListJobRoles(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	uploads, err := h.resumes.ListRecent(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	_, isAdmin := h.admin.Session(c)
	res := dto.IndexResponse{
		JobRoles:      make([]dto.JobRoleResponse, 0, len(roles)),
		ResumeUploads: make([]dto.ResumeUploadResponse, 0, len(uploads)),
		IsAdmin:       isAdmin,
	}
	for _, r := range roles {
		item := dto.JobRoleResponse{ID: r.ID, Name: r.Name, Skills: make([]dto.SkillResponse, 0, len(r.Skills))}
		for _, s := range r.Skills {
			item.Skills = append(item.Skills, dto.SkillResponse{ID: s.ID, Name: s.Name})
		}
		res.JobRoles = append(res.JobRoles, item)
	}
	for _, u := range uploads {
		res.ResumeUploads = append(res.ResumeUploads, dto.ResumeUploadResponse{
			ID:          u.ID,
			Filename:    u.Filename,
			JobRoleID:   u.JobRoleID,
			JobRoleName: u.JobRoleName,
			UploadedAt:  u.UploadedAt,
			URL:         "/uploads/" + url.PathEscape(u.Filename),
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
