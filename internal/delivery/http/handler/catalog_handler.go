package handler

import (
	"resume-evaluator/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// CatalogHandler serves the admin form posts that edit job roles and skills.
// Every action ends with a redirect to the index.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// RegisterRoutes expects r to be guarded by the admin middleware.
func (h *CatalogHandler) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/add_job_role", admin, h.AddJobRole)
	r.Post("/edit_job_role/:id", admin, h.EditJobRole)
	r.Get("/delete_job_role/:id", admin, h.DeleteJobRole)
	r.Post("/delete_job_role/:id", admin, h.DeleteJobRole)

	r.Post("/add_skill", admin, h.AddSkill)
	r.Post("/edit_skill/:id", admin, h.EditSkill)
	r.Get("/delete_skill/:id", admin, h.DeleteSkill)
	r.Post("/delete_skill/:id", admin, h.DeleteSkill)
}

func (h *CatalogHandler) AddJobRole(c fiber.Ctx) error {
	if err := h.uc.AddJobRole(c.Context(), c.FormValue("job_role_name")); err != nil {
		return mapUsecaseError(err)
	}
	return redirectHome(c)
}

func (h *CatalogHandler) EditJobRole(c fiber.Ctx) error {
	if err := h.uc.RenameJobRole(c.Context(), c.Params("id"), c.FormValue("new_name")); err != nil {
		return mapUsecaseError(err)
	}
	return redirectHome(c)
}

func (h *CatalogHandler) DeleteJobRole(c fiber.Ctx) error {
	if err := h.uc.DeleteJobRole(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return redirectHome(c)
}

func (h *CatalogHandler) AddSkill(c fiber.Ctx) error {
	if err := h.uc.AddSkill(c.Context(), c.FormValue("job_role_id"), c.FormValue("skill_name")); err != nil {
		return mapUsecaseError(err)
	}
	return redirectHome(c)
}

func (h *CatalogHandler) EditSkill(c fiber.Ctx) error {
	if err := h.uc.RenameSkill(c.Context(), c.Params("id"), c.FormValue("new_name")); err != nil {
		return mapUsecaseError(err)
	}
	return redirectHome(c)
}

func (h *CatalogHandler) DeleteSkill(c fiber.Ctx) error {
	if err := h.uc.DeleteSkill(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return redirectHome(c)
}
