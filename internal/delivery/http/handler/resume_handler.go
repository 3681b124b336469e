package handler

import (
	"io"
	"path/filepath"

	"resume-evaluator/internal/delivery/http/dto"
	"resume-evaluator/internal/delivery/http/middleware"
	"resume-evaluator/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc       usecase.ResumeUsecase
	maxBytes int64
}

func NewResumeHandler(uc usecase.ResumeUsecase, maxBytes int64) *ResumeHandler {
	return &ResumeHandler{uc: uc, maxBytes: maxBytes}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/evaluate", h.Evaluate)
	r.Get("/uploads/:filename", h.Download)
	r.Post("/delete_resume/:id", admin, h.DeleteResume)
}

func (h *ResumeHandler) Evaluate(c fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No resume uploaded", nil, err)
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume is too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
	}

	res, err := h.uc.Evaluate(c.Context(), usecase.EvaluateInput{
		JobRoleID: c.FormValue("job_role_id"),
		Filename:  fh.Filename,
		Content:   content,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.EvaluateResponse{
		MatchedSkills:   nonNil(res.MatchedSkills),
		MissingSkills:   nonNil(res.MissingSkills),
		MatchPercentage: res.MatchPercentage,
	})
}

// Download serves GET /uploads/:filename. The parameter is the stored,
// sanitized filename as listed in the index url, not the original upload name.
func (h *ResumeHandler) Download(c fiber.Ctx) error {
	name := c.Params("filename")
	data, err := h.uc.OpenUpload(c.Context(), name)
	if err != nil {
		return mapUsecaseError(err)
	}

	if ext := filepath.Ext(name); ext != "" {
		c.Type(ext)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}
	return c.Send(data)
}

func (h *ResumeHandler) DeleteResume(c fiber.Ctx) error {
	if err := h.uc.DeleteResume(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return redirectHome(c)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
