package handler

import (
	"errors"

	"resume-evaluator/internal/delivery/http/middleware"
	"resume-evaluator/internal/pkg/response"
	"resume-evaluator/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobRole):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job role", nil, err)
	case errors.Is(err, usecase.ErrInvalidFilename):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid file name", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrJobRoleNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Job role name already exists", nil, err)
	case errors.Is(err, usecase.ErrFileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "File not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func redirectHome(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}
