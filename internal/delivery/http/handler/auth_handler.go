package handler

import (
	"errors"
	"strings"
	"time"

	"resume-evaluator/internal/delivery/http/dto"
	"resume-evaluator/internal/delivery/http/middleware"
	"resume-evaluator/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc           usecase.AuthUsecase
	admin        *middleware.AdminAuth
	secureCookie bool
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase, admin *middleware.AdminAuth, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, admin: admin, secureCookie: secureCookie}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
}

// Login accepts the credentials as a form post or a JSON body and sets the
// session cookie. Wrong credentials are a normal outcome: the answer is 200
// with success=false, so clients branch on the body rather than the status.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if err := c.Bind().JSON(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	} else {
		req.Username = c.FormValue("username")
		req.Password = c.FormValue("password")
	}

	token, claims, err := h.uc.Login(c.Context(), usecase.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{Success: false, Message: "Invalid credentials"})
		}
		return mapUsecaseError(err)
	}

	cookie := &fiber.Cookie{
		Name:     h.admin.CookieName(),
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if claims.ExpiresAt != nil {
		cookie.Expires = claims.ExpiresAt.Time
	}
	c.Cookie(cookie)

	return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{Success: true})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if tok := h.admin.Token(c); tok != "" {
		if err := h.uc.Logout(c.Context(), tok); err != nil {
			return mapUsecaseError(err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.admin.CookieName(),
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return redirectHome(c)
}
