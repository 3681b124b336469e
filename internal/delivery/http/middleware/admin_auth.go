package middleware

import (
	"context"
	"strings"

	"resume-evaluator/internal/pkg/session"

	"github.com/gofiber/fiber/v3"
)

const ctxSessionKey = "admin_session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (session.Claims, error)
}

// AdminAuth admits requests that carry a valid admin session, either as the
// session cookie or as a Bearer token.
type AdminAuth struct {
	auth       Authenticator
	cookieName string
}

func NewAdminAuth(auth Authenticator, cookieName string) *AdminAuth {
	if cookieName == "" {
		cookieName = "admin_session"
	}
	return &AdminAuth{auth: auth, cookieName: cookieName}
}

func (m *AdminAuth) CookieName() string {
	return m.cookieName
}

func (m *AdminAuth) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := m.Session(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		c.Locals(ctxSessionKey, claims)
		return c.Next()
	}
}

// Session resolves the caller's admin session without rejecting the request.
func (m *AdminAuth) Session(c fiber.Ctx) (session.Claims, bool) {
	if m == nil || m.auth == nil {
		return session.Claims{}, false
	}
	if claims, ok := c.Locals(ctxSessionKey).(session.Claims); ok {
		return claims, true
	}

	token := m.Token(c)
	if token == "" {
		return session.Claims{}, false
	}
	claims, err := m.auth.Authenticate(c.Context(), token)
	if err != nil {
		return session.Claims{}, false
	}
	return claims, true
}

// Token returns the raw session token presented by the caller. The cookie
// wins over the Authorization header.
func (m *AdminAuth) Token(c fiber.Ctx) string {
	if tok := strings.TrimSpace(c.Cookies(m.cookieName)); tok != "" {
		return tok
	}
	tok, _ := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
	return tok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
