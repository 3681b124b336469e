package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"
	"time"

	"resume-evaluator/internal/config"
	"resume-evaluator/internal/pkg/session"

	"golang.org/x/crypto/bcrypt"
)

// RevocationStore remembers logged out session ids until their tokens expire.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type LoginInput struct {
	Username string
	Password string
}

type AuthUsecase interface {
	Login(ctx context.Context, in LoginInput) (string, session.Claims, error)
	Authenticate(ctx context.Context, token string) (session.Claims, error)
	Logout(ctx context.Context, token string) error
}

type Auth struct {
	username     string
	passwordHash []byte
	sessions     session.Service
	revoked      RevocationStore
	logger       *log.Logger

	now func() time.Time
}

// NewAuthUsecase prefers a configured bcrypt hash; a plain password is
// hashed once here so it never has to be compared directly.
func NewAuthUsecase(cfg config.AdminConfig, sessions session.Service, revoked RevocationStore, logger *log.Logger) (*Auth, error) {
	if logger == nil {
		logger = log.Default()
	}

	hash := []byte(strings.TrimSpace(cfg.PasswordHash))
	if len(hash) == 0 {
		if cfg.Password == "" {
			return nil, errors.New("admin password is not configured")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = h
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, errors.New("admin password hash is not a bcrypt hash")
	}

	return &Auth{
		username:     cfg.Username,
		passwordHash: hash,
		sessions:     sessions,
		revoked:      revoked,
		logger:       logger,
		now:          time.Now,
	}, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (string, session.Claims, error) {
	if in.Username == "" || in.Password == "" {
		return "", session.Claims{}, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(u.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(in.Password))
	if !userOK || passErr != nil {
		return "", session.Claims{}, ErrInvalidCredentials
	}

	tok, claims, err := u.sessions.Issue(u.username)
	if err != nil {
		return "", session.Claims{}, ErrInternal
	}
	return tok, claims, nil
}

func (u *Auth) Authenticate(ctx context.Context, token string) (session.Claims, error) {
	claims, err := u.sessions.Validate(token)
	if err != nil {
		return session.Claims{}, ErrUnauthorized
	}

	if u.revoked != nil {
		revoked, err := u.revoked.IsRevoked(ctx, claims.SessionID())
		if err != nil {
			u.logger.Printf("[Auth] revocation check failed session=%s err=%v", claims.SessionID(), err)
		}
		if revoked {
			return session.Claims{}, ErrUnauthorized
		}
	}
	return claims, nil
}

// Logout revokes the session for the rest of its lifetime. An invalid or
// already expired token needs no revocation.
func (u *Auth) Logout(ctx context.Context, token string) error {
	if token == "" || u.revoked == nil {
		return nil
	}
	claims, err := u.sessions.Validate(token)
	if err != nil {
		return nil
	}
	if err := u.revoked.Revoke(ctx, claims.SessionID(), claims.Remaining(u.now())); err != nil {
		u.logger.Printf("[Auth] revoke failed session=%s err=%v", claims.SessionID(), err)
	}
	return nil
}
