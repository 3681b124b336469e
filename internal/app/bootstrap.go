package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"resume-evaluator/internal/config"
	"resume-evaluator/internal/delivery/http/middleware"
	"resume-evaluator/internal/delivery/http/routes"
	"resume-evaluator/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// multipart framing on top of the file itself
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: cfg.App.UploadMaxBytes + bodyLimitSlack,
	})

	registerGlobalMiddleware(f, c.Logger)

	admin := middleware.NewAdminAuth(c.Auth, cfg.Session.CookieName)
	routes.NewRegistry(routes.Deps{
		Catalog:        c.Catalog,
		Resumes:        c.Resumes,
		Auth:           c.Auth,
		Admin:          admin,
		DB:             c.DB,
		Events:         ws.NewHandler(c.Hub, c.Logger),
		UploadMaxBytes: int64(cfg.App.UploadMaxBytes),
		SecureCookie:   cfg.Session.Secure,
	}).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The websocket hub runs
// until ctx is cancelled; the returned cleanup releases everything else.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	go c.Hub.Run(ctx)

	logger.Printf("[App] %s started env=%s storage=%s", cfg.App.AppName, cfg.App.Environment, cfg.Storage.Driver)
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
