package routes

import (
	"resume-evaluator/internal/delivery/http/handler"
	"resume-evaluator/internal/delivery/http/middleware"
	"resume-evaluator/internal/usecase"
	"resume-evaluator/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Catalog        usecase.CatalogUsecase
	Resumes        usecase.ResumeUsecase
	Auth           usecase.AuthUsecase
	Admin          *middleware.AdminAuth
	DB             handler.Pinger
	Events         *ws.Handler
	UploadMaxBytes int64
	SecureCookie   bool
}

type Registry struct {
	admin   *middleware.AdminAuth
	health  *handler.HealthHandler
	index   *handler.IndexHandler
	auth    *handler.AuthHandler
	catalog *handler.CatalogHandler
	resumes *handler.ResumeHandler
	events  *ws.Handler
}

func NewRegistry(d Deps) *Registry {
	return &Registry{
		admin:   d.Admin,
		health:  handler.NewHealthHandler(d.DB),
		index:   handler.NewIndexHandler(d.Catalog, d.Resumes, d.Admin),
		auth:    handler.NewAuthHandler(d.Auth, d.Admin, d.SecureCookie),
		catalog: handler.NewCatalogHandler(d.Catalog),
		resumes: handler.NewResumeHandler(d.Resumes, d.UploadMaxBytes),
		events:  d.Events,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	adminOnly := r.admin.Middleware()

	r.health.RegisterRoutes(app)
	r.index.RegisterRoutes(app)
	r.auth.RegisterRoutes(app)
	r.resumes.RegisterRoutes(app, adminOnly)
	r.catalog.RegisterRoutes(app, adminOnly)
	if r.events != nil {
		r.events.RegisterRoutes(app)
	}
}
