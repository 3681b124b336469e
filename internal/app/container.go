package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"resume-evaluator/internal/config"
	"resume-evaluator/internal/database"
	"resume-evaluator/internal/database/migration"
	dbpostgres "resume-evaluator/internal/database/postgres"
	"resume-evaluator/internal/database/seeder"
	"resume-evaluator/internal/infrastructure/cache"
	"resume-evaluator/internal/infrastructure/events"
	"resume-evaluator/internal/infrastructure/storage"
	"resume-evaluator/internal/pkg/session"
	"resume-evaluator/internal/repository"
	"resume-evaluator/internal/usecase"
	"resume-evaluator/internal/ws"
	"resume-evaluator/migrations"
)

// Container owns every long lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB      database.DB
	Files   storage.Store
	Cache   *cache.Redis
	Hub     *ws.Hub
	Events  usecase.EventPublisher
	amqp    *events.AMQP
	Catalog *usecase.Catalog
	Resumes *usecase.Resume
	Auth    *usecase.Auth
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	if err := c.prepareSchema(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	files, err := newStore(ctx, cfg.Storage)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Files = files

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	c.Events = c.newPublisher()

	sessions := session.NewHMACService(cfg.Session.Secret, cfg.Session.TTL)
	auth, err := usecase.NewAuthUsecase(cfg.Admin, sessions, c.Cache, logger)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("admin auth: %w", err)
	}
	c.Auth = auth

	roles := repository.NewPostgresJobRoleRepository(db)
	skills := repository.NewPostgresSkillRepository(db)
	resumes := repository.NewPostgresResumeRepository(db)
	c.Catalog = usecase.NewCatalogUsecase(roles, skills, resumes, files, c.Events, logger)
	c.Resumes = usecase.NewResumeUsecase(roles, skills, resumes, files, c.Events, logger)

	return c, nil
}

func (c *Container) prepareSchema(ctx context.Context) error {
	cfg := c.Config.Database
	if cfg.RunMigrations {
		r := migration.Runner{FS: migrations.FS, Dir: cfg.MigrationsDir, Logger: c.Logger}
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.RunSeeders {
		r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
		if err := r.Run(ctx, c.DB); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}

func newStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		s, err := storage.NewS3(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		return s, nil
	default:
		return storage.NewLocal(cfg.UploadDir), nil
	}
}

// newPublisher always feeds the websocket hub and adds the message bus when
// one is configured and reachable.
func (c *Container) newPublisher() usecase.EventPublisher {
	pubs := events.Multi{ws.NewNotifier(c.Hub)}

	if url := c.Config.Events.AMQPURL; url != "" {
		a, err := events.NewAMQP(url, c.Config.Events.Exchange, c.Logger)
		if err != nil {
			c.Logger.Printf("[Events] AMQP unavailable, continuing with websocket only: %v", err)
		} else {
			c.amqp = a
			pubs = append(pubs, a)
		}
	}
	return pubs
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.amqp != nil {
		errs = append(errs, c.amqp.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
