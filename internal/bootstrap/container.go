package bootstrap

import (
	"context"
	"log"
	"time"

	"loan-booklet-be/internal/config"
	"loan-booklet-be/internal/controller"
	"loan-booklet-be/internal/pkg/logger"
	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/internal/repository/memory"
	"loan-booklet-be/internal/repository/unitofwork"
	"loan-booklet-be/internal/service"
	"loan-booklet-be/pkg/renderer"

	"loan-booklet-be/internal/repository/implementation"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BookletController controller.IBookletController
	UserController    controller.IUserController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

// newDraftRepository wires the Redis draft store, degrading to the in-memory
// store when Redis is unreachable so drafting keeps working (without
// durability) while the instance is up.
func newDraftRepository(redisURL string) contract.DraftRepository {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: redisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Drafts held in memory only", err)
		return memory.NewDraftRepository()
	}
	return implementation.NewDraftRepository(rdb)
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	draftRepo := newDraftRepository(cfg.App.RedisURL)

	// Step position is in-memory session state only
	stepRepo := memory.NewStepSessionRepository()

	bookletRenderer := renderer.NewHTTPRenderer(cfg.Renderer.BaseURL, time.Duration(cfg.Renderer.TimeoutSeconds)*time.Second)
	log.Printf("[INFO] Using booklet renderer at %s", cfg.Renderer.BaseURL)

	// 3. Services
	locks := service.NewSubmissionLocks()
	draftService := service.NewDraftService(draftRepo, stepRepo, locks, sysLogger)
	submissionService := service.NewSubmissionService(draftRepo, uowFactory, bookletRenderer, locks, sysLogger)
	userService := service.NewUserService(uowFactory)
	schemeService := service.NewSchemeService()

	// 4. Controllers
	bookletController := controller.NewBookletController(draftService, submissionService, schemeService)
	userController := controller.NewUserController(userService)

	return &Container{
		BookletController: bookletController,
		UserController:    userController,
		Logger:            sysLogger,
	}
}
