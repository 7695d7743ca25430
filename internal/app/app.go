package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nandhub_backend/internal/config"
	"nandhub_backend/internal/controller"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/service"
	"nandhub_backend/pkg/database"
	"nandhub_backend/pkg/logger"
	"nandhub_backend/pkg/monitoring"
	"nandhub_backend/pkg/security"
	"nandhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	puzzle       *repository.PuzzleRepository
	completeData *repository.PuzzleCompleteDataRepository
	report       *repository.PuzzleReportRepository
	translation  *repository.PuzzleTranslationRepository
	ban          *repository.UserBanRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	puzzle      *service.PuzzleService
	report      *service.ReportService
	translation *service.TranslationService
	ban         *service.BanService
	storage     *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	puzzle     *controller.PuzzleController
	moderation *controller.ModerationController
	health     *controller.HealthController
}

// RegisterConfigCallback adds a hook invoked on every hot reload of
// the config file.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig fans a reloaded config out to the registered callbacks.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		puzzle:       repository.NewPuzzleRepository(db),
		completeData: repository.NewPuzzleCompleteDataRepository(db),
		report:       repository.NewPuzzleReportRepository(db),
		translation:  repository.NewPuzzleTranslationRepository(db),
		ban:          repository.NewUserBanRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ban = service.NewBanService(repos.ban)
	s.auth = service.NewAuthService(repos.user, s.ban, cfg)
	s.user = service.NewUserService(repos.user, s.ban)
	s.translation = service.NewTranslationService(repos.translation)
	s.puzzle = service.NewPuzzleService(db, repos.puzzle, repos.completeData, repos.user, s.translation, rdb)
	s.report = service.NewReportService(repos.report, s.puzzle, repos.user, s.ban, cfg.Moderation)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user, s.storage),
		puzzle:     controller.NewPuzzleController(s.puzzle, s.report, s.translation, s.user),
		moderation: controller.NewModerationController(s.report, s.translation, s.puzzle, s.user, s.ban),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The API degrades gracefully without the frontier cache.
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.report.SetThresholds(newCfg.Moderation)
	})

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("puzzle-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
