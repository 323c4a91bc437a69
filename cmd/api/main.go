package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard-backend/config"
	_ "jobboard-backend/docs" // Important for Swagger
	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/delivery/http/middleware"
	v1 "jobboard-backend/internal/delivery/http/v1"
	"jobboard-backend/internal/repository/postgres"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/database"
	"jobboard-backend/pkg/email"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/redis"
	"jobboard-backend/pkg/security"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Board API
// @version         1.0
// @description     Job board backend: jobs, companies, applications, notifications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "env", cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	secLog := security.NewSecurityLogger("jobboard-backend", cfg.Environment)
	defer func() { _ = secLog.Sync() }()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(context.Background(), dbPool); err != nil {
			logger.Log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.Connect(context.Background(), redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory counters", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	roleRepo := postgres.NewRoleRepository(dbPool)
	tokenRepo := postgres.NewTokenRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	savedJobRepo := postgres.NewSavedJobRepository(dbPool)
	mentorRepo := postgres.NewMentorRepository(dbPool)
	dashboardRepo := postgres.NewDashboardRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - employers get in-app notifications only")
	}
	notifier := usecase.NewNotifier(notificationRepo, emailService, cfg.FrontendURL)

	// 7. Setup UseCases
	gate := authz.NewGate()
	validate := validation.New()
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts: cfg.LoginMaxAttempts,
		Decay:       time.Duration(cfg.LoginDecaySeconds) * time.Second,
	}, redisClient)

	authUC := usecase.NewAuthUsecase(userRepo, roleRepo, tokenRepo, loginTracker, secLog, usecase.AuthConfig{
		SingleSession: cfg.SingleSession,
		BcryptCost:    cfg.BcryptCost,
	})
	userUC := usecase.NewUserUsecase(userRepo, roleRepo, gate, secLog)
	roleUC := usecase.NewRoleUsecase(roleRepo, gate)
	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo, gate)
	companyUC := usecase.NewCompanyUsecase(companyRepo, gate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, userRepo, notifier, gate, validate, usecase.ApplicationConfig{
		OpenJobsOnly: cfg.ApplyOpenJobsOnly,
	})
	savedJobUC := usecase.NewSavedJobUsecase(savedJobRepo, jobRepo)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	mentorUC := usecase.NewMentorUsecase(mentorRepo, gate)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo)
	toolsUC := usecase.NewToolsUsecase(jobRepo)

	healthChecks := map[string]usecase.HealthCheck{"database": dbPool.Ping}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		RoleUC:         roleUC,
		JobUC:          jobUC,
		CompanyUC:      companyUC,
		ApplicationUC:  applicationUC,
		SavedJobUC:     savedJobUC,
		NotificationUC: notificationUC,
		MentorUC:       mentorUC,
		DashboardUC:    dashboardUC,
		ToolsUC:        toolsUC,
		HealthUC:       healthUC,
		RateLimiter:    middleware.NewRateLimiter(redisClient, secLog),
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Let in-flight employer e-mails finish before the pool closes.
	notifier.Wait()

	logger.Log.Info("Server exiting")
}
