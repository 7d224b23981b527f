package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "carehub/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"carehub/internal/auth"
	"carehub/internal/cache"
	"carehub/internal/config"
	"carehub/internal/db"
	"carehub/internal/events"
	"carehub/internal/handler"
	"carehub/internal/logger"
	"carehub/internal/repository"
	"carehub/internal/router"
	"carehub/internal/service"
	"carehub/internal/storage"
)

// @title CareHub API
// @version 1.0
// @description Caregiver marketplace API with registration, jobs, appointments, reports and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Load()
	log := logger.NewFromEnv().With("service", "carehub")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DB, log)
	if err != nil {
		log.InternalError("database init", err)
		os.Exit(1)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, recreating schema")
		err = db.CreateSchema(ctx, gormDB)
	} else {
		err = db.EnsureSchema(ctx, gormDB)
	}
	if err != nil {
		log.InternalError("schema", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unreachable, refresh tokens will be rejected", "addr", cfg.RedisAddr, "err", err)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPublisher := events.NewAMQPPublisher(cfg.AMQPURL)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	photos, err := storage.NewLocalPhotoStore(cfg.UploadDir)
	if err != nil {
		log.InternalError("photo storage", err)
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	caregiverRepo := repository.NewCaregiverRepository(gormDB)
	memberRepo := repository.NewMemberRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, photos, publisher, log)
	userService := service.NewUserService(userRepo, jobRepo, memberRepo, publisher, log)
	jobService := service.NewJobService(jobRepo, caregiverRepo, memberRepo, publisher, log)
	caregiverService := service.NewCaregiverService(caregiverRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, caregiverRepo, memberRepo, publisher, log)
	reportService := service.NewReportService(reportRepo)
	provisionService := service.NewProvisionService(gormDB, log)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(e, cfg, log, jwtService, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Job:         handler.NewJobHandler(jobService),
		Caregiver:   handler.NewCaregiverHandler(caregiverService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Report:      handler.NewReportHandler(reportService),
		Seed:        handler.NewSeedHandler(provisionService),
	})

	if cfg.AdminAPIKey == "" {
		log.Warn("ADMIN_API_KEY is empty, admin routes are disabled")
	}
	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	log.Info("swagger documentation available", "url", "http://"+swaggerHost+"/swagger/index.html")

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.InternalError("server start", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.InternalError("server shutdown", err)
	}
	log.Info("server stopped")
}
