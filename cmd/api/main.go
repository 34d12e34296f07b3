package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobbridge-backend/config"
	_ "jobbridge-backend/docs" // Important for Swagger
	v1 "jobbridge-backend/internal/delivery/http/v1"
	"jobbridge-backend/internal/repository/postgres"
	"jobbridge-backend/internal/usecase"
	"jobbridge-backend/pkg/audit"
	"jobbridge-backend/pkg/auth"
	"jobbridge-backend/pkg/database"
	"jobbridge-backend/pkg/email"
	"jobbridge-backend/pkg/logger"
	"jobbridge-backend/pkg/redis"
)

// @title           JobBridge Backend API
// @version         1.0
// @description     Regional job marketplace backend using Clean Architecture.
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

	// 2. Setup Logger and Audit Trail
	logger.Init()
	logger.Log.Info("Starting jobbridge backend", "port", cfg.Port)
	trail := audit.Init("jobbridge-backend")
	defer trail.Sync()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Mirror audit events into the datastore alongside the stdout trail
	trail.SetPersistFunc(func(ctx context.Context, event audit.Event) error {
		details, _ := json.Marshal(event.Details)
		_, err := dbPool.Exec(ctx,
			`INSERT INTO audit_events (event, actor_id, subject_id, request_id, details, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			string(event.Event), event.ActorID, event.SubjectID, event.RequestID, details, event.Timestamp)
		return err
	})

	// Elevated pool is optional; annotation falls back to the normal pool
	servicePool := database.NewServiceConnection(cfg.DBServiceUrl)
	if servicePool != nil {
		defer servicePool.Close()
	}

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	marketRepo := postgres.NewMarketRepository(dbPool)
	demoSessionRepo := postgres.NewDemoSessionRepository(dbPool)
	overrideRepo := postgres.NewRoleOverrideRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	demoJobRepo := postgres.NewDemoJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	demoApplicationRepo := postgres.NewDemoApplicationRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)
	demoMessageRepo := postgres.NewDemoMessageRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	onboardingRepo := postgres.NewOnboardingRepository(dbPool)

	// Annotation reads cross rows the normal credential cannot see; use the
	// elevated pool when configured.
	annotationRepo := applicationRepo
	if servicePool != nil {
		annotationRepo = postgres.NewApplicationRepository(servicePool)
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - guardian consent mail will be unavailable")
	}

	// 7. Setup UseCases
	overrideTTL := time.Duration(cfg.OverrideTTLMinutes) * time.Minute
	authUC := usecase.NewAuthUsecase(profileRepo)
	viewUC := usecase.NewViewUsecase(demoSessionRepo, overrideRepo, profileRepo, trail, overrideTTL)
	jobUC := usecase.NewJobUsecase(jobRepo, demoJobRepo, annotationRepo, demoApplicationRepo, profileRepo, marketRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, demoApplicationRepo, jobRepo, demoJobRepo, profileRepo, trail)
	messageUC := usecase.NewMessageUsecase(messageRepo, demoMessageRepo, applicationRepo, demoApplicationRepo, jobRepo, demoJobRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, marketRepo)
	onboardingUC := usecase.NewOnboardingUsecase(onboardingRepo, emailService, trail, cfg.FrontendURL)
	adminUC := usecase.NewAdminUsecase(adminRepo, profileRepo, jobRepo, onboardingRepo, trail)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ViewUC:        viewUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		MessageUC:     messageUC,
		ProfileUC:     profileUC,
		OnboardingUC:  onboardingUC,
		AdminUC:       adminUC,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
		DBPool:        dbPool,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
