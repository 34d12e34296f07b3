package v1

import (
	"context"
	"net/http"
	"time"

	"jobbridge-backend/config"
	"jobbridge-backend/internal/delivery/http/middleware"
	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/auth"
	"jobbridge-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ViewUC        domain.ViewUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	MessageUC     domain.MessageUsecase
	ProfileUC     domain.ProfileUsecase
	OnboardingUC  domain.OnboardingUsecase
	AdminUC       domain.AdminUsecase
	JWKSProvider  *auth.Provider
	Config        *config.Config
	DBPool        *pgxpool.Pool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok", "redis": "ok"}
		if deps.DBPool != nil {
			if err := deps.DBPool.Ping(ctx); err != nil {
				checks["database"] = "unreachable"
			}
		}
		if err := redis.HealthCheck(ctx); err != nil {
			checks["redis"] = "unavailable"
		}
		response.Success(c, http.StatusOK, "System operational", checks)
	})

	// Public consent endpoint (guardian mail link), strictly rate limited
	consent := v1.Group("")
	consent.Use(middleware.RateLimitMiddleware(middleware.ConsentRateLimitConfig()))

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes: authentication first, then per-request view resolution
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	protected.Use(middleware.EffectiveView(deps.ViewUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewViewHandler(protected, deps.ViewUC)
		NewJobHandler(protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewMessageHandler(protected, deps.MessageUC)
		NewProfileHandler(protected, deps.ProfileUC)
		NewOnboardingHandler(consent, protected, deps.OnboardingUC)
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}
