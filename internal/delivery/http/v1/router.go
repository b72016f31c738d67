package v1

import (
	"net/http"
	"time"

	"go-jobtrack-backend/config"
	"go-jobtrack-backend/internal/delivery/http/middleware"
	"go-jobtrack-backend/internal/delivery/http/response"
	"go-jobtrack-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ApplicationUC domain.ApplicationUsecase
	AnalyticsUC   domain.AnalyticsUsecase
	ExportUC      domain.ExportUsecase
	ShareUC       domain.ShareLinkUsecase
	UserUC        domain.UserUsecase
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Limit:  deps.Config.RateLimitGlobalThreshold,
		Window: time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
	}))

	// Uploaded profile photos
	r.Static("/uploads", deps.Config.UploadDir)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewAnalyticsHandler(protected, deps.AnalyticsUC)
		NewExportHandler(protected, deps.ExportUC)
		NewUserHandler(protected, deps.UserUC)
	}

	// Share links: creation is protected, resolution is public
	NewShareHandler(v1, protected, deps.ShareUC, deps.Config.FrontendURL)

	return r
}
