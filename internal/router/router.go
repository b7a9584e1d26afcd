// Package router assembles the Gin engine: middleware, API routes, docs,
// health, and metrics.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"equitylens/internal/config"
	_ "equitylens/internal/docs" // Import swagger docs
	"equitylens/internal/handlers"
	"equitylens/internal/metrics"
	"equitylens/internal/middleware"
	"equitylens/internal/services"
)

// Services groups the business logic the routes delegate to.
type Services struct {
	Conversions services.ConversionServicer
	Waterfalls  services.WaterfallServicer
	Scenarios   services.ScenarioServicer
}

// New builds the router. m may be nil, in which case /metrics is not served.
func New(cfg *config.Config, svc Services, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.HTTPMetrics(m))
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", middleware.APIKeyHeader, middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	conversionHandler := handlers.NewConversionHandler(svc.Conversions)
	waterfallHandler := handlers.NewWaterfallHandler(svc.Waterfalls)
	scenarioHandler := handlers.NewScenarioHandler(svc.Scenarios)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(cfg.APIKey))

	v1.POST("/conversions", conversionHandler.Convert)

	waterfall := v1.Group("/waterfall")
	waterfall.POST("", waterfallHandler.Distribute)
	waterfall.POST("/curve", waterfallHandler.Curve)

	v1.POST("/scenarios/evaluate", scenarioHandler.Evaluate)

	return router
}

// NewServices wires the default service implementations from configuration.
func NewServices(cfg *config.Config, m *metrics.Metrics) Services {
	conversions := services.NewConversionService(m)
	waterfalls := services.NewWaterfallService(m, cfg.CurveWorkers, cfg.MaxCurvePoints)
	return Services{
		Conversions: conversions,
		Waterfalls:  waterfalls,
		Scenarios:   services.NewScenarioService(conversions, waterfalls),
	}
}
