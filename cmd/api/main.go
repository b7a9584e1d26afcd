package main

import (
	"fmt"
	"os"

	"equitylens/internal/config"
	"equitylens/internal/logger"
	"equitylens/internal/metrics"
	"equitylens/internal/router"
	"equitylens/internal/validator"
)

// @title           EquityLens API
// @version         1.0
// @description     EquityLens converts SAFEs and convertible notes at a priced round and models exit proceeds through a liquidation preference waterfall.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key
// @description Shared API key. Only enforced when API_KEY is set.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators before any request is bound
	validator.Register()

	var m *metrics.Metrics
	if appConfig.MetricsEnabled {
		m = metrics.New()
	}

	engine := router.New(appConfig, router.NewServices(appConfig, m), m)

	if appConfig.APIKey == "" {
		log.Warn("API_KEY is not set; /api/v1 is open")
	}
	log.Infow("Curve settings", "workers", appConfig.CurveWorkers, "max_points", appConfig.MaxCurvePoints)
	log.Infof("Starting EquityLens server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
