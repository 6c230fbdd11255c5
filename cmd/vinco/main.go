package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"vincowealth/internal/app"
	"vincowealth/internal/config"
	"vincowealth/internal/logger"
	"vincowealth/internal/shell"
)

// @title           Vinco Wealth API
// @version         0.1.0
// @description     Local command surface of the Vinco Wealth desktop app: clients, trades, suitability letters and schema status.

// @host      127.0.0.1:1420
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	logger.Init(os.Getenv("VINCO_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store and schema must be ready before anything is served.
	a, err := app.New(ctx, cfg, app.WithWindow(&shell.HeadlessWindow{}))
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer a.Close()

	// The shell reads the token from stdout to authenticate its commands.
	fmt.Printf("VINCO_SESSION_TOKEN=%s\n", a.SessionToken())

	log.Infow("Vinco Wealth backend ready",
		"addr", cfg.ListenAddr,
		"store", a.Store().Path(),
		"schema_version", a.Runner().Version(),
	)
	if !cfg.IsProduction() {
		log.Infof("Swagger documentation available at http://%s/swagger/index.html", cfg.ListenAddr)
	}
	return a.Serve(ctx)
}
