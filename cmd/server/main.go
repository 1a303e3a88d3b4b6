package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/loantrack/pkg/app"
	"github.com/amirasaad/loantrack/pkg/config"
	"github.com/amirasaad/loantrack/webapi"
	log "github.com/charmbracelet/log"
)

// @title Loantrack API
// @version 1.0.0
// @description REST API for tracking loans and payments
// @host localhost:8000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	a, err := app.NewFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}
