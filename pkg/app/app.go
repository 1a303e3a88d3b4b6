// Package app wires configuration, infrastructure, and services together.
package app

import (
	"log/slog"

	"github.com/amirasaad/loantrack/infra"
	infracache "github.com/amirasaad/loantrack/infra/cache"
	infrarepo "github.com/amirasaad/loantrack/infra/repository"
	"github.com/amirasaad/loantrack/pkg/cache"
	"github.com/amirasaad/loantrack/pkg/config"
	"github.com/amirasaad/loantrack/pkg/repository"
	authsvc "github.com/amirasaad/loantrack/pkg/service/auth"
	loansvc "github.com/amirasaad/loantrack/pkg/service/loan"
	paymentsvc "github.com/amirasaad/loantrack/pkg/service/payment"
	usersvc "github.com/amirasaad/loantrack/pkg/service/user"
)

// App holds the configured services used by the web layer.
type App struct {
	Config         *config.App
	Logger         *slog.Logger
	LoanService    *loansvc.Service
	PaymentService *paymentsvc.Service
	UserService    *usersvc.Service
	AuthService    *authsvc.Service
}

// New builds an App from already-constructed dependencies. Used by tests to
// inject mocks.
func New(
	cfg *config.App,
	uow repository.UnitOfWork,
	balances cache.BalanceCache,
	logger *slog.Logger,
) *App {
	return &App{
		Config:         cfg,
		Logger:         logger,
		LoanService:    loansvc.New(uow, balances, cfg.BalanceCache.TTL, logger),
		PaymentService: paymentsvc.New(uow, balances, logger),
		UserService:    usersvc.New(uow, logger),
		AuthService:    authsvc.New(uow, cfg.Auth.Jwt, logger),
	}
}

// NewFromConfig connects to Postgres, runs schema migration, picks the
// balance cache backend (Redis when configured, in-memory otherwise), and
// wires all services.
func NewFromConfig(cfg *config.App, logger *slog.Logger) (*App, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, err
	}
	if err := infrarepo.AutoMigrate(db); err != nil {
		return nil, err
	}

	var balances cache.BalanceCache
	if cfg.Redis.URL != "" {
		balances, err = infracache.NewRedisBalanceCache(
			cfg.Redis.URL, cfg.BalanceCache.Prefix, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("balance cache backend", "backend", "redis")
	} else {
		balances = infracache.NewMemoryBalanceCache()
		logger.Info("balance cache backend", "backend", "memory")
	}

	return New(cfg, infrarepo.NewUoW(db), balances, logger), nil
}
