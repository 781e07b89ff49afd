// Package app wires configuration, storage, clients, and services into a
// single container shared by the server entrypoint and tests.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/Jayashbyhedger/Finance-Website/internal/clients/eodhd"
	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/interfaces"
	"github.com/Jayashbyhedger/Finance-Website/internal/services/account"
	"github.com/Jayashbyhedger/Finance-Website/internal/services/portfolio"
	"github.com/Jayashbyhedger/Finance-Website/internal/storage/surrealdb"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	QuoteClient      interfaces.QuoteClient
	PortfolioService interfaces.PortfolioService
	AccountService   interfaces.AccountService
	StartupTime      time.Time
}

// NewApp initializes all services, clients, and storage.
// configPath may be empty, in which case FINANCE_CONFIG and then the default
// finance.toml location are checked.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("FINANCE_CONFIG")
	}
	if configPath == "" {
		configPath = "finance.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	// Price lookup is a hard dependency: every trade and portfolio view
	// needs live prices, so refuse to start without a key.
	apiKey, err := common.ResolveAPIKey(config)
	if err != nil {
		return nil, fmt.Errorf("EODHD API key is required: %w", err)
	}

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	quoteClient := eodhd.NewClient(apiKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	)

	portfolioService := portfolio.NewService(storageManager, quoteClient, logger)
	accountService := account.NewService(storageManager, config, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		QuoteClient:      quoteClient,
		PortfolioService: portfolioService,
		AccountService:   accountService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
