package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/finsight/internal/clients/fmp"
	"github.com/bobmcallan/finsight/internal/clients/gemini"
	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/services/analysis"
)

// App holds the initialized clients and services shared by the server.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	FMPClient       interfaces.MarketDataClient
	GeminiClient    interfaces.GenerationClient
	AnalysisService interfaces.AnalysisService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and wires up clients, caches, and the
// analysis service. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config path resolution: explicit path, FINSIGHT_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("FINSIGHT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finsight.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finsight.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	if config.Clients.FMP.APIKey == "" {
		return nil, fmt.Errorf("FMP API key not configured (set FMP_API_KEY or clients.fmp.api_key)")
	}

	fmpClient := fmp.NewClient(config.Clients.FMP.APIKey,
		fmp.WithBaseURL(config.Clients.FMP.BaseURL),
		fmp.WithLogger(logger),
		fmp.WithRateLimit(config.Clients.FMP.RateLimit),
		fmp.WithTimeout(config.Clients.FMP.GetTimeout()),
	)

	// Gemini is optional: without a key the analyze endpoint reports a
	// generation error while the data endpoints keep working.
	var genClient interfaces.GenerationClient
	if config.Clients.Gemini.APIKey != "" {
		gc, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			genClient = gc
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - AI analysis will be unavailable")
	}

	caches := analysis.NewCaches(config.Cache)
	analysisService := analysis.NewService(fmpClient, genClient, caches, logger)

	a := &App{
		Config:          config,
		Logger:          logger,
		FMPClient:       fmpClient,
		GeminiClient:    genClient,
		AnalysisService: analysisService,
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
