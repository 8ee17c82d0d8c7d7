// Package analysis provides the aggregation and resilience layer: symbol
// resolution, per-series fallback policies, TTL caching, and deterministic
// assembly of fetched data into the analysis prompt.
package analysis

import (
	"context"
	"time"

	"github.com/bobmcallan/finsight/internal/cache"
	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

// Capability names dispatched through the registry.
const (
	CapSearch           = "search"
	CapAnalystEstimates = "analyst_estimates"
	CapDividendHistory  = "dividend_history"
	CapDividendCalendar = "dividend_calendar"
	CapFinancialGrowth  = "financial_growth"
	CapInsiderTrades    = "insider_trades"
)

// CapabilityRequest carries the arguments for a registry-dispatched fetch.
// Only the fields a capability needs are consulted.
type CapabilityRequest struct {
	Symbol   string
	Exchange string
	Period   models.Period
	Limit    int
}

// Capability is one optional upstream fetch. Failures are absorbed by the
// optional-call policy, never surfaced to handlers.
type Capability func(ctx context.Context, req CapabilityRequest) (models.Series, error)

// Registry maps capability names to fetch functions. It is populated at
// startup; a missing entry is the defined "capability absent" case and is
// handled identically to a failed call.
type Registry map[string]Capability

// NewRegistry builds the capability registry over a market-data client.
func NewRegistry(client interfaces.MarketDataClient) Registry {
	return Registry{
		CapSearch: func(ctx context.Context, req CapabilityRequest) (models.Series, error) {
			return client.SearchSymbol(ctx, req.Symbol, req.Exchange, req.Limit)
		},
		CapAnalystEstimates: func(ctx context.Context, req CapabilityRequest) (models.Series, error) {
			return client.GetAnalystEstimates(ctx, req.Symbol, req.Period, req.Limit)
		},
		CapDividendHistory: func(ctx context.Context, req CapabilityRequest) (models.Series, error) {
			return client.GetDividendHistory(ctx, req.Symbol, req.Limit)
		},
		CapDividendCalendar: func(ctx context.Context, req CapabilityRequest) (models.Series, error) {
			return client.GetDividendCalendar(ctx, req.Symbol)
		},
		CapFinancialGrowth: func(ctx context.Context, req CapabilityRequest) (models.Series, error) {
			return client.GetFinancialGrowth(ctx, req.Symbol, req.Period, req.Limit)
		},
		CapInsiderTrades: func(ctx context.Context, req CapabilityRequest) (models.Series, error) {
			return client.GetInsiderTrades(ctx, req.Symbol, req.Limit)
		},
	}
}

// Caches groups the per-family TTL caches. They are constructed once at
// startup and injected, so tests can isolate cache state per instance.
type Caches struct {
	Price        *cache.Cache[models.Series]
	News         *cache.Cache[models.Series]
	Fundamentals *cache.Cache[models.FundamentalsBundle]
}

// NewCaches builds the cache set from configuration.
func NewCaches(cfg common.CacheConfig) *Caches {
	return &Caches{
		Price:        cache.New[models.Series](cfg.GetPriceTTL(), cfg.MaxItems),
		News:         cache.New[models.Series](cfg.GetNewsTTL(), cfg.MaxItems),
		Fundamentals: cache.New[models.FundamentalsBundle](cfg.GetFundamentalsTTL(), cfg.MaxItems),
	}
}

// Service implements AnalysisService
type Service struct {
	fmp      interfaces.MarketDataClient
	gen      interfaces.GenerationClient
	registry Registry
	caches   *Caches
	logger   *common.Logger
	now      func() time.Time
}

// NewService creates a new analysis service. gen may be nil, in which case
// Analyze reports a generation failure without attempting the call.
func NewService(
	fmp interfaces.MarketDataClient,
	gen interfaces.GenerationClient,
	caches *Caches,
	logger *common.Logger,
) *Service {
	return &Service{
		fmp:      fmp,
		gen:      gen,
		registry: NewRegistry(fmp),
		caches:   caches,
		logger:   logger,
		now:      time.Now,
	}
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
