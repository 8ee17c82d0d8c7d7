// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// MarketDataClient provides typed access to the market-data provider.
// Each accessor maps one logical query to a single upstream GET and
// returns the decoded body, or an error on transport/HTTP failure.
type MarketDataClient interface {
	// GetQuote retrieves the current price quote
	GetQuote(ctx context.Context, symbol string) (models.Series, error)

	// GetProfile retrieves the company profile
	GetProfile(ctx context.Context, symbol string) (models.Series, error)

	// GetIncomeStatement retrieves income statements for the period
	GetIncomeStatement(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error)

	// GetBalanceSheet retrieves balance sheets. TTM is not available
	// upstream; a TTM period is served as annual.
	GetBalanceSheet(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error)

	// GetCashFlow retrieves cash flow statements for the period
	GetCashFlow(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error)

	// GetKeyMetrics retrieves key metrics for the period
	GetKeyMetrics(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error)

	// GetRatios retrieves financial ratios for the period
	GetRatios(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error)

	// GetPeers retrieves the peer group for a symbol
	GetPeers(ctx context.Context, symbol string) (models.Series, error)

	// GetNews retrieves news items; from/to are optional YYYY-MM-DD bounds
	GetNews(ctx context.Context, symbol, from, to string, limit int) (models.Series, error)

	// SearchSymbol resolves free text to ticker candidates
	SearchSymbol(ctx context.Context, query, exchange string, limit int) (models.Series, error)

	// GetAnalystEstimates retrieves forward EPS/revenue estimates
	GetAnalystEstimates(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error)

	// GetDividendHistory retrieves the historical dividend series
	GetDividendHistory(ctx context.Context, symbol string, limit int) (models.Series, error)

	// GetDividendCalendar retrieves upcoming dividend dates
	GetDividendCalendar(ctx context.Context, symbol string) (models.Series, error)

	// GetFinancialGrowth retrieves growth rates for the period
	GetFinancialGrowth(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error)

	// GetInsiderTrades retrieves recent insider trading activity
	GetInsiderTrades(ctx context.Context, symbol string, limit int) (models.Series, error)
}

// GenerationClient produces the analysis text from an assembled prompt.
type GenerationClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// Model returns the configured model identifier
	Model() string
}
