package interfaces

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// AnalysisService orchestrates cached, fault-tolerant aggregation of
// market data and the downstream analysis generation step.
type AnalysisService interface {
	// Price returns the cached or freshly fetched quote for a symbol
	Price(ctx context.Context, symbol string) (*models.PriceResult, error)

	// Fundamentals returns the aggregated statement bundle for a symbol.
	// Individual series degrade to empty on upstream failure.
	Fundamentals(ctx context.Context, symbol string, period models.Period, limit int) (*models.FundamentalsResult, error)

	// News returns recent news for a symbol within the optional date range
	News(ctx context.Context, symbol, from, to string, limit int) (*models.NewsResult, error)

	// Resolve searches ticker candidates for a free-text query (best effort)
	Resolve(ctx context.Context, query, exchange string) *models.ResolveResult

	// ResolveSymbol maps free text to a single ticker symbol (best effort)
	ResolveSymbol(ctx context.Context, input string) string

	// Analyze assembles the deep-dive data set, builds the prompt, and
	// runs the generation step
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Analysis, error)
}
