package analysis

import (
	"context"
	"errors"

	"github.com/bobmcallan/finsight/internal/models"
)

// Default limits for the deep-dive fetch set.
const (
	historyYears   = 5
	estimatesLimit = 8
	dividendsLimit = 200
	insiderLimit   = 20
	newsLimit      = 10
)

// deepDive holds every series fetched for one analysis request. It is
// assembled once, then serialized into the prompt in a fixed order; the
// contents are identical regardless of fetch order.
type deepDive struct {
	Symbol  string
	Quote   models.Series
	Profile models.Series

	// Current-period set: TTM with annual fallback, except balance
	// (annual with quarter fallback, since no TTM balance sheet exists).
	Income     models.Series
	Balance    models.Series
	Cashflow   models.Series
	KeyMetrics models.Series
	Ratios     models.Series

	// Five-year annual histories.
	IncomeHist     models.Series
	BalanceHist    models.Series
	CashflowHist   models.Series
	KeyMetricsHist models.Series
	RatiosHist     models.Series

	// Optional extended series, each degrading independently to empty.
	Estimates        models.Series
	DividendHistory  models.Series
	DividendCalendar models.Series
	FinancialGrowth  models.Series
	InsiderTrades    models.Series

	Peers models.Series
	News  models.Series
}

// Analyze resolves the requested symbol, assembles the deep-dive data set
// with per-series fallback, and runs the generation step over the
// deterministic prompt. Data-fetch exhaustion on a required series and
// generation failures are surfaced as distinct error classes.
func (s *Service) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Analysis, error) {
	symbol := s.ResolveSymbol(ctx, req.Symbol)

	dd, err := s.collectDeepDive(ctx, symbol, req.From, req.To)
	if err != nil {
		return nil, err
	}

	asOf := s.now().UTC().Format("2006-01-02 15:04")
	prompt := buildAnalysisPrompt(dd, asOf)

	if s.gen == nil {
		return nil, &GenerationError{Err: errors.New("generation client not configured")}
	}

	content, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	return &models.Analysis{
		Symbol:     symbol,
		AsOfUTC:    asOf,
		Model:      s.gen.Model(),
		AnalysisMD: content,
	}, nil
}

// collectDeepDive fetches every series for one analysis. Fetches are
// issued sequentially; no series depends on another's result.
func (s *Service) collectDeepDive(ctx context.Context, symbol, from, to string) (*deepDive, error) {
	dd := &deepDive{Symbol: symbol}

	dd.Quote = s.fetchWithDefault(ctx, "quote", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetQuote(ctx, symbol)
	}, models.EmptySeries())
	dd.Profile = s.fetchWithDefault(ctx, "profile", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetProfile(ctx, symbol)
	}, models.EmptySeries())

	var err error
	dd.Income, err = s.ttmThenAnnual(ctx, "income",
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetIncomeStatement(ctx, symbol, models.PeriodTTM, 1)
		},
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetIncomeStatement(ctx, symbol, models.PeriodAnnual, 1)
		})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	dd.Cashflow, err = s.ttmThenAnnual(ctx, "cashflow",
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetCashFlow(ctx, symbol, models.PeriodTTM, 1)
		},
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetCashFlow(ctx, symbol, models.PeriodAnnual, 1)
		})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	// Balance has no TTM form: annual first, one hop to quarter when the
	// annual series comes back empty.
	dd.Balance = s.fetchWithDefault(ctx, "balance", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetBalanceSheet(ctx, symbol, models.PeriodAnnual, 1)
	}, models.EmptySeries())
	if dd.Balance.Empty() {
		dd.Balance = s.fetchWithDefault(ctx, "balance_quarter", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetBalanceSheet(ctx, symbol, models.PeriodQuarter, 1)
		}, models.EmptySeries())
	}

	dd.KeyMetrics, err = s.ttmThenAnnual(ctx, "key_metrics",
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetKeyMetrics(ctx, symbol, models.PeriodTTM, 1)
		},
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetKeyMetrics(ctx, symbol, models.PeriodAnnual, 1)
		})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	dd.Ratios, err = s.ttmThenAnnual(ctx, "ratios",
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetRatios(ctx, symbol, models.PeriodTTM, 1)
		},
		func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetRatios(ctx, symbol, models.PeriodAnnual, 1)
		})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	dd.IncomeHist = s.fetchWithDefault(ctx, "income_hist", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetIncomeStatement(ctx, symbol, models.PeriodAnnual, historyYears)
	}, models.EmptySeries())
	dd.BalanceHist = s.fetchWithDefault(ctx, "balance_hist", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetBalanceSheet(ctx, symbol, models.PeriodAnnual, historyYears)
	}, models.EmptySeries())
	dd.CashflowHist = s.fetchWithDefault(ctx, "cashflow_hist", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetCashFlow(ctx, symbol, models.PeriodAnnual, historyYears)
	}, models.EmptySeries())
	dd.KeyMetricsHist = s.fetchWithDefault(ctx, "key_metrics_hist", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetKeyMetrics(ctx, symbol, models.PeriodAnnual, historyYears)
	}, models.EmptySeries())
	dd.RatiosHist = s.fetchWithDefault(ctx, "ratios_hist", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetRatios(ctx, symbol, models.PeriodAnnual, historyYears)
	}, models.EmptySeries())

	dd.Estimates = s.optionalCall(ctx, CapAnalystEstimates, CapabilityRequest{
		Symbol: symbol, Period: models.PeriodAnnual, Limit: estimatesLimit,
	})
	dd.DividendHistory = s.optionalCall(ctx, CapDividendHistory, CapabilityRequest{
		Symbol: symbol, Limit: dividendsLimit,
	})
	dd.DividendCalendar = s.optionalCall(ctx, CapDividendCalendar, CapabilityRequest{
		Symbol: symbol,
	})
	dd.FinancialGrowth = s.optionalCall(ctx, CapFinancialGrowth, CapabilityRequest{
		Symbol: symbol, Period: models.PeriodAnnual, Limit: historyYears,
	})
	dd.InsiderTrades = s.optionalCall(ctx, CapInsiderTrades, CapabilityRequest{
		Symbol: symbol, Limit: insiderLimit,
	})

	dd.Peers = s.fetchWithDefault(ctx, "peers", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetPeers(ctx, symbol)
	}, models.EmptySeries())
	dd.News = s.fetchWithDefault(ctx, "news", func(ctx context.Context) (models.Series, error) {
		return s.fmp.GetNews(ctx, symbol, from, to, newsLimit)
	}, models.EmptySeries())

	return dd, nil
}
