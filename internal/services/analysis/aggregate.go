package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/finsight/internal/models"
)

// Price returns the quote for a symbol, served from the price cache when
// fresh. A quote fetch failure is a hard upstream error: the quote is the
// sole series of this operation, so there is nothing to degrade to.
func (s *Service) Price(ctx context.Context, symbol string) (*models.PriceResult, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	key := fmt.Sprintf("price:%s", sym)

	if data, ok := s.caches.Price.Get(key); ok {
		return &models.PriceResult{Symbol: sym, Data: data, Cached: true}, nil
	}

	data, err := s.fmp.GetQuote(ctx, sym)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	s.caches.Price.Set(key, data)
	return &models.PriceResult{Symbol: sym, Data: data, Cached: false}, nil
}

// Fundamentals returns the aggregated statement bundle for one symbol,
// period, and limit. Each series is fetched independently and degrades to
// an empty series on upstream failure. One series being down, rate
// limited, or not entitled must not abort the bundle. Balance-sheet
// requests under a TTM period are rewritten to annual before dispatch.
func (s *Service) Fundamentals(ctx context.Context, symbol string, period models.Period, limit int) (*models.FundamentalsResult, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	key := fmt.Sprintf("fund:%s:%s:%d", sym, period, limit)

	if bundle, ok := s.caches.Fundamentals.Get(key); ok {
		return &models.FundamentalsResult{Symbol: sym, Period: period, Data: bundle, Cached: true}, nil
	}

	balancePeriod := period.BalancePeriod()

	bundle := models.FundamentalsBundle{
		Income: s.fetchWithDefault(ctx, "income", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetIncomeStatement(ctx, sym, period, limit)
		}, models.EmptySeries()),
		Balance: s.fetchWithDefault(ctx, "balance", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetBalanceSheet(ctx, sym, balancePeriod, limit)
		}, models.EmptySeries()),
		Cashflow: s.fetchWithDefault(ctx, "cashflow", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetCashFlow(ctx, sym, period, limit)
		}, models.EmptySeries()),
		KeyMetrics: s.fetchWithDefault(ctx, "key_metrics", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetKeyMetrics(ctx, sym, period, limit)
		}, models.EmptySeries()),
		Ratios: s.fetchWithDefault(ctx, "ratios", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetRatios(ctx, sym, period, limit)
		}, models.EmptySeries()),
		Profile: s.fetchWithDefault(ctx, "profile", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetProfile(ctx, sym)
		}, models.EmptySeries()),
		Peers: s.fetchWithDefault(ctx, "peers", func(ctx context.Context) (models.Series, error) {
			return s.fmp.GetPeers(ctx, sym)
		}, models.EmptySeries()),
	}

	s.caches.Fundamentals.Set(key, bundle)
	return &models.FundamentalsResult{Symbol: sym, Period: period, Data: bundle, Cached: false}, nil
}

// News returns recent news for a symbol within the optional date range,
// served from the news cache when fresh.
func (s *Service) News(ctx context.Context, symbol, from, to string, limit int) (*models.NewsResult, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	key := fmt.Sprintf("news:%s:%s:%s:%d", sym, from, to, limit)

	if data, ok := s.caches.News.Get(key); ok {
		return &models.NewsResult{Symbol: sym, Data: data, Cached: true}, nil
	}

	data, err := s.fmp.GetNews(ctx, sym, from, to, limit)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	s.caches.News.Set(key, data)
	return &models.NewsResult{Symbol: sym, Data: data, Cached: false}, nil
}
