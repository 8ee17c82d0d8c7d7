// Package models defines the data types shared across Finsight
package models

// Period selects the reporting window for statement-type series.
type Period string

const (
	PeriodTTM     Period = "ttm"
	PeriodAnnual  Period = "annual"
	PeriodQuarter Period = "quarter"
)

// NormalizePeriod maps free-form input to a known period, defaulting to TTM.
func NormalizePeriod(s string) Period {
	switch Period(s) {
	case PeriodAnnual:
		return PeriodAnnual
	case PeriodQuarter:
		return PeriodQuarter
	default:
		return PeriodTTM
	}
}

// BalancePeriod rewrites TTM to annual. The upstream provider has no
// trailing-twelve-months balance sheet, so TTM requests for that series
// are served from the annual endpoint instead.
func (p Period) BalancePeriod() Period {
	if p == PeriodTTM {
		return PeriodAnnual
	}
	return p
}

// Series is one decoded upstream data series: an ordered list of records
// whose fields are passed through opaquely. An empty Series is the sentinel
// for "unavailable" after fallback policies are exhausted.
type Series []map[string]any

// Empty reports whether the series carries no records.
func (s Series) Empty() bool {
	return len(s) == 0
}

// EmptySeries returns the non-nil sentinel used when a fetch degrades.
func EmptySeries() Series {
	return Series{}
}

// FundamentalsBundle is the fixed-shape mapping of series for one
// fundamentals request. Built once per request and never mutated after
// construction.
type FundamentalsBundle struct {
	Income     Series `json:"income"`
	Balance    Series `json:"balance"`
	Cashflow   Series `json:"cashflow"`
	KeyMetrics Series `json:"key_metrics"`
	Ratios     Series `json:"ratios"`
	Profile    Series `json:"profile"`
	Peers      Series `json:"peers"`
}

// PriceResult is the payload for a price lookup.
type PriceResult struct {
	Symbol string `json:"symbol"`
	Data   Series `json:"data"`
	Cached bool   `json:"cached"`
}

// FundamentalsResult is the payload for a fundamentals bundle request.
type FundamentalsResult struct {
	Symbol string             `json:"symbol"`
	Period Period             `json:"period"`
	Data   FundamentalsBundle `json:"data"`
	Cached bool               `json:"cached"`
}

// NewsResult is the payload for a news request.
type NewsResult struct {
	Symbol string `json:"symbol"`
	Data   Series `json:"data"`
	Cached bool   `json:"cached"`
}

// ResolveResult lists search candidates for a free-text query.
type ResolveResult struct {
	Query    string `json:"query"`
	Exchange string `json:"exchange,omitempty"`
	Results  Series `json:"results"`
}

// AnalyzeRequest asks for a deep-dive analysis. Symbol may be a ticker
// or a free-text company name; it is resolved before any data is fetched.
// From/To optionally bound the news window (YYYY-MM-DD).
type AnalyzeRequest struct {
	Symbol string `json:"symbol"`
	From   string `json:"from_date,omitempty"`
	To     string `json:"to_date,omitempty"`
}

// Analysis is the payload for a deep-dive analysis request.
type Analysis struct {
	Symbol     string `json:"symbol"`
	AsOfUTC    string `json:"as_of_utc"`
	Model      string `json:"model"`
	AnalysisMD string `json:"analysis_md"`
}
