package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bobmcallan/finsight/internal/models"
)

// promptNewsItems caps the news list in the base prompt block.
const promptNewsItems = 5

// seriesJSON serializes a series for prompt embedding. json.Marshal sorts
// map keys, so the output is deterministic for identical data.
func seriesJSON(s models.Series) string {
	if s == nil {
		s = models.EmptySeries()
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// buildAnalysisPrompt assembles the deep-dive prompt in a fixed order:
// the instruction preamble, the base data block, then the extras block
// (histories, estimates, dividends, insider trades).
func buildAnalysisPrompt(dd *deepDive, asOf string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`You are a thorough value investor writing an in-depth deep-dive analysis of %s.
Focus on substance and valuation. This is educational material, not investment advice.
If data is missing, say so explicitly. Respond as structured Markdown with clear
section headings, tables where useful, and short formulas.

Priorities, in order:
1) P/E first: place the current P/E against its own 5y/10y history and relative to sector/peers.
   Include forward P/E versus consensus estimates where available, and a bear/base/bull
   EPS sensitivity table with implied fair prices and upside/downside.
2) Then further multiples: P/FCF, EV/EBIT, EV/EBITDA, PEG where meaningful.
3) Quality and profitability: margins, ROIC/ROE, cash conversion.
4) Balance sheet and liquidity: leverage, interest coverage, working capital.
5) Cash flows and capital allocation: OCF/FCF trend, dividends, buybacks.
6) Peers: relative positioning on multiples and profitability.
7) Catalysts and risks: at most 4-6 core points.
8) News impulse: only what can move valuation or earnings, no noise.

Label every figure with its unit and period (TTM, annual, quarter) and cite FMP as
the source. Flag missing or uncertain estimates explicitly.

`, dd.Symbol))

	sb.WriteString("Input data (FMP, already fetched):\n")
	sb.WriteString(fmt.Sprintf("- Profile: %s\n", seriesJSON(dd.Profile)))
	sb.WriteString(fmt.Sprintf("- Quote: %s\n", seriesJSON(dd.Quote)))
	sb.WriteString(fmt.Sprintf("- Key Metrics: %s\n", seriesJSON(dd.KeyMetrics)))
	sb.WriteString(fmt.Sprintf("- Ratios: %s\n", seriesJSON(dd.Ratios)))
	sb.WriteString(fmt.Sprintf("- Income Statement: %s\n", seriesJSON(dd.Income)))
	sb.WriteString(fmt.Sprintf("- Balance Sheet: %s\n", seriesJSON(dd.Balance)))
	sb.WriteString(fmt.Sprintf("- Cash Flow: %s\n", seriesJSON(dd.Cashflow)))
	sb.WriteString(fmt.Sprintf("- Peers: %s\n", seriesJSON(dd.Peers)))

	news := dd.News
	if len(news) > promptNewsItems {
		news = news[:promptNewsItems]
	}
	sb.WriteString(fmt.Sprintf("- News (shortlist): %s\n", seriesJSON(news)))

	sb.WriteString(fmt.Sprintf(`
Additional time series (last %d years, annual; source: FMP):
- Income Statements (5y): %s
- Balance Sheets (5y): %s
- Cash Flow Statements (5y): %s
- Key Metrics (5y): %s
- Financial Ratios (5y): %s
- Financial Growth (5y): %s

Analyst estimates (if available; typically forward EPS/revenue):
- Estimates: %s

Dividends (if available):
- History: %s
- Upcoming dates: %s

Insider trades (if available):
- Recent activity: %s

Note to the assistant: use the estimates for forward P/E, EPS scenarios
(bear/base/bull) and dividend development (payout, yield, continuity). Where
data is missing, state it clearly and work with what is available.

Disclaimer line to include at the end: this is not investment advice, for
educational purposes only. Source: FMP; data as of %s UTC.
`,
		historyYears,
		seriesJSON(dd.IncomeHist),
		seriesJSON(dd.BalanceHist),
		seriesJSON(dd.CashflowHist),
		seriesJSON(dd.KeyMetricsHist),
		seriesJSON(dd.RatiosHist),
		seriesJSON(dd.FinancialGrowth),
		seriesJSON(dd.Estimates),
		seriesJSON(dd.DividendHistory),
		seriesJSON(dd.DividendCalendar),
		seriesJSON(dd.InsiderTrades),
		asOf,
	))

	return sb.String()
}
