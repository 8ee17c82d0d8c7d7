// Package fmp provides a client for the Financial Modeling Prep API
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
)

const (
	DefaultBaseURL   = "https://financialmodelingprep.com/api/v3"
	DefaultTimeout   = 25 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL. An empty value keeps the default.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit. Non-positive values keep the default.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new FMP client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("FMP API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	// Add API key
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimLeft(path, "/"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("path", path).Msg("FMP API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// getSeries decodes an array-shaped response body.
func (c *Client) getSeries(ctx context.Context, path string, params url.Values) (models.Series, error) {
	var series models.Series
	if err := c.get(ctx, path, params, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// periodParams builds the period/limit query shape shared by the
// statement-family endpoints.
func periodParams(period models.Period, limit int) url.Values {
	params := url.Values{}
	params.Set("period", string(period))
	params.Set("limit", strconv.Itoa(limit))
	return params
}

func upper(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetQuote retrieves the current price quote
func (c *Client) GetQuote(ctx context.Context, symbol string) (models.Series, error) {
	return c.getSeries(ctx, fmt.Sprintf("quote/%s", upper(symbol)), nil)
}

// GetProfile retrieves the company profile
func (c *Client) GetProfile(ctx context.Context, symbol string) (models.Series, error) {
	return c.getSeries(ctx, fmt.Sprintf("profile/%s", upper(symbol)), nil)
}

// GetIncomeStatement retrieves income statements. A TTM period selects the
// trailing-twelve-months endpoint, which takes no period/limit parameters.
func (c *Client) GetIncomeStatement(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error) {
	if period == models.PeriodTTM {
		return c.getSeries(ctx, fmt.Sprintf("income-statement-ttm/%s", upper(symbol)), nil)
	}
	return c.getSeries(ctx, fmt.Sprintf("income-statement/%s", upper(symbol)), periodParams(period, limit))
}

// GetBalanceSheet retrieves balance sheets. No TTM variant exists upstream;
// TTM requests are served as annual.
func (c *Client) GetBalanceSheet(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error) {
	if period != models.PeriodAnnual && period != models.PeriodQuarter {
		period = models.PeriodAnnual
	}
	return c.getSeries(ctx, fmt.Sprintf("balance-sheet-statement/%s", upper(symbol)), periodParams(period, limit))
}

// GetCashFlow retrieves cash flow statements
func (c *Client) GetCashFlow(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error) {
	if period == models.PeriodTTM {
		return c.getSeries(ctx, fmt.Sprintf("cash-flow-statement-ttm/%s", upper(symbol)), nil)
	}
	return c.getSeries(ctx, fmt.Sprintf("cash-flow-statement/%s", upper(symbol)), periodParams(period, limit))
}

// GetKeyMetrics retrieves key metrics
func (c *Client) GetKeyMetrics(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error) {
	if period == models.PeriodTTM {
		return c.getSeries(ctx, fmt.Sprintf("key-metrics-ttm/%s", upper(symbol)), nil)
	}
	return c.getSeries(ctx, fmt.Sprintf("key-metrics/%s", upper(symbol)), periodParams(period, limit))
}

// GetRatios retrieves financial ratios
func (c *Client) GetRatios(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error) {
	if period == models.PeriodTTM {
		return c.getSeries(ctx, fmt.Sprintf("ratios-ttm/%s", upper(symbol)), nil)
	}
	return c.getSeries(ctx, fmt.Sprintf("ratios/%s", upper(symbol)), periodParams(period, limit))
}

// GetPeers retrieves the peer group for a symbol
func (c *Client) GetPeers(ctx context.Context, symbol string) (models.Series, error) {
	params := url.Values{}
	params.Set("symbol", upper(symbol))
	return c.getSeries(ctx, "stock_peers", params)
}

// GetNews retrieves news items for a symbol. from/to are optional
// YYYY-MM-DD bounds and omitted from the query when empty.
func (c *Client) GetNews(ctx context.Context, symbol, from, to string, limit int) (models.Series, error) {
	params := url.Values{}
	params.Set("tickers", upper(symbol))
	params.Set("limit", strconv.Itoa(limit))
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	return c.getSeries(ctx, "stock_news", params)
}

// SearchSymbol resolves free text to ticker candidates. The query is sent
// raw; it is a company name, not a symbol.
func (c *Client) SearchSymbol(ctx context.Context, query, exchange string, limit int) (models.Series, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	if exchange != "" {
		params.Set("exchange", exchange)
	}
	return c.getSeries(ctx, "search", params)
}

// GetAnalystEstimates retrieves forward EPS/revenue estimates
func (c *Client) GetAnalystEstimates(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error) {
	return c.getSeries(ctx, fmt.Sprintf("analyst-estimates/%s", upper(symbol)), periodParams(period, limit))
}

// dividendHistoryResponse wraps the historical dividend array.
type dividendHistoryResponse struct {
	Symbol     string        `json:"symbol"`
	Historical models.Series `json:"historical"`
}

// GetDividendHistory retrieves the historical dividend series, unwrapped
// from the provider's envelope object.
func (c *Client) GetDividendHistory(ctx context.Context, symbol string, limit int) (models.Series, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp dividendHistoryResponse
	if err := c.get(ctx, fmt.Sprintf("historical-price-full/stock_dividend/%s", upper(symbol)), params, &resp); err != nil {
		return nil, err
	}
	return resp.Historical, nil
}

// GetDividendCalendar retrieves upcoming dividend dates. The provider
// exposes this under two endpoint names depending on plan tier; on any
// failure of the first the alternate is tried once. Both are treated as
// equally authoritative.
func (c *Client) GetDividendCalendar(ctx context.Context, symbol string) (models.Series, error) {
	params := url.Values{}
	params.Set("symbol", upper(symbol))

	series, err := c.getSeries(ctx, "stock_dividend_calendar", params)
	if err == nil {
		return series, nil
	}

	c.logger.Debug().Str("symbol", upper(symbol)).Err(err).Msg("stock_dividend_calendar failed, trying dividend_calendar")

	alt := url.Values{}
	alt.Set("symbol", upper(symbol))
	return c.getSeries(ctx, "dividend_calendar", alt)
}

// GetFinancialGrowth retrieves growth rates
func (c *Client) GetFinancialGrowth(ctx context.Context, symbol string, period models.Period, limit int) (models.Series, error) {
	return c.getSeries(ctx, fmt.Sprintf("financial-growth/%s", upper(symbol)), periodParams(period, limit))
}

// GetInsiderTrades retrieves recent insider trading activity
func (c *Client) GetInsiderTrades(ctx context.Context, symbol string, limit int) (models.Series, error) {
	params := url.Values{}
	params.Set("symbol", upper(symbol))
	params.Set("limit", strconv.Itoa(limit))
	return c.getSeries(ctx, "insider-trading", params)
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
