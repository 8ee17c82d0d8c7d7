package analysis

import (
	"context"
	"strings"

	"github.com/bobmcallan/finsight/internal/models"
)

const searchLimit = 10

// LooksLikeTicker classifies a string as already ticker-shaped: a short
// alphanumeric code, or a dot-suffixed exchange form (SAP.DE, OLVAS.HE)
// whose root is 1-6 characters. This is a heuristic; short company names
// can be misclassified and skip resolution.
func LooksLikeTicker(s string) bool {
	s2 := strings.ToUpper(strings.TrimSpace(s))
	if len(s2) <= 6 && isAlphanumeric(s2) {
		return true
	}
	if root, _, found := strings.Cut(s2, "."); found {
		if n := len(root); n >= 1 && n <= 6 {
			return true
		}
	}
	return false
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// ResolveSymbol maps free text (a ticker or a company name) to a ticker
// symbol, best effort. Ticker-shaped input is returned directly without an
// upstream call; otherwise the first search candidate's symbol is used,
// falling back to the upper-cased input. Never fails.
func (s *Service) ResolveSymbol(ctx context.Context, input string) string {
	if strings.TrimSpace(input) == "" {
		return input
	}

	trimmed := strings.TrimSpace(input)
	if LooksLikeTicker(trimmed) {
		return strings.ToUpper(trimmed)
	}

	results := s.optionalCall(ctx, CapSearch, CapabilityRequest{
		Symbol: trimmed,
		Limit:  searchLimit,
	})
	if results.Empty() {
		return strings.ToUpper(trimmed)
	}

	sym, _ := results[0]["symbol"].(string)
	if sym == "" {
		sym, _ = results[0]["ticker"].(string)
	}
	if sym == "" {
		sym = trimmed
	}
	return strings.ToUpper(sym)
}

// Resolve returns search candidates for a free-text query, best effort.
func (s *Service) Resolve(ctx context.Context, query, exchange string) *models.ResolveResult {
	results := s.optionalCall(ctx, CapSearch, CapabilityRequest{
		Symbol:   query,
		Exchange: exchange,
		Limit:    searchLimit,
	})

	return &models.ResolveResult{
		Query:    query,
		Exchange: exchange,
		Results:  results,
	}
}
