package analysis

import (
	"strings"
	"testing"

	"github.com/bobmcallan/finsight/internal/models"
)

func TestBuildAnalysisPrompt_FixedSectionOrder(t *testing.T) {
	dd := &deepDive{
		Symbol:  "AAPL",
		Quote:   models.Series{{"price": 195.2}},
		Profile: models.Series{{"companyName": "Apple Inc."}},
	}
	prompt := buildAnalysisPrompt(dd, "2026-08-31 12:00")

	sections := []string{
		"deep-dive analysis of AAPL",
		"- Profile:",
		"- Quote:",
		"- Key Metrics:",
		"- Ratios:",
		"- Income Statement:",
		"- Balance Sheet:",
		"- Cash Flow:",
		"- Peers:",
		"- News (shortlist):",
		"- Income Statements (5y):",
		"- Estimates:",
		"- History:",
		"- Upcoming dates:",
		"- Recent activity:",
		"data as of 2026-08-31 12:00 UTC",
	}
	pos := -1
	for _, sec := range sections {
		idx := strings.Index(prompt, sec)
		if idx < 0 {
			t.Fatalf("section %q missing from prompt", sec)
		}
		if idx < pos {
			t.Errorf("section %q appears out of order", sec)
		}
		pos = idx
	}
}

func TestBuildAnalysisPrompt_Deterministic(t *testing.T) {
	dd := &deepDive{
		Symbol: "SAP.DE",
		Quote:  models.Series{{"price": 200.0, "change": -1.2, "volume": 1234.0}},
		Ratios: models.Series{{"peRatio": 25.1, "pbRatio": 4.2}},
	}
	a := buildAnalysisPrompt(dd, "2026-08-31 12:00")
	b := buildAnalysisPrompt(dd, "2026-08-31 12:00")
	if a != b {
		t.Error("identical inputs must produce identical prompts")
	}
}

func TestBuildAnalysisPrompt_NewsTruncatedToShortlist(t *testing.T) {
	dd := &deepDive{Symbol: "AAPL"}
	for i := 0; i < 9; i++ {
		dd.News = append(dd.News, map[string]any{"title": string(rune('a' + i))})
	}
	prompt := buildAnalysisPrompt(dd, "2026-08-31 12:00")

	line := ""
	for _, l := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(l, "- News (shortlist):") {
			line = l
			break
		}
	}
	if line == "" {
		t.Fatal("news shortlist line missing")
	}
	if got := strings.Count(line, `"title"`); got != promptNewsItems {
		t.Errorf("shortlist carries %d items, want %d", got, promptNewsItems)
	}
	if len(dd.News) != 9 {
		t.Errorf("truncation must not mutate the source slice header, len = %d", len(dd.News))
	}
}

func TestSeriesJSON_NilBecomesEmptyList(t *testing.T) {
	if got := seriesJSON(nil); got != "[]" {
		t.Errorf("seriesJSON(nil) = %q, want []", got)
	}
}
