package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/bobmcallan/finsight/internal/models"
)

func TestLooksLikeTicker(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"AAPL", true},
		{"aapl", true},
		{"SAP.DE", true},
		{"BRK.B", true},
		{"OLVAS.HE", true},
		{"MSFT  ", true},
		{"Olvi Oyj", false},
		{"International Business Machines", false},
		{"", false},
		{"TOOLONGTICKER", false},
	}

	for _, tc := range cases {
		if got := LooksLikeTicker(tc.input); got != tc.want {
			t.Errorf("LooksLikeTicker(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestResolveSymbol_EmptyInputUnchanged(t *testing.T) {
	client := newFakeClient()
	svc := newTestService(client, nil)

	if got := svc.ResolveSymbol(context.Background(), ""); got != "" {
		t.Errorf("ResolveSymbol(\"\") = %q, want \"\"", got)
	}
	if client.calls["search"] != 0 {
		t.Error("empty input must not trigger a search")
	}
}

func TestResolveSymbol_TickerShapedSkipsSearch(t *testing.T) {
	client := newFakeClient()
	svc := newTestService(client, nil)

	if got := svc.ResolveSymbol(context.Background(), "aapl"); got != "AAPL" {
		t.Errorf("ResolveSymbol(aapl) = %q, want AAPL", got)
	}
	if client.calls["search"] != 0 {
		t.Errorf("search called %d times for ticker-shaped input, want 0", client.calls["search"])
	}
}

func TestResolveSymbol_CompanyNameResolvedViaSearch(t *testing.T) {
	client := newFakeClient()
	client.resp["search"] = models.Series{{"symbol": "OLVAS.HE"}}
	svc := newTestService(client, nil)

	if got := svc.ResolveSymbol(context.Background(), "Olvi Oyj"); got != "OLVAS.HE" {
		t.Errorf("ResolveSymbol(Olvi Oyj) = %q, want OLVAS.HE", got)
	}
	if client.calls["search"] != 1 {
		t.Errorf("search called %d times, want 1", client.calls["search"])
	}
}

func TestResolveSymbol_TickerFieldFallback(t *testing.T) {
	client := newFakeClient()
	client.resp["search"] = models.Series{{"ticker": "sap.de"}}
	svc := newTestService(client, nil)

	if got := svc.ResolveSymbol(context.Background(), "Systeme und Programme"); got != "SAP.DE" {
		t.Errorf("got %q, want SAP.DE", got)
	}
}

func TestResolveSymbol_SearchFailureFallsBackToInput(t *testing.T) {
	client := newFakeClient()
	client.errs["search"] = errors.New("search unavailable")
	svc := newTestService(client, nil)

	if got := svc.ResolveSymbol(context.Background(), "Olvi Oyj"); got != "OLVI OYJ" {
		t.Errorf("got %q, want upper-cased input", got)
	}
}

func TestResolveSymbol_EmptySearchResultFallsBack(t *testing.T) {
	client := newFakeClient()
	client.resp["search"] = models.Series{}
	svc := newTestService(client, nil)

	if got := svc.ResolveSymbol(context.Background(), "Unknown Company Name"); got != "UNKNOWN COMPANY NAME" {
		t.Errorf("got %q", got)
	}
}

func TestResolve_NeverFails(t *testing.T) {
	client := newFakeClient()
	client.errs["search"] = errors.New("down")
	svc := newTestService(client, nil)

	result := svc.Resolve(context.Background(), "Olvi Oyj", "HEL")
	if result.Query != "Olvi Oyj" || result.Exchange != "HEL" {
		t.Errorf("result = %+v", result)
	}
	if result.Results == nil || !result.Results.Empty() {
		t.Errorf("Results = %v, want empty sentinel", result.Results)
	}
}
