package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bobmcallan/finsight/internal/models"
)

func TestAnalyze_ResolvesFreeTextSymbol(t *testing.T) {
	client := newFakeClient()
	client.resp["search"] = models.Series{{"symbol": "OLVAS.HE"}}
	gen := &fakeGen{}
	svc := newTestService(client, gen)

	result, err := svc.Analyze(context.Background(), models.AnalyzeRequest{Symbol: "Olvi Oyj"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Symbol != "OLVAS.HE" {
		t.Errorf("Symbol = %q, want OLVAS.HE", result.Symbol)
	}
	if result.Model != "fake-model" {
		t.Errorf("Model = %q", result.Model)
	}
	if result.AnalysisMD != "analysis text" {
		t.Errorf("AnalysisMD = %q", result.AnalysisMD)
	}
}

func TestAnalyze_TTMFailureFallsBackToAnnual(t *testing.T) {
	client := newFakeClient()
	client.errs["income:ttm"] = errors.New("ttm unavailable")
	gen := &fakeGen{}
	svc := newTestService(client, gen)

	_, err := svc.Analyze(context.Background(), models.AnalyzeRequest{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if client.calls["income:annual"] == 0 {
		t.Error("expected annual income fallback after TTM failure")
	}
	if !strings.Contains(gen.prompt, "income:annual") {
		t.Error("prompt should carry the annual leg's data")
	}
}

func TestAnalyze_BothLegsFailingIsUpstreamError(t *testing.T) {
	client := newFakeClient()
	client.errs["income"] = errors.New("provider outage")
	svc := newTestService(client, &fakeGen{})

	_, err := svc.Analyze(context.Background(), models.AnalyzeRequest{Symbol: "AAPL"})
	if err == nil {
		t.Fatal("expected error when both statement legs fail")
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
	}
}

func TestAnalyze_EmptyAnnualBalanceFallsBackToQuarter(t *testing.T) {
	client := newFakeClient()
	client.resp["balance:annual"] = models.Series{}
	client.resp["balance:quarter"] = models.Series{{"totalAssets": 1.0}}
	gen := &fakeGen{}
	svc := newTestService(client, gen)

	_, err := svc.Analyze(context.Background(), models.AnalyzeRequest{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if client.calls["balance:quarter"] != 1 {
		t.Errorf("balance:quarter called %d times, want 1", client.calls["balance:quarter"])
	}
	if !strings.Contains(gen.prompt, "totalAssets") {
		t.Error("prompt should carry the quarter balance data")
	}
}

func TestAnalyze_OptionalSeriesFailuresTolerated(t *testing.T) {
	client := newFakeClient()
	client.errs["estimates"] = errors.New("not in plan")
	client.errs["dividend_history"] = errors.New("not in plan")
	client.errs["insider_trades"] = errors.New("not in plan")
	client.errs["peers"] = errors.New("down")
	client.errs["news"] = errors.New("down")
	gen := &fakeGen{}
	svc := newTestService(client, gen)

	result, err := svc.Analyze(context.Background(), models.AnalyzeRequest{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("optional failures must not abort the analysis: %v", err)
	}
	if result.AnalysisMD == "" {
		t.Error("expected generated analysis")
	}
	if !strings.Contains(gen.prompt, "Estimates: []") {
		t.Error("degraded estimates should appear as an empty list in the prompt")
	}
}

func TestAnalyze_GenerationFailureIsDistinct(t *testing.T) {
	client := newFakeClient()
	svc := newTestService(client, &fakeGen{err: errors.New("model overloaded")})

	_, err := svc.Analyze(context.Background(), models.AnalyzeRequest{Symbol: "AAPL"})
	if err == nil {
		t.Fatal("expected error")
	}
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GenerationError, got %T: %v", err, err)
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		t.Error("generation failure must not classify as upstream data failure")
	}
}

func TestAnalyze_NoGenerationClientConfigured(t *testing.T) {
	svc := newTestService(newFakeClient(), nil)

	_, err := svc.Analyze(context.Background(), models.AnalyzeRequest{Symbol: "AAPL"})
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GenerationError, got %T: %v", err, err)
	}
}

func TestAnalyze_NewsRangePassedThrough(t *testing.T) {
	client := newFakeClient()
	gen := &fakeGen{}
	svc := newTestService(client, gen)

	_, err := svc.Analyze(context.Background(), models.AnalyzeRequest{
		Symbol: "AAPL",
		From:   "2026-01-01",
		To:     "2026-06-30",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if client.calls["news"] != 1 {
		t.Errorf("news fetched %d times, want 1", client.calls["news"])
	}
}
