package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/finsight/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Market data
	mux.HandleFunc("/api/price", s.handlePrice)
	mux.HandleFunc("/api/fundamentals", s.handleFundamentals)
	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/resolve", s.handleResolve)

	// Analysis
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  s.app.Config.Clients.Gemini.Model,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       cfg.Environment,
		"logging_level":     cfg.Logging.Level,
		"fmp_base_url":      cfg.Clients.FMP.BaseURL,
		"fmp_api_key":       maskSecret(cfg.Clients.FMP.APIKey),
		"gemini_model":      cfg.Clients.Gemini.Model,
		"gemini_configured": s.app.GeminiClient != nil,
		"auth_enforced":     cfg.Auth.ActionKey != "",
		"price_ttl":         cfg.Cache.GetPriceTTL().String(),
		"news_ttl":          cfg.Cache.GetNewsTTL().String(),
		"fundamentals_ttl":  cfg.Cache.GetFundamentalsTTL().String(),
		"cache_max_items":   cfg.Cache.MaxItems,
		"uptime":            uptime.String(),
		"started_at":        s.app.StartupTime,
	})
}

// maskSecret hides all but the last four characters of a secret.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
