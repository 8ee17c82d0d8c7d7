package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bobmcallan/finsight/internal/models"
	"github.com/bobmcallan/finsight/internal/services/analysis"
)

// Request body limits and defaults for the data endpoints.
const (
	defaultFundamentalsLimit = 1
	maxFundamentalsLimit     = 40
	defaultNewsLimit         = 30
	maxNewsLimit             = 100
)

// writeServiceError maps service error classes to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	var ue *analysis.UpstreamError
	if errors.As(err, &ue) {
		WriteErrorWithCode(w, http.StatusBadGateway, fmt.Sprintf("Upstream data error: %v", err), "upstream_data")
		return
	}
	var ge *analysis.GenerationError
	if errors.As(err, &ge) {
		WriteErrorWithCode(w, http.StatusBadGateway, fmt.Sprintf("Generation error: %v", err), "generation")
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Symbol string `json:"symbol"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	result, err := s.app.AnalysisService.Price(r.Context(), req.Symbol)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleFundamentals(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Symbol string `json:"symbol"`
		Period string `json:"period"`
		Limit  int    `json:"limit"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	period := models.NormalizePeriod(req.Period)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultFundamentalsLimit
	}
	if limit > maxFundamentalsLimit {
		limit = maxFundamentalsLimit
	}

	result, err := s.app.AnalysisService.Fundamentals(r.Context(), req.Symbol, period, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Symbol string `json:"symbol"`
		From   string `json:"from_date"`
		To     string `json:"to_date"`
		Limit  int    `json:"limit"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultNewsLimit
	}
	if limit > maxNewsLimit {
		limit = maxNewsLimit
	}

	result, err := s.app.AnalysisService.News(r.Context(), req.Symbol, req.From, req.To, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "q is required")
		return
	}
	exchange := r.URL.Query().Get("exchange")

	WriteJSON(w, http.StatusOK, s.app.AnalysisService.Resolve(r.Context(), query, exchange))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalyzeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	result, err := s.app.AnalysisService.Analyze(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
