package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteErrorWithCode(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErrorWithCode(rr, http.StatusBadGateway, "provider down", "upstream_data")

	if rr.Code != http.StatusBadGateway {
		t.Errorf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "provider down" || resp.Code != "upstream_data" {
		t.Errorf("body = %+v", resp)
	}
}

func TestWriteError_OmitsCode(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusBadRequest, "bad input")

	if strings.Contains(rr.Body.String(), "code") {
		t.Errorf("code field should be omitted: %s", rr.Body.String())
	}
}

func TestRequireMethod_SetsAllowHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/price", nil)

	if RequireMethod(rr, req, http.MethodGet, http.MethodPost) {
		t.Fatal("DELETE should not satisfy GET/POST")
	}
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow = %q", allow)
	}
}

func TestDecodeJSON_RejectsOversizedBody(t *testing.T) {
	big := strings.Repeat("a", 2<<20)
	body := `{"symbol":"` + big + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/price", strings.NewReader(body))
	rr := httptest.NewRecorder()

	var v struct {
		Symbol string `json:"symbol"`
	}
	if DecodeJSON(rr, req, &v) {
		t.Fatal("expected oversized body to be rejected")
	}
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
}
