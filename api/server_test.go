package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dongqi-wu/reisego/config"
	infraregistry "github.com/dongqi-wu/reisego/infra/registry"
	infratracking "github.com/dongqi-wu/reisego/infra/tracking"
)

func newTestHandler(t *testing.T, cfg config.APIConfig) http.Handler {
	t.Helper()
	dir := t.TempDir()
	scen := filepath.Join(dir, "ScenarioList.csv")
	exec := filepath.Join(dir, "ExecuteList.csv")
	scenarios := "id,name,interval,start_date,end_date,input_dir,runtime\n" +
		"87,usa_2016,24H,2016-01-01,2016-01-31,/mnt/data/87,10:25\n" +
		"104,western_q1,24H,2016-01-01,2016-03-31,/mnt/data/104,\n"
	if err := os.WriteFile(scen, []byte(scenarios), 0o644); err != nil {
		t.Fatalf("write scenario list: %v", err)
	}
	execute := "id,status\n87,finished\n104,created\n"
	if err := os.WriteFile(exec, []byte(execute), 0o644); err != nil {
		t.Fatalf("write execute list: %v", err)
	}
	store, err := infraregistry.NewCSVStore(scen)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	tracker := infratracking.NewCSVTracker(exec, scen)
	return NewServer(cfg, store, tracker).Handler()
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, config.APIConfig{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestListScenarios(t *testing.T) {
	h := newTestHandler(t, config.APIConfig{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/scenarios", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []scenarioDoc
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 scenarios, got %#v", out)
	}
	if out[0].ID != "87" || out[0].Status != "finished" || out[0].Runtime != "10:25" {
		t.Fatalf("tracking state not merged: %#v", out[0])
	}
	if out[1].Status != "created" || out[1].Runtime != "" {
		t.Fatalf("unexpected second doc: %#v", out[1])
	}
}

func TestGetScenario(t *testing.T) {
	h := newTestHandler(t, config.APIConfig{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/scenarios/87", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out scenarioDoc
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != "87" || out.StartDate != "2016-01-01" || out.Status != "finished" {
		t.Fatalf("unexpected doc: %#v", out)
	}
}

func TestGetScenarioNotFound(t *testing.T) {
	h := newTestHandler(t, config.APIConfig{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/scenarios/999", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestRequireToken(t *testing.T) {
	h := newTestHandler(t, config.APIConfig{Token: "s3cret"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/scenarios", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/scenarios", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rr.Code)
	}

	// Health stays open for probes.
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health gated: %d", rr.Code)
	}
}

func TestCORSOrigin(t *testing.T) {
	h := newTestHandler(t, config.APIConfig{AllowedOrigins: []string{"https://dash.example.com"}})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/scenarios", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Fatalf("cors header %q", got)
	}
}
