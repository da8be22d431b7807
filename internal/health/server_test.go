package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	gh "github.com/google/go-github/v74/github"

	ghclient "github.com/vietddude/github-mcp/internal/infra/github"
)

func setQuota(t *testing.T, remaining, limit int) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rate_limit", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"resources": {"core": {"limit": %d, "remaining": %d, "reset": %d}}}`,
			limit, remaining, time.Now().Add(time.Hour).Unix())
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	c.BaseURL = base

	ghclient.SetTestInstance(c)
	t.Cleanup(ghclient.Reset)
}

func TestHealthOK(t *testing.T) {
	setQuota(t, 4200, 5000)
	s := NewServer(ghclient.NewRateLimiter(), 0)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var report healthReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != "ok" || report.Remaining != 4200 || report.Limit != 5000 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestHealthRateLimited(t *testing.T) {
	setQuota(t, 0, 5000)
	s := NewServer(ghclient.NewRateLimiter(), 0)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var report healthReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != "rate_limited" {
		t.Errorf("status = %q, want rate_limited", report.Status)
	}
}

func TestHealthUnconfigured(t *testing.T) {
	ghclient.Reset()
	t.Setenv(ghclient.TokenEnvVar, "")
	s := NewServer(ghclient.NewRateLimiter(), 0)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var report healthReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != "unconfigured" {
		t.Errorf("status = %q, want unconfigured", report.Status)
	}
}
