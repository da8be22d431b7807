// Package health provides HTTP endpoints for liveness and metrics.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	ghclient "github.com/vietddude/github-mcp/internal/infra/github"
)

// Server exposes /health and /metrics next to the MCP transport.
type Server struct {
	limiter *ghclient.RateLimiter
	server  *http.Server
}

// NewServer creates a health server on the given port.
func NewServer(limiter *ghclient.RateLimiter, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		limiter: limiter,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type healthReport struct {
	Status    string     `json:"status"`
	Remaining int        `json:"rate_limit_remaining"`
	Limit     int        `json:"rate_limit"`
	ResetAt   *time.Time `json:"rate_limit_reset,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := healthReport{Status: "ok"}

	if client, err := ghclient.GetInstance(); err == nil {
		remaining, limit, resetAt, qErr := s.limiter.CheckRateLimit(r.Context(), client)
		if qErr == nil {
			report.Remaining = remaining
			report.Limit = limit
			report.ResetAt = resetAt
			if remaining == 0 {
				report.Status = "rate_limited"
			}
		}
	} else {
		report.Status = "unconfigured"
	}

	w.Header().Set("Content-Type", "application/json")
	if report.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(report)
}
