// Package operations implements the GitHub-facing operations exposed as MCP
// tools. Every call goes through the shared client, the rate limiter, and the
// error mapper in internal/infra/github.
package operations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/vietddude/github-mcp/internal/infra/cache"
	ghclient "github.com/vietddude/github-mcp/internal/infra/github"
)

// Service executes GitHub operations with retry, metrics, and optional
// response caching.
type Service struct {
	limiter     *ghclient.RateLimiter
	cache       *cache.Cache
	maxAttempts int
	logger      *slog.Logger
}

// Options configures a Service.
type Options struct {
	Limiter     *ghclient.RateLimiter
	Cache       *cache.Cache // nil disables caching
	MaxAttempts int
	Logger      *slog.Logger
}

// NewService creates a Service. Zero-value options fall back to a real-clock
// rate limiter and the default attempt budget.
func NewService(opts Options) *Service {
	s := &Service{
		limiter:     opts.Limiter,
		cache:       opts.Cache,
		maxAttempts: opts.MaxAttempts,
		logger:      opts.Logger,
	}
	if s.limiter == nil {
		s.limiter = ghclient.NewRateLimiter()
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = ghclient.DefaultMaxAttempts
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// call runs fn against the shared client with rate limit retries. Transport
// failures come back as domain errors carrying the resource hint.
func (s *Service) call(ctx context.Context, op, hint string, fn func(*gh.Client) error) error {
	client, err := ghclient.GetInstance()
	if err != nil {
		return err
	}

	ghclient.APICallsTotal.WithLabelValues(op).Inc()
	start := time.Now()
	err = s.limiter.Do(ctx, s.maxAttempts, func() error {
		if callErr := fn(client.REST()); callErr != nil {
			return ghclient.Map(callErr, hint)
		}
		return nil
	})
	ghclient.APILatency.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := "unknown"
		var de *ghclient.Error
		if errors.As(err, &de) {
			kind = de.Kind.String()
		}
		ghclient.APIErrorsTotal.WithLabelValues(op, kind).Inc()
		s.logger.Error("Operation failed", "operation", op, "error", err)
	}
	return err
}

// cached serves read-only results from the cache when enabled, otherwise
// runs fetch and stores the result.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (*T, error)) (*T, error) {
	if s.cache != nil {
		var v T
		if s.cache.GetJSON(ctx, key, &v) {
			s.logger.Debug("Cache hit", "key", key)
			return &v, nil
		}
	}
	v, err := fetch()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, key, v)
	}
	return v, nil
}
