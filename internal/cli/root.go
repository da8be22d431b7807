package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/vietddude/github-mcp/internal/core/config"
	"github.com/vietddude/github-mcp/internal/health"
	"github.com/vietddude/github-mcp/internal/infra/cache"
	ghclient "github.com/vietddude/github-mcp/internal/infra/github"
	"github.com/vietddude/github-mcp/internal/operations"
	"github.com/vietddude/github-mcp/internal/tools"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "github-mcp",
	Short: "GitHub MCP server",
	Long:  `github-mcp exposes GitHub issues and repositories as MCP tools over stdio, with rate limit handling and retries.`,
	Run:   runServer,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

func runServer(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	// Load Configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging. Logs go to stderr: stdout carries the MCP transport.
	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)
	logger.Info("Logger initialized", "level", slogLevel.String())

	limiter := ghclient.NewRateLimiter(
		ghclient.WithBaseDelay(cfg.GitHub.BackoffBase),
		ghclient.WithResetBuffer(time.Duration(cfg.GitHub.RetryBufferSeconds)*time.Second),
	)

	// Optional response cache
	var responseCache *cache.Cache
	if cfg.Cache.Enabled {
		responseCache, err = cache.New(cfg.Cache)
		if err != nil {
			logger.Error("Failed to connect cache, continuing without it", "error", err)
		} else {
			defer responseCache.Close()
		}
	}

	svc := operations.NewService(operations.Options{
		Limiter:     limiter,
		Cache:       responseCache,
		MaxAttempts: cfg.GitHub.MaxRetries,
		Logger:      logger,
	})
	server := tools.NewServer(cfg, svc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS Signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down...", "signal", sig)
		cancel()
	}()

	// Optional health/metrics server
	if cfg.Server.Port > 0 {
		hs := health.NewServer(limiter, cfg.Server.Port)
		go func() {
			if err := hs.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("Health server stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = hs.Stop(shutdownCtx)
		}()
	}

	logger.Info("Serving MCP over stdio", "server", tools.ServerName, "version", tools.Version)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("github-mcp stopped gracefully")
}
