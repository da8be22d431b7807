// Package tools registers GitHub operations as MCP tools. Tool handlers
// never leak raw errors across the protocol boundary: every failure is
// rendered through the domain error formatter into a text content block with
// the error flag set.
package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vietddude/github-mcp/internal/core/config"
	ghclient "github.com/vietddude/github-mcp/internal/infra/github"
	"github.com/vietddude/github-mcp/internal/operations"
)

// ServerName identifies this MCP server to clients.
const ServerName = "github-mcp"

// Version is the server version reported during initialization.
const Version = "0.3.0"

// NewServer builds an MCP server exposing the tool groups enabled in cfg.
func NewServer(cfg *config.AppConfig, svc *operations.Service, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: Version,
	}, nil)

	registered := 0
	if cfg.GroupEnabled("issues") {
		registerIssueTools(server, svc, logger)
		registered++
	}
	if cfg.GroupEnabled("repositories") {
		registerRepositoryTools(server, svc, logger)
		registered++
	}
	if registered == 0 {
		logger.Warn("No tool groups enabled, server exposes no tools")
	}
	return server
}

// register wires one operation as a tool. The handler decodes typed params,
// invokes the operation, and renders the result or error into the response
// envelope.
func register[In any](server *mcp.Server, logger *slog.Logger, name, description string, fn func(context.Context, In) (any, error)) {
	mcp.AddTool(server, &mcp.Tool{Name: name, Description: description},
		func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
			callID := uuid.NewString()
			start := time.Now()
			logger.Debug("Tool call started", "tool", name, "call_id", callID)

			out, err := fn(ctx, in)
			if err != nil {
				logger.Error("Tool call failed",
					"tool", name, "call_id", callID, "duration", time.Since(start), "error", err)
				return errorResult(err), nil, nil
			}

			logger.Debug("Tool call finished",
				"tool", name, "call_id", callID, "duration", time.Since(start))
			return textResult(out), nil, nil
		})
}

// textResult renders a successful payload as one JSON text block.
func textResult(v any) *mcp.CallToolResult {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
	}
}

// errorResult renders a failure as a formatted domain error with the error
// flag set.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: ghclient.FormatError(err)}},
		IsError: true,
	}
}
