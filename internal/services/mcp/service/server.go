package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/dicenotation/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "dice-notation MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the HTTP listen address. Defaults to localhost:8081.
	HTTPAddr string
	// AllowedHosts extends the loopback-only Host/Origin allow list.
	AllowedHosts []string
}

// Server hosts the dice MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates an MCP server with the dice tools bound to svc.
func New(svc domain.DiceService) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("dice service is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerDiceTools(mcpServer, svc)
	return &Server{mcpServer: mcpServer}, nil
}

func registerDiceTools(server *mcp.Server, svc domain.DiceService) {
	mcp.AddTool(server, domain.ValidateTool(), domain.ValidateHandler(svc))
	mcp.AddTool(server, domain.EvaluateTool(), domain.EvaluateHandler(svc))
	mcp.AddTool(server, domain.HandicapTool(), domain.HandicapHandler(svc))
	mcp.AddTool(server, domain.HistoryTool(), domain.HistoryHandler(svc))
}

// Run serves MCP over the configured transport and blocks until ctx ends.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return s.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return NewHTTPTransport(cfg.HTTPAddr, cfg.AllowedHosts, s.mcpServer).Start(ctx)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport runs the MCP server on transport. Cancellation is a
// clean stop.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
