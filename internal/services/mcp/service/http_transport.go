package service

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/dicenotation/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var listenTCP = net.Listen

// defaultHTTPAddr binds to loopback only unless configured otherwise.
const defaultHTTPAddr = "localhost:8081"

// HTTPTransport serves MCP over streamable HTTP at /mcp, with a health check
// at /mcp/health. Host and Origin headers must resolve to loopback or an
// allowed host.
type HTTPTransport struct {
	addr         string
	allowedHosts map[string]struct{}
	server       *mcp.Server
}

// NewHTTPTransport creates an HTTP transport for server.
func NewHTTPTransport(addr string, allowedHosts []string, server *mcp.Server) *HTTPTransport {
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}
	return &HTTPTransport{
		addr:         addr,
		allowedHosts: parseAllowedHosts(allowedHosts),
		server:       server,
	}
}

// Handler returns the HTTP routes for the transport.
func (t *HTTPTransport) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if err := t.validateLocalRequest(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		streamable.ServeHTTP(w, r)
	})
	mux.HandleFunc("/mcp/health", t.handleHealth)
	return mux
}

// Start listens on the configured address and serves until ctx ends.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t.server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}

	httpServer := &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	log.Printf("Starting MCP HTTP server on %s", listener.Addr())
	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}
}
