package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wsbridge/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for wsbridge.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "wsbridge",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Router returns the HTTP routes: the MCP endpoint at /mcp, a readiness
// probe at /healthz and, when metrics is non-nil, the metrics at /metrics.
func (s *Server) Router(metrics http.Handler) http.Handler {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	r := chi.NewRouter()
	r.Handle("/mcp", handler)
	r.Get("/healthz", s.handleHealth)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	return r
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string, metrics http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("MCP HTTP server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleHealth reports 200 once the workspace is initialised.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.ports.Lifecycle.Ready(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, err.Error())
		return
	}
	fmt.Fprintln(w, "ok")
}

// ready initialises the workspace on the first call.
func (s *Server) ready(ctx context.Context) error {
	if err := s.ports.Lifecycle.Init(ctx); err != nil {
		return fmt.Errorf("initialising workspace: %w", err)
	}
	return nil
}
