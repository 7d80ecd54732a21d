// Package server implements the scorefn HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/NishizukaKoichi/score-function/internal/contract"
)

// Server is the scorefn HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     *slog.Logger
}

// Config holds the dependencies and settings for creating a Server.
// MCPServer is optional; when nil the /mcp route is not mounted.
type Config struct {
	Evaluator contract.ScoreEvaluator
	Logger    *slog.Logger
	MCPServer *mcpserver.MCPServer

	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	Version      string
}

// New creates a server with every route and the middleware chain configured.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = contract.DefaultMaxBodyBytes
	}
	if cfg.Addr == "" {
		cfg.Addr = contract.DefaultAddr
	}

	h := &handlers{
		evaluator:    cfg.Evaluator,
		logger:       cfg.Logger,
		maxBodyBytes: cfg.MaxBodyBytes,
		version:      cfg.Version,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/score-function", h.handleScore)
	mux.HandleFunc("/score-function", h.handleWorker)
	mux.HandleFunc("/score-function/", h.handleWorker)
	mux.HandleFunc("GET /health", h.handleHealth)
	if cfg.MCPServer != nil {
		mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(cfg.MCPServer))
	}

	// Middleware chain (outermost executes first):
	// request ID → tracing → logging → recovery → handler.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		handler: handler,
		logger:  cfg.Logger,
	}
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins listening. It blocks until the server is shut down and
// returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
