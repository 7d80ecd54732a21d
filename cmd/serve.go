package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/NishizukaKoichi/score-function/core"
	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/internal/mcp"
	"github.com/NishizukaKoichi/score-function/internal/server"
	"github.com/NishizukaKoichi/score-function/internal/telemetry"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the score function over HTTP",
	Long: `Start an HTTP server exposing the score function.

Routes:
  POST /api/score-function   score {"config": {...}, "metrics": {...}}
  POST /score-function/...   same contract, any other method gets 405
  GET  /health               liveness probe
  /mcp                       MCP tools over streamable HTTP (with --mcp-endpoint)

Examples:
  # Listen on :8080 with JSON logs
  scorefn serve

  # Export traces and metrics to a local collector
  scorefn serve --addr :9090 --otel-endpoint localhost:4318 --otel-insecure`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runServer(ctx, cfg, newLogger(os.Stdout, cfg))
	},
}

// newEngine builds the evaluator shared by the HTTP and MCP surfaces.
// Request overrides are merged over the config resolved from the command line.
func newEngine(c *contract.Config) (*core.Engine, error) {
	defaults, err := core.ResolveRuntimeConfig(c)
	if err != nil {
		return nil, err
	}
	return core.NewEngine(defaults, c.Merge), nil
}

// newLogger creates the structured logger for the server.
func newLogger(w io.Writer, c *contract.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// runServer serves HTTP until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, c *contract.Config, logger *slog.Logger) error {
	slog.SetDefault(logger)

	otelShutdown, err := telemetry.Init(ctx, telemetry.Settings{
		Endpoint:    c.OTELEndpoint,
		Insecure:    c.OTELInsecure,
		ServiceName: c.ServiceName,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	engine, err := newEngine(c)
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Evaluator:    engine,
		Logger:       logger,
		Addr:         c.Addr,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		MaxBodyBytes: c.MaxBodyBytes,
		Version:      version,
	}
	if c.MCPEndpoint {
		srvCfg.MCPServer = mcp.NewMCPServer(engine, version)
	}
	srv := server.New(srvCfg)

	logger.Info("scorefn starting", "version", version, "addr", srv.Addr(), "profile", engine.Defaults().ProfileName())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("scorefn stopped")
	return nil
}
