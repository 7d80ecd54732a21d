// Package cmd defines the command-line interface for scorefn.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(facesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("score-config", "", "Path to a YAML or JSON score config merged over the defaults")
	rootCmd.PersistentFlags().String("profile", "", "Profile that selects the per-face multipliers (e.g. sre, speed)")
	rootCmd.PersistentFlags().String("merge", string(schema.MergeShallow), "How the score config is merged over the defaults: shallow or deep (shallow replaces each top-level key whole, so a partial gate zeroes the missing limits and opens the gate)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "auto", "Enable colored labels in output (auto/yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("pprof", "", "Enable profiling and write profiles to files with this prefix")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of computeCmd to Viper
	computeCmd.Flags().Bool("explain", false, "Print the per-face term and penalty breakdown")
	if err := viper.BindPFlags(computeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compute flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("gate-override", "", "Gate limits for CI/CD gating (format: 'min_each:70,min_geo:80,floor_each:5')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address the HTTP server listens on")
	serveCmd.Flags().Int64("max-body-bytes", contract.DefaultMaxBodyBytes, "Maximum accepted request body size")
	serveCmd.Flags().Duration("read-timeout", contract.DefaultReadTimeout, "HTTP read timeout")
	serveCmd.Flags().Duration("write-timeout", contract.DefaultWriteTimeout, "HTTP write timeout")
	serveCmd.Flags().Duration("shutdown-timeout", contract.DefaultShutdownTimeout, "Grace period for in-flight requests on shutdown")
	serveCmd.Flags().Bool("mcp-endpoint", false, "Also serve the MCP tools over streamable HTTP at /mcp")
	serveCmd.Flags().String("otel-endpoint", "", "OTLP HTTP endpoint for traces and metrics (empty disables export)")
	serveCmd.Flags().Bool("otel-insecure", false, "Use plain HTTP towards the OTLP endpoint")
	serveCmd.Flags().String("service-name", contract.DefaultServiceName, "Service name reported to OpenTelemetry")
	serveCmd.Flags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	serveCmd.Flags().String("log-format", contract.DefaultLogFormat, "Log format: json or text")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}
}
