package contract

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NishizukaKoichi/score-function/schema"
	"golang.org/x/term"
)

// Default values for configuration.
const (
	DefaultPrecision       = 2
	MaxPrecision           = schema.ResultDecimalPlaces
	DefaultAddr            = ":8080"
	DefaultMaxBodyBytes    = 1 << 20 // 1 MiB
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultServiceName     = "scorefn"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
)

// ProfileConfig holds pprof profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a command.
// This struct is the "final, validated" config.
type Config struct {
	MetricsPath       string // Metrics document for compute, check, and the base side of compare
	TargetMetricsPath string // Metrics document for the target side of compare

	// ScoreOverride is the raw score config override, merged over the defaults by the core.
	ScoreOverride map[string]any
	// ProfileOverride replaces the resolved profile when set.
	ProfileOverride string
	// GateOverride replaces individual gate fields after the config is resolved.
	GateOverride map[string]float64
	Merge        schema.MergeMode

	Explain    bool
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Addr            string
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MCPEndpoint     bool // Mount the streamable MCP handler under /mcp

	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string
	LogLevel     slog.Level
	LogFormat    string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	MetricsPathStr       string
	TargetMetricsPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	ScoreConfig string `mapstructure:"score-config"`
	Profile     string `mapstructure:"profile"`
	Merge       string `mapstructure:"merge"`
	Precision   int    `mapstructure:"precision"`
	Output      string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	Width       int    `mapstructure:"width"`
	Color       string `mapstructure:"color"`

	// --- Fields from computeCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from checkCmd.Flags() ---
	GateOverrideStr string `mapstructure:"gate-override"`

	// --- Fields from serveCmd.Flags() ---
	Addr            string        `mapstructure:"addr"`
	MaxBodyBytes    int64         `mapstructure:"max-body-bytes"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	MCPEndpoint     bool          `mapstructure:"mcp-endpoint"`
	OTELEndpoint    string        `mapstructure:"otel-endpoint"`
	OTELInsecure    bool          `mapstructure:"otel-insecure"`
	ServiceName     string        `mapstructure:"service-name"`
	LogLevel        string        `mapstructure:"log-level"`
	LogFormat       string        `mapstructure:"log-format"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processScoreConfig(cfg, input); err != nil {
		return err
	}
	if err := processGateOverride(cfg, input); err != nil {
		return err
	}
	if err := processServerConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.MetricsPath = strings.TrimSpace(input.MetricsPathStr)
	cfg.TargetMetricsPath = strings.TrimSpace(input.TargetMetricsPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.ProfileOverride = strings.TrimSpace(input.Profile)

	// Parse color flag
	colors, err := ParseColorString(input.Color, term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 2. Merge Mode Validation ---
	mode, err := ParseMergeMode(input.Merge)
	if err != nil {
		return err
	}
	cfg.Merge = mode

	return nil
}

// ParseMergeMode validates a merge mode string. Empty means shallow.
func ParseMergeMode(s string) (schema.MergeMode, error) {
	if strings.TrimSpace(s) == "" {
		return schema.MergeShallow, nil
	}
	mode := schema.MergeMode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := schema.ValidMergeModes[mode]; !ok {
		return "", fmt.Errorf("invalid merge mode '%s'. must be shallow, deep", s)
	}
	return mode, nil
}

// processScoreConfig loads the optional score config override document.
func processScoreConfig(cfg *Config, input *ConfigRawInput) error {
	override, err := LoadScoreConfigFile(strings.TrimSpace(input.ScoreConfig))
	if err != nil {
		return err
	}
	cfg.ScoreOverride = override
	return nil
}

// processGateOverride parses the --gate-override flag. Values are applied on top of
// the resolved score config, so they take precedence over the config file.
func processGateOverride(cfg *Config, input *ConfigRawInput) error {
	if input.GateOverrideStr == "" {
		cfg.GateOverride = nil
		return nil
	}

	parsed, err := parseGateOverrideString(input.GateOverrideStr)
	if err != nil {
		return fmt.Errorf("invalid --gate-override format: %w", err)
	}

	for key, value := range parsed {
		if math.IsNaN(value) || value < 0.0 || value > 100.0 {
			return fmt.Errorf("gate value for %s must be between 0.0 and 100.0 (received %.2f)", key, value)
		}
	}

	cfg.GateOverride = parsed
	return nil
}

// processServerConfig validates the serve command settings.
func processServerConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	if input.MaxBodyBytes <= 0 {
		return fmt.Errorf("max-body-bytes must be greater than 0 (received %d)", input.MaxBodyBytes)
	}
	cfg.MaxBodyBytes = input.MaxBodyBytes

	if input.ReadTimeout < 0 || input.WriteTimeout < 0 || input.ShutdownTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	cfg.ReadTimeout = input.ReadTimeout
	cfg.WriteTimeout = input.WriteTimeout
	cfg.ShutdownTimeout = input.ShutdownTimeout
	cfg.MCPEndpoint = input.MCPEndpoint

	cfg.OTELEndpoint = strings.TrimSpace(input.OTELEndpoint)
	cfg.OTELInsecure = input.OTELInsecure
	cfg.ServiceName = input.ServiceName
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(input.LogFormat))
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = DefaultLogFormat
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format '%s'. must be json, text", input.LogFormat)
	}

	return nil
}

// ParseLogLevel parses a slog level name. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", s)
	}
	return level, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ApplyGateOverride returns gate with the overridden fields replaced.
func ApplyGateOverride(gate schema.GateConfig, override map[string]float64) schema.GateConfig {
	for key, value := range override {
		switch key {
		case "min_each":
			gate.MinEach = value
		case "min_geo":
			gate.MinGeo = value
		case "floor_each":
			gate.FloorEach = value
		}
	}
	return gate
}

// parseGateOverrideString parses a string like "min_each:70,min_geo:80,floor_each:5"
// into a map of gate field to float64.
func parseGateOverrideString(s string) (map[string]float64, error) {
	gate := make(map[string]float64)

	if s == "" {
		return gate, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid gate format '%s', expected 'field:value'", part)
		}

		fieldStr := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		switch fieldStr {
		case "min_each", "min_geo", "floor_each":
		default:
			return nil, fmt.Errorf("invalid gate field '%s', must be min_each, min_geo, or floor_each", fieldStr)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid gate value '%s' for %s: %w", valueStr, fieldStr, err)
		}

		gate[fieldStr] = value
	}

	return gate, nil
}
