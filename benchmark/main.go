// Package main provides a performance benchmarking tool for the scorefn CLI.
// It measures execution times of every command across output formats,
// running each case multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - scorefn binary installed and available in PATH
// - A base and a target metrics document in YAML or JSON
//
// Usage: go run benchmark/main.go [base-metrics] [target-metrics]
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// BenchmarkResult holds the result of a benchmark case (cold run and average of warm runs).
type BenchmarkResult struct {
	Command  string
	Output   string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	BaseMetrics   string
	TargetMetrics string
	Timeout       time.Duration
	Runs          int
	Outputs       []string
}

// benchmarkCase is one scorefn invocation to time.
type benchmarkCase struct {
	command string
	args    []string
}

func main() {
	if len(os.Args) != 3 {
		fmt.Printf("Usage: %s [base-metrics] [target-metrics]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		BaseMetrics:   os.Args[1],
		TargetMetrics: os.Args[2],
		Timeout:       30 * time.Second,
		Runs:          5,
		Outputs:       []string{"text", "json", "csv", "yaml"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the scorefn binary and the metrics documents exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("scorefn"); err != nil {
		return errors.New("scorefn binary not found in PATH")
	}
	for _, path := range []string{config.BaseMetrics, config.TargetMetrics} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("metrics document %s: %w", path, err)
		}
	}
	return nil
}

// cases lists every command under test
func (config BenchmarkConfig) cases() []benchmarkCase {
	return []benchmarkCase{
		{command: "compute", args: []string{"compute", config.BaseMetrics, "--explain"}},
		{command: "check", args: []string{"check", config.BaseMetrics}},
		{command: "compare", args: []string{"compare", config.BaseMetrics, config.TargetMetrics}},
		{command: "faces", args: []string{"faces"}},
	}
}

// runBenchmarks executes all benchmark cases across configured output formats
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d outputs, %v timeout, %d runs per case\n",
		len(config.Outputs), config.Timeout, config.Runs)

	for _, output := range config.Outputs {
		fmt.Printf("Benchmarking %s output\n", output)
		for _, c := range config.cases() {
			results = append(results, runBenchmarkCase(config, c, output))
		}
	}

	return results
}

// runBenchmarkCase times one case and summarizes the cold and warm runs
func runBenchmarkCase(config BenchmarkConfig, c benchmarkCase, output string) BenchmarkResult {
	fmt.Printf("  Running %s (%d runs)\n", c.command, config.Runs)

	args := append([]string{"--color", "no", "--output", output}, c.args...)
	cold, warm := runBenchmark(config, args)

	coldTimeStr := "FAILED"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}
	warmAvg := "FAILED"
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Command:  c.command,
		Output:   output,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes scorefn multiple times and returns the cold time and warm times.
// check exits 1 when the gate fails, so only a timeout or a missing exit status counts as failure.
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		err := exec.CommandContext(ctx, "scorefn", args...).Run()
		elapsed := time.Since(start).Seconds()
		timedOut := ctx.Err() != nil
		cancel()

		var exitErr *exec.ExitError
		if timedOut || (err != nil && !errors.As(err, &exitErr)) {
			continue
		}
		times = append(times, elapsed)
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/scorefn_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"cmd", "output", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Command, result.Output, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"compute", "check", "compare", "faces"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-6s: Cold: %s, Warm: %s\n", result.Output, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
