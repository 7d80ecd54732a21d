// Package main is the entry point for the scorefn CLI.
package main

import (
	"github.com/NishizukaKoichi/score-function/cmd"
	"github.com/NishizukaKoichi/score-function/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run scorefn", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Cannot stop profiling", err)
	}
}
