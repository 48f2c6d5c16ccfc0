// Command expressivo parses and differentiates polynomial expressions.
//
// Usage:
//
//	expressivo parse "(1 + x) * (x * 1)"
//	expressivo diff --wrt x --order 2 "x*x*x"
//	expressivo parse -n --in exprs.txt
//	expressivo batch -f jobs.yaml
//
// Defaults may be set in a TOML file given by --config or $EXPRESSIVO_CONFIG:
//
//	spaced = true
//	max_depth = 5000
//	log_level = "debug"
//	output = "yaml"
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
