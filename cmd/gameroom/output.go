package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// OutputConfig holds global output settings
type OutputConfig struct {
	JSON  bool
	Quiet bool
}

var (
	outputCfg OutputConfig
	stdout    io.Writer = os.Stdout
	stderr    io.Writer = os.Stderr
)

// parseGlobalFlags extracts --json and --quiet from args, returns remaining args
func parseGlobalFlags(args []string) []string {
	var remaining []string
	for _, arg := range args {
		switch arg {
		case "--json":
			outputCfg.JSON = true
		case "--quiet", "-q":
			outputCfg.Quiet = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining
}

// PrintResult writes data as indented JSON.
func PrintResult(data any) {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// PrintTable outputs tabular data
func PrintTable(headers []string, rows [][]string) {
	if outputCfg.JSON {
		result := make([]map[string]string, len(rows))
		for i, row := range rows {
			m := make(map[string]string, len(headers))
			for j, h := range headers {
				if j < len(row) {
					m[h] = row[j]
				}
			}
			result[i] = m
		}
		PrintResult(result)
		return
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	upper := make([]string, len(headers))
	rule := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
		rule[i] = strings.Repeat("-", len(h))
	}
	_, _ = fmt.Fprintln(w, strings.Join(upper, "\t"))
	_, _ = fmt.Fprintln(w, strings.Join(rule, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// PrintInfo prints info message if not quiet
func PrintInfo(format string, args ...any) {
	if !outputCfg.Quiet {
		_, _ = fmt.Fprintf(stdout, format, args...)
	}
}

// PrintError prints error to stderr
func PrintError(format string, args ...any) {
	_, _ = fmt.Fprintf(stderr, format, args...)
}
