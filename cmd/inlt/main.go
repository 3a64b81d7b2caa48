/*
 * Copyright 2026 The Inlt Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command inlt checks one or more interaction-net source files and
// reports, per file, whether its lifetime contracts are satisfiable.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/structs"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inlt-lang/inlt/internal/checker"
	"github.com/inlt-lang/inlt/internal/checkercfg"
	"github.com/inlt-lang/inlt/internal/checkerlog"
)

const defaultConfigName = ".inltrc"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("inlt", flag.ContinueOnError)
	workers := fs.Int("workers", 0, "number of files to check concurrently (default: number of CPUs)")
	rulesPath := fs.String("rules", "", "path to a JavaScript rules file defining lint(summary)")
	filterExpr := fs.String("filter", "", "expr-lang expression filtering which diagnostics are reported")
	metricsAddr := fs.String("metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9090")
	jsonOut := fs.Bool("json", false, "emit each file's result as JSON instead of text")
	configPath := fs.String("config", "", "path to a config file (default: ./"+defaultConfigName+" if present)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: inlt [flags] <path>...\n\nflags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "supply a path")
		return 1
	}

	opts, err := loadOptions(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inlt: %s\n", err)
		return 1
	}
	if *workers > 0 {
		opts = append(opts, checkercfg.WithWorkers(*workers))
	}
	if *rulesPath != "" {
		src, err := os.ReadFile(*rulesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inlt: %s\n", err)
			return 1
		}
		opts = append(opts, checkercfg.WithRulesScript(string(src)))
	}
	if *filterExpr != "" {
		opts = append(opts, checkercfg.WithFilterExpr(*filterExpr))
	}
	if *metricsAddr != "" {
		opts = append(opts, checkercfg.WithMetricsAddr(*metricsAddr))
	}
	if *jsonOut {
		opts = append(opts, checkercfg.WithJSON(true))
	}

	cfg := checkercfg.NewConfig(opts...)
	if cfg.MetricsAddr != "" {
		serveMetrics(cfg)
	}

	results := checker.Run(cfg, paths)
	return report(cfg, results)
}

// loadOptions reads a `.inltrc` file, either the one explicitly named
// by --config or, failing that, a `.inltrc` in the working directory.
// A missing default file is not an error; a missing explicit one is.
// Its `rules` entry is a script path, like --rules, and is read here.
func loadOptions(explicit string) ([]checkercfg.Option, error) {
	path := explicit
	if path == "" {
		if _, err := os.Stat(defaultConfigName); err != nil {
			return nil, nil
		}
		path = defaultConfigName
	}
	fc, err := checkercfg.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Clean(path), err)
	}
	if fc.Rules != "" {
		src, err := os.ReadFile(fc.Rules)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Clean(fc.Rules), err)
		}
		fc.Rules = string(src)
	}
	return fc.Options(), nil
}

func serveMetrics(cfg checkercfg.Config) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			cfg.Logger.Printf("metrics server stopped: %s", err)
		}
	}()
}

// jsonResult is the wire shape of one Result in --json mode: Result
// itself carries an error, which structs.Map can't serialize directly,
// so it's flattened to a string message first.
type jsonResult struct {
	Path  string `json:"path" structs:"path"`
	OK    bool   `json:"ok" structs:"ok"`
	Error string `json:"error,omitempty" structs:"error,omitempty"`
}

func report(cfg checkercfg.Config, results []checker.Result) int {
	status := 0
	for _, r := range results {
		if !r.OK() {
			status = 1
		}
		if cfg.JSON {
			printJSON(r)
			continue
		}
		if r.OK() {
			fmt.Printf("%s: ok\n", r.Path)
		} else {
			fmt.Printf("%s:\n\n%s\n\n", r.Path, r.Err.Error())
		}
	}
	return status
}

func printJSON(r checker.Result) {
	jr := jsonResult{Path: r.Path, OK: r.OK()}
	if r.Err != nil {
		jr.Error = r.Err.Error()
	}
	// Routed through structs.Map so the emitted shape comes from the
	// same field-reflection path the rest of the ecosystem uses for
	// ad-hoc struct-to-map conversions, rather than a second one-off
	// encoding/json pass.
	enc, err := json.Marshal(structs.Map(jr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "inlt: %s\n", err)
		return
	}
	fmt.Println(string(enc))
}
