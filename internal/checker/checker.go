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

// Package checker orchestrates one run of the checker over any number
// of source files: parse, Program.Check, the optional goja rules pass
// and expr-lang diagnostic filter, and the per-file worker pool that
// ties it all together.
package checker

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/gofrs/uuid/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/inlt-lang/inlt/internal/checkercfg"
	"github.com/inlt-lang/inlt/internal/parser"
)

var (
	checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inlt",
			Subsystem: "checker",
			Name:      "checks_total",
			Help:      "Total files checked, by result.",
		},
		[]string{"result"},
	)
	checkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inlt",
			Subsystem: "checker",
			Name:      "check_duration_seconds",
			Help:      "Time to parse and check a single file.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(checksTotal, checkDuration)
}

// Result is the outcome of checking one file.
type Result struct {
	Path string
	Err  error
}

// OK reports whether the file passed every check.
func (r Result) OK() bool { return r.Err == nil }

// Run checks every path concurrently, bounded by cfg.Workers, and
// returns one Result per path in the same order paths was given.
func Run(cfg checkercfg.Config, paths []string) []Result {
	runID, _ := uuid.NewV4()
	cfg.Logger.Printf("run %s: checking %d file(s)", runID, len(paths))

	results := make([]Result, len(paths))
	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = Result{Path: path, Err: checkOne(cfg, path)}
		}(i, path)
	}
	wg.Wait()
	return results
}

func checkOne(cfg checkercfg.Config, path string) error {
	start := time.Now()
	err := doCheck(cfg, path)

	result := "ok"
	if err != nil {
		result = "fail"
	}
	checksTotal.WithLabelValues(result).Inc()
	checkDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return err
}

func doCheck(cfg checkercfg.Config, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		return err
	}

	if g := prog.Check(); g != nil {
		return applyFilter(cfg, g)
	}

	if cfg.RulesScript != "" {
		if err := runRulesScript(cfg, prog); err != nil {
			return err
		}
	}

	return nil
}

// applyFilter drops a reported error entirely if cfg.FilterExpr
// evaluates to false against its rendered message, letting a caller
// suppress known-noisy diagnostics without patching the checker.
func applyFilter(cfg checkercfg.Config, err error) error {
	if cfg.FilterExpr == "" {
		return err
	}
	program, compileErr := expr.Compile(cfg.FilterExpr, expr.Env(map[string]interface{}{"message": ""}))
	if compileErr != nil {
		return fmt.Errorf("invalid filter expression: %w", compileErr)
	}
	out, runErr := expr.Run(program, map[string]interface{}{"message": err.Error()})
	if runErr != nil {
		return fmt.Errorf("filter expression failed: %w", runErr)
	}
	keep, _ := out.(bool)
	if !keep {
		return nil
	}
	return err
}
