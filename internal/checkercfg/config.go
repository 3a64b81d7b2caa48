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

// Package checkercfg holds the checker's functional-options Config,
// mirroring the teacher's Config/Option pattern: sensible defaults,
// overridden by whichever Options a caller supplies.
package checkercfg

import (
	"runtime"

	"github.com/inlt-lang/inlt/internal/checkerlog"
)

// Config controls one checker run across every file it's given.
type Config struct {
	// Logger receives progress and diagnostic output.
	Logger checkerlog.Logger
	// Workers bounds how many files are checked concurrently.
	Workers int
	// RulesScript, if set, is the body of a goja-evaluated extra lint
	// pass run over every checked Program after Program.Check succeeds.
	RulesScript string
	// FilterExpr, if set, is an expr-lang expression evaluated against
	// each reported diagnostic; diagnostics it rejects are suppressed.
	FilterExpr string
	// MetricsAddr, if set, serves Prometheus metrics for the run.
	MetricsAddr string
	// JSON, if true, emits each file's result as JSON instead of the
	// default `<path>: ok` / `<path>:\n\n<error>\n\n` text.
	JSON bool
}

// Option configures a Config. See the WithXxx functions below.
type Option func(*Config)

// NewConfig returns a Config with defaults applied, then every Option
// in order.
func NewConfig(opts ...Option) Config {
	c := Config{
		Logger:  checkerlog.DefaultLogger(),
		Workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}

func WithLogger(l checkerlog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

func WithRulesScript(src string) Option {
	return func(c *Config) { c.RulesScript = src }
}

func WithFilterExpr(expr string) Option {
	return func(c *Config) { c.FilterExpr = expr }
}

func WithMetricsAddr(addr string) Option {
	return func(c *Config) { c.MetricsAddr = addr }
}

func WithJSON(on bool) Option {
	return func(c *Config) { c.JSON = on }
}
