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

package checkercfg

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FileConfig is the decoded shape of a `.inltrc` file: everything
// Config can hold that makes sense as a persisted default, named to
// match the CLI flags they back.
type FileConfig struct {
	Workers     int    `mapstructure:"workers" yaml:"workers"`
	Rules       string `mapstructure:"rules" yaml:"rules"`
	Filter      string `mapstructure:"filter" yaml:"filter"`
	MetricsAddr string `mapstructure:"metrics-addr" yaml:"metrics-addr"`
	JSON        bool   `mapstructure:"json" yaml:"json"`
}

// LoadFile reads a `.inltrc` YAML file and decodes it through
// mapstructure, so the same loose-typed map shape a future JSON or
// TOML loader would produce is handled by one decode path.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fc, err
	}
	if err := mapstructure.Decode(raw, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// Options turns a decoded FileConfig into Options, skipping any field
// left at its zero value so CLI flags can still override it.
func (fc FileConfig) Options() []Option {
	var opts []Option
	if fc.Workers > 0 {
		opts = append(opts, WithWorkers(fc.Workers))
	}
	if fc.Rules != "" {
		opts = append(opts, WithRulesScript(fc.Rules))
	}
	if fc.Filter != "" {
		opts = append(opts, WithFilterExpr(fc.Filter))
	}
	if fc.MetricsAddr != "" {
		opts = append(opts, WithMetricsAddr(fc.MetricsAddr))
	}
	if fc.JSON {
		opts = append(opts, WithJSON(true))
	}
	return opts
}
