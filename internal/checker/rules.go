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

package checker

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/inlt-lang/inlt/internal/checkercfg"
	"github.com/inlt-lang/inlt/internal/program"
)

// summary is the plain-data view of a checked Program handed to a
// rules script: enough to write style/convention lints (agent names
// and port counts, the rule count, net names) without exposing the
// checker's internal index types. Lifetime contracts are not included.
type summary struct {
	Agents []agentSummary `json:"agents"`
	Rules  int            `json:"rules"`
	Nets   []string       `json:"nets"`
}

type agentSummary struct {
	Name  string `json:"name"`
	Ports int    `json:"ports"`
}

func newSummary(prog *program.Program) summary {
	s := summary{Rules: len(prog.Rules)}
	for _, a := range prog.Agents {
		s.Agents = append(s.Agents, agentSummary{Name: a.Name, Ports: len(a.Ports)})
	}
	for _, n := range prog.Nets {
		s.Nets = append(s.Nets, n.Name)
	}
	return s
}

// runRulesScript evaluates cfg.RulesScript, which must define a
// top-level `lint(summary)` function returning an array of message
// strings. A non-empty result is reported as a failure, letting a
// project enforce its own naming or structure conventions on top of
// the built-in checks.
func runRulesScript(cfg checkercfg.Config, prog *program.Program) error {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	if _, err := vm.RunString(cfg.RulesScript); err != nil {
		return fmt.Errorf("rules script failed to load: %w", err)
	}
	lintFn, ok := goja.AssertFunction(vm.Get("lint"))
	if !ok {
		return fmt.Errorf("rules script must define a `lint` function")
	}
	result, err := lintFn(goja.Undefined(), vm.ToValue(newSummary(prog)))
	if err != nil {
		return fmt.Errorf("rules script failed: %w", err)
	}
	var messages []string
	if err := vm.ExportTo(result, &messages); err != nil {
		return fmt.Errorf("rules script must return an array of strings: %w", err)
	}
	if len(messages) > 0 {
		return fmt.Errorf("rules script flagged issues:\n  %s", strings.Join(messages, "\n  "))
	}
	return nil
}
