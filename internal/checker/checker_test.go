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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inlt-lang/inlt/internal/checkercfg"
)

const validSource = `
	type T: +
	agent ['b < 'a] Foo(T 'a, !T 'b)
`

const unsatisfiableSource = `
	type T: +
	agent ['a, 'b] Foo(T 'a, !T 'b)
`

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunReportsOKAndFailingFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.inlt", validSource)
	bad := writeSource(t, dir, "bad.inlt", unsatisfiableSource)

	cfg := checkercfg.NewConfig(checkercfg.WithWorkers(2))
	results := Run(cfg, []string{good, bad})

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Path != good || !results[0].OK() {
		t.Errorf("results[0] = %+v, want OK result for %s", results[0], good)
	}
	if results[1].Path != bad || results[1].OK() {
		t.Errorf("results[1] = %+v, want a failing result for %s", results[1], bad)
	}
}

func TestRunReportsMissingFile(t *testing.T) {
	cfg := checkercfg.NewConfig()
	results := Run(cfg, []string{"/nonexistent/path.inlt"})
	if len(results) != 1 || results[0].OK() {
		t.Fatalf("results = %+v, want a single failing result", results)
	}
}

func TestDoCheckRunsRulesScriptAfterContractPasses(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "good.inlt", validSource)

	cfg := checkercfg.NewConfig(checkercfg.WithRulesScript(`
		function lint(summary) {
			if (summary.agents.length !== 1) {
				return ["expected exactly one agent"];
			}
			return [];
		}
	`))
	if err := doCheck(cfg, path); err != nil {
		t.Errorf("doCheck: %v, want nil", err)
	}
}

func TestDoCheckFailsWhenRulesScriptFlagsIssues(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "good.inlt", validSource)

	cfg := checkercfg.NewConfig(checkercfg.WithRulesScript(`
		function lint(summary) {
			return ["agents must be named Bar"];
		}
	`))
	err := doCheck(cfg, path)
	if err == nil {
		t.Fatal("doCheck should fail when the rules script returns messages")
	}
}

func TestDoCheckSkipsRulesScriptOnContractFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.inlt", unsatisfiableSource)

	cfg := checkercfg.NewConfig(checkercfg.WithRulesScript(`
		function lint(summary) { throw "should never run"; }
	`))
	if err := doCheck(cfg, path); err == nil {
		t.Fatal("doCheck should fail on the contract error without reaching the rules script")
	}
}

func TestApplyFilterPassesThroughWithoutExpr(t *testing.T) {
	err := errors.New("some failure")
	if got := applyFilter(checkercfg.NewConfig(), err); got != err {
		t.Errorf("applyFilter() = %v, want the original error unchanged", got)
	}
}

func TestApplyFilterSuppressesRejectedMessage(t *testing.T) {
	cfg := checkercfg.NewConfig(checkercfg.WithFilterExpr(`message contains "keep me"`))
	err := errors.New("drop me: unrelated failure")
	if got := applyFilter(cfg, err); got != nil {
		t.Errorf("applyFilter() = %v, want nil", got)
	}
}

func TestApplyFilterKeepsMatchedMessage(t *testing.T) {
	cfg := checkercfg.NewConfig(checkercfg.WithFilterExpr(`message contains "keep me"`))
	err := errors.New("keep me: a real failure")
	if got := applyFilter(cfg, err); got == nil {
		t.Error("applyFilter() = nil, want the error preserved")
	}
}

func TestApplyFilterReportsInvalidExpression(t *testing.T) {
	cfg := checkercfg.NewConfig(checkercfg.WithFilterExpr(`message contains`))
	if got := applyFilter(cfg, errors.New("x")); got == nil {
		t.Error("applyFilter() = nil, want an error describing the bad filter expression")
	}
}
