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

package parser

import "testing"

func TestParseSimpleAgent(t *testing.T) {
	prog, err := Parse(`
		type T: +
		agent ['b < 'a] Foo(T 'a, !T 'b)
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Agents) != 1 || prog.Agents[0].Name != "Foo" {
		t.Fatalf("Agents = %+v, want one agent named Foo", prog.Agents)
	}
	if len(prog.Agents[0].Ports) != 2 {
		t.Fatalf("Ports = %+v, want 2", prog.Agents[0].Ports)
	}
}

func TestParseAndCheckSatisfiedContract(t *testing.T) {
	prog, err := Parse(`
		type T: +
		agent ['b < 'a] Foo(T 'a, !T 'b)
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g := prog.Check(); g != nil {
		t.Errorf("Check() = %v, want nil (contract guarantees b < a)", g)
	}
}

func TestParseAndCheckUnsatisfiedContract(t *testing.T) {
	prog, err := Parse(`
		type T: +
		agent ['a, 'b] Foo(T 'a, !T 'b)
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g := prog.Check(); g == nil {
		t.Error("Check() should fail: nothing guarantees the aux port's lifetime is bounded by the principal's")
	}
}

func TestParseCommentsAreSkipped(t *testing.T) {
	prog, err := Parse(`
		// a trivial wire type
		type T: +
		agent ['b < 'a] Foo(T 'a, !T 'b) // the only agent
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Agents) != 1 {
		t.Fatalf("Agents = %+v, want 1", prog.Agents)
	}
}

func TestParseUnknownTypeErrors(t *testing.T) {
	_, err := Parse(`agent ['a] Foo(Bogus 'a)`)
	if err == nil {
		t.Fatal("Parse should fail on an unknown type")
	}
}

func TestParseUnknownAgentInRuleErrors(t *testing.T) {
	_, err := Parse(`
		type T: +
		agent ['a] Foo(T 'a)
		rule Foo(x) Bar(x) { }
	`)
	if err == nil {
		t.Fatal("Parse should fail when a rule references an undeclared agent")
	}
}

func TestParseSyntaxErrorHighlightsSource(t *testing.T) {
	_, err := Parse("type T ")
	if err == nil {
		t.Fatal("Parse should fail on a missing `:`")
	}
	if got := err.Error(); got == "" {
		t.Error("syntax error should carry a message")
	}
}
