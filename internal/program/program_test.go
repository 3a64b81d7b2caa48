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

package program

import "testing"

func TestTypeNotIsInvolution(t *testing.T) {
	var ty Type = 4
	if ty.Not().Not() != ty {
		t.Errorf("ty.Not().Not() = %v, want %v", ty.Not().Not(), ty)
	}
	if ty.Not() == ty {
		t.Error("Not() should never return its receiver")
	}
}

func TestTypePolarityMatchesAllocationParity(t *testing.T) {
	pos := Type(10)
	neg := pos.Not()
	if pos.Polarity() != Pos {
		t.Errorf("even-indexed type polarity = %v, want Pos", pos.Polarity())
	}
	if neg.Polarity() != Neg {
		t.Errorf("odd-indexed type polarity = %v, want Neg", neg.Polarity())
	}
}

func TestPolarityNotSwaps(t *testing.T) {
	if Pos.Not() != Neg || Neg.Not() != Pos {
		t.Error("Polarity.Not() should swap Pos and Neg")
	}
}

func TestGlobalsTypesAndAgentsAreIndependentNamespaces(t *testing.T) {
	g := NewGlobals()
	posTy := g.Types.Push("T", &TypeInfo{Name: "T"})
	g.Agents.Push("T", &ComponentInfo{Name: "T"})
	if got := g.ShowType(posTy); got != "T" {
		t.Errorf("ShowType = %q, want %q", got, "T")
	}
}

func TestShowTypeFallsBackWhenUndefined(t *testing.T) {
	g := NewGlobals()
	ty := g.Types.Push("T", nil)
	if got := g.ShowType(ty); got != "?0" {
		t.Errorf("ShowType(undefined) = %q, want %q", got, "?0")
	}
}

func TestCheckSkipsPortlessAgents(t *testing.T) {
	prog := NewProgram()
	prog.Globals.Agents.Push("Unit", &ComponentInfo{Name: "Unit"})
	if g := prog.Check(); g != nil {
		t.Errorf("Check() = %v, want nil for a port-less agent", g)
	}
}
