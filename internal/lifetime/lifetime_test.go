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

package lifetime

import (
	"testing"

	"github.com/inlt-lang/inlt/internal/order"
	"github.com/inlt-lang/inlt/internal/relation"
)

func TestSideNot(t *testing.T) {
	if External.Not() != Internal {
		t.Error("External.Not() should be Internal")
	}
	if Internal.Not() != External {
		t.Error("Internal.Not() should be External")
	}
}

func TestIntroAndShowLt(t *testing.T) {
	c := NewCtx()
	a := c.Intro("a", External)
	if got := c.ShowLt(a); got != "'a" {
		t.Errorf("ShowLt(a) = %q, want \"'a\"", got)
	}
}

func TestShowLtOutOfRange(t *testing.T) {
	c := NewCtx()
	if got := c.ShowLt(Lifetime(5)); got != "'?5" {
		t.Errorf("ShowLt on unknown lifetime = %q, want \"'?5\"", got)
	}
}

func TestImportPrefixesAndOffsets(t *testing.T) {
	agent := NewCtx()
	agent.Intro("x", External)
	agent.Intro("y", Internal)

	into := NewCtx()
	into.Intro("existing", External)
	base := into.Import(agent, false, "agent.")

	if base != 1 {
		t.Fatalf("Import base = %d, want 1 (after the one pre-existing lifetime)", base)
	}
	if got := into.ShowLt(base); got != "'agent.x" {
		t.Errorf("ShowLt(base) = %q, want \"'agent.x\"", got)
	}
	if got := into.ShowLt(base + 1); got != "'agent.y" {
		t.Errorf("ShowLt(base+1) = %q, want \"'agent.y\"", got)
	}
}

func TestImportInvertFlipsSide(t *testing.T) {
	agent := NewCtx()
	x := agent.Intro("x", External)

	into := NewCtx()
	base := into.Import(agent, true, "")
	info, err := into.Lifetimes.Get(base + x)
	if err != nil {
		t.Fatalf("Get(%v) error = %v", base+x, err)
	}
	if info.Side != Internal {
		t.Errorf("inverted import of an External lifetime should land Internal, got %s", info.Side)
	}
}

func TestCheckSatisfiableDirectMatch(t *testing.T) {
	c := NewCtx()
	a := c.Intro("a", External)
	b := c.Intro("b", External)

	knows := order.NewOrder[Lifetime]()
	knows.Relate(a, b, relation.LE)
	needs := order.NewOrder[Lifetime]()
	needs.Relate(a, b, relation.LE)

	if g := c.CheckSatisfiable(nil, knows, needs, "ctx"); g != nil {
		t.Errorf("CheckSatisfiable with needs == knows = %v, want nil", g)
	}
}

func TestCheckSatisfiableMissingGuarantee(t *testing.T) {
	c := NewCtx()
	a := c.Intro("a", External)
	b := c.Intro("b", External)

	knows := order.NewOrder[Lifetime]()
	needs := order.NewOrder[Lifetime]()
	needs.Relate(a, b, relation.LE)

	g := c.CheckSatisfiable(nil, knows, needs, "ctx")
	if g == nil {
		t.Fatal("CheckSatisfiable should fail when knows has nothing establishing a<=b")
	}
}
