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

package relation

import "testing"

func TestRevInvolution(t *testing.T) {
	for r := Incoherent; r <= Any; r++ {
		if got := r.Rev().Rev(); got != r {
			t.Errorf("Rev(Rev(%s)) = %s, want %s", r, got, r)
		}
	}
}

func TestRevSwapsEndpoints(t *testing.T) {
	cases := []struct{ in, want Relation }{
		{LT, GT},
		{GT, LT},
		{LE, GE},
		{GE, LE},
		{Eq, Eq},
		{Any, Any},
		{Incoherent, Incoherent},
	}
	for _, c := range cases {
		if got := c.in.Rev(); got != c.want {
			t.Errorf("Rev(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestAndIsIntersection(t *testing.T) {
	if got := Any.And(LT); got != LT {
		t.Errorf("Any.And(LT) = %s, want LT", got)
	}
	if got := LT.And(GT); got != Incoherent {
		t.Errorf("LT.And(GT) = %s, want Incoherent", got)
	}
	if got := Eq.And(LT); got != Incoherent {
		t.Errorf("Eq.And(LT) = %s, want Incoherent", got)
	}
}

func TestAllowsEqual(t *testing.T) {
	if !Eq.AllowsEqual() {
		t.Error("Eq should allow equality")
	}
	if LT.AllowsEqual() {
		t.Error("LT should not allow equality")
	}
	if !Any.AllowsEqual() {
		t.Error("Any should allow equality")
	}
}

func TestNotEqualStripsEquality(t *testing.T) {
	if got := LE.NotEqual(); got != LT {
		t.Errorf("LE.NotEqual() = %s, want LT", got)
	}
	if got := GE.NotEqual(); got != GT {
		t.Errorf("GE.NotEqual() = %s, want GT", got)
	}
	if got := Eq.NotEqual(); got.AllowsEqual() {
		t.Errorf("Eq.NotEqual() = %s still allows equality", got)
	}
}

func TestLteGteComponent(t *testing.T) {
	if rel, ok := Eq.LteComponent(); !ok || rel != LE {
		t.Errorf("Eq.LteComponent() = (%s, %v), want (LE, true)", rel, ok)
	}
	if rel, ok := LT.LteComponent(); !ok || rel != LT {
		t.Errorf("LT.LteComponent() = (%s, %v), want (LT, true)", rel, ok)
	}
	if _, ok := GT.LteComponent(); ok {
		t.Error("GT.LteComponent() should have no <= component")
	}
	if rel, ok := Eq.GteComponent(); !ok || rel != GE {
		t.Errorf("Eq.GteComponent() = (%s, %v), want (GE, true)", rel, ok)
	}
}

func TestComposeTransitivity(t *testing.T) {
	cases := []struct {
		r1, r2, want Relation
	}{
		{LT, LT, LT},
		{LT, LE, LT},
		{LE, LT, LT},
		{LE, LE, LE},
		{GT, GT, GT},
		{GE, GE, GE},
		{LT, GT, Incoherent},
		{LT, GE, Incoherent},
	}
	for _, c := range cases {
		if got := Compose(c.r1, c.r2); got != c.want {
			t.Errorf("Compose(%s, %s) = %s, want %s", c.r1, c.r2, got, c.want)
		}
	}
}

func TestComposeIsUnionOverLiterals(t *testing.T) {
	// a <= b <= c should allow a < c or a == c, i.e. LE composed with LE
	// covers exactly LE (not widened to Any), and composing a broader
	// relation pulls in every literal pair's contribution.
	got := Compose(Eq, LE)
	if got&LE == 0 {
		t.Errorf("Compose(Eq, LE) = %s, should retain LE", got)
	}
	if got&GT != 0 {
		t.Errorf("Compose(Eq, LE) = %s, should not gain GT", got)
	}
}

func TestTwist(t *testing.T) {
	if got := LT.Twist(false); got != LT {
		t.Errorf("Twist(false) should be identity, got %s", got)
	}
	if got := LT.Twist(true); got != GT {
		t.Errorf("Twist(true) should reverse, got %s", got)
	}
}

func TestCoherent(t *testing.T) {
	if Incoherent.Coherent() {
		t.Error("Incoherent.Coherent() should be false")
	}
	if !Any.Coherent() {
		t.Error("Any.Coherent() should be true")
	}
}

func TestString(t *testing.T) {
	if Incoherent.String() != "incoherent" {
		t.Errorf("Incoherent.String() = %q", Incoherent.String())
	}
	if Eq.String() != "<=>=" {
		t.Errorf("Eq.String() = %q, want \"<=>=\"", Eq.String())
	}
}
