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

package checkerr

import "testing"

func TestLeafError(t *testing.T) {
	g := New("bad thing")
	if g.Error() != "bad thing" {
		t.Errorf("Error() = %q, want %q", g.Error(), "bad thing")
	}
}

func TestWrapNilOnNoChildren(t *testing.T) {
	if g := Wrap("context"); g != nil {
		t.Errorf("Wrap with no children = %v, want nil", g)
	}
	if g := Wrap("context", nil, nil); g != nil {
		t.Errorf("Wrap with only nil children = %v, want nil", g)
	}
}

func TestWrapRendersIndented(t *testing.T) {
	g := Wrap("parent", New("child one"), New("child two"))
	want := "parent\n  child one\n  child two"
	if got := g.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapNested(t *testing.T) {
	g := Wrap("outer", Wrap("inner", New("leaf")))
	want := "outer\n  inner\n    leaf"
	if got := g.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReportNilStaysNil(t *testing.T) {
	if g := Report(nil, "context"); g != nil {
		t.Errorf("Report(nil, ...) = %v, want nil", g)
	}
}

func TestReportWrapsOneMoreLevel(t *testing.T) {
	g := Report(New("leaf"), "context")
	want := "context\n  leaf"
	if got := g.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBareContainerSkipsIndent(t *testing.T) {
	// A Group with an empty Message is a bare list of siblings: its
	// children render at the same depth, with no extra blank message
	// line or indent level.
	g := &Group{Children: []*Group{New("a"), New("b")}}
	want := "a\nb"
	if got := g.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewfFormats(t *testing.T) {
	g := Newf("found %d issues in `%s`", 3, "foo")
	want := "found 3 issues in `foo`"
	if got := g.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
