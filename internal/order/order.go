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

// Package order implements Order, a symmetric directed constraint graph
// over a generic index type, plus the Transistor transitive-closure
// engine built on top of it. An Order is the workhorse data structure
// behind both the global type hierarchy and every lifetime contract:
// "a relates to b by some subset of {<, <=, >=, >}".
package order

import (
	"fmt"

	"github.com/inlt-lang/inlt/internal/checkerr"
	"github.com/inlt-lang/inlt/internal/relation"
)

// Idx is any small integer-backed index type used to key an Order.
type Idx interface {
	~int
}

// Polarity twists a relation when an edge is recorded between two ports
// of opposite polarity. It mirrors the Pos/Neg duality used by the
// program's type system.
type Polarity bool

const (
	Pos Polarity = false
	Neg Polarity = true
)

type element[I Idx] struct {
	rels map[I]relation.Relation
}

// Order stores, for every pair of related indices, the Relation that
// holds between them. Storage is symmetric: looking up (a,b) and (b,a)
// always yields reverse relations, and a <= a is never stored since it
// carries no information.
type Order[I Idx] struct {
	els map[I]*element[I]
}

// NewOrder returns an empty Order.
func NewOrder[I Idx]() *Order[I] {
	return &Order[I]{els: make(map[I]*element[I])}
}

func (o *Order[I]) entry(a I) *element[I] {
	if o.els == nil {
		o.els = make(map[I]*element[I])
	}
	el, ok := o.els[a]
	if !ok {
		el = &element[I]{rels: make(map[I]relation.Relation)}
		o.els[a] = el
	}
	return el
}

// Relate records that rel holds between a and b, intersecting with
// anything already known about that pair. The a == a case is dropped
// unless rel disallows equality (a < a is recorded so it is later
// reported as an immediate contradiction; a <= a carries no
// information and is skipped, matching the reference behavior of never
// storing a trivially-true self-loop).
func (o *Order[I]) Relate(a, b I, rel relation.Relation) {
	if a == b && rel.AllowsEqual() {
		return
	}
	ea := o.entry(a)
	if cur, ok := ea.rels[b]; ok {
		ea.rels[b] = cur.And(rel)
	} else {
		ea.rels[b] = rel
	}
	eb := o.entry(b)
	revRel := rel.Rev()
	if cur, ok := eb.rels[a]; ok {
		eb.rels[a] = cur.And(revRel)
	} else {
		eb.rels[a] = revRel
	}
}

// RelatePolarity records rel between a and b, reversed first if
// polarity is Neg. Used when an edge is declared from the perspective
// of a negative-polarity port.
func (o *Order[I]) RelatePolarity(a, b I, rel relation.Relation, polarity Polarity) {
	if polarity == Neg {
		rel = rel.Rev()
	}
	o.Relate(a, b, rel)
}

// Import copies every edge of another order (of a possibly different
// index type) into this one, remapping indices with f. Each unordered
// pair is imported once.
func Import[I Idx, J Idx](o *Order[I], from *Order[J], f func(J) I) {
	from.Edges()(func(a, b J, rel relation.Relation) bool {
		if a < b {
			o.Relate(f(a), f(b), rel)
		}
		return true
	})
}

// Import is the method form, matching the reference LifetimeCtx usage.
func (o *Order[I]) Import(from *Order[I], f func(I) I) {
	Import(o, from, f)
}

// Get returns the relation known to hold between a and b, or
// relation.Any if nothing is recorded.
func (o *Order[I]) Get(a, b I) relation.Relation {
	if el, ok := o.els[a]; ok {
		if r, ok := el.rels[b]; ok {
			return r
		}
	}
	return relation.Any
}

// Edges yields every stored (a, b, rel) triple, both directions of
// each unordered pair.
func (o *Order[I]) Edges() func(yield func(I, I, relation.Relation) bool) {
	return func(yield func(I, I, relation.Relation) bool) {
		for a, el := range o.els {
			for b, rel := range el.rels {
				if !yield(a, b, rel) {
					return
				}
			}
		}
	}
}

// ForwardEdges yields the "<=" projection of every stored edge that has
// one: used for reporting and by Difference. A strict pair (a < b) is
// named once, from its lesser end; a pair whose relation allows both
// directions is yielded from both ends.
func (o *Order[I]) ForwardEdges() func(yield func(I, I, relation.Relation) bool) {
	return func(yield func(I, I, relation.Relation) bool) {
		for a, el := range o.els {
			for b, rel := range el.rels {
				if lte, ok := rel.LteComponent(); ok {
					if !yield(a, b, lte) {
						return
					}
				}
			}
		}
	}
}

// EdgesFrom yields every (b, rel) edge recorded from a.
func (o *Order[I]) EdgesFrom(a I) func(yield func(I, relation.Relation) bool) {
	return func(yield func(I, relation.Relation) bool) {
		el, ok := o.els[a]
		if !ok {
			return
		}
		for b, rel := range el.rels {
			if !yield(b, rel) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (o *Order[I]) Clone() *Order[I] {
	out := NewOrder[I]()
	for a, el := range o.els {
		ne := &element[I]{rels: make(map[I]relation.Relation, len(el.rels))}
		for b, r := range el.rels {
			ne.rels[b] = r
		}
		out.els[a] = ne
	}
	return out
}

// VerifyEmpty reports every forward edge still present as an error:
// used after a difference/omit projection to report exactly the edges
// that a contract needs but a known order does not guarantee.
func (o *Order[I]) VerifyEmpty(show func(I) string) *checkerr.Group {
	var children []*checkerr.Group
	o.ForwardEdges()(func(a, b I, rel relation.Relation) bool {
		children = append(children, checkerr.Newf("%s %s %s", show(a), rel, show(b)))
		return true
	})
	return checkerr.Wrap("", children...)
}

// CheckCoherent reports every cycle found in the order as a nested
// error, rendered as the chain of nodes and relations that make it up.
func (o *Order[I]) CheckCoherent(show func(I) string) *checkerr.Group {
	cycles := o.findCycles()
	if len(cycles) == 0 {
		return nil
	}
	var children []*checkerr.Group
	for _, cycle := range cycles {
		children = append(children, checkerr.New(o.showCycle(cycle, show)))
	}
	return checkerr.Wrap("", children...)
}

// CheckAcyclic is CheckCoherent reported under msg, for call sites
// (the global type order) that only care about "any cycle at all" and
// supply their own top-level message.
func (o *Order[I]) CheckAcyclic(msg string, show func(I) string) *checkerr.Group {
	return checkerr.Report(o.CheckCoherent(show), msg)
}

func (o *Order[I]) showCycle(cycle []I, show func(I) string) string {
	s := ""
	var last I
	have := false
	for _, b := range cycle {
		if have {
			rel := o.Get(last, b)
			lte, _ := rel.LteComponent()
			op := "<"
			if lte.AllowsEqual() {
				op = "<="
			}
			s += fmt.Sprintf(" %s ", op)
		}
		s += show(b)
		last = b
		have = true
	}
	return s
}

type cycleFlag int

const (
	flagNone cycleFlag = iota
	flagVisiting
	flagVisited
)

type cycleState[I Idx] struct {
	flag        map[I]cycleFlag
	visitDepth  map[I]int
	active0     [][]I
	active1     [][]I
	finished    [][]I
}

// findCycles walks every node with a DFS that tracks the "strong
// depth" of the current path (the number of strictly-< edges crossed
// so far). A cycle is only incoherent if it closes with positive
// strong depth, i.e. it asserts a < a somewhere, not merely a <= a.
// This does not report every cycle (that can be exponential), but
// every node involved in some cycle appears in at least one reported
// cycle.
func (o *Order[I]) findCycles() [][]I {
	st := &cycleState[I]{flag: make(map[I]cycleFlag), visitDepth: make(map[I]int)}
	for a := range o.els {
		st.visit(o, a, 0)
	}
	return st.finished
}

func (st *cycleState[I]) visit(o *Order[I], a I, strongDepth int) {
	el, ok := o.els[a]
	if !ok {
		return
	}
	switch st.flag[a] {
	case flagVisited:
		return
	case flagVisiting:
		if strongDepth > st.visitDepth[a] {
			st.active0 = append(st.active0, []I{a})
		}
		return
	}
	st.flag[a] = flagVisiting
	st.visitDepth[a] = strongDepth

	st.active0, st.active1 = st.active1, st.active0
	newCyclesStart := len(st.active0)

	for b, rel := range el.rels {
		lte, ok := rel.LteComponent()
		if !ok {
			continue
		}
		next := strongDepth
		if !lte.AllowsEqual() {
			next++
		}
		st.visit(o, b, next)
	}

	newCycles := append([][]I(nil), st.active0[newCyclesStart:]...)
	st.active0 = st.active0[:newCyclesStart]
	for _, cycle := range newCycles {
		cycle = append(cycle, a)
		if cycle[0] == a {
			reversed := make([]I, len(cycle))
			for i, v := range cycle {
				reversed[len(cycle)-1-i] = v
			}
			st.finished = append(st.finished, reversed)
		} else {
			st.active1 = append(st.active1, cycle)
		}
	}

	st.flag[a] = flagVisited
	st.active0, st.active1 = st.active1, st.active0
}
