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

package order

import "github.com/inlt-lang/inlt/internal/relation"

const maxDepth = int(^uint(0) >> 1)

// TransistorConfig parameterizes a Transistor fold over an Order:
// Enter decides whether an edge should be followed at all, Remap turns
// a followed edge's relation into what should land in the output
// order, and Trans combines two followed edges a-b-c into what should
// be recorded between a and c.
type TransistorConfig[I Idx] struct {
	Enter func(a I, rel relation.Relation, b I) bool
	Remap func(a I, rel relation.Relation, b I) (relation.Relation, bool)
	Trans func(a I, r0 relation.Relation, b I, r1 relation.Relation, c I) (relation.Relation, bool)
}

type tFlagState int

const (
	tFlagNone tFlagState = iota
	tFlagCycle
	tFlagDone
)

type tFlag struct {
	state tFlagState
	depth int
}

// Transistor lazily computes a transitive projection of a source Order,
// memoizing per-node results so repeated Has queries over the same
// source only pay for each node's closure once.
type Transistor[I Idx] struct {
	source *Order[I]
	output *Order[I]
	cfg    TransistorConfig[I]
	flags  map[I]*tFlag
}

// NewTransistor builds a Transistor over source with the given config.
// Nothing is computed until Visit/Has/FinishWhere is called.
func NewTransistor[I Idx](source *Order[I], cfg TransistorConfig[I]) *Transistor[I] {
	return &Transistor[I]{source: source, output: NewOrder[I](), cfg: cfg, flags: make(map[I]*tFlag)}
}

func (t *Transistor[I]) flagOf(a I) *tFlag {
	f, ok := t.flags[a]
	if !ok {
		f = &tFlag{state: tFlagNone}
		t.flags[a] = f
	}
	return f
}

// Finish visits every node of the source order.
func (t *Transistor[I]) Finish() *Order[I] {
	return t.FinishWhere(func(I) bool { return true })
}

// FinishWhere visits every node of the source order for which visit
// returns true, then returns the accumulated output order.
func (t *Transistor[I]) FinishWhere(visit func(I) bool) *Order[I] {
	t.VisitWhere(visit)
	return t.output
}

// VisitWhere visits every matching node without consuming the
// Transistor, so further Has queries can still be made afterward.
func (t *Transistor[I]) VisitWhere(visit func(I) bool) {
	for a := range t.source.els {
		if visit(a) {
			t.Visit(a)
		}
	}
}

// Visit computes (and memoizes) the closure rooted at a.
func (t *Transistor[I]) Visit(a I) {
	t.visit(a, true, 0)
}

// visit is the core recursive step. hasDepth/depth together stand in
// for the reference implementation's Option<usize>: hasDepth == false
// models None, a second pass over an already-discovered node that
// finalizes it once its strongly-connected group is fully explored.
func (t *Transistor[I]) visit(a I, hasDepth bool, depth int) int {
	el, ok := t.source.els[a]
	if !ok {
		return maxDepth
	}
	flag := t.flagOf(a)
	switch flag.state {
	case tFlagNone:
		flag.state = tFlagCycle
		flag.depth = depth
	case tFlagDone:
		return maxDepth
	case tFlagCycle:
		if hasDepth {
			return flag.depth
		}
		flag.state = tFlagDone
	}

	headDepth := maxDepth
	for b, rel := range el.rels {
		if t.cfg.Enter(a, rel, b) {
			d := t.visit(b, hasDepth, depth+1)
			if d < headDepth {
				headDepth = d
			}
		}
	}

	for b, relAB := range el.rels {
		if newRel, ok := t.cfg.Remap(a, relAB, b); ok {
			t.output.Relate(a, b, newRel)
		}
		if a == b {
			continue
		}
		if t.cfg.Enter(a, relAB, b) {
			if other, ok := t.output.els[b]; ok {
				for c, relBC := range other.rels {
					if b == c {
						continue
					}
					if relAC, ok := t.cfg.Trans(a, relAB, b, relBC, c); ok {
						t.output.Relate(a, c, relAC)
					}
				}
			}
		}
	}

	if hasDepth && depth > headDepth {
		flag.state = tFlagCycle
		flag.depth = headDepth
	} else {
		flag.state = tFlagDone
		if hasDepth && depth == headDepth {
			for b, rel := range el.rels {
				if t.cfg.Enter(a, rel, b) {
					t.visit(b, false, 0)
				}
			}
		}
	}

	return headDepth
}

// Has reports whether rel between a and b is NOT already guaranteed by
// the source order, directly or through this Transistor's closure —
// i.e. the predicate Difference needs to pick out genuinely new edges.
// An edge already present verbatim in the source is never "new", so
// this short-circuits to false before computing any closure.
func (t *Transistor[I]) Has(a, b I, rel relation.Relation) bool {
	if !t.source.hasRel(a, b, rel) {
		t.Visit(a)
		return !t.output.hasRel(a, b, rel)
	}
	return false
}

// hasRel reports whether the recorded relation between a and b (if
// any) is already at least as strong as rel.
func (o *Order[I]) hasRel(a, b I, rel relation.Relation) bool {
	el, ok := o.els[a]
	if !ok {
		return false
	}
	r, ok := el.rels[b]
	if !ok {
		return false
	}
	return r&rel == r
}

// Complete builds the Transistor computing the full transitive "<="
// closure of o.
func (o *Order[I]) Complete() *Transistor[I] {
	return NewTransistor(o, TransistorConfig[I]{
		Enter: func(_ I, rel relation.Relation, _ I) bool {
			_, ok := rel.LteComponent()
			return ok
		},
		Remap: func(_ I, rel relation.Relation, _ I) (relation.Relation, bool) {
			return rel.LteComponent()
		},
		Trans: func(_ I, r0 relation.Relation, _ I, r1 relation.Relation, _ I) (relation.Relation, bool) {
			l0, ok0 := r0.LteComponent()
			if !ok0 {
				return relation.Incoherent, false
			}
			l1, ok1 := r1.LteComponent()
			if !ok1 {
				return relation.Incoherent, false
			}
			return relation.Compose(l0, l1), true
		},
	})
}

// Edge is a single (a, b, rel) triple, used where an Order's contents
// need to be collected rather than streamed.
type Edge[I Idx] struct {
	A, B I
	Rel  relation.Relation
}

// Difference returns the forward edges of o that are not already
// guaranteed (directly or transitively) by other.
func (o *Order[I]) Difference(other *Order[I]) []Edge[I] {
	t := other.Complete()
	var out []Edge[I]
	o.ForwardEdges()(func(a, b I, rel relation.Relation) bool {
		if t.Has(a, b, rel) {
			out = append(out, Edge[I]{A: a, B: b, Rel: rel})
		}
		return true
	})
	return out
}

// Omit returns, for the nodes for which omit is false, their direct
// "<=" edges to each other plus the edges obtained by composing paths
// whose intermediate nodes are all nodes for which omit is true; every
// node for which omit is true is then cleared from the output. This
// lets a contract's "external-facing" view skip over purely-internal
// lifetimes (or vice versa) while still seeing the consequences of
// relating through them. Paths through an intermediate node for which
// omit is false are not composed, so the result is not a full
// transitive closure: from 0<1<2<3 with node 1 omitted it holds 0<2
// and 2<3 but not 0<3.
func (o *Order[I]) Omit(omit func(I) bool) *Order[I] {
	out := NewTransistor(o, TransistorConfig[I]{
		Enter: func(_ I, rel relation.Relation, b I) bool {
			if !omit(b) {
				return false
			}
			_, ok := rel.LteComponent()
			return ok
		},
		Remap: func(_ I, rel relation.Relation, b I) (relation.Relation, bool) {
			if omit(b) {
				return relation.Incoherent, false
			}
			return rel.LteComponent()
		},
		Trans: func(_ I, r0 relation.Relation, _ I, r1 relation.Relation, _ I) (relation.Relation, bool) {
			l0, ok0 := r0.LteComponent()
			if !ok0 {
				return relation.Incoherent, false
			}
			l1, ok1 := r1.LteComponent()
			if !ok1 {
				return relation.Incoherent, false
			}
			return relation.Compose(l0, l1), true
		},
	}).FinishWhere(func(a I) bool { return !omit(a) })
	for a := range out.els {
		if omit(a) {
			out.els[a] = &element[I]{rels: make(map[I]relation.Relation)}
		}
	}
	return out
}
