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
	"fmt"

	"github.com/inlt-lang/inlt/internal/order"
	"github.com/inlt-lang/inlt/internal/relation"
)

// PopulateBounds computes, for every lifetime on the given side, the
// single opposite-side lifetime (if any) that tightly bounds it from
// below (Min) and above (Max). These bounds are what satisfiability
// checking later relaxes through at the external/internal boundary.
//
// A lifetime with more than one opposite-side bound of the same kind
// is rejected: merging multiple bounds into one would require deciding
// how they combine, which this checker does not attempt.
func (c *Ctx) PopulateBounds(side Side) error {
	sideOrder := c.Order(side)
	onSide := func(lt Lifetime) bool {
		info, err := c.Lifetimes.Get(lt)
		return err == nil && info.Side == side
	}
	bounds := order.NewTransistor(sideOrder, order.TransistorConfig[Lifetime]{
		Enter: func(_ Lifetime, _ relation.Relation, b Lifetime) bool { return onSide(b) },
		Remap: func(_ Lifetime, rel relation.Relation, b Lifetime) (relation.Relation, bool) {
			return rel, !onSide(b)
		},
		Trans: func(_ Lifetime, r0 relation.Relation, _ Lifetime, r1 relation.Relation, _ Lifetime) (relation.Relation, bool) {
			rel := relation.Compose(r0, r1)
			return rel, rel.Coherent()
		},
	}).FinishWhere(onSide)

	var firstErr error
	c.Lifetimes.Iter(func(a Lifetime, name string, info *Info) {
		if info.Side != side || firstErr != nil {
			return
		}
		min, err := getBound(name, bounds, a, side, relation.Relation.GteComponent, "lower")
		if err != nil {
			firstErr = err
			return
		}
		info.Min = min
		max, err := getBound(name, bounds, a, side, relation.Relation.LteComponent, "upper")
		if err != nil {
			firstErr = err
			return
		}
		info.Max = max
	})
	return firstErr
}

func getBound(
	lt string,
	bounds *order.Order[Lifetime],
	a Lifetime,
	side Side,
	component func(relation.Relation) (relation.Relation, bool),
	boundType string,
) (*Lifetime, error) {
	var found []Lifetime
	var foundRel relation.Relation
	for b, rel := range bounds.EdgesFrom(a) {
		if comp, ok := component(rel); ok {
			found = append(found, b)
			foundRel = comp
		}
	}
	if len(found) == 0 {
		return nil, nil
	}
	if len(found) > 1 {
		return nil, fmt.Errorf(
			"%s lifetime `%s` has multiple %s %s bounds\n"+
				"  rewrite the contract so there is only one\n"+
				"  (this is a temporary limitation of the checker)",
			side, lt, side.Not(), boundType)
	}
	if !foundRel.AllowsEqual() {
		return nil, fmt.Errorf(
			"%s lifetime `%s`'s %s %s bound is related with `<`, not `<=`\n"+
				"  rewrite the contract so that it uses `<=`\n"+
				"  (this is a temporary limitation of the checker)",
			side, lt, side.Not(), boundType)
	}
	min := found[0]
	return &min, nil
}
