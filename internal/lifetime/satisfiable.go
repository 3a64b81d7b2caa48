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

	"github.com/inlt-lang/inlt/internal/checkerr"
	"github.com/inlt-lang/inlt/internal/order"
)

// CheckContractSatisfiable runs the full battery a declared agent or
// net contract must pass on its own: both sides must be internally
// coherent, bounds must populate cleanly, and each side's obligations
// must be satisfiable given what the other side guarantees.
func (c *Ctx) CheckContractSatisfiable(context string) *checkerr.Group {
	for _, side := range []Side{External, Internal} {
		if g := c.Order(side).CheckCoherent(c.ShowLt); g != nil {
			return checkerr.Report(checkerr.Report(g, fmt.Sprintf("impossible %s constraints:", side)), context)
		}
	}

	for _, side := range []Side{External, Internal} {
		if err := c.PopulateBounds(side); err != nil {
			return checkerr.Report(checkerr.New(err.Error()), context)
		}
	}

	for _, side := range []Side{External, Internal} {
		other := side.Not()
		cycleMsg := fmt.Sprintf("satisfying %s obligations would require incoherent constraints:", side)
		diffMsg := fmt.Sprintf("satisfying %s obligations is impossible without more %s guarantees:", side, other)
		if g := c.checkSatisfiable(&side, c.Order(other), c.Order(side), cycleMsg, diffMsg); g != nil {
			return checkerr.Report(g, context)
		}
	}
	return nil
}

// CheckSatisfiable verifies that needs is implied by knows, relaxing
// at the external/internal boundary named by side (or not relaxing at
// all if side is nil). This is the entry point used once a contract
// has already been merged with its caller's (a rule's two agents, or a
// net's free ports).
func (c *Ctx) CheckSatisfiable(side *Side, knows, needs *order.Order[Lifetime], context string) *checkerr.Group {
	cycleMsg := "validity requires incoherent lifetime constraints:"
	diffMsg := "validity requires constraints not guaranteed:"
	if g := needs.CheckCoherent(c.ShowLt); g != nil {
		return checkerr.Report(checkerr.Report(g, cycleMsg), context)
	}
	if g := c.checkSatisfiable(side, knows, needs, cycleMsg, diffMsg); g != nil {
		return checkerr.Report(g, context)
	}
	return nil
}

func (c *Ctx) checkSatisfiable(side *Side, knows, needs *order.Order[Lifetime], cycleMsg, diffMsg string) *checkerr.Group {
	if g := needs.CheckCoherent(c.ShowLt); g != nil {
		return checkerr.Report(g, cycleMsg)
	}

	newKnows := knows
	owned := false
	problems := order.NewOrder[Lifetime]()

	omitted := needs
	if side != nil {
		s := *side
		omitted = needs.Omit(func(lt Lifetime) bool {
			info, err := c.Lifetimes.Get(lt)
			return err == nil && info.Side == s
		})
	}

	for _, e := range omitted.Difference(knows) {
		a, b, relAB := e.A, e.B, e.Rel
		infoA, _ := c.Lifetimes.Get(a)
		infoB, _ := c.Lifetimes.Get(b)
		switch {
		case infoA.Max != nil && infoB.Min != nil:
			if !owned {
				newKnows = knows.Clone()
				owned = true
			}
			newKnows.Relate(*infoA.Max, *infoB.Min, relAB)
		case infoA.Max != nil:
			if !owned {
				newKnows = knows.Clone()
				owned = true
			}
			newKnows.Relate(*infoA.Max, b, relAB)
		case infoB.Min != nil:
			if !owned {
				newKnows = knows.Clone()
				owned = true
			}
			newKnows.Relate(a, *infoB.Min, relAB)
		default:
			problems.Relate(a, b, relAB)
		}
	}

	if owned {
		if g := newKnows.CheckCoherent(c.ShowLt); g != nil {
			return checkerr.Report(g, cycleMsg)
		}
	}

	if g := problems.VerifyEmpty(c.ShowLt); g != nil {
		return checkerr.Report(g, diffMsg)
	}
	return nil
}
