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

// Package lifetime implements the lifetime-contract machinery: the
// external/internal orders attached to every agent and net, bound
// population across the external/internal boundary, and the
// satisfiability check that ties a contract's obligations to what its
// callers (or its own internals) actually guarantee.
package lifetime

import (
	"fmt"

	"github.com/inlt-lang/inlt/internal/order"
	"github.com/inlt-lang/inlt/internal/scope"
)

// Lifetime indexes a contract's lifetime table.
type Lifetime int

// Side is which half of a contract a lifetime belongs to: External
// lifetimes are the ones a caller must provide guarantees about,
// Internal lifetimes are scoped to the component's own body.
type Side int

const (
	External Side = iota
	Internal
)

// Not returns the opposite side.
func (s Side) Not() Side {
	if s == External {
		return Internal
	}
	return External
}

func (s Side) String() string {
	if s == External {
		return "external"
	}
	return "internal"
}

// Info is the metadata attached to one lifetime: which side it
// belongs to, and the tightest bound (if any) known on the opposite
// side once bounds have been populated.
type Info struct {
	Side Side
	Min  *Lifetime
	Max  *Lifetime
}

// Ctx is one component's (or rule's merged) lifetime contract: a named
// table of lifetimes plus the external and internal constraint orders
// over them.
type Ctx struct {
	Lifetimes *scope.Scope[Lifetime, Info]
	ExOrder   *order.Order[Lifetime]
	InOrder   *order.Order[Lifetime]
}

// NewCtx returns an empty lifetime contract.
func NewCtx() *Ctx {
	return &Ctx{
		Lifetimes: scope.New[Lifetime, Info]("lifetime"),
		ExOrder:   order.NewOrder[Lifetime](),
		InOrder:   order.NewOrder[Lifetime](),
	}
}

// Order returns the order for the given side.
func (c *Ctx) Order(side Side) *order.Order[Lifetime] {
	if side == External {
		return c.ExOrder
	}
	return c.InOrder
}

// ShowLt renders a lifetime by its declared name.
func (c *Ctx) ShowLt(lt Lifetime) string {
	if lt < 0 || int(lt) >= int(c.Lifetimes.Len()) {
		return fmt.Sprintf("'?%d", int(lt))
	}
	return "'" + c.Lifetimes.Name(lt)
}

// Intro declares a new lifetime on the given side.
func (c *Ctx) Intro(name string, side Side) Lifetime {
	v := Info{Side: side}
	return c.Lifetimes.Push(name, &v)
}

// Import copies every lifetime (and the edges between them) from
// another contract into this one, offsetting indices to land after
// whatever is already present. When invert is true the copied
// lifetimes' sides are flipped and the external/internal orders are
// swapped on the way in — used when a rule imports an agent's contract
// from the "calling" perspective. Every copied name is prefixed
// (e.g. "agentName.") so error messages can tell which agent a
// lifetime came from. Returns the base offset applied.
func (c *Ctx) Import(from *Ctx, invert bool, prefix string) Lifetime {
	base := c.Lifetimes.Len()
	from.Lifetimes.Iter(func(_ Lifetime, name string, inf *Info) {
		side := inf.Side
		if invert {
			side = side.Not()
		}
		ni := Info{Side: side}
		if inf.Min != nil {
			m := *inf.Min + base
			ni.Min = &m
		}
		if inf.Max != nil {
			m := *inf.Max + base
			ni.Max = &m
		}
		c.Lifetimes.Push(prefix+name, &ni)
	})

	known, needs := from.ExOrder, from.InOrder
	if invert {
		known, needs = from.InOrder, from.ExOrder
	}
	c.ExOrder.Import(known, func(lt Lifetime) Lifetime { return lt + base })
	c.InOrder.Import(needs, func(lt Lifetime) Lifetime { return lt + base })
	return base
}
