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

// Package program holds the checked data model for one source file: its
// global type and agent tables, its rules and nets, and the Check pass
// that validates all of it together.
package program

import (
	"fmt"

	"github.com/inlt-lang/inlt/internal/lifetime"
	"github.com/inlt-lang/inlt/internal/order"
	"github.com/inlt-lang/inlt/internal/scope"
)

// Polarity distinguishes the two dual sides of a type: every declared
// type name introduces both a Pos and a Neg type, related by Not.
type Polarity int

const (
	Pos Polarity = iota
	Neg
)

// Not returns the opposite polarity.
func (p Polarity) Not() Polarity {
	if p == Pos {
		return Neg
	}
	return Pos
}

func (p Polarity) String() string {
	if p == Pos {
		return "+"
	}
	return "-"
}

// Type indexes the global type table. Types are always allocated in
// Pos/Neg pairs at adjacent indices, so duality is a single XOR.
type Type int

// Not returns the dual of t.
func (t Type) Not() Type {
	return t ^ 1
}

// Polarity returns whether t is the positive or negative half of its pair.
func (t Type) Polarity() Polarity {
	if t&1 == 0 {
		return Pos
	}
	return Neg
}

// TypeInfo is the metadata attached to a declared type.
type TypeInfo struct {
	Name string
}

// Component indexes the global agent table (nets are not
// inter-referenceable, so only agents live here).
type Component int

// ComponentInfo is a registered agent's shape: its lifetime contract
// and its ports, port 0 always the principal port.
type ComponentInfo struct {
	Name   string
	LtCtx  *lifetime.Ctx
	Ports  []PortLabel
}

// PortLabel names a port's type and the lifetime attached to it.
type PortLabel struct {
	Type Type
	Lt   lifetime.Lifetime
}

func (l PortLabel) String() string {
	return fmt.Sprintf("%v'%v", l.Type, l.Lt)
}

// Globals is the cross-file-section namespace shared by type
// declarations, agent declarations, rules, and nets: the type
// hierarchy order plus the type and agent Scopes.
type Globals struct {
	TypeOrder *order.Order[Type]
	Types     *scope.Scope[Type, TypeInfo]
	Agents    *scope.Scope[Component, ComponentInfo]
}

// NewGlobals returns an empty Globals ready for population.
func NewGlobals() *Globals {
	return &Globals{
		TypeOrder: order.NewOrder[Type](),
		Types:     scope.New[Type, TypeInfo]("type"),
		Agents:    scope.New[Component, ComponentInfo]("agent"),
	}
}

// ShowType renders a type by its declared name, falling back to its
// numeric form if lookup fails (e.g. while reporting an error about the
// type table itself).
func (g *Globals) ShowType(t Type) string {
	info, err := g.Types.Get(t)
	if err != nil {
		return fmt.Sprintf("?%d", int(t))
	}
	return info.Name
}

// ShowComponent renders a component by its declared name.
func (g *Globals) ShowComponent(c Component) string {
	info, err := g.Agents.Get(c)
	if err != nil {
		return fmt.Sprintf("?%d", int(c))
	}
	return info.Name
}
