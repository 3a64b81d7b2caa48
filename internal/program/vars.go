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

import (
	"fmt"

	"github.com/inlt-lang/inlt/internal/lifetime"
	"github.com/inlt-lang/inlt/internal/relation"
)

// Var indexes a rule's or net's local variable table. Every wire in a
// net body is a Var; it must end up used by exactly two dual-typed
// ports.
type Var int

// VarInfo tracks where a Var was declared and every port use recorded
// for it so far.
type VarInfo struct {
	Name string
	Uses []PortLabel
}

// VarCtx is the local variable namespace for one rule or net body.
type VarCtx struct {
	Vars []VarInfo
}

// NewVarCtx returns an empty variable context.
func NewVarCtx() *VarCtx {
	return &VarCtx{}
}

// Push declares a new variable, returning its Var index.
func (vc *VarCtx) Push(name string) Var {
	vc.Vars = append(vc.Vars, VarInfo{Name: name})
	return Var(len(vc.Vars) - 1)
}

// InferUses records, for every node in a rule's result net or a net's
// body, the port label each of its connected Vars is used at,
// importing that node's agent's lifetime contract (inverted, since the
// node is being used rather than defined) prefixed by its position.
func (vc *VarCtx) InferUses(globals *Globals, ltCtx *lifetime.Ctx, nodes []Node) {
	for i, node := range nodes {
		info, err := globals.Agents.Get(node.Agent)
		if err != nil {
			continue
		}
		ltBase := ltCtx.Import(info.LtCtx, true, fmt.Sprintf("%d.", i))
		for j, v := range node.Ports {
			if j >= len(info.Ports) {
				continue
			}
			label := info.Ports[j]
			vc.Vars[v].Uses = append(vc.Vars[v].Uses, PortLabel{Type: label.Type, Lt: ltBase + label.Lt})
		}
	}
}

// CheckTypes verifies that every Var is used by exactly two dual-typed
// ports, relating their lifetimes (<= in the positive port's
// direction) when it is. source names the rule or net being checked,
// for error context.
func (vc *VarCtx) CheckTypes(globals *Globals, ltCtx *lifetime.Ctx, source string) error {
	var msg string
	for _, v := range vc.Vars {
		switch {
		case len(v.Uses) == 1:
			msg += fmt.Sprintf("\n  `%s`: used only once", v.Name)
		case len(v.Uses) > 2:
			msg += fmt.Sprintf("\n  `%s`: used more than twice", v.Name)
		default:
			a, b := v.Uses[0], v.Uses[1]
			if a.Type != b.Type.Not() {
				msg += fmt.Sprintf("\n  `%s`: mismatched types `%s` and `%s`", v.Name, globals.ShowType(a.Type), globals.ShowType(b.Type))
			} else {
				polarity := a.Type.Polarity()
				rel := relation.LE
				if polarity == Neg {
					rel = rel.Rev()
				}
				ltCtx.InOrder.Relate(a.Lt, b.Lt, rel)
			}
		}
	}
	if msg != "" {
		return fmt.Errorf("type errors in %s:%s", source, msg)
	}
	return nil
}
