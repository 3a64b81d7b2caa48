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

	"github.com/inlt-lang/inlt/internal/checkerr"
	"github.com/inlt-lang/inlt/internal/lifetime"
	"github.com/inlt-lang/inlt/internal/order"
	"github.com/inlt-lang/inlt/internal/relation"
)

func orderPolarity(p Polarity) order.Polarity {
	if p == Neg {
		return order.Neg
	}
	return order.Pos
}

// Check runs every static check this package knows about, in the same
// order the source is naturally declared: each agent's own contract
// and its contribution to the global type hierarchy, the hierarchy's
// acyclicity, then every rule, then every net. It stops at the first
// failing item, matching the fail-fast shape of a single file's check
// — a single item's own internal problems (cycles, unmet obligations)
// are still collected together rather than truncated to the first one.
func (p *Program) Check() *checkerr.Group {
	tyOrder := order.NewOrder[Type]()

	var agentErr *checkerr.Group
	p.Globals.Agents.Iter(func(_ Component, _ string, info *ComponentInfo) {
		if agentErr != nil || len(info.Ports) == 0 {
			return
		}
		context := fmt.Sprintf("agent `%s`", info.Name)
		if g := info.LtCtx.CheckContractSatisfiable(context); g != nil {
			agentErr = g
			return
		}

		required := order.NewOrder[lifetime.Lifetime]()
		pri := info.Ports[0]
		for _, aux := range info.Ports[1:] {
			if aux.Type.Not() == pri.Type {
				required.RelatePolarity(aux.Lt, pri.Lt, relation.LT, orderPolarity(pri.Type.Polarity()))
			} else {
				tyOrder.Relate(aux.Type.Not(), pri.Type, relation.LT)
			}
		}

		fullOrder := info.LtCtx.ExOrder.Clone()
		fullOrder.Import(info.LtCtx.InOrder, func(lt lifetime.Lifetime) lifetime.Lifetime { return lt })

		if g := info.LtCtx.CheckSatisfiable(nil, fullOrder, required, context); g != nil {
			agentErr = g
			return
		}
	})
	if agentErr != nil {
		return agentErr
	}

	if g := tyOrder.CheckAcyclic("found cycles in type order:", p.Globals.ShowType); g != nil {
		return g
	}

	for i := range p.Rules {
		if g := p.checkRule(&p.Rules[i]); g != nil {
			return g
		}
	}

	for i := range p.Nets {
		if g := p.checkNet(&p.Nets[i]); g != nil {
			return g
		}
	}

	return nil
}

func (p *Program) checkRule(rule *RuleDef) *checkerr.Group {
	a, err := p.Globals.Agents.Get(rule.A.Agent)
	if err != nil {
		return checkerr.New(err.Error())
	}
	b, err := p.Globals.Agents.Get(rule.B.Agent)
	if err != nil {
		return checkerr.New(err.Error())
	}
	ruleName := fmt.Sprintf("%s-%s", a.Name, b.Name)

	if len(rule.A.Ports) == 0 || len(rule.B.Ports) == 0 || rule.A.Ports[0] != rule.B.Ports[0] {
		return checkerr.Newf("nodes in `%s` are not connected by their principal ports", ruleName)
	}

	ltCtx := lifetime.NewCtx()
	aBase := ltCtx.Import(a.LtCtx, false, a.Name+".")
	bBase := ltCtx.Import(b.LtCtx, false, b.Name+".")
	ltCtx.ExOrder.RelatePolarity(
		aBase+a.Ports[0].Lt, bBase+b.Ports[0].Lt,
		relation.LE, orderPolarity(a.Ports[0].Type.Polarity()),
	)

	sources := []struct {
		base lifetime.Lifetime
		node Node
	}{{aBase, rule.A}, {bBase, rule.B}}
	for _, src := range sources {
		info, err := p.Globals.Agents.Get(src.node.Agent)
		if err != nil {
			continue
		}
		for i, v := range src.node.Ports {
			if i >= len(info.Ports) {
				continue
			}
			label := info.Ports[i]
			ty := label.Type
			if i != 0 {
				ty = ty.Not()
			}
			rule.VarCtx.Vars[v].Uses = append(rule.VarCtx.Vars[v].Uses, PortLabel{Type: ty, Lt: src.base + label.Lt})
		}
	}

	rule.VarCtx.InferUses(p.Globals, ltCtx, rule.Result)
	if err := rule.VarCtx.CheckTypes(p.Globals, ltCtx, fmt.Sprintf("rule `%s`", ruleName)); err != nil {
		return checkerr.New(err.Error())
	}

	internal := lifetime.Internal
	return ltCtx.CheckSatisfiable(&internal, ltCtx.ExOrder, ltCtx.InOrder, fmt.Sprintf("rule `%s`", ruleName))
}

func (p *Program) checkNet(net *NetDef) *checkerr.Group {
	context := fmt.Sprintf("net `%s`", net.Name)
	if g := net.LtCtx.CheckContractSatisfiable(context); g != nil {
		return g
	}

	for _, fp := range net.FreePorts {
		net.VarCtx.Vars[fp.Var].Uses = append(net.VarCtx.Vars[fp.Var].Uses, PortLabel{Type: fp.Label.Type.Not(), Lt: fp.Label.Lt})
	}

	net.VarCtx.InferUses(p.Globals, net.LtCtx, net.Nodes)
	if err := net.VarCtx.CheckTypes(p.Globals, net.LtCtx, context); err != nil {
		return checkerr.New(err.Error())
	}

	internal := lifetime.Internal
	return net.LtCtx.CheckSatisfiable(&internal, net.LtCtx.ExOrder, net.LtCtx.InOrder, context)
}
