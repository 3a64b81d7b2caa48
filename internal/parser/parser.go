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

// Package parser implements a hand-written recursive-descent reader for
// the textual contract language: type, agent, rule, and net
// declarations, built directly into a program.Program ready for
// Program.Check. It reports syntax errors as plain errors carrying a
// caret-underlined source snippet.
package parser

import (
	"fmt"
	"strings"

	"github.com/inlt-lang/inlt/internal/lifetime"
	"github.com/inlt-lang/inlt/internal/program"
	"github.com/inlt-lang/inlt/internal/relation"
)

type parser struct {
	input string
	index int

	types  map[string]program.Type
	agents map[string]program.Component

	// Reset at the start of every lt-ctx / rule / net: these names are
	// only ever local to one declaration.
	lts  map[string]lifetime.Lifetime
	vars map[string]program.Var
}

// Parse reads the full contents of one source file into a Program.
func Parse(input string) (*program.Program, error) {
	p := &parser{
		input:  input,
		types:  map[string]program.Type{},
		agents: map[string]program.Component{},
	}
	prog := program.NewProgram()
	p.skipTrivia()
	for !p.eof() {
		if err := p.parseItem(prog); err != nil {
			return nil, err
		}
		p.skipTrivia()
	}
	return prog, nil
}

func (p *parser) eof() bool { return p.index >= len(p.input) }

func (p *parser) peekOne() (byte, bool) {
	if p.eof() {
		return 0, false
	}
	return p.input[p.index], true
}

func (p *parser) peekMany(n int) (string, bool) {
	if p.index+n > len(p.input) {
		return "", false
	}
	return p.input[p.index : p.index+n], true
}

func (p *parser) advanceOne() { p.index++ }

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isNameCont(b byte) bool { return isNameStart(b) || (b >= '0' && b <= '9') }

// skipTrivia skips whitespace and `//` line comments.
func (p *parser) skipTrivia() {
	for {
		for !p.eof() && isSpace(p.input[p.index]) {
			p.index++
		}
		if s, ok := p.peekMany(2); ok && s == "//" {
			for !p.eof() && p.input[p.index] != '\n' {
				p.index++
			}
			continue
		}
		break
	}
}

func (p *parser) parseName() (string, error) {
	p.skipTrivia()
	start := p.index
	if p.eof() || !isNameStart(p.input[p.index]) {
		return "", p.expected("a name")
	}
	p.index++
	for !p.eof() && isNameCont(p.input[p.index]) {
		p.index++
	}
	return p.input[start:p.index], nil
}

func (p *parser) consume(str string) error {
	p.skipTrivia()
	if s, ok := p.peekMany(len(str)); ok && s == str {
		p.index += len(str)
		return nil
	}
	return p.expected("`" + str + "`")
}

func (p *parser) tryConsume(str string) bool {
	p.skipTrivia()
	if s, ok := p.peekMany(len(str)); ok && s == str {
		p.index += len(str)
		return true
	}
	return false
}

func (p *parser) expected(what string) error {
	return fmt.Errorf("expected %s:\n%s", what, p.highlight(p.index, p.index))
}

// highlight renders the source line containing [start, end) with a
// caret underline.
func (p *parser) highlight(start, end int) string {
	lineStart := strings.LastIndexByte(p.input[:start], '\n') + 1
	lineEnd := strings.IndexByte(p.input[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(p.input)
	} else {
		lineEnd += start
	}
	if end > lineEnd {
		end = lineEnd
	}
	line := p.input[lineStart:lineEnd]
	col := start - lineStart
	width := end - start
	if width < 1 {
		width = 1
	}
	return "  " + line + "\n  " + strings.Repeat(" ", col) + strings.Repeat("^", width)
}

func (p *parser) parseItem(prog *program.Program) error {
	p.skipTrivia()
	switch {
	case has(p, "type"):
		return p.parseTypeDecl(prog)
	case has(p, "agent"):
		return p.parseAgentDecl(prog)
	case has(p, "rule"):
		return p.parseRuleDecl(prog)
	case has(p, "net"):
		return p.parseNetDecl(prog)
	default:
		return p.expected("a type, agent, rule, or net declaration")
	}
}

func has(p *parser, kw string) bool {
	s, ok := p.peekMany(len(kw))
	return ok && s == kw
}

func (p *parser) parseTypeDecl(prog *program.Program) error {
	if err := p.consume("type"); err != nil {
		return err
	}
	name, err := p.parseName()
	if err != nil {
		return err
	}
	if err := p.consume(":"); err != nil {
		return err
	}
	p.skipTrivia()
	b, ok := p.peekOne()
	if !ok {
		return p.expected("a polarity (`+` or `-`)")
	}
	var polarity program.Polarity
	switch b {
	case '+':
		polarity = program.Pos
	case '-':
		polarity = program.Neg
	default:
		return p.expected("a polarity (`+` or `-`)")
	}
	p.advanceOne()

	posInfo, negInfo := program.TypeInfo{Name: name}, program.TypeInfo{Name: "!" + name}
	if polarity == program.Neg {
		posInfo, negInfo = negInfo, posInfo
	}
	posName, negName := name, "!"+name
	if polarity == program.Neg {
		posName, negName = negName, posName
	}
	posTy := prog.Globals.Types.Push(posName, &posInfo)
	negTy := prog.Globals.Types.Push(negName, &negInfo)

	var ty program.Type
	if polarity == program.Pos {
		ty = posTy
	} else {
		ty = negTy
	}
	p.types[name] = ty
	prog.Types = append(prog.Types, program.TypeDef{ID: posTy, Polarity: program.Pos}, program.TypeDef{ID: negTy, Polarity: program.Neg})
	return nil
}

func (p *parser) parseAgentDecl(prog *program.Program) error {
	if err := p.consume("agent"); err != nil {
		return err
	}
	ltCtx, err := p.parseLtCtx()
	if err != nil {
		return err
	}
	name, ports, err := parseNodeLike(p, p.parsePortLabel)
	if err != nil {
		return err
	}
	info := program.ComponentInfo{Name: name, LtCtx: ltCtx, Ports: ports}
	id := prog.Globals.Agents.Push(name, &info)
	p.agents[name] = id
	prog.Agents = append(prog.Agents, program.AgentDef{ID: id, Name: name, LtCtx: ltCtx, Ports: ports})
	return nil
}

func (p *parser) parseRuleDecl(prog *program.Program) error {
	if err := p.consume("rule"); err != nil {
		return err
	}
	p.vars = map[string]program.Var{}
	varCtx := program.NewVarCtx()
	a, err := p.parseNode(prog, varCtx)
	if err != nil {
		return err
	}
	b, err := p.parseNode(prog, varCtx)
	if err != nil {
		return err
	}
	result, err := p.parseNet(prog, varCtx)
	if err != nil {
		return err
	}
	prog.Rules = append(prog.Rules, program.RuleDef{VarCtx: varCtx, A: a, B: b, Result: result})
	return nil
}

func (p *parser) parseNetDecl(prog *program.Program) error {
	if err := p.consume("net"); err != nil {
		return err
	}
	ltCtx, err := p.parseLtCtx()
	if err != nil {
		return err
	}
	p.vars = map[string]program.Var{}
	varCtx := program.NewVarCtx()
	name, freePorts, err := parseNodeLike(p, func() (program.FreePort, error) {
		v, err := p.parseVar(varCtx)
		if err != nil {
			return program.FreePort{}, err
		}
		if err := p.consume(":"); err != nil {
			return program.FreePort{}, err
		}
		label, err := p.parsePortLabel()
		if err != nil {
			return program.FreePort{}, err
		}
		return program.FreePort{Var: v, Label: label}, nil
	})
	if err != nil {
		return err
	}
	nodes, err := p.parseNet(prog, varCtx)
	if err != nil {
		return err
	}
	prog.Nets = append(prog.Nets, program.NetDef{Name: name, VarCtx: varCtx, LtCtx: ltCtx, FreePorts: freePorts, Nodes: nodes})
	return nil
}

func (p *parser) parseNode(prog *program.Program, varCtx *program.VarCtx) (program.Node, error) {
	p.skipTrivia()
	nameStart := p.index
	name, ports, err := parseNodeLike(p, func() (program.Var, error) { return p.parseVar(varCtx) })
	if err != nil {
		return program.Node{}, err
	}
	agent, ok := p.agents[name]
	if !ok {
		return program.Node{}, fmt.Errorf("unknown agent `%s`:\n%s", name, p.highlight(nameStart, nameStart+len(name)))
	}
	info, err := prog.Globals.Agents.Get(agent)
	if err != nil {
		return program.Node{}, err
	}
	if len(ports) != len(info.Ports) {
		return program.Node{}, fmt.Errorf("expected %d ports, found %d:\n%s", len(info.Ports), len(ports), p.highlight(nameStart, nameStart+len(name)))
	}
	return program.Node{Agent: agent, Ports: ports}, nil
}

func (p *parser) parseNet(prog *program.Program, varCtx *program.VarCtx) ([]program.Node, error) {
	if err := p.consume("{"); err != nil {
		return nil, err
	}
	var nodes []program.Node
	for !p.tryConsume("}") {
		node, err := p.parseNode(prog, varCtx)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (p *parser) parsePortLabel() (program.PortLabel, error) {
	ty, err := p.parseType()
	if err != nil {
		return program.PortLabel{}, err
	}
	lt, err := p.parseLt()
	if err != nil {
		return program.PortLabel{}, err
	}
	return program.PortLabel{Type: ty, Lt: lt}, nil
}

func (p *parser) parseType() (program.Type, error) {
	inv := p.tryConsume("!")
	start := p.index
	name, err := p.parseName()
	if err != nil {
		return 0, err
	}
	end := p.index
	ty, ok := p.types[name]
	if !ok {
		return 0, fmt.Errorf("unknown type `%s`:\n%s", name, p.highlight(start, end))
	}
	if inv {
		ty = ty.Not()
	}
	return ty, nil
}

// parseNodeLike parses `name(elem, elem, ...)`, the shape shared by
// agent declarations, net interfaces, and node instantiations.
func parseNodeLike[T any](p *parser, parseElem func() (T, error)) (string, []T, error) {
	name, err := p.parseName()
	if err != nil {
		return "", nil, err
	}
	if err := p.consume("("); err != nil {
		return "", nil, err
	}
	first, err := parseElem()
	if err != nil {
		return "", nil, err
	}
	elems := []T{first}
	for p.tryConsume(",") {
		next, err := parseElem()
		if err != nil {
			return "", nil, err
		}
		elems = append(elems, next)
	}
	if err := p.consume(")"); err != nil {
		return "", nil, err
	}
	return name, elems, nil
}

// parseLtCtx parses an optional bracketed lifetime context:
// `['a, 'b < 'c | 'd, 'e <= 'f]`, external lifetimes before the `|`,
// internal ones after. A bare `?` after a lifetime name flips which
// side it belongs to, catching the common case of a side argument
// known only at the callee.
func (p *parser) parseLtCtx() (*lifetime.Ctx, error) {
	p.lts = map[string]lifetime.Lifetime{}
	ltCtx := lifetime.NewCtx()
	if !p.tryConsume("[") {
		return ltCtx, nil
	}
	if !p.tryConsume("]") {
		side := lifetime.External
		if p.tryConsume("|") {
			side = lifetime.Internal
		}
		prev, err := p.parseLtDecl(ltCtx, side)
		if err != nil {
			return nil, err
		}
	loop:
		for {
			p.skipTrivia()
			b, ok := p.peekOne()
			var rel *relation.Relation
			switch {
			case ok && b == ',':
				rel = nil
			case ok && b == '<':
				r := relation.LE
				rel = &r
			case ok && b == '>':
				r := relation.GE
				rel = &r
			case ok && b == '|':
				if side != lifetime.External {
					return nil, p.expected("a comma or comparison operator")
				}
				side = lifetime.Internal
				if p.tryConsume("]") {
					break loop
				}
				rel = nil
			case ok && b == ']':
				break loop
			default:
				return nil, p.expected("a comma, comparison operator, or `|`")
			}
			p.advanceOne()
			if rel != nil && !p.tryConsume("=") {
				*rel = rel.NotEqual()
			}
			next, err := p.parseLtDecl(ltCtx, side)
			if err != nil {
				return nil, err
			}
			if rel != nil {
				ltCtx.Order(side).Relate(prev, next, *rel)
			}
			prev = next
		}
	}
	if err := p.consume("]"); err != nil {
		return nil, err
	}
	return ltCtx, nil
}

func (p *parser) parseVar(varCtx *program.VarCtx) (program.Var, error) {
	name, err := p.parseName()
	if err != nil {
		return 0, err
	}
	if v, ok := p.vars[name]; ok {
		return v, nil
	}
	v := varCtx.Push(name)
	p.vars[name] = v
	return v, nil
}

func (p *parser) parseLtDecl(ltCtx *lifetime.Ctx, side lifetime.Side) (lifetime.Lifetime, error) {
	start := p.index
	name, err := p.parseLtName()
	if err != nil {
		return 0, err
	}
	if p.tryConsume("?") {
		side = side.Not()
	}
	end := p.index
	lt, ok := p.lts[name]
	if !ok {
		lt = ltCtx.Intro(name, side)
		p.lts[name] = lt
	} else if ltCtx.Lifetimes.At(lt).Side != side {
		return 0, fmt.Errorf("inconsistent known/unknown modifiers on lifetime `%s`:\n%s", ltCtx.ShowLt(lt), p.highlight(start, end))
	}
	return lt, nil
}

func (p *parser) parseLt() (lifetime.Lifetime, error) {
	start := p.index
	name, err := p.parseLtName()
	if err != nil {
		return 0, err
	}
	end := p.index
	lt, ok := p.lts[name]
	if !ok {
		return 0, fmt.Errorf("unknown lifetime `'%s`:\n%s", name, p.highlight(start, end))
	}
	return lt, nil
}

func (p *parser) parseLtName() (string, error) {
	if err := p.consume("'"); err != nil {
		return "", err
	}
	return p.parseName()
}
