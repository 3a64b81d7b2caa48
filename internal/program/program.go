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

import "github.com/inlt-lang/inlt/internal/lifetime"

// Program is the fully-parsed contents of one source file: its global
// type and agent declarations, plus every rule and net declared in it.
type Program struct {
	Globals *Globals
	Types   []TypeDef
	Agents  []AgentDef
	Rules   []RuleDef
	Nets    []NetDef
}

// NewProgram returns an empty Program with initialized Globals.
func NewProgram() *Program {
	return &Program{Globals: NewGlobals()}
}

// TypeDef is one declared type's polarity.
type TypeDef struct {
	ID       Type
	Polarity Polarity
}

// AgentDef is one declared agent: its registered Component id, its
// lifetime contract, and its ports (port 0 is always principal).
type AgentDef struct {
	ID    Component
	Name  string
	LtCtx *lifetime.Ctx
	Ports []PortLabel
}

// RuleDef is one interaction rule: the two nodes whose principal ports
// it fires on, and the result net it rewrites to.
type RuleDef struct {
	VarCtx *VarCtx
	A, B   Node
	Result []Node
}

// NetDef is one declared net: its free ports (the net's own interface)
// and the body of nodes wired together inside it.
type NetDef struct {
	Name      string
	VarCtx    *VarCtx
	LtCtx     *lifetime.Ctx
	FreePorts []FreePort
	Nodes     []Node
}

// FreePort pairs a net-body Var with the port label it is exposed as.
type FreePort struct {
	Var   Var
	Label PortLabel
}

// Node is one component instance within a rule or net body: a
// reference to its agent, plus the Var wired to each of its ports (in
// the same order as the agent's Ports).
type Node struct {
	Agent Component
	Ports []Var
}
