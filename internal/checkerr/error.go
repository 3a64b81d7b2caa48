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

// Package checkerr provides the error-tree type used throughout the
// lifetime checker. Every checking pass reports failures as a Group: a
// context message plus zero or more nested causes, rendered depth-first
// with indentation so a single top-level error can describe everything
// that pass found wrong instead of only the first failure.
package checkerr

import (
	"fmt"
	"strings"
)

// Group is a single node in an error tree: a message, optionally with
// nested causes. A Group with no children is a leaf error.
type Group struct {
	Message  string
	Children []*Group
}

// New creates a leaf error.
func New(msg string) *Group {
	return &Group{Message: msg}
}

// Newf creates a leaf error with formatting.
func Newf(format string, args ...interface{}) *Group {
	return &Group{Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches children under a new top-level message. Returns nil if
// there are no children, so callers can write:
//
//	if g := checkerr.Wrap("agent `foo`", sub...); g != nil { return g }
func Wrap(msg string, children ...*Group) *Group {
	children = compact(children)
	if len(children) == 0 {
		return nil
	}
	return &Group{Message: msg, Children: children}
}

// Report wraps g (if non-nil) under msg, matching the `.report(...)`
// combinator used throughout the reference checker: a pass that failed
// gets one more line of context prepended, a pass that succeeded (g ==
// nil) stays nil.
func Report(g *Group, msg string) *Group {
	if g == nil {
		return nil
	}
	return &Group{Message: msg, Children: []*Group{g}}
}

func compact(gs []*Group) []*Group {
	out := gs[:0]
	for _, g := range gs {
		if g != nil {
			out = append(out, g)
		}
	}
	return out
}

// Error implements the error interface by rendering the full tree.
func (g *Group) Error() string {
	var b strings.Builder
	g.render(&b, 0)
	return b.String()
}

func (g *Group) render(b *strings.Builder, depth int) {
	// A Group with no message is a bare container (e.g. a list of sibling
	// errors from one pass): its children render at the same depth
	// instead of gaining a blank line and an extra indent level.
	childDepth := depth + 1
	if g.Message == "" {
		childDepth = depth
	} else {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(g.Message)
	}
	first := g.Message == ""
	for _, c := range g.Children {
		if !first {
			b.WriteByte('\n')
		}
		first = false
		c.render(b, childDepth)
	}
}
