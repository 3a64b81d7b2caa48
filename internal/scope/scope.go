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

// Package scope implements Scope, a name table with three-state slots
// (undefined, defined, poisoned) used for every global and local
// namespace in the checker: types, agents, lifetimes, and vars. Forward
// references are supported by reserving a slot (Undefined) before its
// definition is known, via Builder; a slot that failed to define
// becomes Poisoned so later lookups report a single "previous error"
// instead of repeating the original failure down every dependent check.
package scope

import "fmt"

type state int

const (
	stateUndefined state = iota
	statePoisoned
	stateDefined
)

type definition[T any] struct {
	name  string
	state state
	value T
}

// Scope is an append-only table of named slots of type T, indexed by
// int-backed key K.
type Scope[K ~int, T any] struct {
	kind string
	defs []definition[T]
}

// New returns an empty Scope. kind names what is being defined (e.g.
// "type", "agent", "lifetime") and is used in error messages.
func New[K ~int, T any](kind string) *Scope[K, T] {
	return &Scope[K, T]{kind: kind}
}

// Len returns the number of slots, as a K so it can double as "the
// next index that Push would return".
func (s *Scope[K, T]) Len() K {
	return K(len(s.defs))
}

// Push reserves a new slot named name. If value is non-nil the slot
// starts out Defined; otherwise it starts Undefined, for forward
// references.
func (s *Scope[K, T]) Push(name string, value *T) K {
	d := definition[T]{name: name, state: stateUndefined}
	if value != nil {
		d.state = stateDefined
		d.value = *value
	}
	s.defs = append(s.defs, d)
	return K(len(s.defs) - 1)
}

// Name returns the name a slot was declared with.
func (s *Scope[K, T]) Name(k K) string {
	return s.defs[k].name
}

// Poisoned reports whether a slot is in the Poisoned state.
func (s *Scope[K, T]) Poisoned(k K) bool {
	return s.defs[k].state == statePoisoned
}

// Poison marks a slot as failed, so later lookups report a single
// "previous error" instead of re-deriving the original failure.
func (s *Scope[K, T]) Poison(k K) {
	s.defs[k].state = statePoisoned
}

// Get retrieves the value at k, or an error describing why it is not
// available (undefined, or poisoned by a prior failed definition).
func (s *Scope[K, T]) Get(k K) (T, error) {
	d := &s.defs[k]
	switch d.state {
	case stateDefined:
		return d.value, nil
	case statePoisoned:
		var zero T
		return zero, fmt.Errorf("previous error in %s `%s`", s.kind, d.name)
	default:
		var zero T
		return zero, fmt.Errorf("undefined %s `%s`", s.kind, d.name)
	}
}

// At is the unchecked accessor for a slot already known to be Defined
// (mirrors the reference implementation's Index impl, which panics on
// misuse — callers here must only use it after a successful
// TryDefine/OrDefine).
func (s *Scope[K, T]) At(k K) *T {
	return &s.defs[k].value
}

// ExpectUndefined reports an error if k has already been defined,
// without changing its state.
func (s *Scope[K, T]) ExpectUndefined(k K) error {
	d := &s.defs[k]
	if d.state == stateUndefined {
		return nil
	}
	return fmt.Errorf("duplicate definition of %s `%s`", s.kind, d.name)
}

// TryDefine defines slot k, failing (and poisoning the slot) if it was
// already defined.
func (s *Scope[K, T]) TryDefine(k K, value func() T) error {
	if err := s.ExpectUndefined(k); err != nil {
		s.Poison(k)
		return err
	}
	d := &s.defs[k]
	d.state = stateDefined
	d.value = value()
	return nil
}

// OrDefine returns the existing value at k if already Defined,
// otherwise computes and stores one via value.
func (s *Scope[K, T]) OrDefine(k K, value func() T) *T {
	d := &s.defs[k]
	if d.state != stateDefined {
		d.state = stateDefined
		d.value = value()
	}
	return &d.value
}

// Iter calls fn for every Defined slot, in index order.
func (s *Scope[K, T]) Iter(fn func(k K, name string, value *T)) {
	for i := range s.defs {
		if s.defs[i].state == stateDefined {
			fn(K(i), s.defs[i].name, &s.defs[i].value)
		}
	}
}

// Builder supports defining a scope where names may be referenced
// before their definition is reached, by reserving a slot on first
// mention.
type Builder[K ~int, T any] struct {
	scope  *Scope[K, T]
	lookup map[string]K
}

// NewBuilder creates a Builder over a fresh Scope of the given kind.
func NewBuilder[K ~int, T any](kind string) *Builder[K, T] {
	return &Builder[K, T]{scope: New[K, T](kind), lookup: make(map[string]K)}
}

// Get returns the slot for name, reserving a new Undefined one on
// first mention.
func (b *Builder[K, T]) Get(name string) K {
	if k, ok := b.lookup[name]; ok {
		return k
	}
	k := b.scope.Push(name, nil)
	b.lookup[name] = k
	return k
}

// Finish returns the built Scope, clearing the builder's name lookup.
func (b *Builder[K, T]) Finish() *Scope[K, T] {
	scope := b.scope
	b.lookup = make(map[string]K)
	b.scope = nil
	return scope
}
