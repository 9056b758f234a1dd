// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolver maps resolver names to functions that produce dynamic
// configuration values at build time. A resolver is referenced from a
// configuration document with an "@name" marker in a choices or default
// field. Choice resolvers and default resolvers live in independent
// namespaces: a name registered in one is unknown to the other.
package resolver

import (
	"fmt"
	"sort"
	"strings"
)

// ChoicesFunc produces the sequence of allowed values for an argument.
type ChoicesFunc func() []string

// DefaultFunc produces a single default value for an argument.
type DefaultFunc func() any

// UnknownResolverError is returned when a resolver name is not registered
// in the namespace it was looked up in.
type UnknownResolverError struct {
	Kind string // "choices" or "default"
	Name string
}

func (e *UnknownResolverError) Error() string {
	return fmt.Sprintf("unknown %s resolver: %s", e.Kind, e.Name)
}

// Registry holds named choice and default resolvers. The zero value is not
// usable; create instances with New or use the process-wide Default.
type Registry struct {
	choices  map[string]ChoicesFunc
	defaults map[string]DefaultFunc
}

// New returns an empty registry. Most callers want Default instead, which
// comes preloaded with the built-in resolvers.
func New() *Registry {
	return &Registry{
		choices:  make(map[string]ChoicesFunc),
		defaults: make(map[string]DefaultFunc),
	}
}

var defaultRegistry = builtins()

// Default returns the process-wide registry preloaded with the built-in
// resolvers. Callers may register additional resolvers on it before
// building parsers; registration is not safe for concurrent use.
func Default() *Registry { return defaultRegistry }

// RegisterChoices registers fn under name in the choices namespace,
// replacing any previous registration.
func (r *Registry) RegisterChoices(name string, fn ChoicesFunc) {
	r.choices[name] = fn
}

// RegisterDefault registers fn under name in the defaults namespace,
// replacing any previous registration.
func (r *Registry) RegisterDefault(name string, fn DefaultFunc) {
	r.defaults[name] = fn
}

// ResolveChoices invokes the named choice resolver.
func (r *Registry) ResolveChoices(name string) ([]string, error) {
	fn, ok := r.choices[name]
	if !ok {
		return nil, &UnknownResolverError{Kind: "choices", Name: name}
	}
	return fn(), nil
}

// ResolveDefault invokes the named default resolver.
func (r *Registry) ResolveDefault(name string) (any, error) {
	fn, ok := r.defaults[name]
	if !ok {
		return nil, &UnknownResolverError{Kind: "default", Name: name}
	}
	return fn(), nil
}

// IsChoicesRef reports whether v is an "@name" marker naming a registered
// choice resolver.
func (r *Registry) IsChoicesRef(v string) bool {
	if !IsRef(v) {
		return false
	}
	_, ok := r.choices[RefName(v)]
	return ok
}

// IsDefaultRef reports whether v is an "@name" marker naming a registered
// default resolver.
func (r *Registry) IsDefaultRef(v string) bool {
	if !IsRef(v) {
		return false
	}
	_, ok := r.defaults[RefName(v)]
	return ok
}

// ChoicesNames returns the registered choice resolver names, sorted.
func (r *Registry) ChoicesNames() []string { return sortedKeys(r.choices) }

// DefaultNames returns the registered default resolver names, sorted.
func (r *Registry) DefaultNames() []string { return sortedKeys(r.defaults) }

// IsRef reports whether v has the "@name" resolver marker shape. It says
// nothing about whether the name is registered anywhere.
func IsRef(v string) bool {
	return strings.HasPrefix(v, "@") && len(v) > 1
}

// RefName extracts the resolver name from an "@name" marker.
func RefName(v string) string { return strings.TrimPrefix(v, "@") }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
