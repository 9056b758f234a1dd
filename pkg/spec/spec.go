// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spec holds the typed configuration model for a declarative
// command-line parser definition: parser metadata, argument specs, argument
// groups, mutually exclusive groups, and a recursive subcommand tree.
//
// A Config is usually decoded from an untyped nested mapping (see FromMap
// and the file loaders in load.go), optionally adjusted programmatically,
// and then handed to the build package exactly once.
package spec

import (
	"sort"
	"strings"
)

// Argument describes a single flag or positional token.
//
// Name is the primary long flag ("--port") or positional token ("input").
// Choices may be nil, a resolver marker or bare scalar string, or a list
// literal. Default may be a literal of any scalar type or an "@name"
// resolver marker. Nargs may be nil, one of "?", "*", "+", or an integer.
type Argument struct {
	Name     string
	Short    string
	Type     string
	Action   string
	Choices  any
	Default  any
	Required bool
	Nargs    any
	Help     string
	Dest     string
	EnvVar   string
}

// Positional reports whether the argument is a positional token rather
// than a flag.
func (a *Argument) Positional() bool {
	return a.Name != "" && !strings.HasPrefix(a.Name, "-")
}

// FlagName returns the registration name for the argument: the primary
// name with leading dashes stripped, falling back to the short flag.
func (a *Argument) FlagName() string {
	if name := strings.TrimLeft(a.Name, "-"); name != "" {
		return name
	}
	return strings.TrimLeft(a.Short, "-")
}

// BoolToggle reports whether the argument's action is a boolean toggle.
func (a *Argument) BoolToggle() bool {
	return a.Action == "store_true" || a.Action == "store_false"
}

// ArgumentGroup names a titled set of arguments for help organization.
// Arguments holds references into the enclosing scope's argument list, by
// primary name or short flag; unresolvable references are skipped.
type ArgumentGroup struct {
	Title       string
	Description string
	Arguments   []string
}

// MutuallyExclusiveGroup names a set of arguments of which at most one may
// be supplied. If Required is set, exactly one must be.
type MutuallyExclusiveGroup struct {
	Title     string
	Required  bool
	Arguments []string
}

// Subcommand is one node of the subcommand tree. A Subcommand may carry a
// further nested SubcommandSet, with no fixed depth limit.
type Subcommand struct {
	Description string
	Help        string
	Arguments   []*Argument
	Groups      []ArgumentGroup
	Exclusive   []MutuallyExclusiveGroup
	Subcommands *SubcommandSet
}

// SubcommandSet is a collection of named subcommands under one scope.
type SubcommandSet struct {
	Title       string
	Description string
	Dest        string
	Commands    map[string]*Subcommand
}

// Names returns the command names in sorted order. Insertion order of the
// source document is irrelevant; sorting keeps builds deterministic.
func (s *SubcommandSet) Names() []string {
	names := make([]string, 0, len(s.Commands))
	for name := range s.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns every dot-joined subcommand path in the set, e.g.
// "db" and "db.migrate" for a two-level tree.
func (s *SubcommandSet) Paths() []string {
	var paths []string
	var walk func(set *SubcommandSet, prefix string)
	walk = func(set *SubcommandSet, prefix string) {
		for _, name := range set.Names() {
			path := name
			if prefix != "" {
				path = prefix + "." + name
			}
			paths = append(paths, path)
			if sub := set.Commands[name].Subcommands; sub != nil {
				walk(sub, path)
			}
		}
	}
	walk(s, "")
	return paths
}

// Parser holds top-level parser metadata.
type Parser struct {
	Prog        string
	Description string
	Epilog      string
}

// Config is the complete parser definition. ParentArguments are shared by
// the root parser and every subcommand below it.
type Config struct {
	Parser          Parser
	ParentArguments []*Argument
	Arguments       []*Argument
	Subcommands     *SubcommandSet
	Groups          []ArgumentGroup
	Exclusive       []MutuallyExclusiveGroup
}
