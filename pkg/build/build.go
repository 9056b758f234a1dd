// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build compiles a spec.Config into a cobra command tree.
//
// The builder walks the configuration top-down: parser metadata becomes the
// root command, parent arguments become persistent flags inherited by every
// subcommand, and the subcommand tree is built recursively with no depth
// limit. A scope that declares subcommands exposes its arguments only
// through those subcommands; argument groups and mutually exclusive groups
// attach only to scopes without subcommands.
//
// Token parsing itself is cobra/pflag's job. The builder only constructs
// the tree, injects effective defaults (environment variables win over
// declared defaults), and wires validation for choices, required flags,
// and positional arity.
package build

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeetrun/clargs/pkg/resolver"
	"github.com/yeetrun/clargs/pkg/spec"
)

const (
	groupAnnotation = "clargs_group"
	destAnnotation  = "clargs_dest"

	// commandGroupID tags subcommands with their titled cobra group.
	commandGroupID = "clargs-commands"
)

// Builder compiles one spec.Config into a cobra command tree. A Builder is
// single-use: construct, Build once, then keep it around only if
// PositionalValues is needed.
type Builder struct {
	cfg    *spec.Config
	reg    *resolver.Registry
	types  map[string]TypeFunc
	log    *slog.Logger
	states map[*cobra.Command]*cmdState
}

// cmdState accumulates per-command build products that outlive flag
// registration: positional specs and choice constraints.
type cmdState struct {
	positionals []*positional
	choices     map[string][]string
	groups      []spec.ArgumentGroup
}

// Option configures a Builder.
type Option func(*Builder)

// WithResolvers replaces the resolver registry consulted for "@name"
// markers. The default is resolver.Default().
func WithResolvers(reg *resolver.Registry) Option {
	return func(b *Builder) { b.reg = reg }
}

// WithType registers a converter for a custom type tag. The built-in tags
// str, int, float, and bool cannot be replaced.
func WithType(name string, fn TypeFunc) Option {
	return func(b *Builder) { b.types[name] = fn }
}

// WithLogger sets the logger used for build-time debug output.
func WithLogger(log *slog.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// New returns a Builder for cfg.
func New(cfg *spec.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:    cfg,
		reg:    resolver.Default(),
		types:  make(map[string]TypeFunc),
		log:    slog.Default(),
		states: make(map[*cobra.Command]*cmdState),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the command tree. A failed build returns a nil command;
// errors surface immediately and nothing is partially usable.
func (b *Builder) Build() (*cobra.Command, error) {
	prog := b.cfg.Parser.Prog
	if prog == "" {
		prog = filepath.Base(os.Args[0])
	}
	root := &cobra.Command{
		Use:   prog,
		Short: b.cfg.Parser.Description,
		Long:  b.cfg.Parser.Description,
	}

	rootState := b.state(root)
	for _, a := range b.cfg.ParentArguments {
		if err := b.addArgument(root, rootState, a, "", true); err != nil {
			return nil, err
		}
	}
	b.applyPersistentChoiceValidation(root, rootState)

	if err := b.buildScope(root, b.cfg.Arguments, b.cfg.Groups, b.cfg.Exclusive, b.cfg.Subcommands); err != nil {
		return nil, err
	}

	if epilog := b.cfg.Parser.Epilog; epilog != "" {
		root.SetHelpTemplate(root.HelpTemplate() + "\n" + epilog + "\n")
	}
	return root, nil
}

func (b *Builder) state(cmd *cobra.Command) *cmdState {
	st, ok := b.states[cmd]
	if !ok {
		st = &cmdState{choices: make(map[string][]string)}
		b.states[cmd] = st
	}
	return st
}

// buildScope attaches one scope's contents to cmd. A scope with
// subcommands gets only those subcommands; its flat argument list and
// groups are never attached alongside them.
func (b *Builder) buildScope(cmd *cobra.Command, args []*spec.Argument, groups []spec.ArgumentGroup, exclusive []spec.MutuallyExclusiveGroup, subs *spec.SubcommandSet) error {
	if subs == nil {
		return b.attach(cmd, args, groups, exclusive)
	}

	if subs.Dest != "" {
		annotate(cmd, destAnnotation, subs.Dest)
	}
	if subs.Title != "" {
		cmd.AddGroup(&cobra.Group{ID: commandGroupID, Title: subs.Title + ":"})
	}
	for _, name := range subs.Names() {
		sc := subs.Commands[name]
		child := &cobra.Command{
			Use:   name,
			Short: sc.Help,
			Long:  sc.Description,
		}
		if subs.Title != "" {
			child.GroupID = commandGroupID
		}
		cmd.AddCommand(child)
		if err := b.buildScope(child, sc.Arguments, sc.Groups, sc.Exclusive, sc.Subcommands); err != nil {
			return err
		}
	}
	b.log.Debug("attached subcommands", "command", cmd.Name(), "count", len(subs.Commands))
	return nil
}

// attach registers a scope's arguments on cmd: titled group members first,
// then mutually exclusive members, then the remainder flat. Every argument
// registers exactly once; group references that match nothing in the scope
// are skipped.
func (b *Builder) attach(cmd *cobra.Command, args []*spec.Argument, groups []spec.ArgumentGroup, exclusive []spec.MutuallyExclusiveGroup) error {
	st := b.state(cmd)

	index := make(map[string]*spec.Argument)
	for _, a := range args {
		if a.Name != "" {
			index[a.Name] = a
		}
		if a.Short != "" {
			index[a.Short] = a
		}
	}
	registered := make(map[*spec.Argument]bool)

	for _, g := range groups {
		for _, ref := range g.Arguments {
			a, ok := index[ref]
			if !ok {
				b.log.Debug("skipping unknown group reference", "group", g.Title, "argument", ref)
				continue
			}
			if registered[a] {
				continue
			}
			if err := b.addArgument(cmd, st, a, g.Title, false); err != nil {
				return err
			}
			registered[a] = true
		}
		st.groups = append(st.groups, g)
	}

	for _, g := range exclusive {
		var members []string
		for _, ref := range g.Arguments {
			a, ok := index[ref]
			if !ok {
				b.log.Debug("skipping unknown exclusive reference", "argument", ref)
				continue
			}
			if !registered[a] {
				if err := b.addArgument(cmd, st, a, "", false); err != nil {
					return err
				}
				registered[a] = true
			}
			if !a.Positional() {
				members = append(members, a.FlagName())
			}
		}
		if len(members) > 1 {
			cmd.MarkFlagsMutuallyExclusive(members...)
		}
		if g.Required && len(members) > 0 {
			cmd.MarkFlagsOneRequired(members...)
		}
	}

	for _, a := range args {
		if registered[a] {
			continue
		}
		if err := b.addArgument(cmd, st, a, "", false); err != nil {
			return err
		}
		registered[a] = true
	}

	b.applyPositionals(cmd, st)
	b.applyChoiceValidation(cmd, st)
	b.applyUsage(cmd, st)
	return nil
}

// addArgument routes one spec to flag or positional registration.
func (b *Builder) addArgument(cmd *cobra.Command, st *cmdState, a *spec.Argument, group string, persistent bool) error {
	if a.Name == "" && a.Short == "" {
		return &MissingNameError{Command: cmd.CommandPath()}
	}
	if a.Positional() {
		return b.addPositional(st, a)
	}
	return b.addFlag(cmd, st, a, group, persistent)
}

// Lookup resolves a dot-joined subcommand path such as "db.migrate"
// against a built command tree. An empty path returns root; a path with
// any unknown segment returns nil.
func Lookup(root *cobra.Command, path string) *cobra.Command {
	if path == "" {
		return root
	}
	cur := root
	for _, seg := range strings.Split(path, ".") {
		var next *cobra.Command
		for _, c := range cur.Commands() {
			if c.Name() == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func annotate(cmd *cobra.Command, key, value string) {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[key] = value
}
