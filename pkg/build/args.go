// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeetrun/clargs/pkg/spec"
)

// positionalsAnnotation records the configured positional names on a
// command, space-joined in declaration order.
const positionalsAnnotation = "clargs_positionals"

type positional struct {
	arg      *spec.Argument
	choices  []string
	conv     TypeFunc
	min, max int // max < 0 means unbounded
}

func (p *positional) name() string {
	if p.arg.Dest != "" {
		return p.arg.Dest
	}
	return p.arg.FlagName()
}

func (b *Builder) addPositional(st *cmdState, a *spec.Argument) error {
	choices, err := a.ResolveChoices(b.reg)
	if err != nil {
		return err
	}
	conv, err := b.convFor(a.Type)
	if err != nil {
		return err
	}
	min, max := nargsRange(a.Nargs)
	st.positionals = append(st.positionals, &positional{
		arg:     a,
		choices: choices,
		conv:    conv,
		min:     min,
		max:     max,
	})
	return nil
}

// applyPositionals derives the command's Args validator and use line from
// the accumulated positional specs.
func (b *Builder) applyPositionals(cmd *cobra.Command, st *cmdState) {
	if len(st.positionals) == 0 {
		return
	}

	min, max := 0, 0
	names := make([]string, 0, len(st.positionals))
	for _, p := range st.positionals {
		min += p.min
		if p.max < 0 || max < 0 {
			max = -1
		} else {
			max += p.max
		}
		names = append(names, p.name())
		cmd.Use += " " + useToken(p)
	}
	annotate(cmd, positionalsAnnotation, strings.Join(names, " "))

	positionals := st.positionals
	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) < min {
			return fmt.Errorf("requires at least %d arg(s), only received %d", min, len(args))
		}
		if max >= 0 && len(args) > max {
			return fmt.Errorf("accepts at most %d arg(s), received %d", max, len(args))
		}
		return checkPositionalChoices(positionals, args)
	}
}

// checkPositionalChoices validates the leading fixed-arity positionals
// against their resolved choices. Once a variable-arity positional is
// reached the mapping from token to spec is ambiguous and checking stops.
func checkPositionalChoices(positionals []*positional, args []string) error {
	i := 0
	for _, p := range positionals {
		if p.min != 1 || p.max != 1 {
			break
		}
		if i >= len(args) {
			break
		}
		if len(p.choices) > 0 && !slices.Contains(p.choices, args[i]) {
			return &ChoiceError{Flag: p.arg.FlagName(), Value: args[i], Choices: p.choices}
		}
		i++
	}
	return nil
}

// PositionalValues maps parsed positional tokens back to their configured
// names, applying each positional's type conversion. A variable-arity
// positional collects the remaining tokens as a slice. cmd must be a
// command produced by this builder's Build.
func (b *Builder) PositionalValues(cmd *cobra.Command, args []string) (map[string]any, error) {
	st := b.states[cmd]
	if st == nil || len(st.positionals) == 0 {
		return nil, nil
	}
	out := make(map[string]any)
	i := 0
	for _, p := range st.positionals {
		if p.max == 1 {
			if i >= len(args) {
				continue
			}
			v, err := p.conv(args[i])
			if err != nil {
				return nil, fmt.Errorf("invalid value %q for %s: %v", args[i], p.name(), err)
			}
			out[p.name()] = v
			i++
			continue
		}
		vals := make([]any, 0, len(args)-i)
		for _, raw := range args[i:] {
			v, err := p.conv(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q for %s: %v", raw, p.name(), err)
			}
			vals = append(vals, v)
		}
		out[p.name()] = vals
		i = len(args)
	}
	return out, nil
}

// nargsRange maps a nargs specifier to a token count range. Unknown
// specifiers behave like an unset one: exactly one token.
func nargsRange(v any) (min, max int) {
	switch n := v.(type) {
	case nil:
		return 1, 1
	case string:
		switch n {
		case "?":
			return 0, 1
		case "*":
			return 0, -1
		case "+":
			return 1, -1
		}
		if parsed, err := strconv.Atoi(n); err == nil && parsed >= 0 {
			return parsed, parsed
		}
		return 1, 1
	case int:
		return n, n
	case int64:
		return int(n), int(n)
	case float64:
		return int(n), int(n)
	}
	return 1, 1
}

// multiValued reports whether a nargs specifier admits more than one token.
func multiValued(v any) bool {
	_, max := nargsRange(v)
	return max < 0 || max > 1
}

func useToken(p *positional) string {
	name := p.arg.FlagName()
	switch {
	case p.min == 0 && p.max == 1:
		return "[" + name + "]"
	case p.max < 0 && p.min == 0:
		return "[" + name + "...]"
	case p.max < 0:
		return name + "..."
	case p.max > 1:
		return fmt.Sprintf("%s{%d}", name, p.max)
	default:
		return name
	}
}
