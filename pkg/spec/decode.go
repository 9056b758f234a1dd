// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spec

import (
	"fmt"
)

// FromMap decodes an untyped nested mapping, as produced by a YAML, JSON,
// or TOML loader, into a Config. Missing keys decode to empty collections
// or zero values; FromMap never fails. Nesting depth is bounded only by
// the input document.
func FromMap(data map[string]any) *Config {
	cfg := &Config{}
	if data == nil {
		return cfg
	}

	if m := asMap(data["parser"]); m != nil {
		cfg.Parser = Parser{
			Prog:        asString(m["prog"]),
			Description: asString(m["description"]),
			Epilog:      asString(m["epilog"]),
		}
	}
	cfg.ParentArguments = decodeArguments(data["parent_arguments"])
	cfg.Arguments = decodeArguments(data["arguments"])
	if m := asMap(data["subcommands"]); m != nil {
		cfg.Subcommands = decodeSubcommandSet(m)
	}
	cfg.Groups = decodeGroups(data["argument_groups"])
	cfg.Exclusive = decodeExclusive(data["mutually_exclusive"])
	return cfg
}

func decodeArguments(v any) []*Argument {
	items := asSlice(v)
	if len(items) == 0 {
		return nil
	}
	args := make([]*Argument, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		args = append(args, &Argument{
			Name:     asString(m["name"]),
			Short:    asString(m["short"]),
			Type:     asString(m["type"]),
			Action:   asString(m["action"]),
			Choices:  m["choices"],
			Default:  m["default"],
			Required: asBool(m["required"]),
			Nargs:    m["nargs"],
			Help:     asString(m["help"]),
			Dest:     asString(m["dest"]),
			EnvVar:   asString(m["env_var"]),
		})
	}
	return args
}

func decodeGroups(v any) []ArgumentGroup {
	items := asSlice(v)
	if len(items) == 0 {
		return nil
	}
	groups := make([]ArgumentGroup, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		groups = append(groups, ArgumentGroup{
			Title:       asString(m["title"]),
			Description: asString(m["description"]),
			Arguments:   asStrings(m["arguments"]),
		})
	}
	return groups
}

func decodeExclusive(v any) []MutuallyExclusiveGroup {
	items := asSlice(v)
	if len(items) == 0 {
		return nil
	}
	groups := make([]MutuallyExclusiveGroup, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		groups = append(groups, MutuallyExclusiveGroup{
			Title:     asString(m["title"]),
			Required:  asBool(m["required"]),
			Arguments: asStrings(m["arguments"]),
		})
	}
	return groups
}

func decodeSubcommandSet(m map[string]any) *SubcommandSet {
	set := &SubcommandSet{
		Title:       asString(m["title"]),
		Description: asString(m["description"]),
		Dest:        asString(m["dest"]),
		Commands:    make(map[string]*Subcommand),
	}
	for name, raw := range asMap(m["commands"]) {
		cm := asMap(raw)
		if cm == nil {
			continue
		}
		cmd := &Subcommand{
			Description: asString(cm["description"]),
			Help:        asString(cm["help"]),
			Arguments:   decodeArguments(cm["arguments"]),
			Groups:      decodeGroups(cm["argument_groups"]),
			Exclusive:   decodeExclusive(cm["mutually_exclusive"]),
		}
		if nested := asMap(cm["subcommands"]); nested != nil {
			cmd.Subcommands = decodeSubcommandSet(nested)
		}
		set.Commands[name] = cmd
	}
	return set
}

// asMap normalizes mapping values. YAML and TOML decoders produce
// map[string]any; map[any]any is handled for decoders that do not.
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	}
	return nil
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asStrings(v any) []string {
	items := asSlice(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}
