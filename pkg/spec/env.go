// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spec

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yeetrun/clargs/pkg/resolver"
)

// ResolveChoices computes the allowed values for the argument. A resolver
// marker is looked up in reg's choices namespace, a list literal is
// returned as-is (stringified), and a bare scalar becomes a single-element
// sequence. A nil Choices field means no restriction and returns nil.
func (a *Argument) ResolveChoices(reg *resolver.Registry) ([]string, error) {
	switch c := a.Choices.(type) {
	case nil:
		return nil, nil
	case string:
		if resolver.IsRef(c) {
			return reg.ResolveChoices(resolver.RefName(c))
		}
		return []string{c}, nil
	case []any:
		out := make([]string, len(c))
		for i, v := range c {
			out[i] = fmt.Sprint(v)
		}
		return out, nil
	case []string:
		return c, nil
	default:
		return []string{fmt.Sprint(c)}, nil
	}
}

// ResolveDefault computes the declared default. A resolver marker is
// looked up in reg's defaults namespace; anything else, including nil, is
// returned verbatim.
func (a *Argument) ResolveDefault(reg *resolver.Registry) (any, error) {
	if s, ok := a.Default.(string); ok && resolver.IsRef(s) {
		return reg.ResolveDefault(resolver.RefName(s))
	}
	return a.Default, nil
}

// EnvVarName returns the environment variable name consulted for the
// argument: the explicit env_var if declared, else a name derived from the
// primary name by stripping leading dashes, upper-casing, and replacing
// remaining dashes with underscores.
func (a *Argument) EnvVarName() string {
	if a.EnvVar != "" {
		return a.EnvVar
	}
	return deriveEnvName(a.Name)
}

func deriveEnvName(name string) string {
	name = strings.TrimLeft(name, "-")
	if name == "" {
		return ""
	}
	return strings.ReplaceAll(strings.ToUpper(name), "-", "_")
}

// EnvValue returns the environment-supplied value for the argument, after
// type coercion, and whether one was found. The explicit env_var name is
// consulted first; if it is unset the derived name is tried.
func (a *Argument) EnvValue() (any, bool) {
	if a.EnvVar != "" {
		if raw, ok := os.LookupEnv(a.EnvVar); ok {
			return a.coerceEnv(raw), true
		}
	}
	if name := deriveEnvName(a.Name); name != "" {
		if raw, ok := os.LookupEnv(name); ok {
			return a.coerceEnv(raw), true
		}
	}
	return nil, false
}

// truthy is the accepted set for boolean-toggle env values, matched
// case-insensitively.
var truthy = map[string]bool{"true": true, "1": true, "yes": true, "on": true}

// coerceEnv converts a raw environment string to the argument's declared
// type. Conversion failure is never fatal; the raw string is used instead.
func (a *Argument) coerceEnv(raw string) any {
	if a.BoolToggle() {
		return truthy[strings.ToLower(raw)]
	}
	switch a.Type {
	case "int":
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	case "float":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "bool":
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// EffectiveDefault computes the argument's effective default value: an
// environment-resolved value takes precedence over the declared or
// resolver-produced default, and absence of both yields nil.
func (a *Argument) EffectiveDefault(reg *resolver.Registry) (any, error) {
	if v, ok := a.EnvValue(); ok {
		return v, nil
	}
	return a.ResolveDefault(reg)
}
