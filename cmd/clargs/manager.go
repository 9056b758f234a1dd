// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigName = "clargs.yaml"

// manager edits a clargs YAML file in place. It works on the raw document
// rather than the typed model so that keys it does not understand survive
// a load/save round trip.
type manager struct {
	path string
	doc  map[string]any
}

func loadManager(path string) (*manager, error) {
	m := &manager{path: path, doc: map[string]any{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &m.doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	if m.doc == nil {
		m.doc = map[string]any{}
	}
	return m, nil
}

func (m *manager) save() error {
	data, err := yaml.Marshal(m.doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	return os.WriteFile(m.path, data, 0644)
}

func (m *manager) empty() bool { return len(m.doc) == 0 }

func (m *manager) prog() string {
	if p := asMap(m.doc["parser"]); p != nil {
		if prog, ok := p["prog"].(string); ok && prog != "" {
			return prog
		}
	}
	return "app"
}

// setup seeds a fresh <app>-clargs.yaml with parser metadata and a shared
// --log-level parent argument.
func (m *manager) setup(app string) error {
	m.path = app + "-clargs.yaml"
	m.doc = map[string]any{
		"parser": map[string]any{
			"prog":        app,
			"description": app + " - CLI application",
			"epilog":      fmt.Sprintf("Use '%s --help' for more information", app),
		},
		"parent_arguments": []any{
			map[string]any{
				"name":    "--log-level",
				"short":   "-l",
				"type":    "str",
				"choices": "@logging_levels",
				"default": "INFO",
				"help":    "Set logging level",
			},
		},
		"arguments": []any{},
	}
	return m.save()
}

// validatePath reports whether a dot-joined parser path exists: the first
// segment must be the program name, the rest must walk the subcommand tree.
func (m *manager) validatePath(path string) bool {
	parts := strings.Split(path, ".")
	if len(parts) == 0 || parts[0] != m.prog() {
		return false
	}
	if len(parts) == 1 {
		return true
	}
	current := commandsOf(m.doc)
	for i, part := range parts[1:] {
		cmd := asMap(current[part])
		if cmd == nil {
			return false
		}
		if i < len(parts)-2 {
			current = commandsOf(cmd)
			if current == nil {
				return false
			}
		}
	}
	return true
}

// addArgument inserts an argument at the given parser path, creating any
// missing intermediate subcommands.
func (m *manager) addArgument(parserPath string, props map[string]any) error {
	parts := strings.Split(parserPath, ".")
	if len(parts) == 1 {
		args, _ := m.doc["arguments"].([]any)
		m.doc["arguments"] = append(args, props)
		return m.save()
	}

	subs := asMap(m.doc["subcommands"])
	if subs == nil {
		subs = map[string]any{
			"title":    "Available commands",
			"dest":     "command",
			"commands": map[string]any{},
		}
		m.doc["subcommands"] = subs
	}
	current := asMap(subs["commands"])
	if current == nil {
		current = map[string]any{}
		subs["commands"] = current
	}

	cmdPath := parts[1:]
	for i, part := range cmdPath {
		cmd := asMap(current[part])
		if cmd == nil {
			cmd = map[string]any{
				"description": part + " command",
				"help":        "Execute " + part + " operations",
				"arguments":   []any{},
			}
			current[part] = cmd
		}
		if i == len(cmdPath)-1 {
			args, _ := cmd["arguments"].([]any)
			cmd["arguments"] = append(args, props)
			break
		}
		nested := asMap(cmd["subcommands"])
		if nested == nil {
			nested = map[string]any{"commands": map[string]any{}}
			cmd["subcommands"] = nested
		}
		next := asMap(nested["commands"])
		if next == nil {
			next = map[string]any{}
			nested["commands"] = next
		}
		current = next
	}
	return m.save()
}

func commandsOf(doc map[string]any) map[string]any {
	subs := asMap(doc["subcommands"])
	if subs == nil {
		return nil
	}
	return asMap(subs["commands"])
}

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

// findConfigFile locates the config to operate on: a single *-clargs.yaml
// in the current directory, the most recently modified one if several
// exist, or the bare default name.
func findConfigFile() string {
	matches, err := filepath.Glob("*-clargs.yaml")
	if err != nil || len(matches) == 0 {
		return defaultConfigName
	}
	newest := matches[0]
	var newestMod int64
	for _, path := range matches {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := fi.ModTime().UnixNano(); mod > newestMod {
			newest, newestMod = path, mod
		}
	}
	return newest
}

// convertValue turns a CLI-supplied literal into its natural YAML type.
func convertValue(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
