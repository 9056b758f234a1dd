// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spec

import (
	"reflect"
	"testing"
)

func TestFromMapFull(t *testing.T) {
	doc := map[string]any{
		"parser": map[string]any{
			"prog":        "app",
			"description": "demo tool",
			"epilog":      "see docs",
		},
		"parent_arguments": []any{
			map[string]any{
				"name":    "--log-level",
				"short":   "-l",
				"choices": "@logging_levels",
				"default": "INFO",
				"help":    "Set logging level",
			},
		},
		"arguments": []any{
			map[string]any{
				"name":     "--port",
				"type":     "int",
				"default":  8080,
				"required": true,
				"env_var":  "APP_PORT",
			},
			map[string]any{
				"name":  "input",
				"nargs": "?",
			},
		},
		"argument_groups": []any{
			map[string]any{
				"title":       "Network",
				"description": "network options",
				"arguments":   []any{"--port"},
			},
		},
		"mutually_exclusive": []any{
			map[string]any{
				"required":  true,
				"arguments": []any{"--json", "--yaml"},
			},
		},
	}

	cfg := FromMap(doc)

	if cfg.Parser.Prog != "app" || cfg.Parser.Description != "demo tool" || cfg.Parser.Epilog != "see docs" {
		t.Errorf("Parser = %+v, want app/demo tool/see docs", cfg.Parser)
	}
	if len(cfg.ParentArguments) != 1 {
		t.Fatalf("len(ParentArguments) = %d, want 1", len(cfg.ParentArguments))
	}
	parent := cfg.ParentArguments[0]
	if parent.Name != "--log-level" || parent.Short != "-l" || parent.Choices != "@logging_levels" {
		t.Errorf("parent argument = %+v", parent)
	}
	if len(cfg.Arguments) != 2 {
		t.Fatalf("len(Arguments) = %d, want 2", len(cfg.Arguments))
	}
	port := cfg.Arguments[0]
	if port.Type != "int" || port.Default != 8080 || !port.Required || port.EnvVar != "APP_PORT" {
		t.Errorf("port argument = %+v", port)
	}
	if !cfg.Arguments[1].Positional() {
		t.Errorf("Positional(input) = false, want true")
	}
	if port.Positional() {
		t.Errorf("Positional(--port) = true, want false")
	}
	if got := cfg.Groups[0].Arguments; !reflect.DeepEqual(got, []string{"--port"}) {
		t.Errorf("group arguments = %v, want [--port]", got)
	}
	if !cfg.Exclusive[0].Required {
		t.Error("exclusive group Required = false, want true")
	}
}

func TestFromMapMissingKeys(t *testing.T) {
	for _, doc := range []map[string]any{nil, {}, {"parser": nil}, {"arguments": "bogus"}} {
		cfg := FromMap(doc)
		if cfg == nil {
			t.Fatalf("FromMap(%v) = nil", doc)
		}
		if len(cfg.Arguments) != 0 || len(cfg.ParentArguments) != 0 || cfg.Subcommands != nil {
			t.Errorf("FromMap(%v) = %+v, want empty config", doc, cfg)
		}
	}
}

func nestedDoc() map[string]any {
	// app -> db -> migrate, three levels of subcommand nesting under root.
	return map[string]any{
		"parser": map[string]any{"prog": "app"},
		"subcommands": map[string]any{
			"title": "Commands",
			"dest":  "command",
			"commands": map[string]any{
				"db": map[string]any{
					"description": "database operations",
					"subcommands": map[string]any{
						"dest": "db_command",
						"commands": map[string]any{
							"migrate": map[string]any{
								"arguments": []any{
									map[string]any{
										"name":   "--dry-run",
										"action": "store_true",
									},
								},
								"subcommands": map[string]any{
									"commands": map[string]any{
										"status": map[string]any{
											"help": "show migration status",
										},
									},
								},
							},
							"seed": map[string]any{},
						},
					},
				},
				"serve": map[string]any{
					"arguments": []any{
						map[string]any{"name": "--port", "type": "int"},
					},
				},
			},
		},
	}
}

func TestSubcommandPathsRoundTrip(t *testing.T) {
	cfg := FromMap(nestedDoc())
	if cfg.Subcommands == nil {
		t.Fatal("Subcommands = nil")
	}
	got := cfg.Subcommands.Paths()
	want := []string{"db", "db.migrate", "db.migrate.status", "db.seed", "serve"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}

	migrate := cfg.Subcommands.Commands["db"].Subcommands.Commands["migrate"]
	if len(migrate.Arguments) != 1 || migrate.Arguments[0].Name != "--dry-run" {
		t.Errorf("db.migrate arguments = %+v, want --dry-run", migrate.Arguments)
	}
}

func TestSubcommandSetNamesSorted(t *testing.T) {
	set := &SubcommandSet{Commands: map[string]*Subcommand{
		"zeta": {}, "alpha": {}, "mid": {},
	}}
	want := []string{"alpha", "mid", "zeta"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestFlagName(t *testing.T) {
	tests := []struct {
		arg  Argument
		want string
	}{
		{Argument{Name: "--port"}, "port"},
		{Argument{Name: "input"}, "input"},
		{Argument{Short: "-v"}, "v"},
		{Argument{Name: "--dry-run", Short: "-n"}, "dry-run"},
		{Argument{}, ""},
	}
	for _, tt := range tests {
		if got := tt.arg.FlagName(); got != tt.want {
			t.Errorf("FlagName(%+v) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}
