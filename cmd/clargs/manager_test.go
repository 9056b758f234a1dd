// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/yeetrun/clargs/pkg/build"
	"github.com/yeetrun/clargs/pkg/spec"
)

// chdir changes the working directory for the duration of the test,
// mirroring t.Chdir for Go versions older than 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestSetupCreatesConfig(t *testing.T) {
	chdir(t, t.TempDir())

	m := &manager{}
	if err := m.setup("myapp"); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if m.path != "myapp-clargs.yaml" {
		t.Errorf("path = %q, want %q", m.path, "myapp-clargs.yaml")
	}

	loaded, err := loadManager(m.path)
	if err != nil {
		t.Fatalf("loadManager() error = %v", err)
	}
	if got := loaded.prog(); got != "myapp" {
		t.Errorf("prog() = %q, want %q", got, "myapp")
	}

	cfg := spec.FromMap(loaded.doc)
	if len(cfg.ParentArguments) != 1 || cfg.ParentArguments[0].Name != "--log-level" {
		t.Errorf("parent arguments = %+v, want one --log-level", cfg.ParentArguments)
	}
	if got := cfg.ParentArguments[0].Choices; got != "@logging_levels" {
		t.Errorf("choices = %v, want @logging_levels", got)
	}
}

func TestAddArgumentAtRoot(t *testing.T) {
	chdir(t, t.TempDir())

	m := &manager{}
	if err := m.setup("myapp"); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	props := map[string]any{"name": "--verbose", "action": "store_true"}
	if err := m.addArgument("myapp", props); err != nil {
		t.Fatalf("addArgument() error = %v", err)
	}

	loaded, err := loadManager(m.path)
	if err != nil {
		t.Fatalf("loadManager() error = %v", err)
	}
	cfg := spec.FromMap(loaded.doc)
	if len(cfg.Arguments) != 1 || cfg.Arguments[0].Name != "--verbose" {
		t.Errorf("arguments = %+v, want one --verbose", cfg.Arguments)
	}
}

func TestAddArgumentCreatesIntermediateSubcommands(t *testing.T) {
	chdir(t, t.TempDir())

	m := &manager{}
	if err := m.setup("myapp"); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	props := map[string]any{"name": "--dry-run", "action": "store_true"}
	if err := m.addArgument("myapp.db.migrate", props); err != nil {
		t.Fatalf("addArgument() error = %v", err)
	}

	loaded, err := loadManager(m.path)
	if err != nil {
		t.Fatalf("loadManager() error = %v", err)
	}
	cfg := spec.FromMap(loaded.doc)
	want := []string{"db", "db.migrate"}
	if got := cfg.Subcommands.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	migrate := cfg.Subcommands.Commands["db"].Subcommands.Commands["migrate"]
	if len(migrate.Arguments) != 1 || migrate.Arguments[0].Name != "--dry-run" {
		t.Errorf("migrate arguments = %+v, want one --dry-run", migrate.Arguments)
	}
}

func TestManagedConfigBuilds(t *testing.T) {
	chdir(t, t.TempDir())

	m := &manager{}
	if err := m.setup("myapp"); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if err := m.addArgument("myapp.serve", map[string]any{"name": "--port", "type": "int", "default": 8080}); err != nil {
		t.Fatalf("addArgument() error = %v", err)
	}

	cfg, err := spec.FromYAMLFile(m.path)
	if err != nil {
		t.Fatalf("FromYAMLFile() error = %v", err)
	}
	root, err := build.New(cfg).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	serve := build.Lookup(root, "serve")
	if serve == nil {
		t.Fatal("serve subcommand not built")
	}
	if serve.Flags().Lookup("port") == nil {
		t.Error("--port not registered on serve")
	}
	if root.PersistentFlags().Lookup("log-level") == nil {
		t.Error("--log-level not registered as a persistent flag")
	}
}

func TestValidatePath(t *testing.T) {
	chdir(t, t.TempDir())

	m := &manager{}
	if err := m.setup("myapp"); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if err := m.addArgument("myapp.db.migrate", map[string]any{"name": "--force"}); err != nil {
		t.Fatalf("addArgument() error = %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"myapp", true},
		{"myapp.db", true},
		{"myapp.db.migrate", true},
		{"myapp.db.seed", false},
		{"other.db", false},
		{"db.migrate", false},
	}
	for _, tt := range tests {
		if got := m.validatePath(tt.path); got != tt.want {
			t.Errorf("validatePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFindConfigFileNewestWins(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	old := filepath.Join(dir, "old-clargs.yaml")
	if err := os.WriteFile(old, []byte("parser: {prog: old}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new-clargs.yaml"), []byte("parser: {prog: new}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := findConfigFile(); got != "new-clargs.yaml" {
		t.Errorf("findConfigFile() = %q, want %q", got, "new-clargs.yaml")
	}
}

func TestFindConfigFileDefault(t *testing.T) {
	chdir(t, t.TempDir())
	if got := findConfigFile(); got != defaultConfigName {
		t.Errorf("findConfigFile() = %q, want %q", got, defaultConfigName)
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"False", false},
		{"8080", 8080},
		{"2.5", 2.5},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := convertValue(tt.in); got != tt.want {
			t.Errorf("convertValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
