// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const yamlDoc = `
parser:
  prog: demo
  description: demo tool
parent_arguments:
  - name: --verbose
    short: -v
    action: store_true
    help: Enable verbose output
subcommands:
  dest: command
  commands:
    serve:
      help: start the server
      arguments:
        - name: --host
          default: localhost
`

const tomlDoc = `
[parser]
prog = "demo"
description = "demo tool"

[[parent_arguments]]
name = "--verbose"
short = "-v"
action = "store_true"
help = "Enable verbose output"

[subcommands]
dest = "command"

[subcommands.commands.serve]
help = "start the server"

[[subcommands.commands.serve.arguments]]
name = "--host"
default = "localhost"
`

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if cfg.Parser.Prog != "demo" {
		t.Errorf("Prog = %q, want demo", cfg.Parser.Prog)
	}
	serve := cfg.Subcommands.Commands["serve"]
	if serve == nil || serve.Help != "start the server" {
		t.Fatalf("serve subcommand = %+v", serve)
	}
	if serve.Arguments[0].Default != "localhost" {
		t.Errorf("serve --host default = %v, want localhost", serve.Arguments[0].Default)
	}
}

func TestFromYAMLInvalid(t *testing.T) {
	if _, err := FromYAML([]byte("{unbalanced")); err == nil {
		t.Fatal("FromYAML(invalid) error = nil, want parse error")
	}
}

func TestYAMLAndTOMLAgree(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "demo.yaml")
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "demo.toml")
	if err := os.WriteFile(tomlPath, []byte(tomlDoc), 0644); err != nil {
		t.Fatal(err)
	}

	fromYAML, err := FromYAMLFile(yamlPath)
	if err != nil {
		t.Fatalf("FromYAMLFile() error = %v", err)
	}
	fromTOML, err := FromTOMLFile(tomlPath)
	if err != nil {
		t.Fatalf("FromTOMLFile() error = %v", err)
	}

	if diff := cmp.Diff(fromYAML, fromTOML); diff != "" {
		t.Errorf("YAML and TOML configs differ (-yaml +toml):\n%s", diff)
	}
}

func TestFromYAMLFileMissing(t *testing.T) {
	if _, err := FromYAMLFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("FromYAMLFile(missing) error = nil, want read error")
	}
}
