// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"strings"
	"testing"
)

func TestGroupedUsage(t *testing.T) {
	doc := map[string]any{
		"parser": map[string]any{"prog": "app"},
		"arguments": []any{
			map[string]any{"name": "--host", "help": "bind address"},
			map[string]any{"name": "--port", "type": "int", "help": "bind port"},
			map[string]any{"name": "--color", "help": "colorize output"},
		},
		"argument_groups": []any{
			map[string]any{
				"title":       "Network",
				"description": "where the server listens",
				"arguments":   []any{"--host", "--port", "--no-such-flag"},
			},
		},
	}
	_, root := buildFrom(t, doc)

	usage := root.UsageString()
	for _, want := range []string{"Network:", "where the server listens", "--host", "--port"} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage missing %q:\n%s", want, usage)
		}
	}
	// Ungrouped flags render in their own section after the groups.
	if !strings.Contains(usage, "Flags:") || !strings.Contains(usage, "--color") {
		t.Errorf("usage missing ungrouped section:\n%s", usage)
	}
	netIdx := strings.Index(usage, "Network:")
	flagsIdx := strings.Index(usage, "Flags:")
	if netIdx < 0 || flagsIdx < 0 || netIdx > flagsIdx {
		t.Errorf("group section not before ungrouped flags:\n%s", usage)
	}
}

func TestUnknownGroupReferenceSkipped(t *testing.T) {
	doc := map[string]any{
		"parser": map[string]any{"prog": "app"},
		"arguments": []any{
			map[string]any{"name": "--host"},
		},
		"argument_groups": []any{
			map[string]any{"title": "Ghost", "arguments": []any{"--missing"}},
		},
	}
	// Unresolvable references are soft omissions; the build must succeed.
	_, root := buildFrom(t, doc)
	if root.Flags().Lookup("host") == nil {
		t.Error("--host not registered")
	}
	if root.Flags().Lookup("missing") != nil {
		t.Error("--missing registered from a dangling group reference")
	}
}
