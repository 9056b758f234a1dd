// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yeetrun/clargs/pkg/spec"
)

// applyUsage installs a usage renderer that presents titled argument
// groups as their own sections, the way the configuration declared them.
// Commands without groups keep cobra's default usage output.
func (b *Builder) applyUsage(cmd *cobra.Command, st *cmdState) {
	if len(st.groups) == 0 {
		return
	}
	groups := st.groups
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		writeGroupedUsage(c.OutOrStderr(), c, groups)
		return nil
	})
}

func writeGroupedUsage(w io.Writer, c *cobra.Command, groups []spec.ArgumentGroup) {
	fmt.Fprintf(w, "Usage:\n  %s\n", c.UseLine())

	grouped := make(map[string]bool)
	for _, g := range groups {
		fs := groupFlagSet(c, g.Title, grouped)
		if fs == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", g.Title)
		if g.Description != "" {
			fmt.Fprintf(w, "  %s\n\n", g.Description)
		}
		fmt.Fprint(w, fs.FlagUsages())
	}

	rest := ungroupedFlagSet(c, grouped)
	if rest.HasAvailableFlags() {
		fmt.Fprintf(w, "\nFlags:\n%s", rest.FlagUsages())
	}
}

// groupFlagSet collects the local flags annotated with the given group
// title, or nil when the group resolved to no flags.
func groupFlagSet(c *cobra.Command, title string, grouped map[string]bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet(title, pflag.ContinueOnError)
	found := false
	c.LocalFlags().VisitAll(func(f *pflag.Flag) {
		vals, ok := f.Annotations[groupAnnotation]
		if !ok || len(vals) == 0 || vals[0] != title {
			return
		}
		fs.AddFlag(f)
		grouped[f.Name] = true
		found = true
	})
	if !found {
		return nil
	}
	return fs
}

func ungroupedFlagSet(c *cobra.Command, grouped map[string]bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet("flags", pflag.ContinueOnError)
	c.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !grouped[f.Name] {
			fs.AddFlag(f)
		}
	})
	c.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		if fs.Lookup(f.Name) == nil {
			fs.AddFlag(f)
		}
	})
	return fs
}
