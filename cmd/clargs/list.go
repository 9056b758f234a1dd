// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yeetrun/clargs/pkg/spec"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the parser and argument hierarchy of the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfig()
			cfg, err := spec.FromYAMLFile(path)
			if err != nil {
				return err
			}
			printHierarchy(cmd.OutOrStdout(), path, cfg)
			return nil
		},
	}
}

func printHierarchy(w io.Writer, path string, cfg *spec.Config) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	prog := cfg.Parser.Prog
	if prog == "" {
		prog = "app"
	}
	fmt.Fprintf(w, "%s %s\n", bold(prog), faint("("+path+")"))
	if cfg.Parser.Description != "" {
		fmt.Fprintf(w, "  %s\n", cfg.Parser.Description)
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	defer tw.Flush()

	if len(cfg.ParentArguments) > 0 {
		fmt.Fprintf(tw, "\n%s\n", bold("Parent arguments"))
		for _, a := range cfg.ParentArguments {
			printArgument(tw, cyan, 1, a)
		}
	}
	if len(cfg.Arguments) > 0 {
		fmt.Fprintf(tw, "\n%s\n", bold("Arguments"))
		for _, a := range cfg.Arguments {
			printArgument(tw, cyan, 1, a)
		}
	}
	printSubcommands(tw, bold, cyan, 1, cfg.Subcommands)
}

func printSubcommands(tw *tabwriter.Writer, bold, cyan func(...any) string, depth int, subs *spec.SubcommandSet) {
	if subs == nil {
		return
	}
	title := subs.Title
	if title == "" {
		title = "Subcommands"
	}
	fmt.Fprintf(tw, "\n%s%s\n", indent(depth-1), bold(title))
	for _, name := range subs.Names() {
		sc := subs.Commands[name]
		fmt.Fprintf(tw, "%s%s\t%s\n", indent(depth), cyan(name), sc.Help)
		for _, a := range sc.Arguments {
			printArgument(tw, cyan, depth+1, a)
		}
		printSubcommands(tw, bold, cyan, depth+1, sc.Subcommands)
	}
}

func printArgument(tw *tabwriter.Writer, cyan func(...any) string, depth int, a *spec.Argument) {
	name := a.Name
	if a.Short != "" {
		name += ", " + a.Short
	}
	var notes []string
	if a.Required {
		notes = append(notes, "required")
	}
	if a.Default != nil {
		notes = append(notes, fmt.Sprintf("default: %v", a.Default))
	}
	if a.EnvVar != "" {
		notes = append(notes, "env: "+a.EnvVar)
	}
	help := a.Help
	if len(notes) > 0 {
		help += " (" + strings.Join(notes, ", ") + ")"
	}
	fmt.Fprintf(tw, "%s%s\t%s\n", indent(depth), cyan(name), strings.TrimSpace(help))
}

func indent(depth int) string { return strings.Repeat("  ", depth) }
