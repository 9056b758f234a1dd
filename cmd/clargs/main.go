// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clargs manages declarative CLI configuration files. It can
// scaffold a new config, grow the argument and subcommand tree from the
// command line, and preview the parser the file would build.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yeetrun/clargs/pkg/build"
	"github.com/yeetrun/clargs/pkg/resolver"
	"github.com/yeetrun/clargs/pkg/spec"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "clargs: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clargs",
		Short:         "Manage declarative CLI parser configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file to operate on (default: newest *-clargs.yaml)")
	root.AddCommand(newSetupCmd(), newListCmd(), newAddArgumentCmd(), newShowCmd())
	return root
}

func resolveConfig() string {
	if configPath != "" {
		return configPath
	}
	return findConfigFile()
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup <app>",
		Short: "Create a starter config for an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := args[0]
			m := &manager{}
			if err := m.setup(app); err != nil {
				return err
			}
			color.Green("Created %s", m.path)
			return nil
		},
	}
}

func newAddArgumentCmd() *cobra.Command {
	var (
		parserPath string
		name       string
		short      string
		typeTag    string
		action     string
		choices    []string
		defValue   string
		helpText   string
		dest       string
		envVar     string
		nargs      string
		required   bool
	)
	cmd := &cobra.Command{
		Use:   "add-argument",
		Short: "Add an argument at a parser path, creating subcommands as needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(resolveConfig())
			if err != nil {
				return err
			}
			if m.empty() {
				return fmt.Errorf("no config found; run 'clargs setup <app>' first")
			}
			if err := validateNewPath(m, parserPath); err != nil {
				return err
			}

			props := map[string]any{"name": name}
			if short != "" {
				props["short"] = short
			}
			if typeTag != "" {
				props["type"] = typeTag
			}
			if action != "" {
				props["action"] = action
			}
			if len(choices) == 1 && resolver.IsRef(choices[0]) {
				props["choices"] = choices[0]
			} else if len(choices) > 0 {
				vals := make([]any, len(choices))
				for i, c := range choices {
					vals[i] = c
				}
				props["choices"] = vals
			}
			if defValue != "" {
				props["default"] = convertValue(defValue)
			}
			if helpText != "" {
				props["help"] = helpText
			}
			if dest != "" {
				props["dest"] = dest
			}
			if envVar != "" {
				props["env_var"] = envVar
			}
			if nargs != "" {
				props["nargs"] = convertValue(nargs)
			}
			if required {
				props["required"] = true
			}

			if err := m.addArgument(parserPath, props); err != nil {
				return err
			}
			color.Green("Added %s to %s", name, parserPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&parserPath, "parser-path", "", "dot-joined path, e.g. app.db.migrate")
	cmd.Flags().StringVar(&name, "arg", "", "argument name, e.g. --verbose or filename")
	cmd.Flags().StringVar(&short, "short", "", "short flag, e.g. -v")
	cmd.Flags().StringVar(&typeTag, "type", "", "value type: str, int, float, bool")
	cmd.Flags().StringVar(&action, "action", "", "argument action, e.g. store_true, count, append")
	cmd.Flags().StringSliceVar(&choices, "choices", nil, "allowed values, or a single @resolver reference")
	cmd.Flags().StringVar(&defValue, "default", "", "default value")
	cmd.Flags().StringVar(&helpText, "help-text", "", "help text")
	cmd.Flags().StringVar(&dest, "dest", "", "destination name override")
	cmd.Flags().StringVar(&envVar, "env-var", "", "environment variable override")
	cmd.Flags().StringVar(&nargs, "nargs", "", "positional arity: a number, ?, * or +")
	cmd.Flags().BoolVar(&required, "required", false, "mark the argument required")
	cobra.CheckErr(cmd.MarkFlagRequired("parser-path"))
	cobra.CheckErr(cmd.MarkFlagRequired("arg"))
	return cmd
}

// validateNewPath accepts any path rooted at the program name. Missing
// trailing segments are fine since add-argument creates intermediate
// subcommands on the way down.
func validateNewPath(m *manager, path string) error {
	if path == "" {
		return fmt.Errorf("parser path is empty")
	}
	first, _, _ := strings.Cut(path, ".")
	if first != m.prog() {
		return fmt.Errorf("parser path %q must start with %q", path, m.prog())
	}
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Build the parser from the config and print its help",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := spec.FromYAMLFile(resolveConfig())
			if err != nil {
				return err
			}
			root, err := build.New(cfg).Build()
			if err != nil {
				return err
			}
			target := root
			if len(args) == 1 {
				// Accept both "db.migrate" and the full "app.db.migrate" form.
				path := strings.TrimPrefix(args[0], root.Name()+".")
				if path == root.Name() {
					path = ""
				}
				if target = build.Lookup(root, path); target == nil {
					return fmt.Errorf("no such parser path: %s", args[0])
				}
			}
			target.SetOut(cmd.OutOrStdout())
			return target.Help()
		},
	}
}
