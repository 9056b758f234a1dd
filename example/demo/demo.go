// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Demo builds a small task-runner CLI from demo.yaml and executes it
// with whatever arguments it was given.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yeetrun/clargs/pkg/build"
	"github.com/yeetrun/clargs/pkg/spec"
)

func main() {
	cfg, err := spec.FromYAMLFile("demo.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}

	root, err := build.New(cfg).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}

	if run := build.Lookup(root, "run"); run != nil {
		run.RunE = func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetInt("timeout")
			verbose, _ := cmd.Flags().GetCount("verbose")
			fmt.Printf("running %s (timeout=%ds, verbosity=%d)\n", args[0], timeout, verbose)
			return nil
		}
	}
	if list := build.Lookup(root, "list"); list != nil {
		list.RunE = func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			fmt.Printf("listing tasks as %s\n", format)
			return nil
		}
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
