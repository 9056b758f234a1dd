// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"slices"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// applyChoiceValidation wires a PreRunE that checks the command's local
// choice-constrained flags after parsing. Only flags the user actually set
// are checked; defaults, including environment-injected ones, pass
// through unchecked, matching the underlying facility's treatment of
// defaults.
func (b *Builder) applyChoiceValidation(cmd *cobra.Command, st *cmdState) {
	if len(st.choices) == 0 {
		return
	}
	choices := st.choices
	prev := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := validateChoices(cmd, choices); err != nil {
			return err
		}
		if prev != nil {
			return prev(cmd, args)
		}
		return nil
	}
}

// applyPersistentChoiceValidation does the same for parent arguments,
// which are persistent flags: the root's PersistentPreRunE runs for every
// invocation in the tree, so parent-argument choices are enforced no
// matter which subcommand executes.
func (b *Builder) applyPersistentChoiceValidation(root *cobra.Command, st *cmdState) {
	if len(st.choices) == 0 {
		return
	}
	choices := st.choices
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return validateChoices(cmd, choices)
	}
}

func validateChoices(cmd *cobra.Command, choices map[string][]string) error {
	names := make([]string, 0, len(choices))
	for name := range choices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		allowed := choices[name]
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			for _, v := range sv.GetSlice() {
				if !slices.Contains(allowed, v) {
					return &ChoiceError{Flag: name, Value: v, Choices: allowed}
				}
			}
			continue
		}
		if v := f.Value.String(); !slices.Contains(allowed, v) {
			return &ChoiceError{Flag: name, Value: v, Choices: allowed}
		}
	}
	return nil
}
