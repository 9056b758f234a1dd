// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"fmt"
	"strings"
)

// MissingNameError is returned when an argument spec declares neither a
// name nor a short flag.
type MissingNameError struct {
	Command string // path of the owning command, e.g. "app db migrate"
}

func (e *MissingNameError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("argument under %q must have either a name or a short flag", e.Command)
	}
	return "argument must have either a name or a short flag"
}

// UnknownTypeError is returned when an argument declares a type tag that
// no converter is registered for.
type UnknownTypeError struct {
	Tag string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %q", e.Tag)
}

// ChoiceError is returned at parse time when a supplied flag value is not
// one of the argument's resolved choices.
type ChoiceError struct {
	Flag    string
	Value   string
	Choices []string
}

func (e *ChoiceError) Error() string {
	return fmt.Sprintf("invalid value %q for flag --%s: choose from %s",
		e.Value, e.Flag, strings.Join(e.Choices, ", "))
}
