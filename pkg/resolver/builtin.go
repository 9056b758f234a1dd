// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"os"
	"os/user"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// builtins returns a registry populated with every built-in resolver.
func builtins() *Registry {
	r := New()
	r.RegisterChoices("logging_levels", loggingLevels)
	r.RegisterChoices("env_vars", envVarNames)
	r.RegisterChoices("file_extensions", fileExtensions)
	r.RegisterChoices("go_versions", goVersions)
	r.RegisterDefault("current_user", currentUser)
	r.RegisterDefault("current_dir", currentDir)
	r.RegisterDefault("home_dir", homeDir)
	r.RegisterDefault("temp_dir", tempDir)
	return r
}

// loggingLevels returns the standard slog level names.
func loggingLevels() []string {
	return []string{"DEBUG", "INFO", "WARN", "ERROR"}
}

// envVarNames returns the names of every variable currently set in the
// process environment.
func envVarNames() []string {
	environ := os.Environ()
	names := make([]string, 0, len(environ))
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		names = append(names, name)
	}
	return names
}

func fileExtensions() []string {
	return []string{".txt", ".json", ".yaml", ".yml", ".toml", ".xml", ".csv", ".log"}
}

// supportedGoVersions is unordered on purpose; goVersions sorts it.
var supportedGoVersions = []string{"1.21", "1.22", "1.23", "1.24", "1.25"}

// goVersions returns the supported Go release strings in ascending
// version order.
func goVersions() []string {
	vs := make(semver.Collection, 0, len(supportedGoVersions))
	for _, s := range supportedGoVersions {
		v, err := semver.NewVersion(s)
		if err != nil {
			continue
		}
		vs = append(vs, v)
	}
	sort.Sort(vs)
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Original()
	}
	return out
}

func currentUser() any {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	if v := os.Getenv("USERNAME"); v != "" {
		return v
	}
	return "unknown"
}

func currentDir() any {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func homeDir() any {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func tempDir() any { return os.TempDir() }
