// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spec

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes a YAML document into a Config.
func FromYAML(data []byte) (*Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %v", err)
	}
	return FromMap(doc), nil
}

// FromYAMLFile reads and decodes a YAML configuration file.
func FromYAMLFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}
	return FromYAML(data)
}

// FromTOMLFile reads and decodes a TOML configuration file. The document
// shape is the same as for YAML.
func FromTOMLFile(path string) (*Config, error) {
	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse toml: %v", err)
	}
	return FromMap(doc), nil
}
