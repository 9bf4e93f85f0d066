// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/mdreplace/pkg/findreplace"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = ".mdreplace.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is one find and replace rule as written in a config file
type Rule struct {
	Find    string            `json:"find" yaml:"find"`                         // Text or regular expression to find
	Regex   bool              `json:"regex,omitempty" yaml:"regex,omitempty"`   // Treat Find as a regular expression
	First   bool              `json:"first,omitempty" yaml:"first,omitempty"`   // Only replace the first match per text node
	Replace string            `json:"replace,omitempty" yaml:"replace,omitempty"` // Literal replacement text
	Wrap    string            `json:"wrap,omitempty" yaml:"wrap,omitempty"`     // Wrap the match in a parent of this type
	Props   map[string]string `json:"props,omitempty" yaml:"props,omitempty"`   // Props of the wrapping node
	Remove  bool              `json:"remove,omitempty" yaml:"remove,omitempty"` // Delete the match
	Files   string            `json:"files,omitempty" yaml:"files,omitempty"`   // Optional glob of files the rule applies to
}

// 🗺️ MapEntry is one literal find / replace entry of a mapping
type MapEntry struct {
	Find    string
	Replace string
}

// Mapping is an ordered literal mapping; it keeps document order where the format has one
type Mapping []MapEntry

// 📚 Config represents the complete configuration
type Config struct {
	Ignore  []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`   // Node types whose text is never touched
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"` // Glob patterns for input files to skip
	Rules   []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`     // Rules, applied in order
	Mapping Mapping  `json:"mapping,omitempty" yaml:"mapping,omitempty"` // Literal mapping, applied after Rules
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Int("rules", len(cfg.Rules)).Int("mapping", len(cfg.Mapping)).Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 && len(cfg.Mapping) == 0 {
		return errors.Errorf("at least one rule or mapping entry is required")
	}

	for i, rule := range cfg.Rules {
		if err := rule.Validate(); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}

	for i, e := range cfg.Mapping {
		if e.Find == "" {
			return errors.Errorf("mapping entry %d: find is required", i)
		}
	}

	for i, typ := range cfg.Ignore {
		if strings.TrimSpace(typ) == "" {
			return errors.Errorf("ignore %d: node type is required", i)
		}
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude: invalid glob %q", pattern)
		}
	}

	return nil
}

// 🔍 Validate checks a single rule
func (r Rule) Validate() error {
	if r.Find == "" {
		return errors.Errorf("find is required")
	}

	actions := 0
	if r.Replace != "" {
		actions++
	}
	if r.Wrap != "" {
		actions++
	}
	if r.Remove {
		actions++
	}
	if actions != 1 {
		return errors.Errorf("exactly one of replace, wrap or remove is required")
	}

	if len(r.Props) > 0 && r.Wrap == "" {
		return errors.Errorf("props require wrap")
	}

	if r.Regex {
		if _, err := findreplace.Compile(r.Find, !r.First); err != nil {
			return err
		}
	}

	if r.Files != "" && !doublestar.ValidatePattern(r.Files) {
		return errors.Errorf("files: invalid glob %q", r.Files)
	}

	return nil
}

// 📝 String returns a one line description of the rule
func (r Rule) String() string {
	s := r.Pattern() + " -> " + r.Action()
	if r.Files != "" {
		s += " [" + r.Files + "]"
	}
	return s
}

// Pattern describes the find side: /expr/ (g when global) or quoted text
func (r Rule) Pattern() string {
	if !r.Regex {
		if r.First {
			return fmt.Sprintf("%q (first)", r.Find)
		}
		return fmt.Sprintf("%q", r.Find)
	}
	if r.First {
		return "/" + r.Find + "/"
	}
	return "/" + r.Find + "/g"
}

// Action describes the replace side
func (r Rule) Action() string {
	switch {
	case r.Remove:
		return "(remove)"
	case r.Wrap != "":
		return r.Wrap + "(...)"
	default:
		return fmt.Sprintf("%q", r.Replace)
	}
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 📝 UnmarshalYAML reads a mapping keeping the document order of its keys
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: mapping must be a map of strings", value.Line)
	}

	out := make(Mapping, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var e MapEntry
		if err := value.Content[i].Decode(&e.Find); err != nil {
			return errors.Errorf("line %d: decoding mapping key: %w", value.Content[i].Line, err)
		}
		if err := value.Content[i+1].Decode(&e.Replace); err != nil {
			return errors.Errorf("line %d: decoding mapping value for %q: %w", value.Content[i+1].Line, e.Find, err)
		}
		out = append(out, e)
	}

	*m = out
	return nil
}
