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
	"context"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "mdreplace.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclRule struct {
		Find    string            `hcl:"find"`
		Regex   bool              `hcl:"regex,optional"`
		First   bool              `hcl:"first,optional"`
		Replace string            `hcl:"replace,optional"`
		Wrap    string            `hcl:"wrap,optional"`
		Props   map[string]string `hcl:"props,optional"`
		Remove  bool              `hcl:"remove,optional"`
		Files   string            `hcl:"files,optional"`
	}
	type hclConfig struct {
		Ignore  []string          `hcl:"ignore,optional"`
		Exclude []string          `hcl:"exclude,optional"`
		Mapping map[string]string `hcl:"mapping,optional"`
		Rules   []hclRule         `hcl:"rule,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Ignore:  hclCfg.Ignore,
		Exclude: hclCfg.Exclude,
	}

	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, Rule{
			Find:    r.Find,
			Regex:   r.Regex,
			First:   r.First,
			Replace: r.Replace,
			Wrap:    r.Wrap,
			Props:   r.Props,
			Remove:  r.Remove,
			Files:   r.Files,
		})
	}

	// HCL objects carry no key order
	keys := make([]string, 0, len(hclCfg.Mapping))
	for k := range hclCfg.Mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cfg.Mapping = append(cfg.Mapping, MapEntry{Find: k, Replace: hclCfg.Mapping[k]})
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
