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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
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

// transfer "name" { ... }
type hclTransfer struct {
	Name        string   `hcl:"name,label"`
	Source      string   `hcl:"source"`
	Destination string   `hcl:"destination"`
	Include     []string `hcl:"include,optional"`
	Exclude     []string `hcl:"exclude,optional"`
	Ignore      []string `hcl:"ignore,optional"`
	Overwrite   bool     `hcl:"overwrite,optional"`
}

type hclConfig struct {
	Transfers []hclTransfer `hcl:"transfer,block"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// the home variable lets job files say source = "${home}/photos"; it is
	// left undefined when there is no home directory so such files fail to decode
	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{}}
	if home, err := os.UserHomeDir(); err == nil {
		evalCtx.Variables["home"] = cty.StringVal(home)
	} else {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("no home directory for HCL variables")
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{}
	for _, t := range hclCfg.Transfers {
		cfg.Jobs = append(cfg.Jobs, Job{
			Name:        t.Name,
			Source:      t.Source,
			Destination: t.Destination,
			Include:     t.Include,
			Exclude:     t.Exclude,
			Ignore:      t.Ignore,
			Overwrite:   t.Overwrite,
		})
	}

	return cfg, nil
}
