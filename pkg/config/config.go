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

// Package config loads transfer job files written in YAML, HCL or JSON.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/filetransfer/pkg/extension"
	"github.com/walteh/filetransfer/pkg/fault"
	"github.com/walteh/filetransfer/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is the job file looked up when none is given.
const DefaultFile = ".filetransfer.yaml"

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

// 📦 Job is one named transfer
type Job struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Source      string   `json:"source" yaml:"source"`
	Destination string   `json:"destination" yaml:"destination"`
	Include     []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude     []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Overwrite   bool     `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
}

// Options converts the job to transfer options.
func (j Job) Options() transfer.Options {
	return transfer.Options{
		Source:      j.Source,
		Destination: j.Destination,
		Filter: extension.Filter{
			Include: j.Include,
			Exclude: j.Exclude,
			Ignore:  j.Ignore,
		},
		Overwrite: j.Overwrite,
	}
}

// 📝 String returns a string representation of the job
func (j Job) String() string {
	return fmt.Sprintf("%s: %s -> %s", j.Name, j.Source, j.Destination)
}

// 📚 Config represents a job file
type Config struct {
	Jobs []Job `json:"transfers" yaml:"transfers"`

	location string
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if filepath.Base(path) == ".filetransfer" || filepath.Ext(path) == ".filetransfer" {
		// no extension to go by, so try YAML first and HCL next
		cfg, err = (&YAMLParser{}).Parse(ctx, data)
		if err != nil {
			logger.Debug().Err(err).Msg("not a YAML config, trying HCL")
			cfg, err = (&HCLParser{}).Parse(ctx, data)
		}
		if err != nil {
			return nil, errors.Errorf("parsing %s as YAML or HCL: %w", path, err)
		}
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
	}

	cfg.location = path
	cfg.resolve(filepath.Dir(path))

	if err := cfg.Validate(ctx); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// resolve makes relative job paths relative to base.
func (cfg *Config) resolve(base string) {
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Source != "" && !filepath.IsAbs(job.Source) {
			job.Source = filepath.Join(base, job.Source)
		}
		if job.Destination != "" && !filepath.IsAbs(job.Destination) {
			job.Destination = filepath.Join(base, job.Destination)
		}
	}
}

// 🔍 Validate checks the jobs and fills in default names
func (cfg *Config) Validate(ctx context.Context) error {
	if len(cfg.Jobs) == 0 {
		return errors.Errorf("at least one transfer is required")
	}

	seen := make(map[string]bool, len(cfg.Jobs))
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if seen[job.Name] {
			return errors.Errorf("transfer %q is defined more than once", job.Name)
		}
		seen[job.Name] = true

		if job.Source == "" {
			return errors.Errorf("transfer %q: source is required", job.Name)
		}
		if job.Destination == "" {
			return errors.Errorf("transfer %q: destination is required", job.Name)
		}
		if err := job.Options().Validate(); err != nil {
			return errors.Errorf("transfer %q: %w", job.Name, err)
		}

		zerolog.Ctx(ctx).Trace().Str("job", job.String()).Msg("validated transfer")
	}

	return nil
}

// 🎯 Select returns the named jobs in the given order, or every job when no
// names are given
func (cfg *Config) Select(names ...string) ([]Job, error) {
	if len(names) == 0 {
		return append([]Job(nil), cfg.Jobs...), nil
	}

	byName := make(map[string]Job, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		byName[job.Name] = job
	}

	var unknown []string
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		job, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		jobs = append(jobs, job)
	}
	if len(unknown) > 0 {
		return nil, fault.InvalidArgument("unknown transfer %s", strings.Join(unknown, ", "))
	}

	return jobs, nil
}
