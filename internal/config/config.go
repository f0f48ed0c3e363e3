// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads the configuration of the ink command
// from a YAML file.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames are the names of configuration files
// searched for by [Discover], in order of preference.
var FileNames = []string{".ink.yaml", ".ink.yml"}

// vcsRootMarkers stop the upward search for a configuration file.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// Config is the configuration of the ink command.
type Config struct {
	// DetectLanguages enables guessing the language
	// of code blocks without one when rendering HTML.
	DetectLanguages bool `yaml:"detect_languages"`
	// LogLevel is one of "debug", "info", "warn", or "error".
	LogLevel string `yaml:"log_level"`
	// Extensions are the file extensions treated as ink documents
	// when a directory is given on the command line.
	Extensions []string `yaml:"extensions"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Extensions: []string{".ink"},
	}
}

// Parse reads a configuration from YAML.
// Fields missing from the document keep their default values.
// Unknown fields are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the configuration file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.FilePath = path
			return nil, verr
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover searches dir and its parents for a configuration file.
// The search stops at a version control root or the user's home directory.
// It returns the empty string if no file is found.
func Discover(ctx context.Context, dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("discover config: %w", err)
	}
	home, _ := os.UserHomeDir()
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		if isVCSRoot(dir) || dir == home {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// Resolve returns the configuration for a command run in workDir.
// An explicit path takes precedence over discovery.
// It also returns the path of the file that was loaded,
// which is empty if the defaults were used.
func Resolve(ctx context.Context, explicitPath, workDir string) (*Config, string, error) {
	path := explicitPath
	if path == "" {
		var err error
		path, err = Discover(ctx, workDir)
		if err != nil {
			return nil, "", err
		}
		if path == "" {
			return Default(), "", nil
		}
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// HasExtension reports whether the file name has one of the configured extensions.
func (cfg *Config) HasExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, want := range cfg.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
