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

package config

import (
	"fmt"
	"strings"
)

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	// FilePath is the configuration file, if known.
	FilePath string
	// Field is the YAML key of the invalid value.
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate reports the first invalid value in cfg.
func (cfg *Config) Validate() error {
	if !containsFold(logLevels, cfg.LogLevel) {
		return &ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level %q (want one of %s)", cfg.LogLevel, strings.Join(logLevels, ", ")),
		}
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return &ValidationError{
				Field:   "extensions",
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			}
		}
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, x := range list {
		if strings.EqualFold(x, s) {
			return true
		}
	}
	return false
}
