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

// Package spec provides access to the ink example suite:
// pairs of markup and the HTML it renders to.
package spec

import (
	_ "embed"
	"encoding/json"
)

// Example is a single example from the suite.
type Example struct {
	Markdown string
	HTML     string
	Example  int
	Section  string
}

//go:embed examples.json
var exampleData []byte

// Load returns the examples from the suite.
func Load() ([]Example, error) {
	var testsuite []Example
	if err := json.Unmarshal(exampleData, &testsuite); err != nil {
		return nil, err
	}
	return testsuite, nil
}

// Sections returns the distinct section names of the examples
// in the order they first appear.
func Sections(examples []Example) []string {
	var sections []string
	seen := make(map[string]struct{})
	for _, ex := range examples {
		if _, ok := seen[ex.Section]; ok {
			continue
		}
		seen[ex.Section] = struct{}{}
		sections = append(sections, ex.Section)
	}
	return sections
}
