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

package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bash/ink/internal/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"ShebangBash", "#!/bin/bash\necho hello", "bash"},
		{"ShebangPython", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"Go", "package main\n\nfunc main() {}\n", "go"},
		{"Python", "def foo():\n    pass\n", "python"},
		{"JSON", `{"key": "value"}`, "json"},
		{"SQL", "select * from users;", "sql"},
		{"Rust", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"HTML", "<!DOCTYPE html>\n<html></html>", "html"},
		{"Dockerfile", "FROM alpine\nRUN apk add git", "dockerfile"},
		{"Empty", "", ""},
		{"Blank", "  \n\t\n", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, langdetect.Detect([]byte(test.code)))
		})
	}
}

func TestTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bash", langdetect.Tag("Shell"))
	assert.Equal(t, "cpp", langdetect.Tag("C++"))
	assert.Equal(t, "go", langdetect.Tag("Go"))
	assert.Equal(t, "emacs-lisp", langdetect.Tag("Emacs Lisp"))
}
