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

// Package langdetect guesses the language of a code block
// so that undecorated code can still be tagged for syntax highlighting.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates are the languages the classifier may choose between.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// A pattern recognizes a language from an unmistakable marker.
type pattern struct {
	lang  string
	match func(code, trimmed []byte) bool
}

// patterns are checked in order before falling back to the classifier.
var patterns = []pattern{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(code, _ []byte) bool {
		return bytes.Contains(code, []byte("def ")) && bytes.Contains(code, []byte("):")) ||
			bytes.Contains(code, []byte("__name__"))
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{"dockerfile", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("\nRUN "))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := strings.ToUpper(string(trimmed))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(code, _ []byte) bool {
		return bytes.Contains(code, []byte("fn main()")) || bytes.Contains(code, []byte("println!"))
	}},
}

// Detect returns a language tag for code
// or the empty string if the language cannot be determined confidently.
// Tags are lower-case, as used in "[code:go]".
func Detect(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return ""
	}
	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return Tag(lang)
	}
	for _, p := range patterns {
		if p.match(code, trimmed) {
			return p.lang
		}
	}
	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return Tag(lang)
	}
	return ""
}

// Tag converts a linguist language name to a decorator language tag.
func Tag(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
	}
}
