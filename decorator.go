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

package ink

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// DecoratorKind is an enumeration of the keywords
// that may annotate a preformatted block.
type DecoratorKind uint8

const (
	// CodeDecorator marks a block of source code,
	// optionally tagged with a language (e.g. "[code:go]").
	CodeDecorator DecoratorKind = 1 + iota
	// TableDecorator marks a block of table rows.
	TableDecorator
)

func (kind DecoratorKind) String() string {
	switch kind {
	case CodeDecorator:
		return "code"
	case TableDecorator:
		return "table"
	default:
		return fmt.Sprintf("DecoratorKind(%d)", uint8(kind))
	}
}

// Decorator is the parsed content of a "[keyword]" line
// preceding a preformatted block.
type Decorator struct {
	Kind DecoratorKind
	// Language is the language tag of a code decorator.
	// It is empty if no language was given.
	Language string
}

// String formats the decorator the way it is written in source,
// without the surrounding brackets.
func (d Decorator) String() string {
	if d.Language == "" {
		return d.Kind.String()
	}
	return d.Kind.String() + decoratorLanguageSeparator + d.Language
}

const decoratorLanguageSeparator = ":"

// ParseDecorator parses a decorator line like "[code]", "[code:go]", or "[table]".
// Keywords are matched case-insensitively.
// ParseDecorator returns false if the line is not a decorator line
// or the keyword is unknown.
func ParseDecorator(line string) (Decorator, bool) {
	ident, ok := decoratorIdentifier(line)
	if !ok {
		return Decorator{}, false
	}
	keyword, lang, _ := strings.Cut(ident, decoratorLanguageSeparator)
	switch cases.Fold().String(keyword) {
	case "code":
		return Decorator{Kind: CodeDecorator, Language: lang}, true
	case "table":
		if lang != "" {
			return Decorator{}, false
		}
		return Decorator{Kind: TableDecorator}, true
	default:
		return Decorator{}, false
	}
}
