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
	"unicode"
)

// Line-start tokens.
// The separating space is part of each token,
// so a token glued to the following text does not start a block.
const (
	heading1Token      = "# "
	heading2Token      = "## "
	heading3Token      = "### "
	quoteToken         = "> "
	unorderedListToken = "- "
	orderedListToken   = ". "

	dividerToken         = "---"
	decoratorPrefixToken = "["
	decoratorSuffixToken = "]"
)

// LineType is the classification of a single line of input.
type LineType uint8

const (
	BlankLine LineType = 1 + iota
	DividerLine
	Heading1Line
	Heading2Line
	Heading3Line
	TextLine
	QuoteLine
	DecoratorLine
	UnorderedListLine
	OrderedListLine
)

func (typ LineType) String() string {
	switch typ {
	case BlankLine:
		return "BlankLine"
	case DividerLine:
		return "DividerLine"
	case Heading1Line:
		return "Heading1Line"
	case Heading2Line:
		return "Heading2Line"
	case Heading3Line:
		return "Heading3Line"
	case TextLine:
		return "TextLine"
	case QuoteLine:
		return "QuoteLine"
	case DecoratorLine:
		return "DecoratorLine"
	case UnorderedListLine:
		return "UnorderedListLine"
	case OrderedListLine:
		return "OrderedListLine"
	default:
		return fmt.Sprintf("LineType(%d)", uint8(typ))
	}
}

// IsHeading reports whether typ is one of the heading line types.
func (typ LineType) IsHeading() bool {
	return typ.HeadingLevel() > 0
}

// HeadingLevel returns 1, 2, or 3 for heading line types
// and 0 for all others.
func (typ LineType) HeadingLevel() int {
	switch typ {
	case Heading1Line:
		return 1
	case Heading2Line:
		return 2
	case Heading3Line:
		return 3
	default:
		return 0
	}
}

// ClassifyLine returns the type of the given line.
// The line must not include its line terminator.
//
// Structural tokens are only recognized at the very start of the line
// and the checks are applied in a fixed order; the first match wins:
// divider, decorator, blank, headings (longest token first), quote,
// unordered list, ordered list.
// Anything else is text.
func ClassifyLine(line string) LineType {
	switch {
	case isDivider(line):
		return DividerLine
	case isDecorator(line):
		return DecoratorLine
	case isBlank(line):
		return BlankLine
	case strings.HasPrefix(line, heading3Token):
		return Heading3Line
	case strings.HasPrefix(line, heading2Token):
		return Heading2Line
	case strings.HasPrefix(line, heading1Token):
		return Heading1Line
	case strings.HasPrefix(line, quoteToken):
		return QuoteLine
	case strings.HasPrefix(line, unorderedListToken):
		return UnorderedListLine
	case strings.HasPrefix(line, orderedListToken):
		return OrderedListLine
	default:
		return TextLine
	}
}

// isDivider reports whether the line is three or more dashes,
// optionally followed by trailing whitespace.
func isDivider(line string) bool {
	if !strings.HasPrefix(line, dividerToken) {
		return false
	}
	for _, c := range trimRight(line) {
		if c != '-' {
			return false
		}
	}
	return true
}

// isDecorator reports whether the line is a bracketed identifier like "[code]",
// optionally followed by trailing whitespace.
func isDecorator(line string) bool {
	_, ok := decoratorIdentifier(line)
	return ok
}

// decoratorIdentifier returns the text between the brackets of a decorator line.
func decoratorIdentifier(line string) (string, bool) {
	trimmed := trimRight(line)
	if !strings.HasPrefix(trimmed, decoratorPrefixToken) || !strings.HasSuffix(trimmed, decoratorSuffixToken) {
		return "", false
	}
	ident := trimmed[len(decoratorPrefixToken) : len(trimmed)-len(decoratorSuffixToken)]
	if ident == "" {
		return "", false
	}
	for _, c := range ident {
		if !isIdentifierChar(c) {
			return "", false
		}
	}
	return ident, true
}

func isIdentifierChar(c rune) bool {
	switch c {
	case '_', '-', '.', '+', ':':
		return true
	default:
		return unicode.IsLetter(c) || unicode.IsDigit(c)
	}
}

func isBlank(line string) bool {
	for _, c := range line {
		if !unicode.IsSpace(c) {
			return false
		}
	}
	return true
}

func trimRight(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// HeadingText returns the content of a heading line
// with the heading token and surrounding whitespace removed.
// If the line is not a heading, HeadingText returns the trimmed line.
func HeadingText(line string) string {
	switch ClassifyLine(line) {
	case Heading1Line:
		line = line[len(heading1Token):]
	case Heading2Line:
		line = line[len(heading2Token):]
	case Heading3Line:
		line = line[len(heading3Token):]
	}
	return strings.TrimSpace(line)
}

// QuoteText returns the content of a quote line
// with the quote token removed.
func QuoteText(line string) string {
	return strings.TrimPrefix(line, quoteToken)
}

// ListItemText returns the content of a list line
// with the list token and surrounding whitespace removed.
func ListItemText(line string) string {
	switch ClassifyLine(line) {
	case UnorderedListLine:
		line = line[len(unorderedListToken):]
	case OrderedListLine:
		line = line[len(orderedListToken):]
	}
	return strings.TrimSpace(line)
}
