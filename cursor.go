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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Inline tokens.
const (
	emphasisToken       = "*"
	strongEmphasisToken = "**"
	ultraEmphasisToken  = "***"
	linkOpenToken       = "<"
	linkCloseToken      = ">"
)

// inlineCursor is a read-only view of a text with a current position.
// Positions are byte offsets into text
// and are always on character boundaries.
// base is the span of text within the larger document;
// spans returned by the cursor are translated with it.
type inlineCursor struct {
	text string
	pos  int
	base Span
}

func newInlineCursor(text string, base Span) *inlineCursor {
	return &inlineCursor{text: text, base: base}
}

// done reports whether the cursor is at the end of the text.
func (c *inlineCursor) done() bool {
	return c.pos >= len(c.text)
}

// rest returns the text after the cursor.
func (c *inlineCursor) rest() string {
	return c.text[c.pos:]
}

// take advances the cursor past n characters
// and returns the consumed text and its span.
// take stops early at the end of the text.
func (c *inlineCursor) take(n int) (Span, string) {
	start := c.pos
	for ; n > 0 && c.pos < len(c.text); n-- {
		_, size := utf8.DecodeRuneInString(c.text[c.pos:])
		c.pos += size
	}
	return c.span(start, c.pos), c.text[start:c.pos]
}

// skipBytes advances the cursor by n bytes.
// The caller is responsible for landing on a character boundary.
func (c *inlineCursor) skipBytes(n int) {
	c.pos = min(c.pos+n, len(c.text))
}

// span returns the absolute span of text[start:end].
func (c *inlineCursor) span(start, end int) Span {
	return NewSpan(start, end-start).Absolute(c.base)
}

// startsWith reports whether the text after the cursor begins with needle.
func (c *inlineCursor) startsWith(needle string) bool {
	return strings.HasPrefix(c.text[c.pos:], needle)
}

// previousChar returns the character before the cursor.
// ok is false at the beginning of the text.
func (c *inlineCursor) previousChar() (r rune, ok bool) {
	if c.pos == 0 {
		return 0, false
	}
	r, _ = utf8.DecodeLastRuneInString(c.text[:c.pos])
	return r, true
}

// charAt returns the character starting at the given byte offset.
// ok is false if the offset is at or past the end of the text.
func (c *inlineCursor) charAt(pos int) (r rune, ok bool) {
	if pos >= len(c.text) {
		return 0, false
	}
	r, _ = utf8.DecodeRuneInString(c.text[pos:])
	return r, true
}

// tokenKind is an enumeration of the tokens recognized by [*inlineCursor.nextToken].
type tokenKind int8

const (
	emphasisTokenKind tokenKind = 1 + iota
	strongEmphasisTokenKind
	ultraEmphasisTokenKind
	linkOpenTokenKind
	linkCloseTokenKind
)

// formatting returns the formatting kind opened or closed by a delimiter token.
func (kind tokenKind) formatting() FormattingKind {
	switch kind {
	case emphasisTokenKind:
		return Emphasis
	case strongEmphasisTokenKind:
		return StrongEmphasis
	case ultraEmphasisTokenKind:
		return UltraEmphasis
	default:
		return 0
	}
}

// inlineToken is a token found at the cursor.
type inlineToken struct {
	kind tokenKind
	// n is the length of the token in bytes.
	n int
	// leftFlanking is true if the character after the token
	// exists and is not whitespace:
	// the token can open formatting.
	leftFlanking bool
	// rightFlanking is true if the character before the token
	// exists and is not whitespace:
	// the token can close formatting.
	rightFlanking bool
}

// delimiterTokens are checked longest first
// so that "***" is not mistaken for "*".
var delimiterTokens = []struct {
	s    string
	kind tokenKind
}{
	{ultraEmphasisToken, ultraEmphasisTokenKind},
	{strongEmphasisToken, strongEmphasisTokenKind},
	{emphasisToken, emphasisTokenKind},
}

// nextToken reports the token at the cursor without consuming it.
// ok is false if the cursor is on literal text.
func (c *inlineCursor) nextToken() (tok inlineToken, ok bool) {
	switch {
	case c.startsWith(linkOpenToken):
		return inlineToken{kind: linkOpenTokenKind, n: len(linkOpenToken)}, true
	case c.startsWith(linkCloseToken):
		return inlineToken{kind: linkCloseTokenKind, n: len(linkCloseToken)}, true
	}
	for _, d := range delimiterTokens {
		if !c.startsWith(d.s) {
			continue
		}
		tok = inlineToken{kind: d.kind, n: len(d.s)}
		next, hasNext := c.charAt(c.pos + tok.n)
		tok.leftFlanking = hasNext && !unicode.IsSpace(next)
		prev, hasPrev := c.previousChar()
		tok.rightFlanking = hasPrev && !unicode.IsSpace(prev)
		return tok, true
	}
	return inlineToken{}, false
}
