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
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

// HTMLFormat converts blocks to HTML.
// It has one method per block kind
// so that output for a single kind can be customized
// by embedding [DefaultHTMLFormat] and overriding its method.
// Each method appends the HTML for the block to dst
// and returns the resulting byte slice.
type HTMLFormat interface {
	AppendHeading(dst []byte, h *Heading) []byte
	AppendParagraph(dst []byte, p *Paragraph) []byte
	AppendQuote(dst []byte, q *Quote) []byte
	AppendPreformatted(dst []byte, p *Preformatted) []byte
	AppendList(dst []byte, l *List) []byte
}

// DefaultHTMLFormat is the [HTMLFormat] used when none is specified.
type DefaultHTMLFormat struct {
	// DetectLanguage guesses the language of a code block
	// that has no language in its decorator.
	// It returns the empty string if it cannot tell.
	// If DetectLanguage is nil, no detection is done.
	DetectLanguage func(code []byte) string
}

// An HTMLRenderer converts fully parsed blocks into HTML.
// Text is always escaped,
// so the output only contains elements produced by the Format.
type HTMLRenderer struct {
	// Format produces the HTML for each block.
	// If Format is nil, DefaultHTMLFormat{} is used.
	Format HTMLFormat
}

// RenderHTML writes the given sequence of parsed blocks
// to the given writer as HTML
// using the default options for [HTMLRenderer].
// It will return the first error encountered, if any.
func RenderHTML(w io.Writer, blocks []Block) error {
	return new(HTMLRenderer).Render(w, blocks)
}

// Render writes the given sequence of parsed blocks
// to the given writer as HTML.
// It will return the first error encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, blocks []Block) error {
	var buf []byte
	for i, b := range blocks {
		buf = buf[:0]
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = r.AppendBlock(buf, b)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("render ink to html: %w", err)
		}
	}
	return nil
}

// RenderFrom reads blocks from p, resolves their inline content,
// and writes them to w as HTML as they are parsed.
// A failure of the parser's input is returned
// after the HTML of all preceding blocks has been written.
func (r *HTMLRenderer) RenderFrom(w io.Writer, p *BlockParser) error {
	inlineParser := new(InlineParser)
	var buf []byte
	first := true
	for block, err := range p.All() {
		if err != nil {
			return fmt.Errorf("render ink to html: %w", err)
		}
		inlineParser.Rewrite(block)
		buf = buf[:0]
		if !first {
			buf = append(buf, '\n')
		}
		first = false
		buf = r.AppendBlock(buf, block)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("render ink to html: %w", err)
		}
	}
	return nil
}

// AppendBlock appends the rendered HTML of a fully parsed block to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendBlock(dst []byte, block Block) []byte {
	format := r.Format
	if format == nil {
		format = DefaultHTMLFormat{}
	}
	switch b := block.(type) {
	case *Heading:
		return format.AppendHeading(dst, b)
	case *Paragraph:
		return format.AppendParagraph(dst, b)
	case *Quote:
		return format.AppendQuote(dst, b)
	case *Preformatted:
		return format.AppendPreformatted(dst, b)
	case *List:
		return format.AppendList(dst, b)
	default:
		panic(fmt.Sprintf("unknown block type %T", block))
	}
}

// AppendHeading appends "<h1>", "<h2>", or "<h3>" with the escaped heading text.
func (DefaultHTMLFormat) AppendHeading(dst []byte, h *Heading) []byte {
	var tagName atom.Atom
	switch h.Level {
	case 1:
		tagName = atom.H1
	case 2:
		tagName = atom.H2
	default:
		tagName = atom.H3
	}
	dst = appendOpenTag(dst, tagName)
	dst = appendEscapedHTML(dst, h.Text)
	return appendCloseTag(dst, tagName)
}

// AppendParagraph appends a "<p>" element.
func (DefaultHTMLFormat) AppendParagraph(dst []byte, p *Paragraph) []byte {
	dst = appendOpenTag(dst, atom.P)
	dst = AppendInlineHTML(dst, p.Inline)
	return appendCloseTag(dst, atom.P)
}

// AppendQuote appends a "<blockquote>" element.
func (DefaultHTMLFormat) AppendQuote(dst []byte, q *Quote) []byte {
	dst = appendOpenTag(dst, atom.Blockquote)
	dst = AppendInlineHTML(dst, q.Inline)
	return appendCloseTag(dst, atom.Blockquote)
}

// AppendPreformatted appends a "<table>" for a table block
// and a "<pre><code>" element for anything else.
func (f DefaultHTMLFormat) AppendPreformatted(dst []byte, p *Preformatted) []byte {
	if p.Decorator != nil && p.Decorator.Kind == TableDecorator {
		return appendTable(dst, p.Lines)
	}
	var code []byte
	for _, l := range p.Lines {
		code = append(code, l...)
		code = append(code, '\n')
	}
	var lang string
	if p.Decorator != nil && p.Decorator.Kind == CodeDecorator {
		lang = p.Decorator.Language
		if lang == "" && f.DetectLanguage != nil {
			lang = f.DetectLanguage(code)
		}
	}
	dst = appendOpenTag(dst, atom.Pre)
	dst = append(dst, '<')
	dst = append(dst, atom.Code.String()...)
	if lang != "" {
		dst = append(dst, ` class="language-`...)
		dst = appendEscapedHTML(dst, lang)
		dst = append(dst, '"')
	}
	dst = append(dst, '>')
	dst = append(dst, htmlEscaper.Replace(code)...)
	dst = appendCloseTag(dst, atom.Code)
	return appendCloseTag(dst, atom.Pre)
}

// appendTable renders every line as a table row
// with cells separated by "|".
func appendTable(dst []byte, lines []string) []byte {
	dst = appendOpenTag(dst, atom.Table)
	dst = append(dst, '\n')
	for _, l := range lines {
		dst = appendOpenTag(dst, atom.Tr)
		for _, cell := range strings.Split(strings.Trim(strings.TrimSpace(l), "|"), "|") {
			dst = appendOpenTag(dst, atom.Td)
			dst = appendEscapedHTML(dst, strings.TrimSpace(cell))
			dst = appendCloseTag(dst, atom.Td)
		}
		dst = appendCloseTag(dst, atom.Tr)
		dst = append(dst, '\n')
	}
	return appendCloseTag(dst, atom.Table)
}

// AppendList appends a "<ul>" or "<ol>" element.
// Items may contain inline formatting.
func (DefaultHTMLFormat) AppendList(dst []byte, l *List) []byte {
	tagName := atom.Ul
	if l.Type == OrderedList {
		tagName = atom.Ol
	}
	dst = appendOpenTag(dst, tagName)
	dst = append(dst, '\n')
	p := new(InlineParser)
	for _, item := range l.Items {
		dst = appendOpenTag(dst, atom.Li)
		dst = AppendInlineHTML(dst, p.Parse(item, NewSpan(0, len(item))))
		dst = appendCloseTag(dst, atom.Li)
		dst = append(dst, '\n')
	}
	return appendCloseTag(dst, tagName)
}

// AppendInlineHTML appends the HTML for inline content to dst
// and returns the resulting byte slice.
func AppendInlineHTML(dst []byte, in Inline) []byte {
	for _, f := range in {
		switch f.Kind {
		case Emphasis:
			dst = appendOpenTag(dst, atom.Em)
			dst = appendEntitiesHTML(dst, f.Entities)
			dst = appendCloseTag(dst, atom.Em)
		case StrongEmphasis:
			dst = appendOpenTag(dst, atom.Strong)
			dst = appendEntitiesHTML(dst, f.Entities)
			dst = appendCloseTag(dst, atom.Strong)
		case UltraEmphasis:
			dst = appendOpenTag(dst, atom.Strong)
			dst = appendOpenTag(dst, atom.Em)
			dst = appendEntitiesHTML(dst, f.Entities)
			dst = appendCloseTag(dst, atom.Em)
			dst = appendCloseTag(dst, atom.Strong)
		default:
			dst = appendEntitiesHTML(dst, f.Entities)
		}
	}
	return dst
}

func appendEntitiesHTML(dst []byte, entities []Entity) []byte {
	const hardLineBreak = "<br>\n"
	for _, e := range entities {
		switch e.Kind {
		case TextEntity:
			dst = appendEscapedHTML(dst, e.Text)
		case LineBreakEntity:
			dst = append(dst, hardLineBreak...)
		case LinkEntity:
			dst = append(dst, '<')
			dst = append(dst, atom.A.String()...)
			dst = append(dst, ` href="`...)
			dst = appendEscapedHTML(dst, NormalizeURI(e.Link.URL))
			dst = append(dst, `">`...)
			if e.Link.HasLabel() {
				dst = appendEscapedHTML(dst, e.Link.Label)
			} else {
				dst = appendEscapedHTML(dst, e.Link.URL)
			}
			dst = appendCloseTag(dst, atom.A)
		}
	}
	return dst
}

func appendOpenTag(dst []byte, name atom.Atom) []byte {
	dst = append(dst, '<')
	dst = append(dst, name.String()...)
	return append(dst, '>')
}

func appendCloseTag(dst []byte, name atom.Atom) []byte {
	dst = append(dst, "</"...)
	dst = append(dst, name.String()...)
	return append(dst, '>')
}

// htmlEscaper escapes text and attribute values.
// NUL is not allowed in HTML, so it is replaced with U+FFFD.
var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	"\x00", "�",
)

// appendEscapedHTML appends the HTML-escaped version of s to dst.
func appendEscapedHTML(dst []byte, s string) []byte {
	return append(dst, htmlEscaper.Replace([]byte(s))...)
}

// NormalizeURI percent-encodes any characters in a string
// that are not reserved or unreserved URI characters.
// This is used for transforming link URLs
// into strings suitable for href attributes.
func NormalizeURI(s string) string {
	// RFC 3986 reserved and unreserved characters.
	const safeSet = `;/?:@&=+$,-_.!~*'()#`

	sb := new(strings.Builder)
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && (isASCIILetter(byte(c)) || isASCIIDigit(byte(c)))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || isASCIIDigit(c)
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	case x < 0x10:
		return 'A' + x - 0xa
	default:
		panic("out of bounds")
	}
}
