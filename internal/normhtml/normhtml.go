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

// Package normhtml normalizes the HTML produced by the ink renderer
// so that tests can compare output
// without depending on insignificant whitespace or attribute order.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// blockTags are the elements around which whitespace is insignificant.
var blockTags = map[atom.Atom]struct{}{
	atom.P:          {},
	atom.H1:         {},
	atom.H2:         {},
	atom.H3:         {},
	atom.Blockquote: {},
	atom.Pre:        {},
	atom.Ul:         {},
	atom.Ol:         {},
	atom.Li:         {},
	atom.Table:      {},
	atom.Tr:         {},
	atom.Td:         {},
	atom.Section:    {},
}

// NormalizeHTML strips insignificant output differences from HTML:
// runs of whitespace outside "<pre>" are collapsed,
// whitespace next to block elements is removed,
// attributes are sorted by name,
// and character references are re-escaped canonically.
func NormalizeHTML(b []byte) []byte {
	n := &normalizer{last: html.StartTagToken}
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return n.out
		case html.TextToken:
			n.text(tok.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			n.startTag(tok)
		case html.EndTagToken:
			name, _ := tok.TagName()
			n.endTag(atom.Lookup(name), name)
		case html.CommentToken:
			n.out = append(n.out, tok.Raw()...)
		}
		n.last = tt
		if tt == html.SelfClosingTagToken {
			n.last = html.EndTagToken
		}
	}
}

// Equal reports whether a and b are the same HTML after normalization.
func Equal(a, b []byte) bool {
	return bytes.Equal(NormalizeHTML(a), NormalizeHTML(b))
}

type normalizer struct {
	out     []byte
	last    html.TokenType
	lastTag atom.Atom
	inPre   bool
}

func (n *normalizer) text(data []byte) {
	afterTag := n.last == html.EndTagToken || n.last == html.StartTagToken
	if afterTag && n.lastTag == atom.Br {
		data = bytes.TrimLeft(data, "\n")
	}
	if !n.inPre {
		data = whitespaceRE.ReplaceAll(data, []byte(" "))
		if afterTag && isBlockTag(n.lastTag) {
			if n.last == html.StartTagToken {
				data = bytes.TrimLeftFunc(data, unicode.IsSpace)
			} else {
				data = bytes.TrimSpace(data)
			}
		}
	}
	n.out = append(n.out, textEscaper.Replace(bytes.Clone(data))...)
}

func (n *normalizer) startTag(tok *html.Tokenizer) {
	type attribute struct {
		key   string
		value string
	}

	name, hasAttr := tok.TagName()
	a := atom.Lookup(name)
	if a == atom.Pre {
		n.inPre = true
	}
	if isBlockTag(a) {
		n.out = bytes.TrimRightFunc(n.out, unicode.IsSpace)
	}
	n.out = append(n.out, '<')
	n.out = append(n.out, name...)
	var attrs []attribute
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = tok.TagAttr()
		attrs = append(attrs, attribute{string(k), string(v)})
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].key < attrs[j].key
	})
	for _, attr := range attrs {
		n.out = append(n.out, ' ')
		n.out = append(n.out, attr.key...)
		if attr.value != "" {
			n.out = append(n.out, `="`...)
			n.out = append(n.out, html.EscapeString(attr.value)...)
			n.out = append(n.out, '"')
		}
	}
	n.out = append(n.out, '>')
	n.lastTag = a
}

func (n *normalizer) endTag(a atom.Atom, name []byte) {
	if a == atom.Pre {
		n.inPre = false
	} else if isBlockTag(a) {
		n.out = bytes.TrimRightFunc(n.out, unicode.IsSpace)
	}
	n.out = append(n.out, "</"...)
	n.out = append(n.out, name...)
	n.out = append(n.out, '>')
	n.lastTag = a
}

func isBlockTag(a atom.Atom) bool {
	_, ok := blockTags[a]
	return ok
}
