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
)

const lineBreakToken = "\n"

// An InlineParser resolves the emphasis, links, and line breaks
// in the text of a block.
// The zero value is ready to use.
//
// Resolution never fails.
// A delimiter run that cannot be matched, an unterminated link,
// or a malformed link is kept as literal text.
type InlineParser struct {
}

// Rewrite replaces the unparsed inline content
// of a [*Paragraph] or [*Quote] with its parsed form.
// Spans are relative to the beginning of the block's Text.
// Other blocks are left unchanged.
func (p *InlineParser) Rewrite(block Block) {
	switch b := block.(type) {
	case *Paragraph:
		b.Inline = p.Parse(b.Text, NewSpan(0, len(b.Text)))
	case *Quote:
		b.Inline = p.Parse(b.Text, NewSpan(0, len(b.Text)))
	}
}

// Parse parses text into inline content.
// base is the span of text within its enclosing document:
// all spans in the result are translated by base's offset.
func (p *InlineParser) Parse(text string, base Span) Inline {
	state := &inlineState{
		c: newInlineCursor(text, base),
	}
	for !state.c.done() {
		if state.c.startsWith(lineBreakToken) {
			state.lineBreak()
			continue
		}
		tok, ok := state.c.nextToken()
		if !ok {
			state.c.take(1)
			continue
		}
		switch tok.kind {
		case linkOpenTokenKind:
			state.link()
		case linkCloseTokenKind:
			// Without a preceding "<", ">" is literal.
			state.c.skipBytes(tok.n)
		default:
			state.delimiter(tok)
		}
	}
	state.flushText()
	state.closeRun(state.items)
	return state.out
}

// inlineItem is an entity that has not been assigned to a formatting run yet.
type inlineItem struct {
	entity Entity
	// delim is the formatting the item could open
	// if the item is a delimiter run.
	// A delimiter that is never matched is kept as its text.
	delim FormattingKind
}

type inlineState struct {
	c   *inlineCursor
	out Inline

	// items are the entities after the last resolved formatting.
	items []inlineItem
	// openers is a stack of indices into items
	// of delimiter runs that can open formatting.
	openers []int
	// plainStart is the start of literal text not yet added to items.
	plainStart int
}

// flushText adds any literal text before the cursor to the items.
func (state *inlineState) flushText() {
	if state.plainStart < state.c.pos {
		state.items = append(state.items, inlineItem{entity: Entity{
			Kind: TextEntity,
			Span: state.c.span(state.plainStart, state.c.pos),
			Text: state.c.text[state.plainStart:state.c.pos],
		}})
	}
	state.plainStart = state.c.pos
}

func (state *inlineState) lineBreak() {
	state.flushText()
	span, _ := state.c.take(1)
	state.items = append(state.items, inlineItem{entity: Entity{
		Kind: LineBreakEntity,
		Span: span,
	}})
	state.plainStart = state.c.pos
}

// delimiter handles an emphasis delimiter run at the cursor.
func (state *inlineState) delimiter(tok inlineToken) {
	kind := tok.kind.formatting()
	start := state.c.pos
	if tok.rightFlanking {
		if i := state.findOpener(kind); i >= 0 && !state.isEmptyAfter(state.openers[i], start) {
			state.flushText()
			state.c.skipBytes(tok.n)
			state.resolve(i, kind, state.c.span(start, state.c.pos))
			state.plainStart = state.c.pos
			return
		}
	}
	if tok.leftFlanking {
		state.flushText()
		state.c.skipBytes(tok.n)
		state.openers = append(state.openers, len(state.items))
		state.items = append(state.items, inlineItem{
			delim: kind,
			entity: Entity{
				Kind: TextEntity,
				Span: state.c.span(start, state.c.pos),
				Text: state.c.text[start:state.c.pos],
			},
		})
		state.plainStart = state.c.pos
		return
	}
	// Neither opener nor closer: stays in the literal text.
	state.c.skipBytes(tok.n)
}

// findOpener returns the index in state.openers
// of the topmost opener of the given kind
// or -1 if there is none.
func (state *inlineState) findOpener(kind FormattingKind) int {
	for i := len(state.openers) - 1; i >= 0; i-- {
		if state.items[state.openers[i]].delim == kind {
			return i
		}
	}
	return -1
}

// isEmptyAfter reports whether nothing lies between
// the item at index and the position pos.
func (state *inlineState) isEmptyAfter(index, pos int) bool {
	return index == len(state.items)-1 && state.plainStart == pos
}

// resolve wraps the items after the opener state.openers[i]
// into a formatting run closed by the delimiter at closer.
// Items before the opener become a plain run.
// Since formatting runs do not nest,
// any openers above the matched one are dropped
// and left as literal text.
func (state *inlineState) resolve(i int, kind FormattingKind, closer Span) {
	openerIndex := state.openers[i]
	opener := state.items[openerIndex].entity
	state.closeRun(state.items[:openerIndex])
	state.out = append(state.out, Formatting{
		Kind:     kind,
		Span:     NewSpan(opener.Span.Offset, closer.End()-opener.Span.Offset),
		Entities: state.mergeText(state.items[openerIndex+1:]),
	})
	state.items = state.items[:0]
	state.openers = state.openers[:0]
}

// closeRun appends the items as a [Normal] formatting run.
func (state *inlineState) closeRun(items []inlineItem) {
	if len(items) == 0 {
		return
	}
	first, last := items[0].entity.Span, items[len(items)-1].entity.Span
	state.out = append(state.out, Formatting{
		Kind:     Normal,
		Span:     NewSpan(first.Offset, last.End()-first.Offset),
		Entities: state.mergeText(items),
	})
}

// mergeText converts the items into entities,
// joining adjacent text entities into one.
func (state *inlineState) mergeText(items []inlineItem) []Entity {
	entities := make([]Entity, 0, len(items))
	for _, item := range items {
		e := item.entity
		if n := len(entities); n > 0 && e.Kind == TextEntity && entities[n-1].Kind == TextEntity {
			prev := &entities[n-1]
			prev.Span = NewSpan(prev.Span.Offset, e.Span.End()-prev.Span.Offset)
			prev.Text = state.slice(prev.Span)
			continue
		}
		entities = append(entities, e)
	}
	return entities
}

// slice returns the text covered by an absolute span.
func (state *inlineState) slice(span Span) string {
	start := span.Offset - state.c.base.Offset
	return state.c.text[start : start+span.Len]
}

// link handles a "<" at the cursor.
func (state *inlineState) link() {
	c := state.c
	start := c.pos
	contentStart := start + len(linkOpenToken)
	n := strings.Index(c.text[contentStart:], linkCloseToken)
	if n < 0 {
		// Unterminated: the "<" is literal.
		c.skipBytes(len(linkOpenToken))
		return
	}
	contentEnd := contentStart + n
	content := c.text[contentStart:contentEnd]
	if strings.Contains(content, linkOpenToken) || strings.Contains(content, lineBreakToken) {
		// A later "<" may still start a link.
		c.skipBytes(len(linkOpenToken))
		return
	}
	end := contentEnd + len(linkCloseToken)
	link, ok := parseLink(content, c.span(contentStart, contentEnd))
	if !ok {
		c.skipBytes(end - start)
		return
	}
	state.flushText()
	c.skipBytes(end - start)
	state.items = append(state.items, inlineItem{entity: Entity{
		Kind: LinkEntity,
		Span: c.span(start, end),
		Link: link,
	}})
	state.plainStart = c.pos
}

// parseLink splits the content of a link into a URL and an optional label
// at the first whitespace.
// base is the span of content.
func parseLink(content string, base Span) (*Link, bool) {
	urlEnd := strings.IndexFunc(content, unicode.IsSpace)
	if urlEnd < 0 {
		urlEnd = len(content)
	}
	if urlEnd == 0 {
		return nil, false
	}
	link := &Link{
		URL:     content[:urlEnd],
		URLSpan: NewSpan(0, urlEnd).Absolute(base),
	}
	rest := content[urlEnd:]
	labelStart := urlEnd + len(rest) - len(strings.TrimLeftFunc(rest, unicode.IsSpace))
	if label := strings.TrimRightFunc(content[labelStart:], unicode.IsSpace); label != "" {
		link.Label = label
		link.LabelSpan = NewSpan(labelStart, len(label)).Absolute(base)
	}
	return link, true
}
