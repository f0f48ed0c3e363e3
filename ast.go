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

import "fmt"

// A Block is a structural element of a document.
// The concrete type of a Block is one of
// [*Heading], [*Paragraph], [*Quote], [*Preformatted], or [*List].
//
// Blocks are produced in document order
// and are not modified by the parser after they are returned,
// except for the inline content rewritten by [*InlineParser.Rewrite].
type Block interface {
	// Kind returns the type of the block.
	Kind() BlockKind
	// SourceSpan returns the block's position in the document.
	SourceSpan() Span

	block()
}

// BlockKind is an enumeration of values returned by [Block.Kind].
type BlockKind uint8

const (
	HeadingKind BlockKind = 1 + iota
	ParagraphKind
	QuoteKind
	PreformattedKind
	ListKind
)

func (kind BlockKind) String() string {
	switch kind {
	case HeadingKind:
		return "Heading"
	case ParagraphKind:
		return "Paragraph"
	case QuoteKind:
		return "Quote"
	case PreformattedKind:
		return "Preformatted"
	case ListKind:
		return "List"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint8(kind))
	}
}

// Heading is a single-line heading.
type Heading struct {
	// Span is the position of the heading line in the document,
	// excluding the line terminator.
	Span Span
	// StartLine is the 1-based line number of the heading.
	StartLine int
	// Level is 1, 2, or 3.
	Level int
	// Text is the heading content with the heading token
	// and surrounding whitespace removed.
	Text string
}

// Paragraph is a run of consecutive text lines.
type Paragraph struct {
	Span      Span
	StartLine int
	// Text is the trimmed lines joined by single spaces.
	// Lines ending in a hard break are joined by a newline instead.
	Text string
	// Inline is the formatted content of Text.
	// Spans in Inline are relative to the beginning of Text.
	Inline Inline
}

// Quote is a run of consecutive quote lines.
type Quote struct {
	Span      Span
	StartLine int
	// Text is the quote lines with their quote tokens removed,
	// joined the same way as [Paragraph.Text].
	Text string
	// Inline is the formatted content of Text.
	// Spans in Inline are relative to the beginning of Text.
	Inline Inline
}

// Preformatted is a fenced block of raw lines,
// optionally preceded by a decorator line.
type Preformatted struct {
	Span      Span
	StartLine int
	// Decorator is nil if the block had no decorator line
	// or the decorator's keyword was not recognized.
	Decorator *Decorator
	// Lines are the raw lines between the dividers.
	Lines []string
}

// List is a run of consecutive list items of the same type.
type List struct {
	Span      Span
	StartLine int
	Type      ListType
	// Items are the item lines with their list tokens removed.
	Items []string
}

// ListType distinguishes ordered from unordered lists.
type ListType uint8

const (
	UnorderedList ListType = 1 + iota
	OrderedList
)

func (typ ListType) String() string {
	switch typ {
	case UnorderedList:
		return "UnorderedList"
	case OrderedList:
		return "OrderedList"
	default:
		return fmt.Sprintf("ListType(%d)", uint8(typ))
	}
}

func (h *Heading) Kind() BlockKind      { return HeadingKind }
func (p *Paragraph) Kind() BlockKind    { return ParagraphKind }
func (q *Quote) Kind() BlockKind        { return QuoteKind }
func (p *Preformatted) Kind() BlockKind { return PreformattedKind }
func (l *List) Kind() BlockKind         { return ListKind }

func (h *Heading) SourceSpan() Span      { return h.Span }
func (p *Paragraph) SourceSpan() Span    { return p.Span }
func (q *Quote) SourceSpan() Span        { return q.Span }
func (p *Preformatted) SourceSpan() Span { return p.Span }
func (l *List) SourceSpan() Span         { return l.Span }

func (*Heading) block()      {}
func (*Paragraph) block()    {}
func (*Quote) block()        {}
func (*Preformatted) block() {}
func (*List) block()         {}

// Inline is the formatted content of a block:
// an ordered sequence of formatting runs
// whose spans cover the block's text without gaps or overlaps.
type Inline []Formatting

// Text returns the concatenated text of all entities,
// with links replaced by their labels (or URLs, if unlabeled)
// and line breaks replaced by newlines.
func (in Inline) Text() string {
	var buf []byte
	for _, f := range in {
		for _, e := range f.Entities {
			buf = e.appendText(buf)
		}
	}
	return string(buf)
}

// Formatting is a run of entities sharing the same emphasis.
type Formatting struct {
	Kind FormattingKind
	// Span covers the entities as well as any delimiters around them.
	Span     Span
	Entities []Entity
}

// FormattingKind is an enumeration of emphasis levels.
type FormattingKind uint8

const (
	Normal FormattingKind = 1 + iota
	Emphasis
	StrongEmphasis
	UltraEmphasis
)

func (kind FormattingKind) String() string {
	switch kind {
	case Normal:
		return "Normal"
	case Emphasis:
		return "Emphasis"
	case StrongEmphasis:
		return "StrongEmphasis"
	case UltraEmphasis:
		return "UltraEmphasis"
	default:
		return fmt.Sprintf("FormattingKind(%d)", uint8(kind))
	}
}

// Entity is a leaf of the inline tree.
type Entity struct {
	Kind EntityKind
	Span Span
	// Text is the literal text of a [TextEntity].
	Text string
	// Link is non-nil for a [LinkEntity].
	Link *Link
}

// EntityKind is an enumeration of inline leaf types.
type EntityKind uint8

const (
	TextEntity EntityKind = 1 + iota
	LineBreakEntity
	LinkEntity
)

func (kind EntityKind) String() string {
	switch kind {
	case TextEntity:
		return "TextEntity"
	case LineBreakEntity:
		return "LineBreakEntity"
	case LinkEntity:
		return "LinkEntity"
	default:
		return fmt.Sprintf("EntityKind(%d)", uint8(kind))
	}
}

func (e Entity) appendText(dst []byte) []byte {
	switch e.Kind {
	case TextEntity:
		return append(dst, e.Text...)
	case LineBreakEntity:
		return append(dst, '\n')
	case LinkEntity:
		if e.Link.HasLabel() {
			return append(dst, e.Link.Label...)
		}
		return append(dst, e.Link.URL...)
	default:
		return dst
	}
}

// Link is the content of a "<url>" or "<url label>" link.
type Link struct {
	URL     string
	URLSpan Span
	// Label is empty if the link has no label.
	Label     string
	LabelSpan Span
}

// HasLabel reports whether the link has a label.
func (l *Link) HasLabel() bool {
	return l != nil && l.Label != ""
}
