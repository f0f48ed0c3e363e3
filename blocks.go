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

import "strings"

// line is a classified line of input.
type line struct {
	typ    LineType
	text   string // without line terminator
	offset int    // byte offset of the line's first byte in the document
	lineno int    // 1-based
}

func (l line) span() Span {
	return NewSpan(l.offset, len(l.text))
}

// inspectResult is the answer of [blockProcessor.inspect]
// to whether a line can extend the current block.
type inspectResult int8

const (
	// inspectAccept means the line belongs to the block
	// and more lines may follow.
	inspectAccept inspectResult = iota
	// inspectLast means the line belongs to the block
	// and completes it.
	inspectLast
	// inspectReject means the line starts a new block.
	inspectReject
	// inspectFallback means the line violates the block's structure
	// and the block must be reinterpreted as a paragraph.
	inspectFallback
)

// takeResult is the outcome of [blockProcessor.take].
type takeResult int8

const (
	taken takeResult = iota
	takenLast
	takeFallback
)

// A blockProcessor accumulates the lines of one block.
// A new processor is created for every block
// and discarded once the block is processed.
type blockProcessor interface {
	// inspect reports whether the line can extend the block
	// without changing the processor's state.
	inspect(typ LineType, text string) inspectResult
	// take consumes the line.
	// take is only called after inspect did not return inspectReject.
	take(typ LineType, text string) takeResult
	// valid reports whether the processor can produce a block
	// from the lines it has taken so far.
	valid() bool
	// process converts the taken lines into a block.
	process(lines []line) Block
}

// newBlockProcessor returns the processor for a block
// whose first line has the given type.
// Blank lines and headings never start a processor.
func newBlockProcessor(typ LineType) blockProcessor {
	switch typ {
	case QuoteLine:
		return new(quoteProcessor)
	case DecoratorLine, DividerLine:
		return new(preformattedProcessor)
	case UnorderedListLine, OrderedListLine:
		return &listProcessor{typ: typ}
	default:
		return new(paragraphProcessor)
	}
}

// paragraphProcessor accumulates text lines.
type paragraphProcessor struct{}

func (*paragraphProcessor) inspect(typ LineType, text string) inspectResult {
	if typ != TextLine {
		return inspectReject
	}
	return inspectAccept
}

func (p *paragraphProcessor) take(typ LineType, text string) takeResult {
	return taken
}

func (*paragraphProcessor) valid() bool { return true }

func (*paragraphProcessor) process(lines []line) Block {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.text
	}
	text := joinLines(texts)
	return &Paragraph{
		Span:      linesSpan(lines),
		StartLine: lines[0].lineno,
		Text:      text,
		Inline:    unparsedInline(text),
	}
}

// quoteProcessor accumulates quote lines.
type quoteProcessor struct{}

func (*quoteProcessor) inspect(typ LineType, text string) inspectResult {
	if typ != QuoteLine {
		return inspectReject
	}
	return inspectAccept
}

func (*quoteProcessor) take(typ LineType, text string) takeResult {
	return taken
}

func (*quoteProcessor) valid() bool { return true }

func (*quoteProcessor) process(lines []line) Block {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = QuoteText(l.text)
	}
	text := joinLines(texts)
	return &Quote{
		Span:      linesSpan(lines),
		StartLine: lines[0].lineno,
		Text:      text,
		Inline:    unparsedInline(text),
	}
}

// preformattedState is the state of a [preformattedProcessor].
type preformattedState int8

const (
	preInitial preformattedState = iota
	preDecorator
	preInsideBlock
	preFinished
)

// preformattedProcessor accumulates a fenced block:
//
//	[decorator]   (optional)
//	---
//	raw lines
//	---
type preformattedProcessor struct {
	state preformattedState
}

func (p *preformattedProcessor) inspect(typ LineType, text string) inspectResult {
	_, result := p.next(typ)
	return result
}

func (p *preformattedProcessor) take(typ LineType, text string) takeResult {
	state, result := p.next(typ)
	switch result {
	case inspectAccept:
		p.state = state
		return taken
	case inspectLast:
		p.state = state
		return takenLast
	default:
		return takeFallback
	}
}

// next returns the state the processor would move to
// after taking a line of the given type.
func (p *preformattedProcessor) next(typ LineType) (preformattedState, inspectResult) {
	switch p.state {
	case preInitial:
		switch typ {
		case DecoratorLine:
			return preDecorator, inspectAccept
		case DividerLine:
			return preInsideBlock, inspectAccept
		}
	case preDecorator:
		if typ == DividerLine {
			return preInsideBlock, inspectAccept
		}
	case preInsideBlock:
		if typ == DividerLine {
			return preFinished, inspectLast
		}
		return preInsideBlock, inspectAccept
	case preFinished:
		return preFinished, inspectReject
	}
	return p.state, inspectFallback
}

func (p *preformattedProcessor) valid() bool {
	return p.state == preFinished
}

func (*preformattedProcessor) process(lines []line) Block {
	pre := &Preformatted{
		Span:      linesSpan(lines),
		StartLine: lines[0].lineno,
	}
	i := 0
	if lines[i].typ == DecoratorLine {
		if d, ok := ParseDecorator(lines[i].text); ok {
			pre.Decorator = &d
		}
		i++
	}
	// Skip the opening and closing dividers.
	for _, l := range lines[i+1 : len(lines)-1] {
		pre.Lines = append(pre.Lines, l.text)
	}
	return pre
}

// listProcessor accumulates list items of a single list type.
type listProcessor struct {
	typ LineType
}

func (p *listProcessor) inspect(typ LineType, text string) inspectResult {
	if typ != p.typ {
		return inspectReject
	}
	return inspectAccept
}

func (p *listProcessor) take(typ LineType, text string) takeResult {
	return taken
}

func (*listProcessor) valid() bool { return true }

func (p *listProcessor) process(lines []line) Block {
	list := &List{
		Span:      linesSpan(lines),
		StartLine: lines[0].lineno,
		Type:      UnorderedList,
		Items:     make([]string, 0, len(lines)),
	}
	if p.typ == OrderedListLine {
		list.Type = OrderedList
	}
	for _, l := range lines {
		list.Items = append(list.Items, ListItemText(l.text))
	}
	return list
}

// hardBreakSuffix is the trailing whitespace
// that ends a line with a hard line break.
const hardBreakSuffix = "  "

// joinLines joins trimmed lines with single spaces,
// skipping lines that are empty after trimming.
// A line ending in [hardBreakSuffix] is joined to the next line
// with a newline instead.
func joinLines(texts []string) string {
	sb := new(strings.Builder)
	hardBreak := false
	for _, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		if sb.Len() > 0 {
			if hardBreak {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(trimmed)
		hardBreak = strings.HasSuffix(text, hardBreakSuffix)
	}
	return sb.String()
}

// linesSpan returns the span from the first byte of the first line
// to the last byte of the last line.
func linesSpan(lines []line) Span {
	first, last := lines[0], lines[len(lines)-1]
	return NewSpan(first.offset, last.offset+len(last.text)-first.offset)
}

// unparsedInline returns the inline content of text
// before it has been through an [InlineParser]:
// a single run of plain text.
func unparsedInline(text string) Inline {
	if text == "" {
		return nil
	}
	span := NewSpan(0, len(text))
	return Inline{{
		Kind: Normal,
		Span: span,
		Entities: []Entity{{
			Kind: TextEntity,
			Span: span,
			Text: text,
		}},
	}}
}
