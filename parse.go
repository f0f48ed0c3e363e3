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

// Package ink provides a parser for ink,
// a lightweight line-oriented markup language.
//
// Parsing happens in two phases.
// A [BlockParser] splits a document into [Block] values,
// one block per call to [*BlockParser.NextBlock].
// An [InlineParser] then resolves the emphasis, links, and line breaks
// inside paragraphs and quotes.
// [Parse] runs both phases over an in-memory document.
//
// Malformed markup is never an error:
// unterminated fences degrade to paragraphs
// and unbalanced delimiters degrade to literal text.
// The only error a parser reports is a failure of its input.
package ink

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
)

// A LineSource supplies the lines of a document.
type LineSource interface {
	// NextLine returns the next line without its line terminator.
	// It returns io.EOF when there are no more lines.
	// Any other error aborts parsing.
	NextLine() (string, error)
}

// LineSlice is a [LineSource] that yields the strings of the slice in order.
type LineSlice []string

// NextLine removes and returns the first line of the slice.
func (ls *LineSlice) NextLine() (string, error) {
	if len(*ls) == 0 {
		return "", io.EOF
	}
	l := (*ls)[0]
	*ls = (*ls)[1:]
	return l, nil
}

// InputError is returned by [*BlockParser.NextBlock]
// when the underlying input fails.
// It is terminal: the parser returns the same error from then on.
type InputError struct {
	// Line is the 1-based number of the line that could not be read.
	Line int
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("read line %d: %v", e.Line, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// lineReader reads raw lines for a [BlockParser].
type lineReader interface {
	// readLine returns the next line without its terminator
	// and the number of bytes the line occupied in the input,
	// including its terminator.
	readLine() (text string, width int, err error)
}

// readerLines splits an [io.Reader] into lines
// terminated by "\n", "\r\n", or "\r".
type readerLines struct {
	r   *bufio.Reader
	buf []byte
}

func (rl *readerLines) readLine() (string, int, error) {
	rl.buf = rl.buf[:0]
	width := 0
	for {
		c, err := rl.r.ReadByte()
		if err == io.EOF && width > 0 {
			return string(rl.buf), width, nil
		}
		if err != nil {
			return "", 0, err
		}
		width++
		switch c {
		case '\n':
			return string(rl.buf), width, nil
		case '\r':
			if next, err := rl.r.Peek(1); err == nil && next[0] == '\n' {
				rl.r.ReadByte()
				width++
			}
			return string(rl.buf), width, nil
		default:
			rl.buf = append(rl.buf, c)
		}
	}
}

// sourceLines adapts a [LineSource].
// Every line is assumed to have been terminated by a single "\n".
type sourceLines struct {
	src LineSource
}

func (sl sourceLines) readLine() (string, int, error) {
	text, err := sl.src.NextLine()
	if err != nil {
		return "", 0, err
	}
	return text, len(text) + 1, nil
}

// A BlockParser splits a document into blocks.
// Blocks returned by the parser contain unparsed inline content:
// use an [InlineParser] to resolve it.
type BlockParser struct {
	r      lineReader
	offset int // offset of the next unread line
	lineno int // number of lines read

	peeked    line
	hasPeeked bool
	err       error // non-nil once the input is exhausted or failed
}

// NewBlockParser returns a parser that reads from r.
// Spans are exact byte offsets into the stream read from r.
func NewBlockParser(r io.Reader) *BlockParser {
	return &BlockParser{
		r: &readerLines{r: bufio.NewReader(r)},
	}
}

// NewLineBlockParser returns a parser that reads lines from src.
// Spans are computed as though every line was followed by a single newline.
func NewLineBlockParser(src LineSource) *BlockParser {
	return &BlockParser{
		r: sourceLines{src},
	}
}

// Parse parses an entire document held in memory
// and resolves the inline content of its blocks.
func Parse(source []byte) []Block {
	p := NewBlockParser(bytes.NewReader(source))
	inlineParser := new(InlineParser)
	var blocks []Block
	for {
		block, err := p.NextBlock()
		if err == io.EOF {
			return blocks
		}
		if err != nil {
			panic(err)
		}
		inlineParser.Rewrite(block)
		blocks = append(blocks, block)
	}
}

// NextBlock returns the next block of the document.
// It returns io.EOF once all blocks have been returned
// or an [*InputError] if the input failed.
// A failure discards the block in progress.
func (p *BlockParser) NextBlock() (Block, error) {
	// Blank lines only separate blocks.
	var first line
	for {
		var err error
		first, err = p.readLine()
		if err != nil {
			return nil, err
		}
		if first.typ != BlankLine {
			break
		}
	}

	// Headings are always a single line.
	if level := first.typ.HeadingLevel(); level > 0 {
		return &Heading{
			Span:      first.span(),
			StartLine: first.lineno,
			Level:     level,
			Text:      HeadingText(first.text),
		}, nil
	}

	acc := &accumulator{proc: newBlockProcessor(first.typ)}
	if !acc.take(first) {
		return acc.finish(), nil
	}
	for {
		next, err := p.peekLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch acc.proc.inspect(next.typ, next.text) {
		case inspectReject:
			return acc.finish(), nil
		case inspectFallback:
			// Retry the same line with the paragraph.
			acc.fallback()
			continue
		}
		p.hasPeeked = false
		if !acc.take(next) {
			break
		}
	}
	return acc.finish(), nil
}

// All returns an iterator over the remaining blocks of the document.
// Iteration stops after the first error.
func (p *BlockParser) All() iter.Seq2[Block, error] {
	return func(yield func(Block, error) bool) {
		for {
			block, err := p.NextBlock()
			if err == io.EOF {
				return
			}
			if !yield(block, err) || err != nil {
				return
			}
		}
	}
}

// readLine consumes the next line.
func (p *BlockParser) readLine() (line, error) {
	l, err := p.peekLine()
	p.hasPeeked = false
	return l, err
}

// peekLine returns the next line without consuming it.
func (p *BlockParser) peekLine() (line, error) {
	if p.hasPeeked {
		return p.peeked, nil
	}
	if p.err != nil {
		return line{}, p.err
	}
	text, width, err := p.r.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.EOF
		} else {
			err = &InputError{Line: p.lineno + 1, Err: err}
		}
		p.err = err
		return line{}, err
	}
	p.lineno++
	p.peeked = line{
		typ:    ClassifyLine(text),
		text:   text,
		offset: p.offset,
		lineno: p.lineno,
	}
	p.hasPeeked = true
	p.offset += width
	return p.peeked, nil
}

// accumulator collects the lines of the block in progress
// and applies the fallback policy.
type accumulator struct {
	proc  blockProcessor
	lines []line
}

// take hands the line to the processor.
// It reports whether the block can take more lines.
func (acc *accumulator) take(l line) bool {
	switch acc.proc.take(l.typ, l.text) {
	case takenLast:
		acc.lines = append(acc.lines, l)
		return false
	case takeFallback:
		acc.fallback()
		l.typ = TextLine
		acc.proc.take(l.typ, l.text)
	}
	acc.lines = append(acc.lines, l)
	return true
}

// fallback reinterprets the lines taken so far as paragraph text
// and replaces the processor with a paragraph processor.
func (acc *accumulator) fallback() {
	for i := range acc.lines {
		acc.lines[i].typ = TextLine
	}
	acc.proc = new(paragraphProcessor)
}

// finish returns the block for the accumulated lines.
func (acc *accumulator) finish() Block {
	if !acc.proc.valid() {
		acc.fallback()
	}
	return acc.proc.process(acc.lines)
}
