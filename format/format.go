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

// Package format writes parsed ink blocks back as ink markup.
// Formatting normalizes whitespace, blank lines, and line tokens
// while preserving the meaning of the document.
package format

import (
	"io"
	"strings"

	"github.com/bash/ink"
)

const (
	hardBreakSuffix = "  "
	fence           = "---"
)

// Format writes the given blocks as ink markup to the given writer.
// Blocks are separated by a single blank line.
// Parsing the output yields blocks equal to the input, apart from positions.
func Format(w io.Writer, blocks []ink.Block) error {
	ww := &errWriter{w: w}
	for _, b := range blocks {
		if ww.hasWritten {
			ww.WriteString("\n")
		}
		writeBlock(ww, b)
	}
	return ww.err
}

func writeBlock(w *errWriter, block ink.Block) {
	switch b := block.(type) {
	case *ink.Heading:
		w.WriteString(strings.Repeat("#", b.Level))
		w.WriteString(" ")
		w.WriteString(b.Text)
		w.WriteString("\n")
	case *ink.Paragraph:
		writeTextLines(w, "", b.Text)
	case *ink.Quote:
		if b.Text == "" {
			w.WriteString("> \n")
			return
		}
		writeTextLines(w, "> ", b.Text)
	case *ink.Preformatted:
		if b.Decorator != nil {
			w.WriteString("[")
			w.WriteString(b.Decorator.String())
			w.WriteString("]\n")
		}
		w.WriteString(fence + "\n")
		for _, l := range b.Lines {
			w.WriteString(l)
			w.WriteString("\n")
		}
		w.WriteString(fence + "\n")
	case *ink.List:
		marker := "- "
		if b.Type == ink.OrderedList {
			marker = ". "
		}
		for _, item := range b.Items {
			w.WriteString(marker)
			w.WriteString(item)
			w.WriteString("\n")
		}
	}
}

// writeTextLines writes the joined text of a paragraph or quote,
// one line per hard line break.
// Paragraph lines that would be read as something other than text
// are indented by a space, which the parser ignores.
func writeTextLines(w *errWriter, prefix string, text string) {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		w.WriteString(prefix)
		if prefix == "" && ink.ClassifyLine(l) != ink.TextLine {
			w.WriteString(" ")
		}
		w.WriteString(l)
		if i < len(lines)-1 {
			w.WriteString(hardBreakSuffix)
		}
		w.WriteString("\n")
	}
}

// errWriter remembers the first write error
// so that callers can check it once at the end.
type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}
