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

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bash/ink"
)

const (
	blocksFormatYAML = "yaml"
	blocksFormatTree = "tree"
)

func newBlocksCommand(a *app) *cobra.Command {
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "blocks [paths...]",
		Short: "Print the parsed structure of ink documents",
		Long: `Print the blocks and inline formatting of ink documents.

The yaml format writes one YAML document per input.
The tree format draws an indented outline of every block.
Spans are byte offsets: block spans are relative to the document
and inline spans are relative to the block's text.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var write func(io.Writer, string, []ink.Block) error
			switch outputFormat {
			case blocksFormatYAML:
				write = writeBlocksYAML
			case blocksFormatTree:
				st := newStyles(isColorEnabled(a.color, cmd.OutOrStdout()))
				write = func(w io.Writer, name string, blocks []ink.Block) error {
					_, err := io.WriteString(w, blockTree(st, name, blocks)+"\n")
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", outputFormat, blocksFormatYAML, blocksFormatTree)
			}

			inputs, err := a.collectInputs(cmd, args)
			if err != nil {
				return err
			}
			for _, in := range inputs {
				blocks, err := parseInput(in)
				if err != nil {
					return err
				}
				if err := write(cmd.OutOrStdout(), in.name, blocks); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", blocksFormatTree, "output format: yaml or tree")
	return cmd
}

// parseInput reads all blocks of a document with inline content parsed.
func parseInput(in input) ([]ink.Block, error) {
	rc, err := in.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var blocks []ink.Block
	inlineParser := new(ink.InlineParser)
	for block, err := range ink.NewBlockParser(rc).All() {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.name, err)
		}
		inlineParser.Rewrite(block)
		blocks = append(blocks, block)
	}
	return blocks, nil
}

type documentNode struct {
	Path   string      `yaml:"path"`
	Blocks []blockNode `yaml:"blocks"`
}

type blockNode struct {
	Kind      string           `yaml:"kind"`
	Span      spanNode         `yaml:"span"`
	Line      int              `yaml:"line"`
	Level     int              `yaml:"level,omitempty"`
	Text      string           `yaml:"text,omitempty"`
	Inline    []formattingNode `yaml:"inline,omitempty"`
	Decorator string           `yaml:"decorator,omitempty"`
	Lines     []string         `yaml:"lines,omitempty"`
	ListType  string           `yaml:"list_type,omitempty"`
	Items     []string         `yaml:"items,omitempty"`
}

type formattingNode struct {
	Kind     string       `yaml:"kind"`
	Span     spanNode     `yaml:"span"`
	Entities []entityNode `yaml:"entities"`
}

type entityNode struct {
	Kind  string   `yaml:"kind"`
	Span  spanNode `yaml:"span"`
	Text  string   `yaml:"text,omitempty"`
	URL   string   `yaml:"url,omitempty"`
	Label string   `yaml:"label,omitempty"`
}

type spanNode struct {
	Offset int `yaml:"offset"`
	Len    int `yaml:"len"`
}

func newSpanNode(span ink.Span) spanNode {
	return spanNode{Offset: span.Offset, Len: span.Len}
}

func writeBlocksYAML(w io.Writer, name string, blocks []ink.Block) error {
	doc := documentNode{Path: name, Blocks: make([]blockNode, 0, len(blocks))}
	for _, block := range blocks {
		doc.Blocks = append(doc.Blocks, newBlockNode(block))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func newBlockNode(block ink.Block) blockNode {
	node := blockNode{
		Kind: block.Kind().String(),
		Span: newSpanNode(block.SourceSpan()),
	}
	switch b := block.(type) {
	case *ink.Heading:
		node.Line = b.StartLine
		node.Level = b.Level
		node.Text = b.Text
	case *ink.Paragraph:
		node.Line = b.StartLine
		node.Text = b.Text
		node.Inline = newInlineNodes(b.Inline)
	case *ink.Quote:
		node.Line = b.StartLine
		node.Text = b.Text
		node.Inline = newInlineNodes(b.Inline)
	case *ink.Preformatted:
		node.Line = b.StartLine
		if b.Decorator != nil {
			node.Decorator = b.Decorator.String()
		}
		node.Lines = b.Lines
	case *ink.List:
		node.Line = b.StartLine
		node.ListType = b.Type.String()
		node.Items = b.Items
	}
	return node
}

func newInlineNodes(in ink.Inline) []formattingNode {
	nodes := make([]formattingNode, 0, len(in))
	for _, f := range in {
		fn := formattingNode{
			Kind:     f.Kind.String(),
			Span:     newSpanNode(f.Span),
			Entities: make([]entityNode, 0, len(f.Entities)),
		}
		for _, e := range f.Entities {
			en := entityNode{
				Kind: e.Kind.String(),
				Span: newSpanNode(e.Span),
				Text: e.Text,
			}
			if e.Link != nil {
				en.URL = e.Link.URL
				en.Label = e.Link.Label
			}
			fn.Entities = append(fn.Entities, en)
		}
		nodes = append(nodes, fn)
	}
	return nodes
}

// blockTree draws the outline of a document's blocks.
func blockTree(st *styles, name string, blocks []ink.Block) string {
	root := tree.Root(st.Path.Render(name)).EnumeratorStyle(st.Guide)
	for _, block := range blocks {
		root.Child(blockSubtree(st, block))
	}
	return root.String()
}

func blockSubtree(st *styles, block ink.Block) *tree.Tree {
	label := st.Block.Render(block.Kind().String()) + " " + st.Span.Render(block.SourceSpan().String())
	t := tree.New().EnumeratorStyle(st.Guide)
	switch b := block.(type) {
	case *ink.Heading:
		label += fmt.Sprintf(" line %d level %d ", b.StartLine, b.Level) + st.Text.Render(strconv.Quote(b.Text))
	case *ink.Paragraph:
		label += fmt.Sprintf(" line %d", b.StartLine)
		addInline(st, t, b.Inline)
	case *ink.Quote:
		label += fmt.Sprintf(" line %d", b.StartLine)
		addInline(st, t, b.Inline)
	case *ink.Preformatted:
		label += fmt.Sprintf(" line %d", b.StartLine)
		if b.Decorator != nil {
			label += " " + st.Format.Render("["+b.Decorator.String()+"]")
		}
		for _, line := range b.Lines {
			t.Child(st.Text.Render(strconv.Quote(line)))
		}
	case *ink.List:
		label += fmt.Sprintf(" line %d ", b.StartLine) + st.Format.Render(b.Type.String())
		for _, item := range b.Items {
			t.Child(st.Text.Render(strconv.Quote(item)))
		}
	}
	return t.Root(label)
}

func addInline(st *styles, t *tree.Tree, in ink.Inline) {
	for _, f := range in {
		ft := tree.Root(st.Format.Render(f.Kind.String()) + " " + st.Span.Render(f.Span.String())).
			EnumeratorStyle(st.Guide)
		for _, e := range f.Entities {
			label := st.Entity.Render(e.Kind.String()) + " " + st.Span.Render(e.Span.String())
			switch e.Kind {
			case ink.TextEntity:
				label += " " + st.Text.Render(strconv.Quote(e.Text))
			case ink.LinkEntity:
				label += " " + st.Link.Render(e.Link.URL)
				if e.Link.HasLabel() {
					label += " " + st.Text.Render(strconv.Quote(e.Link.Label))
				}
			}
			ft.Child(label)
		}
		t.Child(ft)
	}
}
