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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func textEntity(offset int, s string) Entity {
	return Entity{Kind: TextEntity, Span: NewSpan(offset, len(s)), Text: s}
}

func TestInlineParser(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Inline
	}{
		{
			name: "Empty",
			text: "",
			want: nil,
		},
		{
			name: "Plain",
			text: "Hello, World!",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 13), Entities: []Entity{textEntity(0, "Hello, World!")}},
			},
		},
		{
			name: "Emphasis",
			text: "foo *bar* baz",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 4), Entities: []Entity{textEntity(0, "foo ")}},
				{Kind: Emphasis, Span: NewSpan(4, 5), Entities: []Entity{textEntity(5, "bar")}},
				{Kind: Normal, Span: NewSpan(9, 4), Entities: []Entity{textEntity(9, " baz")}},
			},
		},
		{
			name: "StrongAndUltra",
			text: "**strong** and ***ultra***",
			want: Inline{
				{Kind: StrongEmphasis, Span: NewSpan(0, 10), Entities: []Entity{textEntity(2, "strong")}},
				{Kind: Normal, Span: NewSpan(10, 5), Entities: []Entity{textEntity(10, " and ")}},
				{Kind: UltraEmphasis, Span: NewSpan(15, 11), Entities: []Entity{textEntity(18, "ultra")}},
			},
		},
		{
			name: "UnmatchedOpener",
			text: "*foo",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 4), Entities: []Entity{textEntity(0, "*foo")}},
			},
		},
		{
			name: "UnmatchedCloser",
			text: "foo*",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 4), Entities: []Entity{textEntity(0, "foo*")}},
			},
		},
		{
			name: "SurroundedBySpace",
			text: "a * b",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 5), Entities: []Entity{textEntity(0, "a * b")}},
			},
		},
		{
			name: "EmptyUltra",
			text: "******",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 6), Entities: []Entity{textEntity(0, "******")}},
			},
		},
		{
			name: "CompletedPairSealsOpeners",
			text: "*a **b* c**",
			want: Inline{
				{Kind: Emphasis, Span: NewSpan(0, 7), Entities: []Entity{textEntity(1, "a **b")}},
				{Kind: Normal, Span: NewSpan(7, 4), Entities: []Entity{textEntity(7, " c**")}},
			},
		},
		{
			name: "Multibyte",
			text: "*ü*",
			want: Inline{
				{Kind: Emphasis, Span: NewSpan(0, 4), Entities: []Entity{textEntity(1, "ü")}},
			},
		},
		{
			name: "LineBreak",
			text: "line one\nline two",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 17), Entities: []Entity{
					textEntity(0, "line one"),
					{Kind: LineBreakEntity, Span: NewSpan(8, 1)},
					textEntity(9, "line two"),
				}},
			},
		},
		{
			name: "LabeledLink",
			text: "see <http://x.org the site>.",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 28), Entities: []Entity{
					textEntity(0, "see "),
					{
						Kind: LinkEntity,
						Span: NewSpan(4, 23),
						Link: &Link{
							URL:       "http://x.org",
							URLSpan:   NewSpan(5, 12),
							Label:     "the site",
							LabelSpan: NewSpan(18, 8),
						},
					},
					textEntity(27, "."),
				}},
			},
		},
		{
			name: "EmphasizedLink",
			text: "*<a>*",
			want: Inline{
				{Kind: Emphasis, Span: NewSpan(0, 5), Entities: []Entity{{
					Kind: LinkEntity,
					Span: NewSpan(1, 3),
					Link: &Link{URL: "a", URLSpan: NewSpan(2, 1)},
				}}},
			},
		},
		{
			name: "EmptyLink",
			text: "<>",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 2), Entities: []Entity{textEntity(0, "<>")}},
			},
		},
		{
			name: "UnterminatedLink",
			text: "a < b",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 5), Entities: []Entity{textEntity(0, "a < b")}},
			},
		},
		{
			name: "NestedLinkOpen",
			text: "<a <b>",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 6), Entities: []Entity{
					textEntity(0, "<a "),
					{
						Kind: LinkEntity,
						Span: NewSpan(3, 3),
						Link: &Link{URL: "b", URLSpan: NewSpan(4, 1)},
					},
				}},
			},
		},
		{
			name: "StrayLinkClose",
			text: "a > b",
			want: Inline{
				{Kind: Normal, Span: NewSpan(0, 5), Entities: []Entity{textEntity(0, "a > b")}},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := new(InlineParser).Parse(test.text, NewSpan(0, len(test.text)))
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", test.text, diff)
			}
			verifyInlineCoverage(t, test.text, NewSpan(0, len(test.text)), got)
		})
	}
}

func TestInlineParserBase(t *testing.T) {
	got := new(InlineParser).Parse("*hi*", NewSpan(100, 4))
	want := Inline{
		{Kind: Emphasis, Span: NewSpan(100, 4), Entities: []Entity{textEntity(101, "hi")}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(%q, %v) (-want +got):\n%s", "*hi*", NewSpan(100, 4), diff)
	}
}

func TestInlineParserRewrite(t *testing.T) {
	p := &Paragraph{Text: "a **b**", Inline: unparsedInline("a **b**")}
	new(InlineParser).Rewrite(p)
	want := Inline{
		{Kind: Normal, Span: NewSpan(0, 2), Entities: []Entity{textEntity(0, "a ")}},
		{Kind: StrongEmphasis, Span: NewSpan(2, 5), Entities: []Entity{textEntity(4, "b")}},
	}
	if diff := cmp.Diff(want, p.Inline); diff != "" {
		t.Errorf("Rewrite(%q) (-want +got):\n%s", p.Text, diff)
	}
	if got, want := p.Inline.Text(), "a b"; got != want {
		t.Errorf("Inline.Text() = %q; want %q", got, want)
	}

	h := &Heading{Level: 1, Text: "*kept*"}
	new(InlineParser).Rewrite(h)
	if h.Text != "*kept*" {
		t.Errorf("Rewrite modified heading text to %q", h.Text)
	}
}

func FuzzInlineParser(f *testing.F) {
	f.Add("foo *bar* baz")
	f.Add("*a **b* c**")
	f.Add("<http://example.com label> and <>")
	f.Add("***ultra***\n**strong**")
	f.Fuzz(func(t *testing.T, text string) {
		base := NewSpan(7, len(text))
		got := new(InlineParser).Parse(text, base)
		verifyInlineCoverage(t, text, base, got)
	})
}

// verifyInlineCoverage checks that the formatting runs of in
// tile base without gaps or overlaps
// and that every text entity matches its span.
func verifyInlineCoverage(tb testing.TB, text string, base Span, in Inline) {
	tb.Helper()
	pos := base.Offset
	for i, f := range in {
		if f.Span.Offset != pos {
			tb.Errorf("in[%d].Span = %v; want to start at %d", i, f.Span, pos)
		}
		if len(f.Entities) == 0 {
			tb.Errorf("in[%d] has no entities", i)
		}
		for j, e := range f.Entities {
			if !f.Span.Contains(e.Span) {
				tb.Errorf("in[%d].Entities[%d].Span = %v; not inside %v", i, j, e.Span, f.Span)
			}
			if e.Kind == TextEntity {
				local := NewSpan(e.Span.Offset-base.Offset, e.Span.Len)
				if got := local.Slice(text); got != e.Text {
					tb.Errorf("in[%d].Entities[%d].Text = %q; span covers %q", i, j, e.Text, got)
				}
			}
		}
		pos = f.Span.End()
	}
	if len(text) > 0 && pos != base.End() {
		tb.Errorf("formatting runs end at %d; want %d", pos, base.End())
	}
}
