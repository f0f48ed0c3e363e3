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
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestHTMLRenderer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Strong",
			input: "Hello **World**!",
			want:  "<p>Hello <strong>World</strong>!</p>",
		},
		{
			name:  "Ultra",
			input: "***ultra***",
			want:  "<p><strong><em>ultra</em></strong></p>",
		},
		{
			name:  "Heading",
			input: "# Title",
			want:  "<h1>Title</h1>",
		},
		{
			name:  "EscapedHeading",
			input: "### a<b",
			want:  "<h3>a&lt;b</h3>",
		},
		{
			name:  "Quote",
			input: "> quoted *text*",
			want:  "<blockquote>quoted <em>text</em></blockquote>",
		},
		{
			name:  "UnorderedList",
			input: "- one\n- **two**",
			want:  "<ul>\n<li>one</li>\n<li><strong>two</strong></li>\n</ul>",
		},
		{
			name:  "OrderedList",
			input: ". a",
			want:  "<ol>\n<li>a</li>\n</ol>",
		},
		{
			name:  "Code",
			input: "[code:go]\n---\nfmt.Println(\"hi\")\n---",
			want:  "<pre><code class=\"language-go\">fmt.Println(&quot;hi&quot;)\n</code></pre>",
		},
		{
			name:  "Undecorated",
			input: "---\nraw <b>\n---",
			want:  "<pre><code>raw &lt;b&gt;\n</code></pre>",
		},
		{
			name:  "Table",
			input: "[table]\n---\na | b\n|c|d|\n---",
			want:  "<table>\n<tr><td>a</td><td>b</td></tr>\n<tr><td>c</td><td>d</td></tr>\n</table>",
		},
		{
			name:  "LabeledLink",
			input: "see <http://x.org the site>",
			want:  `<p>see <a href="http://x.org">the site</a></p>`,
		},
		{
			name:  "NormalizedLink",
			input: "<http://x.org/ä>",
			want:  `<p><a href="http://x.org/%C3%A4">http://x.org/ä</a></p>`,
		},
		{
			name:  "HardBreak",
			input: "one  \ntwo",
			want:  "<p>one<br>\ntwo</p>",
		},
		{
			name:  "InsecureCharacter",
			input: "Hello,\x00World",
			want:  "<p>Hello,�World</p>",
		},
		{
			name:  "MultipleBlocks",
			input: "# a\n\npara",
			want:  "<h1>a</h1>\n<p>para</p>",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			if err := RenderHTML(buf, Parse([]byte(test.input))); err != nil {
				t.Error("RenderHTML:", err)
			}
			if got := buf.String(); got != test.want {
				t.Errorf("output = %q; want %q", got, test.want)
			}
		})
	}
}

func TestHTMLRendererDetectLanguage(t *testing.T) {
	var detected []string
	r := &HTMLRenderer{
		Format: DefaultHTMLFormat{
			DetectLanguage: func(code []byte) string {
				detected = append(detected, string(code))
				return "python"
			},
		},
	}
	const input = "[code]\n---\nprint(1)\n---\n\n[code:go]\n---\nx := 1\n---\n"
	buf := new(bytes.Buffer)
	if err := r.Render(buf, Parse([]byte(input))); err != nil {
		t.Error("Render:", err)
	}
	const want = "<pre><code class=\"language-python\">print(1)\n</code></pre>\n" +
		"<pre><code class=\"language-go\">x := 1\n</code></pre>"
	if got := buf.String(); got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
	if len(detected) != 1 || detected[0] != "print(1)\n" {
		t.Errorf("DetectLanguage called with %q; want [%q]", detected, "print(1)\n")
	}
}

type sectionFormat struct {
	DefaultHTMLFormat
}

func (sectionFormat) AppendHeading(dst []byte, h *Heading) []byte {
	dst = append(dst, "<section>"...)
	dst = DefaultHTMLFormat{}.AppendHeading(dst, h)
	return append(dst, "</section>"...)
}

func TestHTMLRendererCustomFormat(t *testing.T) {
	r := &HTMLRenderer{Format: sectionFormat{}}
	buf := new(bytes.Buffer)
	if err := r.Render(buf, Parse([]byte("## Part\ntext"))); err != nil {
		t.Error("Render:", err)
	}
	const want = "<section><h2>Part</h2></section>\n<p>text</p>"
	if got := buf.String(); got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestRenderFrom(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		buf := new(bytes.Buffer)
		p := NewBlockParser(strings.NewReader("# a\n*b*\n"))
		if err := new(HTMLRenderer).RenderFrom(buf, p); err != nil {
			t.Error("RenderFrom:", err)
		}
		const want = "<h1>a</h1>\n<p><em>b</em></p>"
		if got := buf.String(); got != want {
			t.Errorf("output = %q; want %q", got, want)
		}
	})

	t.Run("InputError", func(t *testing.T) {
		errBoom := errors.New("boom")
		buf := new(bytes.Buffer)
		p := NewBlockParser(io.MultiReader(strings.NewReader("# a\n"), iotest.ErrReader(errBoom)))
		err := new(HTMLRenderer).RenderFrom(buf, p)
		if !errors.Is(err, errBoom) {
			t.Errorf("RenderFrom(...) = %v; want %v", err, errBoom)
		}
		var inputErr *InputError
		if !errors.As(err, &inputErr) || inputErr.Line != 2 {
			t.Errorf("RenderFrom(...) = %v; want *InputError for line 2", err)
		}
		if got, want := buf.String(), "<h1>a</h1>"; got != want {
			t.Errorf("output = %q; want %q", got, want)
		}
	})
}

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"", ""},
		{"http://example.com/", "http://example.com/"},
		{"http://example.com/a b", "http://example.com/a%20b"},
		{"/ä", "/%C3%A4"},
		{"%41%zz", "%41%25zz"},
		{"%AF", "%AF"},
	}
	for _, test := range tests {
		if got := NormalizeURI(test.s); got != test.want {
			t.Errorf("NormalizeURI(%q) = %q; want %q", test.s, got, test.want)
		}
	}
}

func BenchmarkRenderHTML(b *testing.B) {
	input := []byte(strings.Repeat("# Heading\n\nSome *emphasized* and **strong** text with a <https://example.com link>.\n\n[code:go]\n---\nfunc main() {}\n---\n\n", 50))
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		if err := RenderHTML(io.Discard, Parse(input)); err != nil {
			b.Fatal(err)
		}
	}
}
