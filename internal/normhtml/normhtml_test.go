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

package normhtml

import "testing"

func TestNormalizeHTML(t *testing.T) {
	tests := []struct {
		b    string
		want string
	}{
		{"<p>a  \t b</p>", "<p>a b</p>"},
		{"<p>a  \t\nb</p>", "<p>a b</p>"},
		{" <p>a  b</p>", "<p>a b</p>"},
		{"<p>a  b</p> ", "<p>a b</p>"},
		{"\n\t<h1>\n\t\ta  b\t\t</h1>\n\t", "<h1>a b</h1>"},
		{"<em>a  b</em> ", "<em>a b</em> "},
		{"<p>one<br>\ntwo</p>", "<p>one<br>two</p>"},
		{"<br />", "<br>"},
		{"<ul>\n<li>a</li>\n<li>b</li>\n</ul>", "<ul><li>a</li><li>b</li></ul>"},
		{"<table>\n<tr><td> a </td></tr>\n</table>", "<table><tr><td>a</td></tr></table>"},
		{"<pre><code>a  b\n\n</code></pre>", "<pre><code>a  b\n\n</code></pre>"},
		{`<a title="bar" HREF="foo">x</a>`, `<a href="foo" title="bar">x</a>`},
		{`<code class="language-go">x</code>`, `<code class="language-go">x</code>`},
		{"&forall;&amp;&gt;&lt;&quot;", "∀&amp;&gt;&lt;&quot;"},
	}
	for _, test := range tests {
		if got := NormalizeHTML([]byte(test.b)); string(got) != test.want {
			t.Errorf("NormalizeHTML(%q) = %q; want %q", test.b, got, test.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal([]byte("<p>a   b</p>\n"), []byte("<p>a b</p>")) {
		t.Error("Equal reported whitespace-only difference as unequal")
	}
	if Equal([]byte("<p><em>a</em></p>"), []byte("<p><strong>a</strong></p>")) {
		t.Error("Equal reported different elements as equal")
	}
}
