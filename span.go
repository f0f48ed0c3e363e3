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

// Span is a half-open range of bytes [Offset, Offset+Len) in a source text.
// Spans are used for error reporting and source maps.
type Span struct {
	Offset int
	Len    int
}

// NewSpan returns the span of n bytes starting at offset.
func NewSpan(offset, n int) Span {
	return Span{Offset: offset, Len: n}
}

// Absolute translates a span computed relative to a sub-slice
// into a span relative to the text that contains the sub-slice,
// where base is the sub-slice's own span.
// Only base's offset is used, so base may be an empty insertion point.
func (span Span) Absolute(base Span) Span {
	return Span{
		Offset: base.Offset + span.Offset,
		Len:    span.Len,
	}
}

// End returns the offset one past the last byte of the span.
func (span Span) End() int {
	return span.Offset + span.Len
}

// Contains reports whether other lies entirely within span.
func (span Span) Contains(other Span) bool {
	return span.Offset <= other.Offset && other.End() <= span.End()
}

// Slice returns the bytes of s covered by the span.
// It panics if the span is out of range for s.
func (span Span) Slice(s string) string {
	return s[span.Offset:span.End()]
}

// String formats the span as "[start,end)".
func (span Span) String() string {
	return fmt.Sprintf("[%d,%d)", span.Offset, span.End())
}
