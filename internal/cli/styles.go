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
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// styles holds the renderers for the block tree view.
type styles struct {
	Path   lipgloss.Style
	Block  lipgloss.Style
	Format lipgloss.Style
	Entity lipgloss.Style
	Span   lipgloss.Style
	Text   lipgloss.Style
	Link   lipgloss.Style
	Guide  lipgloss.Style
}

func newStyles(colorEnabled bool) *styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &styles{
			Path:   plain,
			Block:  plain,
			Format: plain,
			Entity: plain,
			Span:   plain,
			Text:   plain,
			Link:   plain,
			Guide:  plain,
		}
	}
	return &styles{
		Path:   lipgloss.NewStyle().Bold(true),
		Block:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Format: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Entity: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Span:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Link:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Underline(true),
		Guide:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// isColorEnabled reports whether output to w should be colorized.
// Mode is one of "auto", "always", or "never".
// In auto mode, color is used only for terminals and when NO_COLOR is unset.
func isColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
