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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bash/ink"
	"github.com/bash/ink/internal/langdetect"
	"github.com/bash/ink/internal/logging"
)

func newRenderCommand(a *app) *cobra.Command {
	var output string
	var detect bool
	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render ink documents as HTML",
		Long: `Render ink documents as HTML.

Blocks are written as soon as they are parsed.
Code blocks without a language can be tagged automatically
with --detect-languages or the detect_languages config option.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.collectInputs(cmd, args)
			if err != nil {
				return err
			}
			r := &ink.HTMLRenderer{Format: a.htmlFormat(cmd, detect)}
			if output == "" {
				return renderInputs(cmd, r, cmd.OutOrStdout(), inputs)
			}
			err = writeOutput(output, func(w io.Writer) error {
				return renderInputs(cmd, r, w, inputs)
			})
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("wrote HTML", logging.FieldOutput, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write HTML to `file` instead of standard output")
	cmd.Flags().BoolVar(&detect, "detect-languages", false, "guess the language of untagged code blocks")
	return cmd
}

func (a *app) htmlFormat(cmd *cobra.Command, detect bool) ink.DefaultHTMLFormat {
	var f ink.DefaultHTMLFormat
	if !detect && !a.cfg.DetectLanguages {
		return f
	}
	logger := logging.FromContext(cmd.Context())
	f.DetectLanguage = func(code []byte) string {
		lang := langdetect.Detect(code)
		logger.Debug("detected code language", logging.FieldLanguage, lang)
		return lang
	}
	return f
}

// createOutput opens the file named by --output.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeOutput creates the named file and passes it to write.
// A failure to close the file is reported like a write failure.
func writeOutput(name string, write func(io.Writer) error) error {
	f, err := createOutput(name)
	if err != nil {
		return err
	}
	err = write(f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("write output: %w", closeErr)
	}
	return err
}

// renderInputs writes the HTML of each input to w,
// separating documents with a blank line.
func renderInputs(cmd *cobra.Command, r *ink.HTMLRenderer, w io.Writer, inputs []input) error {
	bw := bufio.NewWriter(w)
	for i, in := range inputs {
		if i > 0 {
			bw.WriteString("\n")
		}
		if err := renderInput(cmd, r, bw, in); err != nil {
			return err
		}
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func renderInput(cmd *cobra.Command, r *ink.HTMLRenderer, w io.Writer, in input) error {
	rc, err := in.open()
	if err != nil {
		return err
	}
	defer rc.Close()
	logging.FromContext(cmd.Context()).Debug("rendering", logging.FieldPath, in.name)
	if err := r.RenderFrom(w, ink.NewBlockParser(rc)); err != nil {
		return fmt.Errorf("%s: %w", in.name, err)
	}
	return nil
}
