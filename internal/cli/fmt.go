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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bash/ink"
	"github.com/bash/ink/format"
	"github.com/bash/ink/internal/logging"
)

// ErrUnformatted is returned by "fmt --check"
// when a document is not formatted.
var ErrUnformatted = errors.New("documents are not formatted")

func newFmtCommand(a *app) *cobra.Command {
	var write, check bool
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Reformat ink documents",
		Long: `Reformat ink documents.

By default the formatted document is written to standard output.
With --write, files are rewritten in place.
With --check, the names of files that need formatting are printed
and the command fails if there are any.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.collectInputs(cmd, args)
			if err != nil {
				return err
			}
			logger := logging.FromContext(cmd.Context())
			unformatted := false
			for _, in := range inputs {
				original, formatted, err := formatInput(in)
				if err != nil {
					return err
				}
				changed := !bytes.Equal(original, formatted)
				switch {
				case check:
					if changed {
						unformatted = true
						fmt.Fprintln(cmd.OutOrStdout(), in.name)
					}
				case write && in.name != stdinName:
					if !changed {
						continue
					}
					if err := os.WriteFile(in.name, formatted, 0o666); err != nil {
						return err
					}
					logger.Info("formatted", logging.FieldPath, in.name)
				default:
					if _, err := cmd.OutOrStdout().Write(formatted); err != nil {
						return fmt.Errorf("write output: %w", err)
					}
				}
			}
			if unformatted {
				return ErrUnformatted
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of standard output")
	cmd.Flags().BoolVarP(&check, "check", "c", false, "list files whose formatting differs and fail if any")
	return cmd
}

func formatInput(in input) (original, formatted []byte, err error) {
	rc, err := in.open()
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()
	original, err = io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", in.name, err)
	}
	buf := new(bytes.Buffer)
	if err := format.Format(buf, ink.Parse(original)); err != nil {
		return nil, nil, fmt.Errorf("format %s: %w", in.name, err)
	}
	return original, buf.Bytes(), nil
}
