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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// stdinName is the display name of standard input.
const stdinName = "<stdin>"

// input is a document to process.
type input struct {
	name string
	open func() (io.ReadCloser, error)
}

// collectInputs expands the command-line arguments into documents.
// Directories are walked for files with a configured extension.
// No arguments or "-" means standard input.
func (a *app) collectInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var inputs []input
	for _, arg := range args {
		if arg == "-" {
			inputs = append(inputs, input{
				name: stdinName,
				open: func() (io.ReadCloser, error) {
					return io.NopCloser(cmd.InOrStdin()), nil
				},
			})
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			inputs = append(inputs, fileInput(arg))
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && a.cfg.HasExtension(path) {
				inputs = append(inputs, fileInput(path))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return inputs, nil
}

func fileInput(path string) input {
	return input{
		name: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}
