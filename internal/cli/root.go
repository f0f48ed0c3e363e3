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

// Package cli provides the cobra commands of the ink tool.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bash/ink/internal/config"
	"github.com/bash/ink/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app is the state shared by all subcommands.
type app struct {
	info       BuildInfo
	debug      bool
	configPath string
	color      string
	cfg        *config.Config
}

// NewRootCommand creates the root ink command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{info: info, cfg: config.Default()}
	rootCmd := &cobra.Command{
		Use:   "ink",
		Short: "Parse, render, and format ink documents",
		Long: `ink works with documents written in ink,
a lightweight line-oriented markup language.

Documents are read from the files given on the command line,
from every matching file in a given directory,
or from standard input if no files are given.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (default: search for .ink.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newFmtCommand(a))
	rootCmd.AddCommand(newBlocksCommand(a))
	rootCmd.AddCommand(newVersionCommand(a))
	return rootCmd
}

// setup loads the configuration and attaches a logger to the command's context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, path, err := config.Resolve(ctx, a.configPath, workDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.debug {
		level = "debug"
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), level)
	if path != "" {
		logger.Debug("loaded configuration", logging.FieldConfig, path)
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	return nil
}
