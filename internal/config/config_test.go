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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(strings.NewReader("detect_languages: true\nextensions: [.ink, .txt]\n"))
	require.NoError(t, err)
	assert.True(t, cfg.DetectLanguages)
	assert.Equal(t, "info", cfg.LogLevel, "missing fields keep defaults")
	assert.Equal(t, []string{".ink", ".txt"}, cfg.Extensions)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		field string
	}{
		{"UnknownLevel", "log_level: loud\n", "log_level"},
		{"BadExtension", "extensions: [ink]\n", "extensions"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(strings.NewReader(test.input))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "Parse(%q) = %v; want *ValidationError", test.input, err)
			assert.Equal(t, test.field, verr.Field)
		})
	}

	_, err := Parse(strings.NewReader("colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := Discover(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, path, "search stops at the repository root")

	want := filepath.Join(root, ".ink.yaml")
	require.NoError(t, os.WriteFile(want, []byte("log_level: debug\n"), 0o644))
	path, err = Discover(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestDiscoverCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Discover(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	cfg, path, err := Resolve(context.Background(), "", dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	explicit := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("log_level: bogus\n"), 0o644))
	_, _, err = Resolve(context.Background(), explicit, dir)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, explicit, verr.FilePath)
	assert.Contains(t, err.Error(), explicit+": log_level: ")
}

func TestHasExtension(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.True(t, cfg.HasExtension("notes.ink"))
	assert.True(t, cfg.HasExtension("NOTES.INK"))
	assert.False(t, cfg.HasExtension("notes.md"))
	assert.False(t, cfg.HasExtension("ink"))
}
