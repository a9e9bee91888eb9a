// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/spvbatch/cli"
	"cogentcore.org/spvbatch/logx"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := &Config{}
	require.NoError(t, cli.SetFromDefaults(c))
	assert.Equal(t, "glslangValidator", c.Compiler)
	assert.Equal(t, 1, c.Jobs)
	assert.True(t, c.KeepGoing)
	assert.Empty(t, c.Stages)
	assert.Equal(t, Duration(500*time.Millisecond), c.Watch.Interval)
	assert.Equal(t, "500ms", c.Watch.Interval.String())
}

func TestConfigFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "spvbatch.toml")
	require.NoError(t, os.WriteFile(f, []byte("Jobs = 4\n\n[Watch]\nInterval = \"2s\"\n"), 0o644))
	c := &Config{}
	require.NoError(t, cli.SetFromDefaults(c))
	require.NoError(t, cli.OpenFile(c, f))
	assert.Equal(t, 4, c.Jobs)
	assert.Equal(t, Duration(2*time.Second), c.Watch.Interval)

	require.NoError(t, cli.SetFromArgs(c, []string{"-interval", "250ms", "shaders"}, "watch"))
	assert.Equal(t, Duration(250*time.Millisecond), c.Watch.Interval)

	require.NoError(t, os.WriteFile(f, []byte("[Watch]\nInterval = \"soon\"\n"), 0o644))
	assert.Error(t, cli.OpenFile(c, f))
}

func TestOnConfig(t *testing.T) {
	level := logx.UserLevel
	t.Cleanup(func() { logx.UserLevel = level })

	home, err := homedir.Dir()
	require.NoError(t, err)
	c := &Config{Dir: "~/shaders", Compiler: "glslangValidator", Jobs: 1, VeryVerbose: true, Quiet: true}
	require.NoError(t, c.OnConfig("compile"))
	assert.Equal(t, filepath.Join(home, "shaders"), c.Dir)
	assert.Equal(t, "glslangValidator", c.Compiler)
	assert.Equal(t, slog.LevelDebug, logx.UserLevel)

	c = &Config{Dir: "shaders", Jobs: 1, Quiet: true}
	require.NoError(t, c.OnConfig("compile"))
	assert.Equal(t, slog.LevelError, logx.UserLevel)

	c = &Config{Dir: "shaders", Jobs: 0}
	assert.ErrorIs(t, c.OnConfig("compile"), cli.ErrUsage)

	c = &Config{Dir: "shaders", Jobs: 1, Stages: []string{"vert", "mesh"}}
	assert.ErrorIs(t, c.OnConfig("compile"), cli.ErrUsage)
}
