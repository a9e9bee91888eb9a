// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/spvbatch/cli"
	"cogentcore.org/spvbatch/cmd/spvbatch/config"
	"cogentcore.org/spvbatch/logx"
	"cogentcore.org/spvbatch/shaders"
	"cogentcore.org/spvbatch/shaders/shaderstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	shaderstest.Main(m)
}

// run runs the spvbatch tool with the given arguments
// in a new temporary working directory.
func run(t *testing.T, args ...string) (*bytes.Buffer, error) {
	level := logx.UserLevel
	t.Cleanup(func() { logx.UserLevel = level })
	t.Chdir(t.TempDir())
	buf := &bytes.Buffer{}
	opts := cli.DefaultOptions("spvbatch", "Compiles shaders.")
	opts.DefaultFiles = []string{"spvbatch.toml"}
	opts.SearchUp = true
	opts.Fatal = false
	opts.PrintSuccess = false
	opts.Stdout = buf
	opts.Stderr = buf
	return buf, cli.RunArgs(opts, &config.Config{}, args, Commands()...)
}

func artifacts(t *testing.T, dir string) []string {
	t.Helper()
	fns, err := filepath.Glob(filepath.Join(dir, "*.spv"))
	require.NoError(t, err)
	return fns
}

func TestCompile(t *testing.T) {
	fake := shaderstest.New(t)
	fake.Setenv(t)
	dir := t.TempDir()
	a := shaderstest.Source(t, dir, "a.vert", "")
	b := shaderstest.Source(t, dir, "b.frag", "")

	_, err := run(t, "-q", "-c", fake.Binary, dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"-V", a, "-o", filepath.Join(dir, "a_vert.spv")},
		{"-V", b, "-o", filepath.Join(dir, "b_frag.spv")},
	}, fake.Invocations(t))
	assert.Len(t, artifacts(t, dir), 2)
}

func TestCompileWrongArgs(t *testing.T) {
	fake := shaderstest.New(t)
	fake.Setenv(t)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")

	for _, args := range [][]string{
		{"-c", fake.Binary},
		{"-c", fake.Binary, dir, dir},
		{"watch", "-c", fake.Binary},
	} {
		buf, err := run(t, args...)
		assert.ErrorIs(t, err, cli.ErrUsage, args)
		assert.Contains(t, buf.String(), "Usage:", args)
	}
	assert.Empty(t, fake.Invocations(t))
	assert.Empty(t, artifacts(t, dir))
}

func TestCompileFailure(t *testing.T) {
	fake := shaderstest.New(t)
	fake.Setenv(t)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", shaderstest.FailMarker)
	shaderstest.Source(t, dir, "b.vert", "")

	_, err := run(t, "-q", "-c", fake.Binary, dir)
	assert.ErrorIs(t, err, shaders.ErrFailed)
	assert.Len(t, fake.Invocations(t), 2)

	fake = shaderstest.New(t)
	fake.Setenv(t)
	_, err = run(t, "-q", "-keep-going=false", "-c", fake.Binary, dir)
	assert.ErrorIs(t, err, shaders.ErrFailed)
	assert.Len(t, fake.Invocations(t), 1)
}

func TestCompileMissingCompiler(t *testing.T) {
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")
	_, err := run(t, "-q", "-compiler", filepath.Join(t.TempDir(), "no-such-compiler"), dir)
	assert.ErrorIs(t, err, shaders.ErrLaunch)
	assert.Empty(t, artifacts(t, dir))
}

func TestCompileFlags(t *testing.T) {
	fake := shaderstest.New(t)
	fake.Setenv(t)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")
	f := shaderstest.Source(t, dir, "a.frag", "")

	_, err := run(t, "-q", "-c", fake.Binary, "-stages", "frag", "-args", "--target-env vulkan1.2 -DNAME=$SPVBATCH_TEST_NAME", "-j", "2", dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"-V", f, "-o", filepath.Join(dir, "a_frag.spv"), "--target-env", "vulkan1.2", "-DNAME="},
	}, fake.Invocations(t))

	t.Setenv("SPVBATCH_TEST_NAME", "tint")
	fake = shaderstest.New(t)
	fake.Setenv(t)
	_, err = run(t, "-q", "-c", fake.Binary, "-stages", "frag", "-args", "-DNAME=$SPVBATCH_TEST_NAME", dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"-V", f, "-o", filepath.Join(dir, "a_frag.spv"), "-DNAME=tint"},
	}, fake.Invocations(t))

	_, err = run(t, "-c", fake.Binary, "-stages", "comp", dir)
	assert.ErrorIs(t, err, cli.ErrUsage)
	_, err = run(t, "-c", fake.Binary, "-jobs", "0", dir)
	assert.ErrorIs(t, err, cli.ErrUsage)
}

func TestCompilePrintOnly(t *testing.T) {
	fake := shaderstest.New(t)
	fake.Setenv(t)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")

	_, err := run(t, "-q", "-n", "-c", fake.Binary, dir)
	require.NoError(t, err)
	assert.Empty(t, fake.Invocations(t))
	assert.Empty(t, artifacts(t, dir))
}

func TestCompileConfigFile(t *testing.T) {
	fake := shaderstest.New(t)
	fake.Setenv(t)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")
	shaderstest.Source(t, dir, "a.frag", "")
	cfg := filepath.Join(t.TempDir(), "shaders.toml")
	require.NoError(t, os.WriteFile(cfg, fmt.Appendf(nil, "Compiler = %q\nStages = [\"vert\"]\n", fake.Binary), 0o644))

	_, err := run(t, "-q", "-config", cfg, dir)
	require.NoError(t, err)
	assert.Len(t, fake.Invocations(t), 1)

	// flags override the file
	fake = shaderstest.New(t)
	fake.Setenv(t)
	_, err = run(t, "-q", "-config", cfg, "-stages", "vert,frag", "-c", fake.Binary, dir)
	require.NoError(t, err)
	assert.Len(t, fake.Invocations(t), 2)
}
