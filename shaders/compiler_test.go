// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"cogentcore.org/spvbatch/base/errors"
	"cogentcore.org/spvbatch/shaders/shaderstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	shaderstest.Main(m)
}

func newTestCompiler(t *testing.T) (*Compiler, *shaderstest.Fake, *bytes.Buffer) {
	fake := shaderstest.New(t)
	c := NewCompiler(fake.Binary)
	c.Exec = fake.Exec()
	out := &bytes.Buffer{}
	c.Out = out
	return c, fake, out
}

func artifacts(t *testing.T, dir string) []string {
	t.Helper()
	fns, err := filepath.Glob(filepath.Join(dir, "*.spv"))
	require.NoError(t, err)
	return fns
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	shaderstest.Source(t, dir, "b.vert", "")
	shaderstest.Source(t, dir, "a.vert", "")
	shaderstest.Source(t, dir, "c.frag", "")
	shaderstest.Source(t, dir, ".hidden.vert", "")
	shaderstest.Source(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.vert"), 0o755))
	shaderstest.Source(t, filepath.Join(dir, "sub.vert"), "d.vert", "")

	bs, err := Discover(dir, Vertex, Fragment, Geometry)
	require.NoError(t, err)
	assert.Equal(t, []Batch{
		{Stage: Vertex, Files: []string{filepath.Join(dir, "a.vert"), filepath.Join(dir, "b.vert")}},
		{Stage: Fragment, Files: []string{filepath.Join(dir, "c.frag")}},
		{Stage: Geometry},
	}, bs)

	_, err = Discover(filepath.Join(dir, "missing"), Vertex)
	assert.ErrorContains(t, err, "does not exist")
}

func TestCompile(t *testing.T) {
	c, fake, out := newTestCompiler(t)
	dir := t.TempDir()
	a := shaderstest.Source(t, dir, "a.vert", "void main() {}\n")
	b := shaderstest.Source(t, dir, "b.frag", "void main() {}\n")

	rep, err := c.Compile(dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"-V", a, "-o", filepath.Join(dir, "a_vert.spv")},
		{"-V", b, "-o", filepath.Join(dir, "b_frag.spv")},
	}, fake.Invocations(t))
	assert.Equal(t, []string{filepath.Join(dir, "a_vert.spv"), filepath.Join(dir, "b_frag.spv")}, artifacts(t, dir))

	require.Len(t, rep.Results, 2)
	assert.Equal(t, 2, rep.Total)
	assert.Empty(t, rep.Failed())
	assert.Equal(t, Vertex, rep.Results[0].Stage)
	assert.Equal(t, Fragment, rep.Results[1].Stage)
	assert.Equal(t, int64(len("SPIRV\nvoid main() {}\n")), rep.Results[0].Size)
	assert.Equal(t, 2*rep.Results[0].Size, rep.Bytes())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, fmt.Sprintf("vertex shaders: [%s]", a), lines[0])
	assert.Equal(t, fmt.Sprintf("fragment shaders: [%s]", b), lines[1])
	assert.Equal(t, "tessellation-control shaders: []", lines[2])
	assert.Equal(t, "geometry shaders: []", lines[4])
	assert.Equal(t, "output: "+filepath.Join(dir, "a_vert.spv"), lines[5])
	assert.Equal(t, "output: "+filepath.Join(dir, "b_frag.spv"), lines[6])
	assert.True(t, strings.HasPrefix(lines[7], "compiled 2 of 2 shaders ("), lines[7])
}

func TestCompileEmpty(t *testing.T) {
	c, fake, _ := newTestCompiler(t)
	dir := t.TempDir()
	rep, err := c.Compile(dir)
	require.NoError(t, err)
	assert.Empty(t, fake.Invocations(t))
	assert.Empty(t, rep.Results)
	assert.Empty(t, artifacts(t, dir))
}

func TestCompileTessellation(t *testing.T) {
	c, fake, _ := newTestCompiler(t)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "x.tesc", "")
	shaderstest.Source(t, dir, "x.tese", "")
	_, err := c.Compile(dir)
	require.NoError(t, err)
	assert.Len(t, fake.Invocations(t), 2)
	assert.Equal(t, []string{filepath.Join(dir, "x_tesc.spv"), filepath.Join(dir, "x_tese.spv")}, artifacts(t, dir))
}

func TestCompileTwice(t *testing.T) {
	c, fake, _ := newTestCompiler(t)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")
	shaderstest.Source(t, dir, "a.frag", "")
	shaderstest.Source(t, dir, "a.geom", "")
	_, err := c.Compile(dir)
	require.NoError(t, err)
	first := artifacts(t, dir)
	_, err = c.Compile(dir)
	require.NoError(t, err)
	assert.Equal(t, first, artifacts(t, dir))
	assert.Len(t, fake.Invocations(t), 6)
}

func TestCompileFailure(t *testing.T) {
	c, fake, out := newTestCompiler(t)
	dir := t.TempDir()
	bad := shaderstest.Source(t, dir, "a.vert", shaderstest.FailMarker+"\n")
	shaderstest.Source(t, dir, "b.vert", "")
	shaderstest.Source(t, dir, "c.frag", "")

	rep, err := c.Compile(dir)
	assert.ErrorIs(t, err, ErrFailed)
	assert.NotErrorIs(t, err, ErrLaunch)
	assert.ErrorContains(t, err, "1 of 3 shaders: "+bad)
	assert.Len(t, fake.Invocations(t), 3)
	assert.Equal(t, []string{filepath.Join(dir, "b_vert.spv"), filepath.Join(dir, "c_frag.spv")}, artifacts(t, dir))

	require.Len(t, rep.Results, 3)
	assert.Equal(t, shaderstest.FailCode, rep.Results[0].Code)
	assert.Equal(t, 0, rep.Results[1].Code)
	require.Len(t, rep.Failed(), 1)
	assert.Equal(t, bad, rep.Failed()[0].Source)
	assert.Contains(t, out.String(), "output: "+filepath.Join(dir, "a_vert.spv"))
	assert.Contains(t, out.String(), "compiled 2 of 3 shaders, 1 failed")
}

func TestCompileStopOnFailure(t *testing.T) {
	c, fake, out := newTestCompiler(t)
	c.KeepGoing = false
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", shaderstest.FailMarker)
	shaderstest.Source(t, dir, "b.vert", "")

	rep, err := c.Compile(dir)
	assert.ErrorIs(t, err, ErrFailed)
	assert.Len(t, fake.Invocations(t), 1)
	assert.Len(t, rep.Results, 1)
	assert.Equal(t, 2, rep.Total)
	assert.Contains(t, out.String(), "compiled 0 of 2 shaders, 1 failed, 1 skipped")
}

func TestCompileMissingBinary(t *testing.T) {
	c, _, _ := newTestCompiler(t)
	c.Binary = filepath.Join(t.TempDir(), "no-such-compiler")
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")
	shaderstest.Source(t, dir, "b.vert", "")

	rep, err := c.Compile(dir)
	assert.ErrorIs(t, err, ErrLaunch)
	require.NotNil(t, rep)
	require.Len(t, rep.Results, 1)
	assert.True(t, rep.Results[0].Launch)
	assert.Equal(t, -1, rep.Results[0].Code)
	assert.Empty(t, artifacts(t, dir))
}

func TestCompileJobs(t *testing.T) {
	c, fake, out := newTestCompiler(t)
	c.Jobs = 4
	dir := t.TempDir()
	var want []string
	for _, ext := range []string{"vert", "frag", "geom"} {
		for i := range 4 {
			want = append(want, shaderstest.Source(t, dir, fmt.Sprintf("s%d.%s", i, ext), ""))
		}
	}
	rep, err := c.Compile(dir)
	require.NoError(t, err)
	assert.Len(t, fake.Invocations(t), len(want))
	var got []string
	for _, res := range rep.Results {
		got = append(got, res.Source)
	}
	assert.Equal(t, want, got)
	assert.Len(t, artifacts(t, dir), len(want))
	assert.Equal(t, len(want), strings.Count(out.String(), "output: "))
}

func TestCompileJobsMissingBinary(t *testing.T) {
	c, _, _ := newTestCompiler(t)
	c.Jobs = 2
	c.Binary = filepath.Join(t.TempDir(), "no-such-compiler")
	dir := t.TempDir()
	for i := range 6 {
		shaderstest.Source(t, dir, fmt.Sprintf("s%d.vert", i), "")
	}
	rep, err := c.Compile(dir)
	assert.ErrorIs(t, err, ErrLaunch)
	assert.NotEmpty(t, rep.Results)
	assert.Empty(t, artifacts(t, dir))
}

func TestCompileJobsStopOnFailure(t *testing.T) {
	c, fake, out := newTestCompiler(t)
	c.Jobs = 2
	c.KeepGoing = false
	dir := t.TempDir()
	for i := range 6 {
		shaderstest.Source(t, dir, fmt.Sprintf("s%d.vert", i), shaderstest.FailMarker)
	}

	rep, err := c.Compile(dir)
	assert.ErrorIs(t, err, ErrFailed)
	assert.Equal(t, 6, rep.Total)
	assert.NotEmpty(t, rep.Results)
	assert.LessOrEqual(t, len(rep.Results), c.Jobs)
	assert.LessOrEqual(t, len(fake.Invocations(t)), c.Jobs)
	assert.Contains(t, out.String(), "skipped")
}

func TestCompilePrintOnly(t *testing.T) {
	c, fake, out := newTestCompiler(t)
	cmds := &bytes.Buffer{}
	c.Exec.SetPrintOnly(true).SetCommands(cmds)
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")

	rep, err := c.Compile(dir)
	require.NoError(t, err)
	assert.Empty(t, fake.Invocations(t))
	assert.Empty(t, artifacts(t, dir))
	assert.Len(t, rep.Results, 1)
	assert.Contains(t, out.String(), "output: "+filepath.Join(dir, "a_vert.spv"))
	assert.Contains(t, cmds.String(), "-V "+filepath.Join(dir, "a.vert")+" -o "+filepath.Join(dir, "a_vert.spv"))
}

func TestCompileStages(t *testing.T) {
	c, fake, out := newTestCompiler(t)
	c.Stages = []Stage{Fragment, Geometry}
	dir := t.TempDir()
	shaderstest.Source(t, dir, "a.vert", "")
	g := shaderstest.Source(t, dir, "a.geom", "")
	f := shaderstest.Source(t, dir, "a.frag", "")

	_, err := c.Compile(dir)
	require.NoError(t, err)
	inv := fake.Invocations(t)
	require.Len(t, inv, 2)
	assert.Equal(t, f, inv[0][1])
	assert.Equal(t, g, inv[1][1])
	assert.NotContains(t, out.String(), "vertex shaders")
}

func TestCompileArgs(t *testing.T) {
	c, fake, _ := newTestCompiler(t)
	c.Args = []string{"--target-env", "vulkan1.2"}
	dir := t.TempDir()
	a := shaderstest.Source(t, dir, "a.frag", "")

	_, err := c.Compile(dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"-V", a, "-o", filepath.Join(dir, "a_frag.spv"), "--target-env", "vulkan1.2"},
	}, fake.Invocations(t))
}

// installCompiler copies the fake compiler into the given directory
// under the default compiler name.
func installCompiler(t *testing.T, fake *shaderstest.Fake, dir string) string {
	name := DefaultBinary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	b, err := os.ReadFile(fake.Binary)
	require.NoError(t, err)
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, b, 0o755))
	return p
}

func TestCompileWorkingDirCompiler(t *testing.T) {
	c, fake, _ := newTestCompiler(t)
	wd := t.TempDir()
	bin := installCompiler(t, fake, wd)
	t.Chdir(wd)
	c.Binary = DefaultBinary
	res := c.ResolveBinary()
	assert.True(t, filepath.IsAbs(res), res)
	assert.Equal(t, filepath.Base(bin), filepath.Base(res))

	dir := t.TempDir()
	a := shaderstest.Source(t, dir, "a.vert", "")
	_, err := c.Compile(dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"-V", a, "-o", filepath.Join(dir, "a_vert.spv")},
	}, fake.Invocations(t))
	assert.Len(t, artifacts(t, dir), 1)
}

func TestResolveBinary(t *testing.T) {
	c, fake, _ := newTestCompiler(t)
	t.Chdir(t.TempDir())

	// explicit paths are used as is
	c.Binary = filepath.Join("tools", DefaultBinary)
	assert.Equal(t, c.Binary, c.ResolveBinary())

	// bare names are found in the exec directory
	bdir := t.TempDir()
	bin := installCompiler(t, fake, bdir)
	c.Binary = DefaultBinary
	c.Exec.SetDir(bdir)
	assert.Equal(t, bin, c.ResolveBinary())

	// and then on the PATH
	t.Setenv("PATH", bdir)
	c.Exec.SetDir("")
	assert.Equal(t, bin, c.ResolveBinary())

	// unknown names are left for the launcher to report
	c.Binary = "no-such-compiler"
	assert.Equal(t, "no-such-compiler", c.ResolveBinary())
}

func TestCompileMissingDir(t *testing.T) {
	c, fake, _ := newTestCompiler(t)
	rep, err := c.Compile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.Nil(t, rep)
	assert.Empty(t, fake.Invocations(t))
}

func TestReport(t *testing.T) {
	rep := &Report{Total: 3, Results: []Result{
		{Source: "a.vert", Size: 1500},
		{Source: "b.vert", Code: 1, Err: errors.New("exit status 1")},
	}}
	assert.Equal(t, int64(1500), rep.Bytes())
	assert.Len(t, rep.Failed(), 1)
	assert.ErrorIs(t, rep.Err(), ErrFailed)
	s := rep.Summary()
	assert.Contains(t, s, "compiled 1 of 3 shaders, 1 failed, 1 skipped")
	assert.Contains(t, s, "1.5 kB written")

	assert.NoError(t, (&Report{}).Err())
}

func TestIsSource(t *testing.T) {
	c := NewCompiler(DefaultBinary)
	assert.True(t, c.IsSource("dir/a.tese"))
	assert.False(t, c.IsSource("dir/a_tese.spv"))
	assert.False(t, c.IsSource("dir/notes.txt"))
	c.Stages = []Stage{Vertex}
	assert.False(t, c.IsSource("dir/a.tese"))
}
