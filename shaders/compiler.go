// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaders compiles all of the GLSL shader sources in a directory
// to SPIR-V, by running an external glslangValidator-compatible compiler
// on each of them.
package shaders

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cogentcore.org/spvbatch/base/errors"
	"cogentcore.org/spvbatch/base/exec"
	"cogentcore.org/spvbatch/base/fsx"
	"github.com/remeh/sizedwaitgroup"
)

// DefaultBinary is the default shader compiler executable.
const DefaultBinary = "glslangValidator"

var (
	// ErrLaunch is returned when the shader compiler could not be started
	// at all, for example because it is not installed.
	ErrLaunch = errors.New("shader compiler could not be launched")

	// ErrFailed is returned when at least one shader failed to compile.
	ErrFailed = errors.New("shader compilation failed")
)

// Compiler compiles the shaders in a directory.
type Compiler struct {

	// Binary is the shader compiler executable, which is invoked as
	// Binary -V <source> -o <output> [Args...].
	Binary string

	// Args are extra arguments passed to the shader compiler
	// after the standard ones.
	Args []string

	// Stages are the stages to compile, in order.
	Stages []Stage

	// Jobs is the maximum number of shader compiler processes that run
	// at the same time. Values below 2 compile one file at a time.
	Jobs int

	// KeepGoing is whether to keep compiling the remaining files
	// after a file fails to compile.
	KeepGoing bool

	// Exec is the configuration used to run the shader compiler.
	Exec *exec.Config

	// Out is where discovery lists, progress lines and the summary are written.
	Out io.Writer

	mu sync.Mutex
}

// NewCompiler returns a new [Compiler] for the given compiler executable
// that compiles all stages one file at a time, and keeps going after failures.
func NewCompiler(binary string) *Compiler {
	return &Compiler{
		Binary:    binary,
		Stages:    AllStages(),
		Jobs:      1,
		KeepGoing: true,
		Exec:      exec.Major(),
		Out:       os.Stdout,
	}
}

func (c *Compiler) out() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}

func (c *Compiler) execConfig() *exec.Config {
	if c.Exec == nil {
		return exec.Major()
	}
	return c.Exec
}

func (c *Compiler) stages() []Stage {
	if len(c.Stages) == 0 {
		return AllStages()
	}
	return c.Stages
}

// IsSource returns whether the given path is a shader source
// for one of the stages of the compiler.
func (c *Compiler) IsSource(path string) bool {
	_, ok := StageOf(path, c.stages()...)
	return ok
}

// ResolveBinary returns the path with which the shader compiler is run.
// A bare executable name is looked for in the working directory of the
// [Compiler.Exec] config first, and then on the PATH. Names that can not
// be found are returned unchanged, so that running them reports the error.
func (c *Compiler) ResolveBinary() string {
	bin := c.Binary
	if bin == "" || strings.ContainsAny(bin, `/\`) {
		return bin
	}
	ec := c.execConfig()
	names := []string{bin}
	if runtime.GOOS == "windows" && filepath.Ext(bin) == "" {
		names = append(names, bin+".exe")
	}
	for _, nm := range names {
		p := filepath.Join(ec.Dir, nm)
		if errors.Log1(fsx.FileExists(p)) {
			return absPath(p)
		}
	}
	p, err := ec.LookPath(bin)
	if err == nil {
		return p
	}
	if errors.Is(err, exec.ErrDot) {
		return absPath(p)
	}
	return bin
}

// absPath returns the absolute form of the given path if it has one.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

type job struct {
	stage Stage
	src   string
}

// Compile compiles all of the shader sources directly inside the given
// directory, stage by stage, writing each artifact next to its source
// (see [Derive]). The discovered files of every stage are printed before
// anything is compiled, and an "output:" line is printed for every file
// once its compiler has finished. The returned error wraps [ErrLaunch]
// if the compiler could not be started, in which case the remaining
// files are not attempted, and [ErrFailed] if any file failed to compile.
func (c *Compiler) Compile(dir string) (*Report, error) {
	start := time.Now()
	batches, err := Discover(dir, c.stages()...)
	if err != nil {
		return nil, err
	}
	var jobs []job
	for _, b := range batches {
		fmt.Fprintf(c.out(), "%s shaders: %v\n", b.Stage, b.Files)
		for _, f := range b.Files {
			jobs = append(jobs, job{b.Stage, f})
		}
	}

	rep := &Report{Total: len(jobs)}
	bin := c.ResolveBinary()
	var lerr error
	if c.Jobs < 2 {
		lerr = c.compileSerial(bin, jobs, rep)
	} else {
		lerr = c.compileParallel(bin, jobs, rep)
	}
	rep.Elapsed = time.Since(start)
	fmt.Fprintln(c.out(), rep.Summary())
	if lerr != nil {
		return rep, lerr
	}
	return rep, rep.Err()
}

func (c *Compiler) compileSerial(bin string, jobs []job, rep *Report) error {
	for _, j := range jobs {
		res := c.compileFile(bin, j.stage, j.src)
		rep.Results = append(rep.Results, res)
		c.progress(res)
		if res.Launch {
			return res.Err
		}
		if res.Failed() && !c.KeepGoing {
			break
		}
	}
	return nil
}

func (c *Compiler) compileParallel(bin string, jobs []job, rep *Report) error {
	results := make([]*Result, len(jobs))
	var stop atomic.Bool
	var lerr error
	wg := sizedwaitgroup.New(c.Jobs)
	for i, j := range jobs {
		if stop.Load() {
			break
		}
		wg.Add()
		go func() {
			defer wg.Done()
			if stop.Load() {
				return
			}
			res := c.compileFile(bin, j.stage, j.src)
			results[i] = &res
			c.progress(res)
			if res.Launch {
				c.mu.Lock()
				if lerr == nil {
					lerr = res.Err
				}
				c.mu.Unlock()
				stop.Store(true)
			} else if res.Failed() && !c.KeepGoing {
				stop.Store(true)
			}
		}()
	}
	wg.Wait()
	for _, res := range results {
		if res != nil {
			rep.Results = append(rep.Results, *res)
		}
	}
	return lerr
}

// progress prints the output line for the given result,
// and logs it if it failed.
func (c *Compiler) progress(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out(), "output: %s\n", res.Output)
	if res.Failed() && !res.Launch {
		slog.Error("shader failed to compile", "source", res.Source, "code", res.Code)
	}
}

// CompileFile runs the shader compiler on the given source file of the
// given stage, and returns the result. It does not print anything other
// than what the [Compiler.Exec] config prints.
func (c *Compiler) CompileFile(stage Stage, src string) Result {
	return c.compileFile(c.ResolveBinary(), stage, src)
}

func (c *Compiler) compileFile(bin string, stage Stage, src string) Result {
	out := Derive(src, stage.Ext())
	args := append([]string{"-V", src, "-o", out}, c.Args...)
	res := Result{Stage: stage, Source: src, Output: out}
	start := time.Now()
	ran, err := c.execConfig().Exec(bin, args...)
	res.Duration = time.Since(start)
	switch {
	case err == nil:
		if !c.execConfig().PrintOnly {
			res.Size = errors.Log1(artifactSize(out))
		}
	case !ran:
		res.Launch = true
		res.Code = -1
		res.Err = fmt.Errorf("%w: %w", ErrLaunch, err)
	default:
		res.Code = exec.ExitStatus(err)
		res.Err = err
	}
	return res
}

// artifactSize returns the size of the compiled artifact at the given path.
func artifactSize(path string) (int64, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("compiled shader not found: %w", err)
	}
	return st.Size(), nil
}
