// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaderstest provides a fake shader compiler for tests,
// which is the test binary itself running in a special mode.
package shaderstest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/spvbatch/base/exec"
)

const (
	// EnvFake is the environment variable that makes [Main]
	// act as the fake compiler when it is set to 1.
	EnvFake = "SPVBATCH_FAKE_COMPILER"

	// EnvLog is the environment variable with the file to which
	// the fake compiler appends its arguments.
	EnvLog = "SPVBATCH_FAKE_COMPILER_LOG"

	// FailMarker makes the fake compiler fail with [FailCode]
	// on sources that contain it.
	FailMarker = "#error"

	// FailCode is the exit code of a failed fake compile.
	FailCode = 2
)

// Main should be called from TestMain of packages that use [Fake]:
//
//	func TestMain(m *testing.M) { shaderstest.Main(m) }
func Main(m *testing.M) {
	if os.Getenv(EnvFake) == "1" {
		os.Exit(Compile(os.Args[1:], os.Stderr))
	}
	os.Exit(m.Run())
}

// Compile does what the fake compiler does for the given arguments,
// and returns its exit code. The artifact is the source prefixed with
// a SPIR-V magic line, so that it is deterministic.
func Compile(args []string, stderr io.Writer) int {
	if lf := os.Getenv(EnvLog); lf != "" {
		f, err := os.OpenFile(lf, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(f, strings.Join(args, "\t"))
		f.Close()
	}
	var src, out string
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "-V":
			src = args[i+1]
		case "-o":
			out = args[i+1]
		}
	}
	if src == "" || out == "" {
		fmt.Fprintln(stderr, "usage: -V <input> -o <output>")
		return 1
	}
	b, err := os.ReadFile(src)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	if bytes.Contains(b, []byte(FailMarker)) {
		fmt.Fprintf(stderr, "ERROR: %s: compilation terminated\n", src)
		return FailCode
	}
	if err := os.WriteFile(out, append([]byte("SPIRV\n"), b...), 0o644); err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
	return 0
}

// Fake is a fake shader compiler that records its invocations.
type Fake struct {

	// Binary is the path of the fake compiler executable.
	Binary string

	// Log is the file with one line of arguments per invocation.
	Log string
}

// New returns a new [Fake] that logs to a file in a temporary directory.
func New(t testing.TB) *Fake {
	t.Helper()
	bin, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	return &Fake{Binary: bin, Log: filepath.Join(t.TempDir(), "invocations.log")}
}

// Exec returns a silent [exec.Config] that runs the fake compiler.
func (f *Fake) Exec() *exec.Config {
	return exec.Silent().SetEnv(EnvFake, "1").SetEnv(EnvLog, f.Log)
}

// Setenv sets the environment of the test so that all processes
// it starts with the fake compiler as their binary act as it.
func (f *Fake) Setenv(t testing.TB) {
	t.Setenv(EnvFake, "1")
	t.Setenv(EnvLog, f.Log)
}

// Invocations returns the arguments of every invocation so far, in order.
func (f *Fake) Invocations(t testing.TB) [][]string {
	t.Helper()
	b, err := os.ReadFile(f.Log)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var res [][]string
	for _, ln := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		res = append(res, strings.Split(ln, "\t"))
	}
	return res
}

// Source writes a shader source file with the given name and contents
// to the given directory and returns its path.
func Source(t testing.TB, dir, name, contents string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
