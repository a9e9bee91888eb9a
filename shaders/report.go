// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// Result is the result of compiling one shader source file.
type Result struct {

	// Stage is the stage of the source file.
	Stage Stage

	// Source is the path of the source file.
	Source string

	// Output is the path of the compiled artifact.
	Output string

	// Code is the exit code of the compiler, which is -1
	// if it could not be launched.
	Code int

	// Err is the error running the compiler, if any.
	Err error

	// Launch is whether the compiler could not be launched at all.
	Launch bool

	// Size is the size of the compiled artifact in bytes.
	Size int64

	// Duration is how long the compiler took.
	Duration time.Duration
}

// Failed returns whether the file failed to compile.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Report is the result of one compile pass over a directory.
type Report struct {

	// Results are the results of the attempted files, in discovery order.
	Results []Result

	// Total is the number of discovered files, which is more than
	// len(Results) if the pass stopped early.
	Total int

	// Elapsed is the wall time of the whole pass.
	Elapsed time.Duration
}

// Failed returns the results of the files that failed to compile.
func (r *Report) Failed() []Result {
	var res []Result
	for _, rs := range r.Results {
		if rs.Failed() {
			res = append(res, rs)
		}
	}
	return res
}

// Bytes returns the total size of all compiled artifacts.
func (r *Report) Bytes() int64 {
	var n int64
	for _, rs := range r.Results {
		n += rs.Size
	}
	return n
}

// Err returns an error wrapping [ErrFailed] that lists the files
// that failed to compile, or nil if none did.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	srcs := make([]string, len(failed))
	for i, f := range failed {
		srcs[i] = f.Source
	}
	return fmt.Errorf("%w: %d of %d shaders: %s", ErrFailed, len(failed), r.Total, strings.Join(srcs, ", "))
}

// Summary returns a one-line summary of the pass.
func (r *Report) Summary() string {
	failed := len(r.Failed())
	compiled := len(r.Results) - failed
	skipped := r.Total - len(r.Results)
	s := fmt.Sprintf("compiled %d of %d shaders", compiled, r.Total)
	if failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	if skipped > 0 {
		s += fmt.Sprintf(", %d skipped", skipped)
	}
	dur := durafmt.Parse(r.Elapsed.Round(time.Millisecond)).LimitFirstN(2)
	return s + fmt.Sprintf(" (%s written in %s)", humanize.Bytes(uint64(r.Bytes())), dur)
}
