// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// struct for the spvbatch tool.
package config

import (
	"fmt"
	"time"

	"cogentcore.org/spvbatch/base/fsx"
	"cogentcore.org/spvbatch/cli"
	"cogentcore.org/spvbatch/logx"
	"cogentcore.org/spvbatch/shaders"
)

// Config is the main config struct that contains all
// of the configuration options for the spvbatch tool.
type Config struct {

	// Dir is the directory containing the shader sources.
	// The compiled shaders are written next to them.
	Dir string `posarg:"0" desc:"the directory containing the shader sources"`

	// Compiler is the shader compiler executable, which must accept
	// the glslangValidator arguments -V <input> -o <output>.
	Compiler string `flag:"c,compiler" default:"glslangValidator" desc:"the shader compiler executable"`

	// Args are extra arguments to pass to the shader compiler,
	// in shell syntax.
	Args string `desc:"extra arguments to pass to the shader compiler, in shell syntax"`

	// Jobs is the number of shaders compiled at the same time.
	Jobs int `flag:"j,jobs" default:"1" desc:"the number of shaders compiled at the same time"`

	// KeepGoing is whether to keep compiling after a shader fails.
	KeepGoing bool `default:"true" desc:"keep compiling after a shader fails (use -keep-going=false to stop)"`

	// PrintOnly prints the compiler commands without running them.
	PrintOnly bool `flag:"n,print-only" desc:"print the compiler commands without running them"`

	// Stages are the shader stages to compile, by extension or name.
	Stages []string `desc:"the comma-separated shader stages to compile (default all: vert,frag,tesc,tese,geom)"`

	// Verbose prints all of the compiler output.
	Verbose bool `flag:"v,verbose" desc:"print all of the compiler output"`

	// VeryVerbose also prints the compiler commands and debug messages.
	VeryVerbose bool `flag:"vv,very-verbose" desc:"also print the compiler commands and debug messages"`

	// Quiet only prints errors.
	Quiet bool `flag:"q,quiet" desc:"only print errors"`

	// Watch is the configuration for the watch command.
	Watch Watch `cmd:"watch"`
}

// Watch contains the configuration options for the watch command.
type Watch struct {

	// Interval is the minimum time between two compiles.
	Interval Duration `default:"500ms" desc:"the minimum time between two compiles"`
}

// Duration is a [time.Duration] that is written as a string
// such as "500ms" or "2s", in config files as well as in flags.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	td, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// OnConfig sets the log level from the verbosity flags, expands
// home directories, and validates the options.
func (c *Config) OnConfig(cmd string) error {
	logx.UserLevel = logx.LevelFromFlags(c.VeryVerbose, c.Verbose, c.Quiet)
	var err error
	c.Dir, err = fsx.ExpandHome(c.Dir)
	if err != nil {
		return err
	}
	c.Compiler, err = fsx.ExpandHome(c.Compiler)
	if err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, but got %d", cli.ErrUsage, c.Jobs)
	}
	if _, err := shaders.ParseStages(c.Stages); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return nil
}
