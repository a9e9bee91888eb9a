// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec provides an easy way to run external commands,
// with configurable output routing, environment variable expansion
// and classification of exit failures versus launch failures.
package exec

import (
	"io"
	"log/slog"
	"maps"
	"os"

	"cogentcore.org/spvbatch/logx"
)

// Config contains the configuration information that
// controls the behavior of exec. It is passed to most
// high-level functions, and a default version of it
// can be easily constructed using [Major] or [Minor].
type Config struct {

	// Stdout is the writer to write the standard output of called commands to.
	// It can be set to nil to disable the writing of the standard output.
	Stdout io.Writer

	// Stderr is the writer to write the standard error of called commands to.
	// It can be set to nil to disable the writing of the standard error.
	Stderr io.Writer

	// Stdin is the reader to use as the standard input.
	Stdin io.Reader

	// Commands is the writer to write the string representation of the called commands to.
	// It can be set to nil to disable the writing of the string representations of the called commands.
	Commands io.Writer

	// Errors is the writer to write program errors to.
	// It can be set to nil to disable the writing of program errors.
	Errors io.Writer

	// Fatal is whether to fatally exit programs with [os.Exit] and an
	// exit code of 1 when there is an error running a command.
	Fatal bool

	// PrintOnly is whether to only print commands that would be run and
	// not actually run them. It can be used, for example, for safely testing
	// an app.
	PrintOnly bool

	// Dir is the directory to execute commands in. If it is unset,
	// commands are run in the current directory.
	Dir string

	// Env contains any additional environment variables specified.
	// The current environment variables will also be passed to the
	// command, but they will be overridden by any variables here
	// if there are conflicts.
	Env map[string]string
}

// Major returns the default [Config] object for a major command,
// based on [logx.UserLevel]. It should be used for commands that
// are central to an app's logic and are more important for the user
// to know about and be able to see the output of. It results in
// commands and output being printed with a [logx.UserLevel] of
// [slog.LevelInfo] or below, whereas [Minor] results in that only
// with a [logx.UserLevel] of [slog.LevelDebug] or below.
func Major() *Config {
	if logx.UserLevel <= slog.LevelInfo {
		return &Config{
			Stdout:   os.Stdout,
			Stderr:   os.Stderr,
			Stdin:    os.Stdin,
			Commands: os.Stdout,
			Errors:   os.Stderr,
			Env:      map[string]string{},
		}
	}
	return &Config{
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Errors: os.Stderr,
		Env:    map[string]string{},
	}
}

// Minor returns the default [Config] object for a minor command,
// based on [logx.UserLevel]. It should be used for commands that
// support an app behind the scenes and are less important for the
// user to know about and be able to see the output of. It results in
// commands and output being printed with a [logx.UserLevel] of
// [slog.LevelDebug] or below, whereas [Major] results in that with a
// [logx.UserLevel] of [slog.LevelInfo] or below.
func Minor() *Config {
	if logx.UserLevel <= slog.LevelDebug {
		return &Config{
			Stdout:   os.Stdout,
			Stderr:   os.Stderr,
			Stdin:    os.Stdin,
			Commands: os.Stdout,
			Errors:   os.Stderr,
			Env:      map[string]string{},
		}
	}
	return &Config{
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Errors: os.Stderr,
		Env:    map[string]string{},
	}
}

// Silent returns a [Config] that writes nothing anywhere.
func Silent() *Config {
	return &Config{Env: map[string]string{}}
}

// Clone returns a copy of the config with its own Env map.
func (c *Config) Clone() *Config {
	nc := *c
	nc.Env = maps.Clone(c.Env)
	if nc.Env == nil {
		nc.Env = map[string]string{}
	}
	return &nc
}

// SetStdout sets [Config.Stdout] and returns the config.
func (c *Config) SetStdout(w io.Writer) *Config { c.Stdout = w; return c }

// SetStderr sets [Config.Stderr] and returns the config.
func (c *Config) SetStderr(w io.Writer) *Config { c.Stderr = w; return c }

// SetCommands sets [Config.Commands] and returns the config.
func (c *Config) SetCommands(w io.Writer) *Config { c.Commands = w; return c }

// SetFatal sets [Config.Fatal] and returns the config.
func (c *Config) SetFatal(fatal bool) *Config { c.Fatal = fatal; return c }

// SetPrintOnly sets [Config.PrintOnly] and returns the config.
func (c *Config) SetPrintOnly(printOnly bool) *Config { c.PrintOnly = printOnly; return c }

// SetDir sets [Config.Dir] and returns the config.
func (c *Config) SetDir(dir string) *Config { c.Dir = dir; return c }

// SetEnv sets the given environment variable and returns the config.
func (c *Config) SetEnv(key, value string) *Config {
	if c.Env == nil {
		c.Env = map[string]string{}
	}
	c.Env[key] = value
	return c
}

// GetWriter returns the appropriate writer to use based on the given writer and error.
// If the given error is non-nil, the returned writer is guaranteed to be non-nil,
// with [Config.Errors] used as a fallback and [io.Discard] as the last resort.
func (c *Config) GetWriter(w io.Writer, err error) io.Writer {
	if w != nil {
		return w
	}
	if err != nil {
		if c.Errors != nil {
			return c.Errors
		}
		return io.Discard
	}
	return io.Discard
}
