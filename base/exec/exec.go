// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Adapted in part from: https://github.com/magefile/mage
// Copyright presumably by Nate Finch, primary contributor
// Apache License, Version 2.0, January 2004

package exec

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"cogentcore.org/spvbatch/logx"
)

// ErrNotFound is the error resulting if a path search failed to find
// an executable file. It is the same as [exec.ErrNotFound].
var ErrNotFound = exec.ErrNotFound

// ErrDot is the error resulting if a path search resolved an executable
// relative to the current directory. It is the same as [exec.ErrDot].
var ErrDot = exec.ErrDot

// Exec executes the command, piping its stdout and stderr to the config
// writers. If the command fails, it will return an error with the command output.
// The given cmd and args may include references
// to environment variables in $FOO format, in which case these will be
// expanded before the command is run, using [Config.Env] first and
// then the current environment.
//
// Ran reports if the command ran (rather than was not found or not executable).
// If err == nil, ran is always true. The exit code of a command that ran
// can be obtained from err with [ExitStatus].
func (c *Config) Exec(cmd string, args ...string) (ran bool, err error) {
	expand := func(s string) string {
		s2, ok := c.Env[s]
		if ok {
			return s2
		}
		return os.Getenv(s)
	}
	cmd = os.Expand(cmd, expand)
	eargs := make([]string, len(args))
	for i := range args {
		eargs[i] = os.Expand(args[i], expand)
	}
	ran, code, err := c.run(cmd, eargs...)
	if err == nil {
		return true, nil
	}
	if ran {
		err = fmt.Errorf("failed to run %q (exit code %d): %w", cmd+" "+strings.Join(eargs, " "), code, err)
	} else {
		err = fmt.Errorf("failed to start %q: %w", cmd, err)
	}
	if c.Fatal {
		fmt.Fprintln(c.GetWriter(c.Errors, err), logx.ErrorColor(err.Error()))
		os.Exit(1)
	}
	return ran, err
}

func (c *Config) run(cmd string, args ...string) (ran bool, code int, err error) {
	cm := exec.Command(cmd, args...)
	cm.Env = os.Environ()
	for k, v := range c.Env {
		cm.Env = append(cm.Env, k+"="+v)
	}
	cm.Stderr = c.Stderr
	cm.Stdout = c.Stdout
	cm.Stdin = c.Stdin
	cm.Dir = c.Dir

	c.PrintCmd(cmd+" "+strings.Join(args, " "), nil)
	if c.PrintOnly {
		return true, 0, nil
	}
	err = cm.Run()
	return CmdStarted(err), ExitStatus(err), err
}

// PrintCmd prints the given command string to [Config.Commands], colored
// according to the given error. If a command is run in [Config.Dir],
// that directory is printed as a prefix.
func (c *Config) PrintCmd(cmd string, err error) {
	if c.Commands == nil {
		return
	}
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}
	if c.Dir != "" {
		c.Commands.Write([]byte(logx.SuccessColor(c.Dir) + ": "))
	}
	c.Commands.Write([]byte(logx.ApplyLevelColor(level, logx.CmdColor(cmd)) + "\n"))
}

// CmdRan examines the error to determine if it was generated as a result of a
// command running via os/exec.Command. If the error is nil, or the command ran
// (even if it exited with a non-zero exit code), CmdRan reports true. If the
// error is an unrecognized type, or it is an error from exec.Command that says
// the command failed to run (usually due to the command not existing or not
// being executable), it reports false.
func CmdRan(err error) bool {
	if err == nil {
		return true
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.Exited()
	}
	return false
}

// CmdStarted reports whether the process behind the given error was
// started at all. Unlike [CmdRan], it also reports true for a process
// that was terminated by a signal.
func CmdStarted(err error) bool {
	if err == nil {
		return true
	}
	var ee *exec.ExitError
	return errors.As(err, &ee)
}

type exitStatus interface {
	ExitStatus() int
}

// ExitStatus returns the exit status of the error if it is an exec.ExitError
// or if it implements ExitStatus() int.
// 0 if it is nil or 1 if it is a different error.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(exitStatus); ok {
		return e.ExitStatus()
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ex, ok := ee.Sys().(exitStatus); ok {
			return ex.ExitStatus()
		}
		return ee.ExitCode()
	}
	return 1
}

// LookPath searches for an executable named file in the directories
// named by the PATH environment variable, after expanding any $FOO
// references using [Config.Env] and the current environment.
func (c *Config) LookPath(file string) (string, error) {
	return exec.LookPath(os.Expand(file, func(s string) string {
		if s2, ok := c.Env[s]; ok {
			return s2
		}
		return os.Getenv(s)
	}))
}
