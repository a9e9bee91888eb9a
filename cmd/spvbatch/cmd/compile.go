// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the spvbatch tool.
package cmd

import (
	"io"
	"log/slog"
	"os"

	"cogentcore.org/spvbatch/base/exec"
	"cogentcore.org/spvbatch/cli"
	"cogentcore.org/spvbatch/cmd/spvbatch/config"
	"cogentcore.org/spvbatch/logx"
	"cogentcore.org/spvbatch/shaders"
)

// Commands returns the commands of the spvbatch tool.
func Commands() []*cli.Cmd[*config.Config] {
	return []*cli.Cmd[*config.Config]{
		{Func: Compile, Name: "compile", Doc: "compile all of the shaders in the directory once", Root: true},
		{Func: Watch, Name: "watch", Doc: "compile all of the shaders in the directory whenever one of them changes"},
	}
}

// Compile compiles all of the shaders in the configured directory.
func Compile(c *config.Config) error {
	sc, err := NewCompiler(c)
	if err != nil {
		return err
	}
	_, err = sc.Compile(c.Dir)
	return err
}

// NewCompiler returns a new shader compiler for the given configuration.
// The compiler output is printed with [exec.Major], but the compiler
// commands are only printed in debug mode or with print-only.
func NewCompiler(c *config.Config) (*shaders.Compiler, error) {
	sc := shaders.NewCompiler(c.Compiler)
	stages, err := shaders.ParseStages(c.Stages)
	if err != nil {
		return nil, err
	}
	sc.Stages = stages
	sc.Jobs = c.Jobs
	sc.KeepGoing = c.KeepGoing

	ec := exec.Major()
	ec.Commands = exec.Minor().Commands
	if c.PrintOnly {
		ec.SetPrintOnly(true).SetCommands(os.Stdout)
	}
	sc.Exec = ec
	if c.Args != "" {
		sc.Args, err = ec.Args(c.Args)
		if err != nil {
			return nil, err
		}
	}
	if logx.UserLevel > slog.LevelInfo {
		sc.Out = io.Discard
	}
	return sc, nil
}
