// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli generates command line interfaces from configuration
// structs and command functions. Config values are set, in increasing
// order of precedence, from `default:` struct tags, from a TOML config
// file, and from command line flags and positional arguments.
//
// The supported struct tags are:
//   - default: the default value of the field
//   - flag: comma-separated flag names for the field (default: the kebab-case field name)
//   - desc: the description of the field shown in the usage
//   - posarg: the index of the positional argument that sets the field
//   - cmd: comma-separated names of the commands the field applies to (default: all)
package cli

import (
	"fmt"
	"os"

	"cogentcore.org/spvbatch/base/errors"
	"cogentcore.org/spvbatch/logx"
)

// OnConfiger represents a configuration object that specifies a method to
// be called at the end of the config process, with the command that is
// about to be run.
type OnConfiger interface {
	OnConfig(cmd string) error
}

// Run runs an app with the given options, configuration struct,
// and commands. It uses [os.Args] for its arguments. The configuration
// struct should be passed as a pointer, and configuration options
// should be defined as fields on the configuration struct. The commands
// can be specified as either functions or struct objects; the functions
// are more concise but require the use of a name derived from the
// function name, whereas the struct objects can also carry documentation.
// If [Options.Fatal] is set and there is an error, Run prints it and exits
// the program with exit code 2 for usage errors and 1 otherwise.
func Run[T any, C CmdOrFunc[T]](opts *Options, cfg T, cmds ...C) error {
	err := RunArgs(opts, cfg, os.Args[1:], cmds...)
	if err == nil || !opts.Fatal {
		return err
	}
	fmt.Fprintln(opts.stderr(), logx.ErrorColor(err.Error()))
	if errors.Is(err, ErrUsage) {
		os.Exit(2)
	}
	os.Exit(1)
	return err
}

// RunArgs is the same as [Run], except it uses the given arguments
// (which should not include the executable name) instead of [os.Args],
// and it never exits the program. The usage of the command is printed
// to [Options.Stderr] for usage errors.
func RunArgs[T any, C CmdOrFunc[T]](opts *Options, cfg T, args []string, cmds ...C) error {
	cs, err := CmdsFromCmdOrFuncs[T, C](cmds)
	if err != nil {
		return fmt.Errorf("error getting commands from given commands: %w", err)
	}

	var cmd *Cmd[T]
	if len(args) > 0 && !isFlag(args[0]) {
		if args[0] == "help" {
			fmt.Fprintln(opts.stdout(), Usage(opts, cfg, "", cs...))
			return nil
		}
		for _, c := range cs {
			if c.Name == args[0] {
				cmd = c
				args = args[1:]
				break
			}
		}
	}
	if cmd == nil {
		for _, c := range cs {
			if c.Root {
				cmd = c
			}
		}
	}
	if cmd == nil {
		return fmt.Errorf("%w: no command specified and there is no root command", ErrUsage)
	}

	ucmd := cmd.Name
	if cmd.Root {
		ucmd = ""
	}
	err = Config(opts, cfg, cmd.Name, args)
	if errors.Is(err, errHelp) {
		fmt.Fprintln(opts.stdout(), Usage(opts, cfg, ucmd, cs...))
		return nil
	}
	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(opts.stderr(), Usage(opts, cfg, ucmd, cs...))
	}
	if err != nil {
		return fmt.Errorf("error configuring app: %w", err)
	}

	err = cmd.Func(cfg)
	if err != nil {
		return fmt.Errorf("error running command %q: %w", cmd.Name, err)
	}
	if opts.PrintSuccess {
		fmt.Fprintln(opts.stdout(), logx.SuccessColor("Command "+cmd.Name+" succeeded"))
	}
	return nil
}

// Config sets the config values of the given config object for the given
// command: first from `default:` struct tags, then from the config file
// (given with -config or found through [Options.DefaultFiles]), and then
// from the given command line arguments. Finally, if the config object
// implements [OnConfiger], its OnConfig method is called.
func Config(opts *Options, cfg any, cmd string, args []string) error {
	if err := SetFromDefaults(cfg); err != nil {
		return err
	}
	file, args, err := configFileArg(args)
	if err != nil {
		return err
	}
	if err := openConfigFile(opts, cfg, file); err != nil {
		return err
	}
	if err := SetFromArgs(cfg, args, cmd); err != nil {
		return err
	}
	if oc, ok := cfg.(OnConfiger); ok {
		return oc.OnConfig(cmd)
	}
	return nil
}
