// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/iancoleman/strcase"
)

// Cmd represents a runnable command with configuration options.
// The type constraint is the type of the configuration
// information passed to the command.
type Cmd[T any] struct {

	// Func is the actual function that runs the command.
	// It takes configuration information and returns an error.
	Func func(T) error

	// Name is the name of the command.
	Name string

	// Doc is the documentation for the command.
	Doc string

	// Root is whether the command is the root command
	// (what is called when no subcommands are passed).
	Root bool
}

// CmdOrFunc is a generic type constraint that represents either
// a [*Cmd] with the given config type or a command function that
// takes the given config type and returns an error.
type CmdOrFunc[T any] interface {
	*Cmd[T] | func(T) error
}

// CmdFromFunc returns a new [Cmd] object from the given function,
// named after the function in kebab-case.
func CmdFromFunc[T any](fun func(T) error) (*Cmd[T], error) {
	if fun == nil {
		return nil, fmt.Errorf("cli.CmdFromFunc: nil command function")
	}
	cmd := &Cmd[T]{
		Func: fun,
	}
	fn := runtime.FuncForPC(reflect.ValueOf(fun).Pointer()).Name()

	// we need to get rid of package name and then convert to kebab
	strs := strings.Split(fn, ".")
	cmd.Name = strcase.ToKebab(strs[len(strs)-1])
	return cmd, nil
}

// CmdFromCmdOrFunc returns a new [Cmd] object from the given
// [CmdOrFunc] object, using [CmdFromFunc] if it is a function.
func CmdFromCmdOrFunc[T any, C CmdOrFunc[T]](cmd C) (*Cmd[T], error) {
	switch c := any(cmd).(type) {
	case *Cmd[T]:
		return c, nil
	case func(T) error:
		return CmdFromFunc(c)
	default:
		panic(fmt.Errorf("internal/programmer error: cli.CmdFromCmdOrFunc: impossible type %T for command %v", cmd, cmd))
	}
}

// CmdsFromCmdOrFuncs is a helper function that returns a slice
// of command objects from the given slice of [CmdOrFunc] objects,
// using [CmdFromCmdOrFunc]. Commands are added with [AddCmd], and
// if none of them is marked as the root command, the first one is.
func CmdsFromCmdOrFuncs[T any, C CmdOrFunc[T]](cmds []C) ([]*Cmd[T], error) {
	var res []*Cmd[T]
	for _, cmd := range cmds {
		c, err := CmdFromCmdOrFunc[T, C](cmd)
		if err != nil {
			return nil, err
		}
		res = AddCmd(res, c)
	}
	hasRoot := false
	for _, c := range res {
		if c.Root {
			hasRoot = true
		}
	}
	if !hasRoot && len(res) > 0 {
		res[0].Root = true
	}
	return res, nil
}

// AddCmd adds the given command to the given set of commands
// if there is not already a command with the same name in the
// set of commands. Also, if [Cmd.Root] is set to true on the
// passed command, and there are no other root commands in the
// given set of commands, the passed command will be made the
// root command; otherwise, it will be made not the root command.
func AddCmd[T any](cmds []*Cmd[T], cmd *Cmd[T]) []*Cmd[T] {
	hasCmd := false
	hasRoot := false
	for _, c := range cmds {
		if c.Name == cmd.Name {
			hasCmd = true
		}
		if c.Root {
			hasRoot = true
		}
	}
	if hasCmd {
		return cmds
	}
	cmd.Root = cmd.Root && !hasRoot // we must both want root and be able to take root
	cmds = append(cmds, cmd)
	return cmds
}
