// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"cogentcore.org/spvbatch/base/errors"
)

// ErrUsage is the error wrapped by all errors caused by
// invalid command line arguments.
var ErrUsage = errors.New("usage error")

// errHelp is returned by [SetFromArgs] when help was requested.
var errHelp = errors.New("help requested")

// usageErrorf returns a new error wrapping [ErrUsage].
func usageErrorf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, a...))
}

// isFlag returns whether the given argument is a flag
// (as opposed to a positional argument).
func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// splitFlag splits the given flag argument into its name
// and its value, if it has one in the -name=value form.
func splitFlag(arg string) (name, value string, hasValue bool) {
	name = strings.TrimLeft(arg, "-")
	name, value, hasValue = strings.Cut(name, "=")
	return
}

// SetFromArgs sets the config values of the given config object from
// the given command line arguments, in the context of the given command.
// Flags can be given as -name value, -name=value, --name value or
// --name=value, and boolean flags can omit the value. An argument of
// "--" ends the flags. The remaining positional arguments set the fields
// with a posarg struct tag, and their number must match exactly.
// All errors caused by invalid arguments wrap [ErrUsage].
func SetFromArgs(cfg any, args []string, cmd string) error {
	fields, err := Fields(cfg, cmd)
	if err != nil {
		return err
	}
	var pos []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			pos = append(pos, args[i+1:]...)
			break
		}
		if !isFlag(arg) {
			pos = append(pos, arg)
			continue
		}
		name, value, hasValue := splitFlag(arg)
		if name == "h" || name == "help" {
			return errHelp
		}
		f := lookupField(fields, name)
		if f == nil {
			return usageErrorf("flag provided but not defined: %q", arg)
		}
		if !hasValue {
			if isBool(f.Value) {
				value = "true"
			} else {
				if i+1 >= len(args) {
					return usageErrorf("flag needs a value: %q", arg)
				}
				i++
				value = args[i]
			}
		}
		if err := SetValue(f.Value, value); err != nil {
			return usageErrorf("invalid value %q for flag %q: %v", value, arg, err)
		}
	}

	pfs := posArgFields(fields)
	if len(pos) != len(pfs) {
		return usageErrorf("wrong number of arguments: expected %d, but got %d %v", len(pfs), len(pos), pos)
	}
	for i, f := range pfs {
		if err := SetValue(f.Value, pos[i]); err != nil {
			return usageErrorf("invalid value %q for argument %q: %v", pos[i], f.Name, err)
		}
	}
	return nil
}

// configFileArg extracts the config file path given by a -config or
// -cfg flag from the given arguments, returning the path and the
// arguments without that flag.
func configFileArg(args []string) (file string, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if isFlag(arg) {
			name, value, hasValue := splitFlag(arg)
			if name == "config" || name == "cfg" {
				if !hasValue {
					if i+1 >= len(args) {
						return "", nil, usageErrorf("flag needs a value: %q", arg)
					}
					i++
					value = args[i]
				}
				file = value
				continue
			}
		}
		rest = append(rest, arg)
	}
	return file, rest, nil
}
