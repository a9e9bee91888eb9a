// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Adapted in part from: https://github.com/magefile/mage
// Copyright presumably by Nate Finch, primary contributor
// Apache License, Version 2.0, January 2004

package exec

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"cogentcore.org/spvbatch/logx"
	"github.com/mattn/go-shellwords"
)

// Args returns a string parsed into separate args
// that can be passed into run commands.
func (c *Config) Args(str string) ([]string, error) {
	args, err := shellwords.Parse(str)
	if err != nil {
		return nil, fmt.Errorf("parsing arguments %q: %w", str, err)
	}
	return args, nil
}

// Run runs the given command using the given configuration information and arguments.
func (c *Config) Run(cmd string, args ...string) error {
	_, err := c.Exec(cmd, args...)
	return err
}

// RunSh runs given full command string with args formatted
// as in a standard shell command.
func (c *Config) RunSh(cstr string) error {
	args, err := c.Args(cstr)
	if err == nil && len(args) == 0 {
		err = fmt.Errorf("command %q was not parsed correctly into content", cstr)
	}
	if err != nil {
		if c.Errors != nil {
			c.Errors.Write([]byte(logx.ErrorColor(err.Error()) + "\n"))
		}
		if c.Fatal {
			os.Exit(1)
		}
		return err
	}
	return c.Run(args[0], args[1:]...)
}

// Output runs the command and returns the text from stdout.
func (c *Config) Output(cmd string, args ...string) (string, error) {
	oldStdout := c.Stdout
	// need to use buf to capture output
	buf := &bytes.Buffer{}
	c.Stdout = buf
	_, err := c.Exec(cmd, args...)
	c.Stdout = oldStdout
	if c.Stdout != nil {
		c.Stdout.Write(buf.Bytes())
	}
	return strings.TrimSuffix(buf.String(), "\n"), err
}

// Run calls [Config.Run] on [Major].
func Run(cmd string, args ...string) error {
	return Major().Run(cmd, args...)
}

// Output calls [Config.Output] on [Minor].
func Output(cmd string, args ...string) (string, error) {
	return Minor().Output(cmd, args...)
}
