// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"io"
	"os"
)

// Options contains the options passed to cli
// that control its behavior.
type Options struct {

	// AppName is the name of the cli app.
	AppName string

	// AppAbout is the description of the cli app.
	AppAbout string

	// Fatal is whether to, if there is an error in [Run],
	// print it and fatally exit the program through [os.Exit]
	// with an exit code of 1, or 2 for usage errors.
	Fatal bool

	// PrintSuccess is whether to print a message indicating
	// that a command was successful after it is run.
	PrintSuccess bool

	// DefaultFiles are the default configuration file paths.
	// The first one that is found is opened.
	DefaultFiles []string

	// IncludePaths is a list of directories to look in for the
	// [Options.DefaultFiles] when [Options.SearchUp] is false.
	IncludePaths []string

	// SearchUp indicates whether to search up the filesystem
	// for the default config file by checking the provided default
	// config file location relative to each directory up the tree,
	// starting from the current directory.
	SearchUp bool

	// NeedConfigFile indicates whether a configuration file
	// must be provided for the command to run.
	NeedConfigFile bool

	// Stdout is where usage and success messages are written.
	Stdout io.Writer

	// Stderr is where errors are written when [Options.Fatal] is set.
	Stderr io.Writer
}

// DefaultOptions returns a new [Options] value
// with standard default values, based on the given
// app name and optional app about info.
func DefaultOptions(name string, about ...string) *Options {
	abt := ""
	if len(about) > 0 {
		abt = about[0]
	}
	return &Options{
		AppName:      name,
		AppAbout:     abt,
		Fatal:        true,
		PrintSuccess: true,
		DefaultFiles: []string{"config.toml"},
		IncludePaths: []string{"."},
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

func (o *Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o *Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}
