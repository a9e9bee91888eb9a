// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/spvbatch/base/fsx"
	"github.com/pelletier/go-toml/v2"
)

// OpenFile sets the config values of the given config object from
// the given TOML file. Keys are matched against the Go field names
// of the config object.
func OpenFile(cfg any, file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("error parsing config file %q: %w", file, err)
	}
	return nil
}

// openConfigFile opens the config file for the given config object.
// If file is non-empty, it is opened and must exist. Otherwise, the
// first of the [Options.DefaultFiles] that is found is opened, using
// [Options.SearchUp] or [Options.IncludePaths] to locate it.
func openConfigFile(opts *Options, cfg any, file string) error {
	if file != "" {
		fp, err := fsx.ExpandHome(file)
		if err != nil {
			return err
		}
		return OpenFile(cfg, fp)
	}
	for _, df := range opts.DefaultFiles {
		var fp string
		if opts.SearchUp {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			fp = fsx.SearchUp(wd, df)
		} else if fps := fsx.FindFilesOnPaths(opts.IncludePaths, df); len(fps) > 0 {
			fp = fps[0]
		}
		if fp == "" {
			continue
		}
		slog.Debug("using config file", "file", fp)
		return OpenFile(cfg, fp)
	}
	if opts.NeedConfigFile {
		return fmt.Errorf("cli: a config file is required, but none of %v was found", opts.DefaultFiles)
	}
	return nil
}
