// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides various utility functions for dealing with filesystems.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/spvbatch/base/errors"
	"github.com/mitchellh/go-homedir"
)

// FileExists checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
// Directories do not count as files.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// DirExists checks whether given directory exists, returning true if so,
// false if not, and error if there is an error in accessing it.
func DirExists(dir string) (bool, error) {
	fileInfo, err := os.Stat(dir)
	if err == nil {
		return fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ExpandHome expands a leading ~ in the given path to the
// home directory of the current user.
func ExpandHome(path string) (string, error) {
	return homedir.Expand(path)
}

// FindFilesOnPaths attempts to locate given file(s) on given list of paths,
// returning the full Abs path to each file found (nil if none).
func FindFilesOnPaths(paths []string, files ...string) []string {
	var res []string
	for _, path := range paths {
		for _, fn := range files {
			fp := filepath.Join(path, fn)
			ok, _ := FileExists(fp)
			if ok {
				res = append(res, errors.Log1(filepath.Abs(fp)))
			}
		}
	}
	return res
}

// SearchUp looks for the given file in the given directory and then
// in each of its parent directories in turn, returning the path of
// the first one found, or "" if there is none.
func SearchUp(dir, file string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		fp := filepath.Join(dir, file)
		if ok, _ := FileExists(fp); ok {
			return fp
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Filenames returns the paths of the files directly inside the given
// directory whose names end in the given suffix, in lexical order.
// It does not descend into subdirectories, and it skips directories
// and hidden files, consistent with a "*suffix" shell glob.
// The returned paths are the directory joined with the file name.
func Filenames(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, e := range entries {
		nm := e.Name()
		if strings.HasPrefix(nm, ".") || !strings.HasSuffix(nm, suffix) {
			continue
		}
		fp := filepath.Join(dir, nm)
		if e.IsDir() {
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			if ok, _ := FileExists(fp); !ok {
				continue
			}
		}
		res = append(res, fp)
	}
	return res, nil
}
