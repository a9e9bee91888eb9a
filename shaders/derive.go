// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"path/filepath"
	"strings"
)

// Derive returns the path of the compiled artifact for the given shader
// source path with the given stage extension (without the dot): the first
// occurrence of "."+ext is removed from the path, and "_"+ext+".spv" is
// appended. For example, Derive("shaders/basic.vert", "vert") returns
// "shaders/basic_vert.spv".
func Derive(path, ext string) string {
	return strings.Replace(path, "."+ext, "", 1) + "_" + ext + ".spv"
}

// StageOf returns the stage of the given shader source path among the
// given stages, based on its extension, and whether it has one.
// Hidden files have no stage.
func StageOf(path string, stages ...Stage) (Stage, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return -1, false
	}
	for _, st := range stages {
		if strings.HasSuffix(base, "."+st.Ext()) {
			return st, true
		}
	}
	return -1, false
}
