// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"fmt"

	"cogentcore.org/spvbatch/base/fsx"
)

// Batch is the list of source files of one stage.
type Batch struct {

	// Stage is the stage of all of the files.
	Stage Stage

	// Files are the paths of the source files, in lexical order.
	Files []string
}

// Discover returns the shader source files directly inside the given
// directory, as one [Batch] per given stage, in the given stage order.
// It does not descend into subdirectories. A stage with no files
// results in a batch with no files.
func Discover(dir string, stages ...Stage) ([]Batch, error) {
	ok, err := fsx.DirExists(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("shader directory %q does not exist", dir)
	}
	res := make([]Batch, len(stages))
	for i, st := range stages {
		fns, err := fsx.Filenames(dir, "."+st.Ext())
		if err != nil {
			return nil, fmt.Errorf("finding %s shaders in %q: %w", st, dir, err)
		}
		res[i] = Batch{Stage: st, Files: fns}
	}
	return res, nil
}
