// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"fmt"
	"slices"
	"strings"
)

// Stage is a shader pipeline stage that is recognized
// by the file extension of its source files.
type Stage int32

const (
	// Vertex is the vertex shader stage (.vert).
	Vertex Stage = iota

	// Fragment is the fragment shader stage (.frag).
	Fragment

	// TessControl is the tessellation control shader stage (.tesc).
	TessControl

	// TessEval is the tessellation evaluation shader stage (.tese).
	TessEval

	// Geometry is the geometry shader stage (.geom).
	Geometry

	// StagesN is the number of stages.
	StagesN
)

var stageExts = [StagesN]string{"vert", "frag", "tesc", "tese", "geom"}

var stageNames = [StagesN]string{"vertex", "fragment", "tessellation-control", "tessellation-evaluation", "geometry"}

// AllStages returns all of the stages, in the fixed order
// in which they are compiled.
func AllStages() []Stage {
	res := make([]Stage, StagesN)
	for i := range res {
		res[i] = Stage(i)
	}
	return res
}

// Ext returns the file extension of source files of the stage,
// without the leading dot (eg: "vert"). It is also the suffix token
// used in the names of compiled artifacts.
func (s Stage) Ext() string {
	if s < 0 || s >= StagesN {
		return ""
	}
	return stageExts[s]
}

// String returns the human-readable name of the stage (eg: "vertex").
func (s Stage) String() string {
	if s < 0 || s >= StagesN {
		return fmt.Sprintf("Stage(%d)", int32(s))
	}
	return stageNames[s]
}

// ParseStage returns the stage with the given extension or name.
// It is case-insensitive, and accepts an optional leading dot on
// extensions and spaces in place of dashes in names.
func ParseStage(str string) (Stage, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	s = strings.TrimPrefix(s, ".")
	s = strings.ReplaceAll(s, " ", "-")
	for i := range StagesN {
		if s == stageExts[i] || s == stageNames[i] {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown shader stage %q (valid stages are %s)", str, strings.Join(stageExts[:], ", "))
}

// ParseStages returns the stages with the given extensions or names
// (see [ParseStage]), without duplicates and in the fixed stage order.
// An empty list results in [AllStages].
func ParseStages(strs []string) ([]Stage, error) {
	if len(strs) == 0 {
		return AllStages(), nil
	}
	var res []Stage
	for _, str := range strs {
		st, err := ParseStage(str)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(res, st) {
			res = append(res, st)
		}
	}
	slices.Sort(res)
	return res, nil
}
