// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command spvbatch compiles all of the GLSL shaders in a directory
// to SPIR-V with glslangValidator.
package main

import (
	"cogentcore.org/spvbatch/cli"
	"cogentcore.org/spvbatch/cmd/spvbatch/cmd"
	"cogentcore.org/spvbatch/cmd/spvbatch/config"
	"cogentcore.org/spvbatch/logx"
)

func main() {
	logx.SetDefaultLogger()
	opts := cli.DefaultOptions("spvbatch", "Spvbatch compiles all of the GLSL shaders (.vert, .frag, .tesc, .tese, .geom) in a directory to SPIR-V.")
	opts.DefaultFiles = []string{"spvbatch.toml"}
	opts.SearchUp = true
	opts.PrintSuccess = false
	cli.Run(opts, &config.Config{}, cmd.Commands()...)
}
