// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cogentcore.org/spvbatch/cmd/spvbatch/config"
	"cogentcore.org/spvbatch/shaders"
)

// Watch compiles all of the shaders in the configured directory,
// and then again whenever one of them changes, until interrupted.
func Watch(c *config.Config) error {
	sc, err := NewCompiler(c)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return shaders.Watch(ctx, sc, c.Dir, time.Duration(c.Watch.Interval))
}
