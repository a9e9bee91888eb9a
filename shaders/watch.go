// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/spvbatch/base/errors"
	"cogentcore.org/spvbatch/logx"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// watchOps are the file operations that trigger a recompile.
const watchOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

// Watch compiles the given directory with the given compiler, and then
// compiles it again every time a shader source in it changes, at most
// once per the given interval. It returns nil once the context is done.
// Files that fail to compile do not stop the watching, but an error
// wrapping [ErrLaunch] does and is returned.
func Watch(ctx context.Context, c *Compiler, dir string, interval time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer w.Close()

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	// pass does one compile pass after waiting for the limiter,
	// returning false if the context was done first.
	pass := func() (bool, error) {
		if err := limiter.Wait(ctx); err != nil {
			return false, nil
		}
		// the limiter can admit the pass right as the context ends
		if ctx.Err() != nil {
			return false, nil
		}
		drain(w)
		_, err := c.Compile(dir)
		if errors.Is(err, ErrLaunch) {
			return false, err
		}
		return true, nil
	}

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %q: %w", dir, err)
	}
	if ok, err := pass(); !ok {
		return err
	}
	logx.PrintlnInfo(logx.SuccessColor("watching " + dir + " for changes"))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&watchOps == 0 || !c.IsSource(ev.Name) {
				continue
			}
			slog.Debug("shader changed", "file", ev.Name, "op", ev.Op.String())
			if ok, err := pass(); !ok {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("file watcher error", "err", err)
		}
	}
}

// drain discards the events that are already pending on the watcher,
// since the pass that follows covers all of them.
func drain(w *fsnotify.Watcher) {
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
