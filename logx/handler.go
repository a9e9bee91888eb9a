// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Handler is a [slog.Handler] that writes one colored line per record,
// formatted as an optional level prefix, the message and then any
// attributes as key=value pairs. Info records have no level prefix,
// so that they read like ordinary program output.
type Handler struct {
	level slog.Leveler
	out   io.Writer
	mu    *sync.Mutex
	attrs []byte
	group string
}

// NewHandler returns a new [Handler] writing to the given writer. If level
// is nil, the handler follows [UserLevel].
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = userLeveler{}
	}
	return &Handler{level: level, out: w, mu: &sync.Mutex{}}
}

// SetDefaultLogger sets the default [slog] logger to one using
// a [Handler] that writes to [os.Stderr] and follows [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, nil)))
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	buf := &bytes.Buffer{}
	if r.Level != slog.LevelInfo {
		buf.WriteString(ApplyLevelColor(r.Level, r.Level.String()))
		buf.WriteByte(' ')
	}
	buf.WriteString(ApplyLevelColor(r.Level, r.Message))
	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(buf, h.group, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	for _, a := range attrs {
		appendAttr(buf, h.group, a)
	}
	nh.attrs = buf.Bytes()
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if nh.group != "" {
		nh.group += "."
	}
	nh.group += name
	return &nh
}

// appendAttr writes the given attribute to the buffer, qualifying
// its key with the given group and flattening nested groups.
func appendAttr(buf *bytes.Buffer, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(buf, key, ga)
		}
		return
	}
	fmt.Fprintf(buf, " %s=%v", DebugColor(key), a.Value.Any())
}
