// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"cogentcore.org/spvbatch/logx"
	"github.com/iancoleman/strcase"
)

// Usage returns the usage string for the given command
// on the given config object with the given commands.
func Usage[T any](opts *Options, cfg T, cmd string, cmds ...*Cmd[T]) string {
	var b strings.Builder
	if opts.AppAbout != "" {
		b.WriteString(opts.AppAbout + "\n\n")
	}

	fcmd := cmd
	if fcmd == "" {
		for _, c := range cmds {
			if c.Root {
				fcmd = c.Name
			}
		}
	}
	fields, err := Fields(cfg, fcmd)
	if err != nil {
		return err.Error()
	}

	b.WriteString("Usage:\n\t" + logx.CmdColor(opts.AppName))
	if cmd != "" {
		b.WriteString(" " + logx.CmdColor(cmd))
	} else if len(cmds) > 1 {
		b.WriteString(" " + logx.CmdColor("[command]"))
	}
	b.WriteString(" " + logx.CmdColor("[flags]"))
	for _, f := range posArgFields(fields) {
		b.WriteString(" " + logx.CmdColor("<"+strcase.ToKebab(f.Field.Name)+">"))
	}
	b.WriteString("\n\n")

	if cmd == "" && len(cmds) > 1 {
		b.WriteString("Commands:\n")
		for _, c := range cmds {
			b.WriteString("\t" + logx.CmdColor(c.Name))
			doc := c.Doc
			if c.Root {
				doc = strings.TrimSpace("(default) " + doc)
			}
			if doc != "" {
				b.WriteString("\n\t\t" + doc)
			}
			b.WriteString("\n")
		}
		b.WriteString("\t" + logx.CmdColor("help") + "\n\t\tshow usage information\n\n")
	}

	b.WriteString("Flags:\n")
	for _, f := range fields {
		if f.PosArg >= 0 {
			continue
		}
		names := make([]string, len(f.Names))
		for i, nm := range f.Names {
			names[i] = "-" + nm
		}
		b.WriteString("\t" + logx.CmdColor(strings.Join(names, ", ")))
		desc := f.Field.Tag.Get("desc")
		if def, ok := f.Field.Tag.Lookup("default"); ok && def != "" {
			desc = strings.TrimSpace(desc + fmt.Sprintf(" (default %s)", def))
		}
		if desc != "" {
			b.WriteString("\n\t\t" + desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("\t" + logx.CmdColor("-config, -cfg") + "\n\t\tthe TOML config file to load\n")
	b.WriteString("\t" + logx.CmdColor("-help, -h") + "\n\t\tshow usage information\n")
	return b.String()
}
