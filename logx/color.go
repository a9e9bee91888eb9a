// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// profile is the color profile of the terminal attached to stderr.
// It honors NO_COLOR and CLICOLOR_FORCE.
var profile = termenv.NewOutput(os.Stderr).EnvColorProfile()

func colorize(c termenv.ANSIColor, str string) string {
	return profile.String(str).Foreground(profile.Convert(c)).String()
}

// DebugColor applies the color associated with debug messages to the given string.
func DebugColor(str string) string { return colorize(termenv.ANSIBrightBlack, str) }

// InfoColor applies the color associated with info messages to the given string.
func InfoColor(str string) string { return colorize(termenv.ANSICyan, str) }

// WarnColor applies the color associated with warning messages to the given string.
func WarnColor(str string) string { return colorize(termenv.ANSIYellow, str) }

// ErrorColor applies the color associated with error messages to the given string.
func ErrorColor(str string) string { return colorize(termenv.ANSIRed, str) }

// SuccessColor applies the color associated with success to the given string.
func SuccessColor(str string) string { return colorize(termenv.ANSIGreen, str) }

// CmdColor applies the color associated with terminal commands and flags to the given string.
func CmdColor(str string) string {
	return profile.String(str).Foreground(profile.Convert(termenv.ANSIBlue)).Bold().String()
}

// ApplyLevelColor applies the color associated with the given level to the
// given string. Info messages are returned unchanged.
func ApplyLevelColor(level slog.Level, str string) string {
	switch {
	case level >= slog.LevelError:
		return ErrorColor(str)
	case level >= slog.LevelWarn:
		return WarnColor(str)
	case level >= slog.LevelInfo:
		return str
	default:
		return DebugColor(str)
	}
}
