// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBase = New("base")

func failing() (int, error) { return 0, fmt.Errorf("wrapped: %w", errBase) }

func working() (int, error) { return 3, nil }

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := Log(fmt.Errorf("context: %w", errBase))
	assert.True(t, Is(err, errBase))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(working()))
	assert.Equal(t, 0, Log1(failing()))
	assert.Equal(t, 0, Ignore1(failing()))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(errBase) })
	assert.Equal(t, 3, Must1(working()))
	assert.Panics(t, func() { Must1(failing()) })
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.Contains(t, info, "errors_test.go")
}
