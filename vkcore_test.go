// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestSetLoggerThenLoggerRoundTrips(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	want := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(want)

	if got := Logger(); got != want {
		t.Fatal("Logger() did not return the logger passed to SetLogger")
	}
}

func TestSetLoggerNilRestoresSilentDefault(t *testing.T) {
	SetLogger(slog.New(slog.NewTextHandler(new(bytes.Buffer), nil)))
	SetLogger(nil)

	if Logger().Enabled(nil, slog.LevelError) {
		t.Fatal("Logger() must be disabled for every level after SetLogger(nil)")
	}
}
