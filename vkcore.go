// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vkcore is the module root: it re-exports the one knob every
// embedding application needs regardless of which subsystem
// (cache/descriptor/dependency) it uses — the shared logger — the same way
// the teacher's hal package exposes hal.SetLogger/hal.Logger as the public
// face of its own internal atomic-pointer singleton.
package vkcore

import (
	"log/slog"

	"github.com/gogpu/vkcore/internal/telemetry"
)

// SetLogger configures the logger used by cache, descriptor, and dependency.
// Passing nil restores the silent default. Safe for concurrent use.
//
// Log levels follow: Debug for cache element construction and dependency
// catch/prepare completion, Warn for recoverable anomalies (a stale
// attachment match, a Signal resource that is not an operation input, the
// semaphore pool growing past its configured capacity). Nothing is logged
// at Info or Error level.
func SetLogger(l *slog.Logger) {
	telemetry.SetLogger(l)
}

// Logger returns the logger currently configured for this module.
func Logger() *slog.Logger {
	return telemetry.Logger()
}
