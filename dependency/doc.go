// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package dependency implements the per-operation GPU synchronization
// injector: a Catch/Prepare/Finish/Abort state machine over a deque of
// [SyncRecord]s that tracks pipeline barriers and semaphores handed off
// between operations, plus the queue-family router that decides which
// physical queue a Signal command routes to.
//
// The state machine is Unused → Prepare → Pending → Catch → Used → Unused,
// with PrepareCatch as the fast path when both the signal and the wait for
// the same resource happen inside one injection's lifetime. See
// [DependencyObject.Catch] and [DependencyObject.Prepare] for the
// transition rules.
package dependency
