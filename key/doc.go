// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package key implements the hash-key infrastructure shared by the object
// cache, the descriptor pool and the dependency injector.
//
// A [HashKey] is a variable-length, opaque byte record built by streaming
// field pushes through a [Builder]. Two logically equivalent GPU create-info
// structures must produce byte-identical keys; see package structkey for the
// extractor that builds keys from Vulkan create-info structures.
package key
