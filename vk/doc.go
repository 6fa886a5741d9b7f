// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides Pure Go Vulkan bindings, using goffi for FFI calls,
// for exactly the subset of the Vulkan API the object cache, descriptor
// pool and dependency injector call directly: object creation/destruction
// for the six cacheable create-info kinds, descriptor pool/set management,
// pipeline barriers, binary semaphores, and pipeline-cache blob
// persistence. Device/instance creation, swapchains, memory allocation and
// shader compilation are external collaborators and are not part of this
// package; every function here takes an already-opened [Device] and
// [Commands].
//
// # goffi calling convention
//
// goffi expects args[] to contain pointers to WHERE argument values are
// stored, not the values themselves — including for pointer-typed
// arguments, where a pointer-to-pointer is required. See loader.go and
// commands.go for the concrete pattern; every wrapper in this package
// follows it so mistakes are localized to one place.
package vk
