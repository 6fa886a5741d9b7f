// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cache implements the two-tier object cache described by the
// runtime's structural-key caching design: an immutable map that the
// fast path reads without locking, and a mutable map that absorbs
// per-frame insertions until the next [ObjectCache.Flush] promotes them.
//
// Callers never insert a [CacheElement] into a tier themselves; they pass a
// constructor closure to [ObjectCache.Get] or [ObjectCache.Warmup] that
// knows how to build the underlying Vulkan object (via [structkey] and the
// [vk] package), and the cache owns the resulting handle's lifetime from
// that point on.
package cache
