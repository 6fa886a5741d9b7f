// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package descriptor implements the per-thread descriptor set pool: a
// shared set of raw VkDescriptorPool-backed blocks, a per-thread
// [PoolSub] that claims a block and owns a lockless mutable map of the
// descriptor sets it built, and a shared immutable map that [DescriptorPool.Flush]
// promotes subordinate contributions into. Recycling is deferred by a
// flushes-remaining countdown so a descriptor set is never reused while a
// submitted command buffer might still reference it.
package descriptor
