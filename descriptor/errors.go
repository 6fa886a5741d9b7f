// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"errors"
	"fmt"

	"github.com/gogpu/vkcore/vk"
)

// ErrNoCompatibleLayout is returned by Get when allocating a set runs out
// of pool space in a block that holds no sets yet, such as the fresh block
// Get retries in after retiring a full one.
var ErrNoCompatibleLayout = errors.New("descriptor: unable to allocate descriptor set")

// ErrSubAlreadyLinked is not returned by this package: Sub always links a
// newly created PoolSub, so no subordinate is linked twice.
var ErrSubAlreadyLinked = errors.New("descriptor: subordinate already linked")

// vkError wraps a failing VkResult with the entry point that produced it.
type vkError struct {
	op     string
	result vk.Result
}

func (e *vkError) Error() string {
	return fmt.Sprintf("descriptor: %s failed: %d", e.op, e.result)
}

// isOutOfPoolMemory reports whether result indicates the block that
// produced it should be retired and a fresh one tried.
func isOutOfPoolMemory(result vk.Result) bool {
	return result == vk.ErrorOutOfPoolMemory || result == vk.ErrorFragmentedPool
}

// exhaustionReason maps a pool-exhaustion VkResult to a low-cardinality
// Prometheus label value.
func exhaustionReason(result vk.Result) string {
	switch result {
	case vk.ErrorOutOfPoolMemory:
		return "out_of_pool_memory"
	case vk.ErrorFragmentedPool:
		return "fragmented_pool"
	default:
		return "unknown"
	}
}
