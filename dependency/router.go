// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import (
	"github.com/gogpu/vkcore/internal/config"
	"github.com/gogpu/vkcore/vk"
)

// Family identifies which physical queue family a routed operation
// targets.
type Family uint8

const (
	FamilyGraphics Family = iota
	FamilyCompute
	FamilyTransfer
)

func (f Family) String() string {
	switch f {
	case FamilyGraphics:
		return "graphics"
	case FamilyCompute:
		return "compute"
	case FamilyTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Async-compute and async-transfer are routing hints this module layers
// onto VkAccessFlags' otherwise-unused high bits (core Vulkan 1.3 only
// defines bits 0-16; extensions claim scattered bits above that, none of
// which collide with these two). A caller sets one of these bits on a
// Signal command's access mask to request that the signal route to the
// compute or transfer family instead of the default graphics family.
const (
	AccessAsyncComputeHint  vk.AccessFlags = 1 << 28
	AccessAsyncTransferHint vk.AccessFlags = 1 << 29
)

// RouteAccessMask decides which queue family a command carrying mask
// targets: async-compute routes to compute, async-transfer routes to
// transfer, anything else routes to graphics. needsIgnored reports
// whether a resource this routed to is memory-concurrent, in which case
// no ownership transfer applies regardless of family (both barrier sides
// use VK_QUEUE_FAMILY_IGNORED).
func RouteAccessMask(mask vk.AccessFlags, memoryConcurrent bool) (family Family, needsIgnored bool) {
	switch {
	case mask&AccessAsyncComputeHint != 0:
		family = FamilyCompute
	case mask&AccessAsyncTransferHint != 0:
		family = FamilyTransfer
	default:
		family = FamilyGraphics
	}
	return family, memoryConcurrent
}

// QueueFamilyIndex resolves a Family to a physical queue family index
// using the router configuration supplied at DependencyObject creation.
type QueueFamilyIndex struct {
	Graphics uint32
	Compute  uint32
	Transfer uint32
}

// FamilyIndexFromConfig converts the queue-family indices an embedder
// loaded via internal/config into the QueueFamilyIndex New expects. The
// router keeps its own plain-struct parameter rather than taking
// *config.DependencyConfig directly, so a caller with no YAML file at all
// can still build one by hand without importing internal/config.
func FamilyIndexFromConfig(cfg config.DependencyConfig) QueueFamilyIndex {
	return QueueFamilyIndex{
		Graphics: cfg.GraphicsQueueFamily,
		Compute:  cfg.ComputeQueueFamily,
		Transfer: cfg.TransferQueueFamily,
	}
}

// Resolve returns the physical queue family index for f.
func (q QueueFamilyIndex) Resolve(f Family) uint32 {
	switch f {
	case FamilyCompute:
		return q.Compute
	case FamilyTransfer:
		return q.Transfer
	default:
		return q.Graphics
	}
}

// QueueTable resolves a Family to the actual vk.Queue handle a
// DependencyObject submits that family's routed work to.
type QueueTable struct {
	Graphics vk.Queue
	Compute  vk.Queue
	Transfer vk.Queue
}

// Resolve returns the queue handle for f.
func (q QueueTable) Resolve(f Family) vk.Queue {
	switch f {
	case FamilyCompute:
		return q.Compute
	case FamilyTransfer:
		return q.Transfer
	default:
		return q.Graphics
	}
}
