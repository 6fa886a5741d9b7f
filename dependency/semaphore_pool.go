// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import (
	"unsafe"

	"github.com/gogpu/vkcore/vk"

	"github.com/gogpu/vkcore/internal/telemetry"
)

// semaphorePool is a dense pool of binary semaphores: it backs
// DependencyObject's wait_capacity so a cross-queue hand-off in steady
// state reuses a semaphore shrinkLocked already reclaimed rather than
// calling vkCreateSemaphore per record. The capacity is a warning
// threshold, not a bound: acquire creates past it, and release keeps
// every semaphore it is given.
type semaphorePool struct {
	cmds     *vk.Commands
	device   vk.Device
	capacity uint32

	created uint32
	free    []vk.Semaphore
}

func newSemaphorePool(cmds *vk.Commands, device vk.Device, capacity uint32) *semaphorePool {
	return &semaphorePool{cmds: cmds, device: device, capacity: capacity}
}

// acquire returns a semaphore: one released back to the pool if any is
// free, else a freshly created one. Once capacity is reached and none is
// free, acquire still creates another semaphore (which release later
// pools like any other) rather than fail the caller's hand-off — but logs
// a warning, since that means WaitCapacity
// is sized too low for this workload's steady-state concurrency.
func (p *semaphorePool) acquire() vk.Semaphore {
	if n := len(p.free); n > 0 {
		sem := p.free[n-1]
		p.free = p.free[:n-1]
		return sem
	}

	info := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	var sem vk.Semaphore
	if res := p.cmds.CreateSemaphore(p.device, unsafe.Pointer(&info), &sem); res != vk.Success {
		return vk.Semaphore(vk.Null)
	}

	if p.created >= p.capacity {
		telemetry.Logger().Warn("dependency semaphore pool exceeded its configured capacity",
			"capacity", p.capacity)
	}
	p.created++
	return sem
}

// release returns sem to the pool for a future acquire to reuse. Callers
// must only release semaphores this pool acquired.
func (p *semaphorePool) release(sem vk.Semaphore) {
	p.free = append(p.free, sem)
}
