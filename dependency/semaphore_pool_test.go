// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import (
	"testing"

	"github.com/gogpu/vkcore/vk"
)

func TestSemaphorePoolAcquireReturnsReleasedSemaphore(t *testing.T) {
	p := newSemaphorePool(vk.NewCommands(), vk.Device(1), 4)

	sem := vk.Semaphore(42)
	p.release(sem)

	if got := p.acquire(); got != sem {
		t.Fatalf("acquire() = %v after release(%v), want the released handle reused", got, sem)
	}
}

func TestSemaphorePoolFreeListIsLIFO(t *testing.T) {
	p := newSemaphorePool(vk.NewCommands(), vk.Device(1), 4)

	p.release(vk.Semaphore(1))
	p.release(vk.Semaphore(2))

	if got := p.acquire(); got != vk.Semaphore(2) {
		t.Fatalf("acquire() = %v, want the most recently released handle", got)
	}
	if got := p.acquire(); got != vk.Semaphore(1) {
		t.Fatalf("acquire() = %v, want the next most recently released handle", got)
	}
}
