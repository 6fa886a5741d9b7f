// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "testing"

func TestBufferMemoryBarrierIsOwnershipTransfer(t *testing.T) {
	cases := []struct {
		name string
		b    BufferMemoryBarrier
		want bool
	}{
		{"same family both sides", BufferMemoryBarrier{SrcQueueFamilyIndex: 0, DstQueueFamilyIndex: 0}, false},
		{"differing families", BufferMemoryBarrier{SrcQueueFamilyIndex: 0, DstQueueFamilyIndex: 1}, true},
		{"src ignored", BufferMemoryBarrier{SrcQueueFamilyIndex: QueueFamilyIgnored, DstQueueFamilyIndex: 1}, false},
		{"both ignored", BufferMemoryBarrier{SrcQueueFamilyIndex: QueueFamilyIgnored, DstQueueFamilyIndex: QueueFamilyIgnored}, false},
	}
	for _, c := range cases {
		if got := c.b.IsOwnershipTransfer(); got != c.want {
			t.Errorf("%s: IsOwnershipTransfer() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestImageMemoryBarrierIsOwnershipTransfer(t *testing.T) {
	b := ImageMemoryBarrier{SrcQueueFamilyIndex: 0, DstQueueFamilyIndex: 2}
	if !b.IsOwnershipTransfer() {
		t.Error("IsOwnershipTransfer() = false, want true for differing non-ignored families")
	}
}

func TestImageMemoryBarrierIsLayoutTransition(t *testing.T) {
	same := ImageMemoryBarrier{OldLayout: ImageLayoutGeneral, NewLayout: ImageLayoutGeneral}
	if same.IsLayoutTransition() {
		t.Error("IsLayoutTransition() = true for identical layouts, want false")
	}
	changed := ImageMemoryBarrier{OldLayout: ImageLayoutUndefined, NewLayout: ImageLayoutColorAttachmentOptimal}
	if !changed.IsLayoutTransition() {
		t.Error("IsLayoutTransition() = false for differing layouts, want true")
	}
}

func TestPipelineBarrierIsEmpty(t *testing.T) {
	empty := PipelineBarrier{SrcStageMask: PipelineStageTopOfPipe, DstStageMask: PipelineStageBottomOfPipe}
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for a barrier with no memory/buffer/image entries")
	}

	withImage := PipelineBarrier{Image: []ImageMemoryBarrier{{}}}
	if withImage.IsEmpty() {
		t.Error("IsEmpty() = true despite carrying an image barrier")
	}

	withBuffer := PipelineBarrier{Buffer: []BufferMemoryBarrier{{}}}
	if withBuffer.IsEmpty() {
		t.Error("IsEmpty() = true despite carrying a buffer barrier")
	}
}
