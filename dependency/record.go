// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import "github.com/gogpu/vkcore/vk"

// Stage is a SyncRecord's position in the
// Unused → Prepare → Pending → Catch → Used → Unused state machine.
type Stage uint8

const (
	Unused Stage = iota
	Prepare
	Pending
	Catch
	PrepareCatch
	Used
)

// RecordFlags are per-record booleans decided at Prepare time and
// consumed at Catch time.
type RecordFlags uint8

const (
	// HasSemaphore marks a record that was allocated a binary semaphore
	// because its producer and consumer are on different queues.
	HasSemaphore RecordFlags = 1 << iota
	// NeedsBarrier marks a record whose catch side must emit a pipeline
	// barrier (execution-only or full memory barrier, decided by
	// NeedsMemoryBarrier).
	NeedsBarrier
	// NeedsMemoryBarrier marks a record whose catch-side barrier must
	// carry a buffer or image memory barrier rather than a bare
	// execution dependency.
	NeedsMemoryBarrier
)

func (f RecordFlags) has(bit RecordFlags) bool { return f&bit != 0 }

// Attachment is the handshake interface a caller's renderer implements so
// the dependency injector can read/write an attachment's signaled state
// and generation without reaching into a concrete renderer type.
type Attachment interface {
	// Generation returns the attachment's current generation counter,
	// incremented whenever the attachment is reallocated (e.g. resized).
	// A SyncRecord whose stored generation no longer matches is stale.
	Generation() uint64
	// SetSignaled updates the attachment's signaled flag: true once a
	// Prepare on this attachment succeeds, false once a Catch consumes it.
	SetSignaled(bool)
}

// ResourceRef identifies the buffer or image a SyncRecord or operation
// input reference targets.
type ResourceRef struct {
	IsBuffer bool
	Buffer   vk.Buffer
	Image    vk.Image
	Range    vk.SubresourceRange

	// MemoryConcurrent mirrors whether the resource was created with
	// VK_SHARING_MODE_CONCURRENT: concurrent resources never need an
	// ownership-transfer barrier pair.
	MemoryConcurrent bool

	// Attachment is non-nil when this reference is a renderer attachment;
	// its Generation() is snapshotted into the SyncRecord at claim time.
	Attachment Attachment
}

// equalHandle reports whether r and other name the same underlying
// Vulkan object, ignoring range/attachment/concurrency metadata.
func (r ResourceRef) equalHandle(other ResourceRef) bool {
	if r.IsBuffer != other.IsBuffer {
		return false
	}
	if r.IsBuffer {
		return r.Buffer == other.Buffer
	}
	return r.Image == other.Image
}

// SyncRecord is one tracked hand-off of a resource between two GPU
// operations: a catch-side barrier description plus, if cross-queue, a
// semaphore.
type SyncRecord struct {
	Resource   ResourceRef
	Generation uint64

	Stage Stage
	Flags RecordFlags

	// OwningInjection is the injection currently responsible for
	// transitioning this record (the Prepare or the Catch side,
	// depending on Stage). nil when the record is Unused or Pending.
	OwningInjection *Injection

	// DstFamily/DstQueue are the consumer side's queue routing, set by
	// Prepare (via RouteAccessMask) and read back by Catch to match
	// against the wait's injection queue.
	DstFamily Family
	DstQueue  vk.Queue

	SrcAccess vk.AccessFlags
	DstAccess vk.AccessFlags
	SrcStage  vk.PipelineStageFlags
	DstStage  vk.PipelineStageFlags
	OldLayout vk.ImageLayout
	NewLayout vk.ImageLayout

	SrcQueueFamily uint32
	DstQueueFamily uint32

	Semaphore vk.Semaphore
	SemStages vk.PipelineStageFlags

	// WaitsRemaining counts outstanding waits on a Used record; Catch's
	// opportunistic GC pass transitions a record to Unused once this
	// reaches zero.
	WaitsRemaining uint32
}

func (r *SyncRecord) isStale() bool {
	return r.Resource.Attachment != nil && r.Resource.Attachment.Generation() != r.Generation
}
