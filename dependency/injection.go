// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import (
	"github.com/google/uuid"

	"github.com/gogpu/vkcore/vk"
)

// Injection is the per-operation handle returned to a caller bracketing
// one GPU operation's Catch/Prepare pair: it carries the wait/signal
// semaphores the operation's command buffer submission needs, and tracks
// which records this injection itself owns so Finish/Abort can transition
// them without re-walking the command list.
type Injection struct {
	// ID uniquely identifies this injection for logging and tracing
	// correlation across the Catch/Prepare/Finish calls that share it —
	// there is no other stable handle a caller can log alongside a
	// submission, since the Injection itself is mutated in place.
	ID uuid.UUID

	// Family/Queue are the physical destination this operation submits
	// to, supplied by the caller (the router only chooses a Family for
	// cross-queue Signal commands; the operation's own submission queue
	// is always known up front).
	Family Family
	Queue  vk.Queue

	// Out accumulates what the caller's vkQueueSubmit needs.
	Out InjectionOutput

	// owned lists every record this injection transitioned during Catch
	// or Prepare, in the order transitioned, so Finish/Abort can walk
	// exactly these records rather than the whole deque.
	owned []*ownedRecord

	// transitionedInputs marks, by resource handle, every resource this
	// injection's Catch has already handled: each resource a matched Wait
	// command covered, and each input given an initial layout transition —
	// so the input pass skips resources a Wait already covered and no
	// input is transitioned twice.
	transitionedInputs map[uintptr]bool

	// semByFamily remembers, per destination family, the first record
	// this injection's Prepare allocated a semaphore for — so a second
	// Signal routed to the same family shares that semaphore rather than
	// allocating its own, per spec §4.5.2's claim() sharing rule.
	semByFamily map[Family]*SyncRecord

	finalized bool
}

// ownedRecord pairs a record with which side (Catch vs Prepare) of this
// injection transitioned it, since Finish/Abort apply different
// transitions depending on which side owns the record.
type ownedRecord struct {
	record    *SyncRecord
	fromCatch bool
}

// InjectionOutput is the semaphore/stage material a submission needs.
type InjectionOutput struct {
	Waits       []vk.Semaphore
	WaitStages  []vk.PipelineStageFlags
	Signals     []vk.Semaphore
	SignalStage vk.PipelineStageFlags
}

// NewInjection creates an injection targeting the given submission queue.
func NewInjection(family Family, queue vk.Queue) *Injection {
	return &Injection{ID: uuid.New(), Family: family, Queue: queue}
}

func (inj *Injection) own(r *SyncRecord, fromCatch bool) {
	inj.owned = append(inj.owned, &ownedRecord{record: r, fromCatch: fromCatch})
}

func (inj *Injection) markTransitioned(handle uintptr) bool {
	if inj.transitionedInputs == nil {
		inj.transitionedInputs = make(map[uintptr]bool)
	}
	if inj.transitionedInputs[handle] {
		return false
	}
	inj.transitionedInputs[handle] = true
	return true
}

// sharedSemaphoreRecord returns the record whose semaphore a new
// cross-queue signal targeting family should share, or nil if this
// injection hasn't allocated one for family yet.
func (inj *Injection) sharedSemaphoreRecord(family Family) *SyncRecord {
	return inj.semByFamily[family]
}

// rememberSemaphore records that rec is the first record this injection
// allocated a semaphore for targeting family.
func (inj *Injection) rememberSemaphore(family Family, rec *SyncRecord) {
	if inj.semByFamily == nil {
		inj.semByFamily = make(map[Family]*SyncRecord)
	}
	inj.semByFamily[family] = rec
}

func (ref ResourceRef) handle() uintptr {
	if ref.IsBuffer {
		return uintptr(ref.Buffer)
	}
	return uintptr(ref.Image)
}
