// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import (
	"context"
	"sync"

	"github.com/gogpu/vkcore/vk"

	"github.com/gogpu/vkcore/internal/assert"
	"github.com/gogpu/vkcore/internal/metrics"
	"github.com/gogpu/vkcore/internal/telemetry"
	"github.com/gogpu/vkcore/internal/tracing"
)

// InputRef is one of an operation's input references: the resource plus
// the access/stage the operation itself performs on it, used by Catch to
// emit an initial layout transition for inputs no Wait command covered.
type InputRef struct {
	Resource ResourceRef
	Access   vk.AccessFlags
	Stage    vk.PipelineStageFlags
}

// DependencyObject is the per-context dependency injector: a deque of
// [SyncRecord]s plus the queue/family routing table needed to decide
// same-queue vs. cross-queue hand-offs.
type DependencyObject struct {
	cmds     *vk.Commands
	device   vk.Device
	queues   QueueTable
	families QueueFamilyIndex

	lock    sync.Mutex
	records []*SyncRecord

	// semCount is the length of the semaphore-bearing prefix d.records
	// maintains: every record in d.records[:semCount] carries
	// HasSemaphore, every record past it doesn't. claimLocked inserts new
	// semaphore records at the back of this prefix; shrinkLocked retires
	// dead ones from its front, oldest first.
	semCount uint32

	semaphores *semaphorePool
}

// New creates a dependency object targeting device. queues resolves the
// Family a routed Signal lands on to the actual queue handle used to
// detect same-queue vs. cross-queue hand-offs; families resolves it to
// the physical queue-family index ownership-transfer barriers need.
// waitCapacity bounds the pool of semaphores reused across cross-queue
// hand-offs; see config.DependencyConfig.WaitCapacity.
func New(cmds *vk.Commands, device vk.Device, queues QueueTable, families QueueFamilyIndex, waitCapacity uint32) *DependencyObject {
	return &DependencyObject{
		cmds:       cmds,
		device:     device,
		queues:     queues,
		families:   families,
		semaphores: newSemaphorePool(cmds, device, waitCapacity),
	}
}

// Len reports the number of live sync records tracked, for tests and
// diagnostics.
func (d *DependencyObject) Len() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.records)
}

// Catch consumes the Wait commands of one operation: for each, it finds
// the matching sync record left by a producer's Prepare, transitions it,
// emits any barrier it requires, and accumulates semaphore waits into
// injection.Out. inputs lists every input reference the operation reads,
// used after the wait loop to transition any input no Wait covered.
func (d *DependencyObject) Catch(ctx context.Context, cmd vk.CommandBuffer, waits []Command, inputs []InputRef, injection *Injection) error {
	ctx, span := tracing.Start(ctx, "dependency.Catch", tracing.AttrInjection.String(injection.ID.String()))
	defer span.End()

	d.lock.Lock()
	defer d.lock.Unlock()

	d.gcUsedLocked()

	for _, w := range waits {
		if w.Kind != CommandWait {
			continue
		}
		rec := d.findWaitMatchLocked(w.Resource, injection)
		if rec == nil {
			continue
		}

		// A stale match (the referenced attachment was reallocated since
		// this record was claimed) is treated as if it had never
		// matched: no stage transition, no barrier, no semaphore — the
		// producer's hand-off is simply abandoned for this consumer.
		if rec.isStale() {
			metrics.DependencyStaleResolutions.Inc()
			telemetry.Logger().WarnContext(ctx, "dependency catch: stale attachment match skipped", "injection_id", injection.ID)
			continue
		}

		if rec.Stage == Prepare {
			rec.Stage = PrepareCatch
		} else {
			rec.Stage = Catch
		}
		rec.OwningInjection = injection
		injection.own(rec, true)
		injection.markTransitioned(w.Resource.handle())

		if rec.Flags.has(NeedsBarrier) {
			emitBarrier(d.cmds, cmd, buildBarrier(rec))
		}
		if rec.Flags.has(HasSemaphore) {
			injection.Out.Waits = append(injection.Out.Waits, rec.Semaphore)
			injection.Out.WaitStages = append(injection.Out.WaitStages, rec.SemStages)
		}

		metrics.DependencyInjections.WithLabelValues("catch").Inc()
	}

	for _, in := range inputs {
		if in.Resource.IsBuffer {
			continue
		}
		if !injection.markTransitioned(in.Resource.handle()) {
			continue
		}
		layout := layoutForAccess(in.Access)
		emitBarrier(d.cmds, cmd, initialLayoutTransition(in.Resource, in.Access, in.Stage, layout))
	}

	telemetry.Logger().DebugContext(ctx, "dependency catch complete", "injection_id", injection.ID, "waits", len(waits), "inputs", len(inputs))
	return nil
}

// findWaitMatchLocked finds a record destined for injection's queue that
// is Pending, or Prepare-owned by this same injection (the PrepareCatch
// fast path), whose resource matches want. Callers must hold d.lock.
func (d *DependencyObject) findWaitMatchLocked(want ResourceRef, injection *Injection) *SyncRecord {
	for _, rec := range d.records {
		if !rec.Resource.equalHandle(want) {
			continue
		}
		if rec.DstQueue != injection.Queue {
			continue
		}
		if rec.Stage == Pending {
			return rec
		}
		if rec.Stage == Prepare && rec.OwningInjection == injection {
			return rec
		}
	}
	return nil
}

// gcUsedLocked drops Used records whose WaitsRemaining has reached zero
// back to Unused, opportunistically, before a Catch pass searches the
// deque. Callers must hold d.lock.
func (d *DependencyObject) gcUsedLocked() {
	for _, rec := range d.records {
		if rec.Stage == Used && rec.WaitsRemaining == 0 {
			rec.Stage = Unused
		}
	}
}

// Prepare consumes the Signal/SignalFrom/SignalRange/SignalRangeFrom
// commands of one operation: for each, it resolves which input
// references the signal covers, claims (or shares) a sync record per
// resource, and emits a prepare-side barrier immediately if one is
// needed (an ownership release or a host-visibility flush).
func (d *DependencyObject) Prepare(ctx context.Context, cmd vk.CommandBuffer, blocking bool, signals []Command, inputs []InputRef, injection *Injection) error {
	ctx, span := tracing.Start(ctx, "dependency.Prepare", tracing.AttrInjection.String(injection.ID.String()))
	defer span.End()

	d.lock.Lock()
	defer d.lock.Unlock()

	for _, s := range signals {
		if s.Kind == CommandWait {
			continue
		}

		targets, err := d.resolveSignalTargets(s, inputs)
		if err != nil {
			telemetry.Logger().WarnContext(ctx, "dependency prepare: signal resource not an input", "error", err)
			continue
		}

		family, _ := RouteAccessMask(s.DstAccess, false)
		queue := d.queues.Resolve(family)

		for _, ref := range targets {
			if s.isRange() {
				ref.Range = s.effectiveRange()
			}
			memConcurrent := ref.MemoryConcurrent
			_, ignored := RouteAccessMask(s.DstAccess, memConcurrent)
			needSem := (family != injection.Family || queue != injection.Queue) && !blocking

			rec := d.claimLocked(ref, needSem, family, queue, s.DstStage, injection)

			rec.SrcAccess, rec.SrcStage = 0, vk.PipelineStageTopOfPipe
			if s.isFrom() {
				rec.SrcAccess, rec.SrcStage = s.SrcAccess, s.SrcStage
			}
			rec.DstAccess, rec.DstStage = s.DstAccess, s.DstStage

			rec.OldLayout = layoutForAccess(rec.SrcAccess)
			rec.NewLayout = layoutForAccess(rec.DstAccess)
			if s.Discard && rec.OldLayout != rec.NewLayout {
				rec.OldLayout = vk.ImageLayoutUndefined
			}

			rec.SrcQueueFamily, rec.DstQueueFamily = vk.QueueFamilyIgnored, vk.QueueFamilyIgnored
			if !memConcurrent && !ignored {
				crossQueue := family != injection.Family || queue != injection.Queue
				if crossQueue && !s.Discard {
					rec.SrcQueueFamily = d.families.Resolve(injection.Family)
					rec.DstQueueFamily = d.families.Resolve(family)
				}
			}

			srcWrites := rec.SrcAccess.IsWrite()
			crossQueue := family != injection.Family || queue != injection.Queue
			ownershipTransfer := rec.SrcQueueFamily != rec.DstQueueFamily &&
				rec.SrcQueueFamily != vk.QueueFamilyIgnored && rec.DstQueueFamily != vk.QueueFamilyIgnored
			layoutTransition := rec.OldLayout != rec.NewLayout

			if (!crossQueue && (srcWrites || rec.DstAccess.IsWrite())) ||
				(crossQueue && !s.Discard && !memConcurrent) || layoutTransition {
				rec.Flags |= NeedsBarrier
			}
			if (!crossQueue && srcWrites) || ownershipTransfer || layoutTransition {
				rec.Flags |= NeedsMemoryBarrier
			}

			needsRelease := crossQueue && !s.Discard && !memConcurrent
			needsHostFlush := rec.DstAccess.IsHostAccess() && srcWrites
			if needsRelease || needsHostFlush {
				release := buildBarrier(rec)
				if needsRelease {
					release.DstStageMask = vk.PipelineStageTopOfPipe
					if len(release.Buffer) > 0 {
						release.Buffer[0].DstAccessMask = 0
					}
					if len(release.Image) > 0 {
						release.Image[0].DstAccessMask = 0
					}
				}
				emitBarrier(d.cmds, cmd, release)
			}

			rec.Generation = 0
			if ref.Attachment != nil {
				rec.Generation = ref.Attachment.Generation()
			}
			rec.Stage = Prepare
			rec.OwningInjection = injection
			injection.own(rec, false)

			metrics.DependencyInjections.WithLabelValues("prepare").Inc()
		}
	}

	telemetry.Logger().DebugContext(ctx, "dependency prepare complete", "injection_id", injection.ID, "signals", len(signals))
	return nil
}

// resolveSignalTargets returns the input references a signal command
// applies to: the named resource alone (validated against inputs), or
// every input reference if the command carries no resource.
func (d *DependencyObject) resolveSignalTargets(s Command, inputs []InputRef) ([]ResourceRef, error) {
	if s.Resource.handle() == 0 && !s.Resource.IsBuffer {
		out := make([]ResourceRef, len(inputs))
		for i, in := range inputs {
			out[i] = in.Resource
		}
		return out, nil
	}
	for _, in := range inputs {
		if in.Resource.equalHandle(s.Resource) {
			return []ResourceRef{s.Resource}, nil
		}
	}
	return nil, ErrResourceNotAnInput
}

// claimLocked returns a sync record for ref: a fresh non-semaphore record
// appended to the back of the deque, or, when needSem, a semaphore
// record inserted at the back of the semaphore-bearing front prefix
// (shared with another record this same injection already prepared
// targeting the same family/queue, when one exists). Callers must hold
// d.lock.
func (d *DependencyObject) claimLocked(ref ResourceRef, needSem bool, family Family, queue vk.Queue, dstStage vk.PipelineStageFlags, injection *Injection) *SyncRecord {
	if needSem {
		if shared := injection.sharedSemaphoreRecord(family); shared != nil {
			shared.SemStages |= dstStage
			rec := &SyncRecord{Resource: ref, DstFamily: family, DstQueue: queue}
			rec.Flags |= HasSemaphore
			rec.Semaphore = shared.Semaphore
			d.insertSemaphoreRecordLocked(rec)
			return rec
		}
	}

	rec := &SyncRecord{Resource: ref, DstFamily: family, DstQueue: queue}
	if needSem {
		sem := d.semaphores.acquire()
		rec.Flags |= HasSemaphore
		rec.Semaphore = sem
		rec.SemStages = dstStage
		injection.Out.Signals = append(injection.Out.Signals, sem)
		injection.rememberSemaphore(family, rec)
		d.insertSemaphoreRecordLocked(rec)
		return rec
	}

	d.records = append(d.records, rec)
	return rec
}

// insertSemaphoreRecordLocked inserts rec at index semCount, the back of
// the semaphore-bearing prefix, and grows semCount — maintaining the
// invariant that d.records[:semCount] holds exactly the records carrying
// HasSemaphore, oldest-claimed first. Callers must hold d.lock.
func (d *DependencyObject) insertSemaphoreRecordLocked(rec *SyncRecord) {
	assert.That(rec.Flags.has(HasSemaphore), "insertSemaphoreRecordLocked: rec must carry HasSemaphore")
	d.records = append(d.records, nil)
	copy(d.records[d.semCount+1:], d.records[d.semCount:])
	d.records[d.semCount] = rec
	d.semCount++
}

// Finish finalizes a successful operation: Prepare-owned records advance
// to Pending, Catch/PrepareCatch-owned records advance to Used (if they
// carry a semaphore) or Unused otherwise.
func (d *DependencyObject) Finish(injection *Injection) error {
	return d.finalize(injection, true)
}

// Abort rolls back a failed operation: Catch/PrepareCatch-owned records
// revert to Pending so a future Catch can still retire them,
// Prepare-owned records revert to Unused.
func (d *DependencyObject) Abort(injection *Injection) error {
	return d.finalize(injection, false)
}

func (d *DependencyObject) finalize(injection *Injection, success bool) error {
	if injection.finalized {
		return ErrAlreadyFinalized
	}
	injection.finalized = true

	d.lock.Lock()
	defer d.lock.Unlock()

	injection.Out = InjectionOutput{}

	for _, o := range injection.owned {
		r := o.record
		if r.Resource.Attachment != nil {
			switch {
			case success && r.Stage == Prepare:
				r.Resource.Attachment.SetSignaled(true)
			case r.Stage == Catch || r.Stage == PrepareCatch:
				r.Resource.Attachment.SetSignaled(false)
			}
		}

		if success {
			switch r.Stage {
			case Prepare:
				r.Stage = Pending
			case Catch, PrepareCatch:
				if r.Flags.has(HasSemaphore) {
					r.Stage = Used
					r.WaitsRemaining = 0
				} else {
					r.Stage = Unused
				}
			}
		} else {
			switch r.Stage {
			case Catch, PrepareCatch:
				r.Stage = Pending
			case Prepare:
				r.Stage = Unused
			}
		}
		r.OwningInjection = nil
	}

	d.shrinkLocked()
	return nil
}

// shrinkLocked drops dead records from both ends of the deque, each end
// kept separate by the semCount partition claimLocked maintains: Unused
// records from the back (non-semaphore) region first, closing gaps by
// compacting the survivors forward, then Unused records from the front
// (semaphore) region, oldest first, releasing their semaphores back to
// the pool as they go. Callers must hold d.lock.
func (d *DependencyObject) shrinkLocked() {
	back := d.records[d.semCount:][:0]
	for _, rec := range d.records[d.semCount:] {
		assert.That(!rec.Flags.has(HasSemaphore), "shrinkLocked: back region must hold no semaphore records")
		if rec.Stage == Unused {
			continue
		}
		back = append(back, rec)
	}
	d.records = append(d.records[:d.semCount], back...)

	front := 0
	for front < int(d.semCount) {
		rec := d.records[front]
		assert.That(rec.Flags.has(HasSemaphore), "shrinkLocked: front region must hold only semaphore records")
		if rec.Stage != Unused {
			break
		}
		d.semaphores.release(rec.Semaphore)
		front++
	}
	d.records = d.records[front:]
	d.semCount -= uint32(front)
}
