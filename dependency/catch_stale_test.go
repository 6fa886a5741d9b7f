// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import (
	"context"
	"testing"

	"github.com/gogpu/vkcore/vk"
)

// fakeAttachment is a minimal Attachment whose generation the test can
// bump independently of any SyncRecord, to simulate the renderer
// reallocating the attachment between Prepare and Catch.
type fakeAttachment struct {
	generation uint64
	signaled   bool
}

func (a *fakeAttachment) Generation() uint64 { return a.generation }
func (a *fakeAttachment) SetSignaled(v bool) { a.signaled = v }

// TestCatchStaleMatchIsAbandoned pins the resolution of the
// stale-PrepareCatch open question: when a record's attachment has been
// reallocated (its generation advanced) since the record was claimed by
// Prepare, a same-injection Catch match for it is treated as if it had
// never matched — the record's stage is left untouched, no barrier is
// emitted, and no semaphore is appended to the injection's output.
func TestCatchStaleMatchIsAbandoned(t *testing.T) {
	d := newTestObject()
	ctx := context.Background()
	attachment := &fakeAttachment{generation: 1}
	res := ResourceRef{IsBuffer: false, Image: vk.Image(5), Attachment: attachment}

	inj := NewInjection(FamilyGraphics, vk.Queue(1))
	signal := Command{Kind: CommandSignal, Resource: res, DstAccess: vk.AccessColorAttachmentWrite, DstStage: vk.PipelineStageTopOfPipe}
	if err := d.Prepare(ctx, vk.CommandBuffer(1), false, []Command{signal}, []InputRef{{Resource: res}}, inj); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(inj.owned) != 1 {
		t.Fatalf("owned %d records after Prepare, want 1", len(inj.owned))
	}
	rec := inj.owned[0].record
	if rec.Stage != Prepare {
		t.Fatalf("stage after Prepare = %v, want Prepare", rec.Stage)
	}

	// Simulate the renderer reallocating the attachment before the
	// matching Catch runs.
	attachment.generation = 2

	wait := Command{Kind: CommandWait, Resource: res}
	if err := d.Catch(ctx, vk.CommandBuffer(1), []Command{wait}, nil, inj); err != nil {
		t.Fatalf("Catch: %v", err)
	}

	if rec.Stage != Prepare {
		t.Fatalf("stage after stale Catch = %v, want unchanged Prepare", rec.Stage)
	}
	if len(inj.owned) != 1 {
		t.Fatalf("owned %d records after stale Catch, want 1 (Catch must not have taken ownership)", len(inj.owned))
	}
	if len(inj.Out.Waits) != 0 {
		t.Fatalf("Out.Waits = %v, want empty: a stale match must not emit a semaphore wait", inj.Out.Waits)
	}

	if err := d.Abort(inj); err != nil {
		t.Fatalf("Abort: %v", err)
	}
}

// TestCatchFreshMatchStillWorks is the control: an unchanged generation
// must still produce the normal PrepareCatch fast path.
func TestCatchFreshMatchStillWorks(t *testing.T) {
	d := newTestObject()
	ctx := context.Background()
	attachment := &fakeAttachment{generation: 1}
	res := ResourceRef{IsBuffer: false, Image: vk.Image(6), Attachment: attachment}

	inj := NewInjection(FamilyGraphics, vk.Queue(1))
	signal := Command{Kind: CommandSignal, Resource: res, DstAccess: vk.AccessColorAttachmentWrite, DstStage: vk.PipelineStageTopOfPipe}
	if err := d.Prepare(ctx, vk.CommandBuffer(1), false, []Command{signal}, []InputRef{{Resource: res}}, inj); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	wait := Command{Kind: CommandWait, Resource: res}
	if err := d.Catch(ctx, vk.CommandBuffer(1), []Command{wait}, nil, inj); err != nil {
		t.Fatalf("Catch: %v", err)
	}

	rec := inj.owned[0].record
	if rec.Stage != PrepareCatch {
		t.Fatalf("stage = %v, want PrepareCatch", rec.Stage)
	}
	if len(inj.owned) != 2 {
		t.Fatalf("owned %d records, want 2 (Prepare then Catch both take ownership)", len(inj.owned))
	}

	if err := d.Finish(inj); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}
