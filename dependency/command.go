// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import "github.com/gogpu/vkcore/vk"

// CommandKind discriminates the five dependency commands an operation's
// input/output list carries, per spec §4.5.
type CommandKind uint8

const (
	// CommandWait consumes a matching Signal's hand-off: it resolves to a
	// catch-side barrier and, if the producer used a different queue, a
	// semaphore wait.
	CommandWait CommandKind = iota
	// CommandSignal marks a plain resource as this operation's output,
	// with access/stage/layout inferred from DstAccess alone.
	CommandSignal
	// CommandSignalFrom is CommandSignal but for a resource whose prior
	// state isn't Unused (SrcAccess/SrcStage are given explicitly rather
	// than inferred, e.g. read-after-read with no barrier needed).
	CommandSignalFrom
	// CommandSignalRange narrows a Signal to a subresource range rather
	// than the resource's full extent (image resources only).
	CommandSignalRange
	// CommandSignalRangeFrom combines SignalFrom and SignalRange.
	CommandSignalRangeFrom
)

func (k CommandKind) String() string {
	switch k {
	case CommandWait:
		return "wait"
	case CommandSignal:
		return "signal"
	case CommandSignalFrom:
		return "signal_from"
	case CommandSignalRange:
		return "signal_range"
	case CommandSignalRangeFrom:
		return "signal_range_from"
	default:
		return "unknown"
	}
}

// Command is one entry in an operation's dependency command list, passed
// to [DependencyObject.Catch] (Wait kind) or [DependencyObject.Prepare]
// (the four Signal kinds).
type Command struct {
	Kind     CommandKind
	Resource ResourceRef

	// DstAccess/DstStage are the access and pipeline stage this command's
	// operation itself performs on Resource. Required on every kind.
	DstAccess vk.AccessFlags
	DstStage  vk.PipelineStageFlags

	// SrcAccess/SrcStage are given explicitly by the *From variants
	// instead of inferred from Unused. Ignored by CommandSignal and
	// CommandSignalRange.
	SrcAccess vk.AccessFlags
	SrcStage  vk.PipelineStageFlags

	// Range narrows CommandSignalRange/CommandSignalRangeFrom to a
	// subresource range smaller than Resource's full extent. Ignored by
	// the non-range kinds (which use Resource.Range as-is) and by Wait.
	Range vk.SubresourceRange

	// Discard is true when the operation does not care about the
	// resource's prior contents (e.g. a render target about to be
	// cleared): it permits skipping a read-hazard barrier the access
	// masks alone would otherwise require.
	Discard bool
}

func (c Command) isRange() bool {
	return c.Kind == CommandSignalRange || c.Kind == CommandSignalRangeFrom
}

func (c Command) isFrom() bool {
	return c.Kind == CommandSignalFrom || c.Kind == CommandSignalRangeFrom
}

// effectiveRange returns the subresource range this command actually
// targets: the narrowed Range for the two Range kinds, or the resource's
// own full range otherwise.
func (c Command) effectiveRange() vk.SubresourceRange {
	if c.isRange() {
		return c.Range
	}
	return c.Resource.Range
}
