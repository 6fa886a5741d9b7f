// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structkey

// This file enumerates, per cacheable tag, the create-info fields Extract
// skips because the Vulkan 1.3 spec documents them as non-functional with
// respect to the object the driver actually builds. Getting this set wrong
// in either direction breaks the cache: omitting a functional field
// collapses two distinct objects onto one key; including a non-functional
// field fragments one logical object across many keys. Each entry below
// names the field and the spec language that justifies dropping it.

// descriptorSetLayoutCreateInfo ignored fields:
//   - sType's pNext (all tags): extension chain, not structural.
//   - Flags: VkDescriptorSetLayoutCreateFlags carries only
//     VK_DESCRIPTOR_SET_LAYOUT_CREATE_PUSH_DESCRIPTOR_BIT_KHR and update-
//     after-bind hints in later versions; this module targets core 1.3
//     layouts only, where the field has no effect on binding compatibility
//     as defined by the "Pipeline Layout Compatibility" section, so it is
//     dropped here. (If a future version adds push-descriptor support this
//     decision must be revisited.)
//   - DescriptorSetLayoutBinding.ImmutableSamplers: each element is an
//     opaque handle, substituted via the handles array rather than pushed
//     literally.

// pipelineLayoutCreateInfo ignored fields:
//   - Flags: VkPipelineLayoutCreateFlags is reserved in core 1.3 (only
//     meaningful under VK_EXT_graphics_pipeline_library); always zero here.
//   - SetLayouts elements: opaque handles, substituted.

// samplerCreateInfo ignored fields: none — every field affects sampling
// behavior (the spec defines no hint flags for VkSamplerCreateInfo.Flags
// in core 1.3, so Flags is pushed rather than skipped).

// renderPassCreateInfo ignored fields:
//   - Flags: reserved in core 1.3.
//   - AttachmentDescription.Flags: VK_ATTACHMENT_DESCRIPTION_MAY_ALIAS_BIT
//     affects aliasing validation, not the compiled render pass object
//     identity as Vulkan implementations observe it; dropped per the same
//     reasoning recorded for pipeline flags below. Kept conservative: if a
//     driver is ever found to branch on this bit, move it back to pushed.

// graphicsPipelineCreateInfo ignored fields:
//   - Flags' VK_PIPELINE_CREATE_DERIVATIVE_BIT pairing with
//     BasePipelineHandle/BasePipelineIndex: the spec ("Pipeline Derivatives")
//     describes derivatives as a creation-time performance hint with no
//     effect on the resulting pipeline's behavior, so both fields are
//     skipped regardless of whether the bit is set.
//   - PipelineShaderStageCreateInfo.Flags: reserved in core 1.3.
//   - PipelineRasterizationStateCreateInfo is pushed field-by-field, but
//     Vulkan defines no "flags" member on it in core 1.3 (it was added
//     later under VK_EXT_depth_clip_control) so there is nothing to skip
//     there beyond what the struct's own fields already cover.
//   - PipelineViewportStateCreateInfo: only counts are pushed; actual
//     viewport/scissor rectangles are conventionally dynamic state and
//     carry no identity information when the corresponding dynamic state
//     is enabled. A reference implementer adding static viewport support
//     must extend this branch.
//   - ShaderModule, Layout, RenderPass: opaque handles, substituted
//     (BasePipelineHandle is skipped with the derivative pairing above).

// computePipelineCreateInfo ignored fields:
//   - Same derivative-pipeline pairing as graphics.
//   - Stage.Flags: reserved.
//   - Layout, Stage.Module: opaque handles, substituted (BasePipelineHandle
//     is skipped with the derivative pairing).
