// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structkey

import (
	"math"

	"github.com/gogpu/vkcore/key"
	"github.com/gogpu/vkcore/vk"
)

// handleCursor consumes a caller-supplied replacement-handle slice in
// declaration order, the same order Extract visits opaque handle fields.
type handleCursor struct {
	handles []uintptr
	i       int
}

func (c *handleCursor) next() (uint64, error) {
	if c.i >= len(c.handles) {
		return 0, ErrHandleCountMismatch
	}
	v := uint64(c.handles[c.i])
	c.i++
	return v, nil
}

func (c *handleCursor) exhausted() bool { return c.i == len(c.handles) }

// Extract dispatches to the typed extractor matching info's concrete type,
// returning [ErrUnknownTag] for any type this package does not cache.
func Extract(info any, handles []uintptr) (key.HashKey, error) {
	switch v := info.(type) {
	case vk.DescriptorSetLayoutCreateInfo:
		return ExtractDescriptorSetLayout(v, handles)
	case vk.PipelineLayoutCreateInfo:
		return ExtractPipelineLayout(v, handles)
	case vk.SamplerCreateInfo:
		return ExtractSampler(v, handles)
	case vk.RenderPassCreateInfo:
		return ExtractRenderPass(v, handles)
	case vk.GraphicsPipelineCreateInfo:
		return ExtractGraphicsPipeline(v, handles)
	case vk.ComputePipelineCreateInfo:
		return ExtractComputePipeline(v, handles)
	default:
		return key.HashKey{}, ErrUnknownTag
	}
}

func finish(b *key.Builder, hc *handleCursor) (key.HashKey, error) {
	if hc != nil && !hc.exhausted() {
		return key.HashKey{}, ErrHandleCountMismatch
	}
	return b.Finalize()
}

// ExtractDescriptorSetLayout implements §4.2 for
// VK_STRUCTURE_TYPE_DESCRIPTOR_SET_LAYOUT_CREATE_INFO. handles supplies one
// replacement per immutable sampler, across all bindings, in order.
func ExtractDescriptorSetLayout(info vk.DescriptorSetLayoutCreateInfo, handles []uintptr) (key.HashKey, error) {
	b := key.NewBuilder()
	hc := &handleCursor{handles: handles}

	b.PushUint32(uint32(vk.StructureTypeDescriptorSetLayoutCreateInfo))
	b.PushUint32(uint32(len(info.Bindings)))
	for _, binding := range info.Bindings {
		b.PushUint32(binding.Binding)
		b.PushUint32(uint32(binding.DescriptorType))
		b.PushUint32(binding.DescriptorCount)
		b.PushUint32(uint32(binding.StageFlags))
		b.PushUint32(uint32(len(binding.ImmutableSamplers)))
		for range binding.ImmutableSamplers {
			h, err := hc.next()
			if err != nil {
				return key.HashKey{}, err
			}
			b.PushUint64(h)
		}
	}
	return finish(b, hc)
}

// ExtractPipelineLayout implements §4.2 for
// VK_STRUCTURE_TYPE_PIPELINE_LAYOUT_CREATE_INFO. handles supplies one
// replacement per set layout, in order.
func ExtractPipelineLayout(info vk.PipelineLayoutCreateInfo, handles []uintptr) (key.HashKey, error) {
	b := key.NewBuilder()
	hc := &handleCursor{handles: handles}

	b.PushUint32(uint32(vk.StructureTypePipelineLayoutCreateInfo))
	b.PushUint32(uint32(len(info.SetLayouts)))
	for range info.SetLayouts {
		h, err := hc.next()
		if err != nil {
			return key.HashKey{}, err
		}
		b.PushUint64(h)
	}
	b.PushUint32(uint32(len(info.PushConstants)))
	for _, pc := range info.PushConstants {
		b.PushUint32(uint32(pc.StageFlags))
		b.PushUint32(pc.Offset)
		b.PushUint32(pc.Size)
	}
	return finish(b, hc)
}

// ExtractSampler implements §4.2 for VK_STRUCTURE_TYPE_SAMPLER_CREATE_INFO.
// No field is skipped and no handle is substituted: every field of
// VkSamplerCreateInfo affects sampling behavior in core Vulkan 1.3.
func ExtractSampler(info vk.SamplerCreateInfo, handles []uintptr) (key.HashKey, error) {
	if len(handles) != 0 {
		return key.HashKey{}, ErrHandleCountMismatch
	}
	b := key.NewBuilder()
	b.PushUint32(uint32(vk.StructureTypeSamplerCreateInfo))
	b.PushUint32(info.Flags)
	b.PushUint32(info.MagFilter)
	b.PushUint32(info.MinFilter)
	b.PushUint32(info.MipmapMode)
	b.PushUint32(info.AddressModeU)
	b.PushUint32(info.AddressModeV)
	b.PushUint32(info.AddressModeW)
	b.PushFloat32(info.MipLodBias)
	b.PushUint32(uint32(info.AnisotropyEnable))
	b.PushFloat32(info.MaxAnisotropy)
	b.PushUint32(uint32(info.CompareEnable))
	b.PushUint32(info.CompareOp)
	b.PushFloat32(info.MinLod)
	b.PushFloat32(info.MaxLod)
	b.PushUint32(info.BorderColor)
	b.PushUint32(uint32(info.UnnormalizedCoordinates))
	return b.Finalize()
}

func pushAttachmentRef(b *key.Builder, ref vk.AttachmentReference) {
	b.PushUint32(ref.Attachment)
	b.PushUint32(uint32(ref.Layout))
}

// ExtractRenderPass implements §4.2 for
// VK_STRUCTURE_TYPE_RENDER_PASS_CREATE_INFO. No handle is substituted.
func ExtractRenderPass(info vk.RenderPassCreateInfo, handles []uintptr) (key.HashKey, error) {
	if len(handles) != 0 {
		return key.HashKey{}, ErrHandleCountMismatch
	}
	b := key.NewBuilder()
	b.PushUint32(uint32(vk.StructureTypeRenderPassCreateInfo))

	b.PushUint32(uint32(len(info.Attachments)))
	for _, a := range info.Attachments {
		b.PushUint32(a.Format)
		b.PushUint32(uint32(a.Samples))
		b.PushUint32(a.LoadOp)
		b.PushUint32(a.StoreOp)
		b.PushUint32(a.StencilLoadOp)
		b.PushUint32(a.StencilStoreOp)
		b.PushUint32(uint32(a.InitialLayout))
		b.PushUint32(uint32(a.FinalLayout))
	}

	b.PushUint32(uint32(len(info.Subpasses)))
	for _, s := range info.Subpasses {
		b.PushUint32(s.PipelineBindPoint)

		b.PushUint32(uint32(len(s.InputAttachments)))
		for _, r := range s.InputAttachments {
			pushAttachmentRef(b, r)
		}
		b.PushUint32(uint32(len(s.ColorAttachments)))
		for _, r := range s.ColorAttachments {
			pushAttachmentRef(b, r)
		}
		b.PushUint32(uint32(len(s.ResolveAttachments)))
		for _, r := range s.ResolveAttachments {
			pushAttachmentRef(b, r)
		}
		if s.DepthStencilAttachment != nil {
			b.PushBool(true)
			pushAttachmentRef(b, *s.DepthStencilAttachment)
		} else {
			b.PushBool(false)
		}
		b.PushUint32(uint32(len(s.PreserveAttachments)))
		for _, p := range s.PreserveAttachments {
			b.PushUint32(p)
		}
	}

	b.PushUint32(uint32(len(info.Dependencies)))
	for _, d := range info.Dependencies {
		b.PushUint32(d.SrcSubpass)
		b.PushUint32(d.DstSubpass)
		b.PushUint32(uint32(d.SrcStageMask))
		b.PushUint32(uint32(d.DstStageMask))
		b.PushUint32(uint32(d.SrcAccessMask))
		b.PushUint32(uint32(d.DstAccessMask))
	}
	return b.Finalize()
}

// pushShaderStage pushes the functional fields of a
// PipelineShaderStageCreateInfo and consumes one handle for its shader
// module. Shared by the graphics and compute extractors.
func pushShaderStage(b *key.Builder, stage vk.PipelineShaderStageCreateInfo, hc *handleCursor) error {
	b.PushUint32(uint32(stage.Stage))
	h, err := hc.next()
	if err != nil {
		return err
	}
	b.PushUint64(h)
	b.PushBlob([]byte(stage.EntryPoint))

	if stage.Specialization != nil {
		b.PushBool(true)
		spec := stage.Specialization
		b.PushUint32(uint32(len(spec.MapEntries)))
		for _, e := range spec.MapEntries {
			b.PushUint32(e.ConstantID)
			b.PushUint32(e.Offset)
			b.PushUint64(e.Size)
		}
		b.PushBlob(spec.Data)
	} else {
		b.PushBool(false)
	}
	return nil
}

func float32sToBytes(vs [4]float32) []byte {
	out := make([]byte, 0, 16)
	for _, v := range vs {
		bits := math.Float32bits(v)
		out = append(out, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return out
}

// ExtractGraphicsPipeline implements §4.2 for
// VK_STRUCTURE_TYPE_GRAPHICS_PIPELINE_CREATE_INFO. handles supplies one
// replacement per shader stage, then one for the pipeline layout, then one
// for the render pass, in that order.
func ExtractGraphicsPipeline(info vk.GraphicsPipelineCreateInfo, handles []uintptr) (key.HashKey, error) {
	b := key.NewBuilder()
	hc := &handleCursor{handles: handles}

	b.PushUint32(uint32(vk.StructureTypeGraphicsPipelineCreateInfo))

	b.PushUint32(uint32(len(info.Stages)))
	for _, stage := range info.Stages {
		if err := pushShaderStage(b, stage, hc); err != nil {
			return key.HashKey{}, err
		}
	}

	vis := info.VertexInputState
	b.PushUint32(uint32(len(vis.Bindings)))
	for _, bind := range vis.Bindings {
		b.PushUint32(bind.Binding)
		b.PushUint32(bind.Stride)
		b.PushUint32(bind.InputRate)
	}
	b.PushUint32(uint32(len(vis.Attributes)))
	for _, attr := range vis.Attributes {
		b.PushUint32(attr.Location)
		b.PushUint32(attr.Binding)
		b.PushUint32(attr.Format)
		b.PushUint32(attr.Offset)
	}

	ia := info.InputAssemblyState
	b.PushUint32(ia.Topology)
	b.PushUint32(uint32(ia.PrimitiveRestartEnable))

	b.PushUint32(info.ViewportState.ViewportCount)
	b.PushUint32(info.ViewportState.ScissorCount)

	rs := info.RasterizationState
	b.PushUint32(uint32(rs.DepthClampEnable))
	b.PushUint32(uint32(rs.RasterizerDiscardEnable))
	b.PushUint32(rs.PolygonMode)
	b.PushUint32(rs.CullMode)
	b.PushUint32(rs.FrontFace)
	b.PushUint32(uint32(rs.DepthBiasEnable))
	b.PushFloat32(rs.DepthBiasConstantFactor)
	b.PushFloat32(rs.DepthBiasClamp)
	b.PushFloat32(rs.DepthBiasSlopeFactor)
	b.PushFloat32(rs.LineWidth)

	ms := info.MultisampleState
	b.PushUint32(uint32(ms.RasterizationSamples))
	b.PushUint32(uint32(ms.SampleShadingEnable))
	b.PushFloat32(ms.MinSampleShading)
	b.PushUint32(uint32(ms.AlphaToCoverageEnable))
	b.PushUint32(uint32(ms.AlphaToOneEnable))

	if ds := info.DepthStencilState; ds != nil {
		b.PushBool(true)
		b.PushUint32(uint32(ds.DepthTestEnable))
		b.PushUint32(uint32(ds.DepthWriteEnable))
		b.PushUint32(ds.DepthCompareOp)
		b.PushUint32(uint32(ds.DepthBoundsTestEnable))
		b.PushUint32(uint32(ds.StencilTestEnable))
		pushStencilOpState(b, ds.Front)
		pushStencilOpState(b, ds.Back)
		b.PushFloat32(ds.MinDepthBounds)
		b.PushFloat32(ds.MaxDepthBounds)
	} else {
		b.PushBool(false)
	}

	cb := info.ColorBlendState
	b.PushUint32(uint32(cb.LogicOpEnable))
	b.PushUint32(cb.LogicOp)
	b.PushUint32(uint32(len(cb.Attachments)))
	for _, a := range cb.Attachments {
		b.PushUint32(uint32(a.BlendEnable))
		b.PushUint32(a.SrcColorBlendFactor)
		b.PushUint32(a.DstColorBlendFactor)
		b.PushUint32(a.ColorBlendOp)
		b.PushUint32(a.SrcAlphaBlendFactor)
		b.PushUint32(a.DstAlphaBlendFactor)
		b.PushUint32(a.AlphaBlendOp)
		b.PushUint32(a.ColorWriteMask)
	}
	b.PushBlob(float32sToBytes(cb.BlendConstants))

	if dyn := info.DynamicState; dyn != nil {
		b.PushBool(true)
		b.PushUint32(uint32(len(dyn.DynamicStates)))
		for _, s := range dyn.DynamicStates {
			b.PushUint32(s)
		}
	} else {
		b.PushBool(false)
	}

	layoutHandle, err := hc.next()
	if err != nil {
		return key.HashKey{}, err
	}
	b.PushUint64(layoutHandle)

	passHandle, err := hc.next()
	if err != nil {
		return key.HashKey{}, err
	}
	b.PushUint64(passHandle)

	b.PushUint32(info.Subpass)

	return finish(b, hc)
}

func pushStencilOpState(b *key.Builder, s vk.StencilOpState) {
	b.PushUint32(s.FailOp)
	b.PushUint32(s.PassOp)
	b.PushUint32(s.DepthFailOp)
	b.PushUint32(s.CompareOp)
	b.PushUint32(s.CompareMask)
	b.PushUint32(s.WriteMask)
	b.PushUint32(s.Reference)
}

// ExtractComputePipeline implements §4.2 for
// VK_STRUCTURE_TYPE_COMPUTE_PIPELINE_CREATE_INFO. handles supplies one
// replacement for the shader stage's module, then one for the pipeline
// layout.
func ExtractComputePipeline(info vk.ComputePipelineCreateInfo, handles []uintptr) (key.HashKey, error) {
	b := key.NewBuilder()
	hc := &handleCursor{handles: handles}

	b.PushUint32(uint32(vk.StructureTypeComputePipelineCreateInfo))
	if err := pushShaderStage(b, info.Stage, hc); err != nil {
		return key.HashKey{}, err
	}

	layoutHandle, err := hc.next()
	if err != nil {
		return key.HashKey{}, err
	}
	b.PushUint64(layoutHandle)

	return finish(b, hc)
}
