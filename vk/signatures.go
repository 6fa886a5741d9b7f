// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// CallInterface signature templates, reused across the entry points that
// share a C parameter shape. This package only needs a handful of the
// ~30 shapes a full Vulkan binding would: the rest of the surface
// (instance/device creation, memory, command recording) lives upstream of
// this module.
var (
	sigResultHandlePtrPtr       types.CallInterface // VkResult(handle, ptr, ptr)
	sigResultCreatePipelines    types.CallInterface // VkResult(handle, handle, u32, ptr, ptr)
	sigResultHandleHandlePtrPtr types.CallInterface // VkResult(handle, handle, ptr, ptr)
	sigResultHandleHandleU32Ptr types.CallInterface // VkResult(handle, handle, u32, ptr)
	sigResultHandleHandleU32    types.CallInterface // VkResult(handle, handle, u32)
	sigResultHandleU32Ptr       types.CallInterface // VkResult(handle, u32, ptr)
	sigResultHandleHandle       types.CallInterface // VkResult(handle, handle)
	sigResultWaitForFences      types.CallInterface // VkResult(handle, u32, ptr, u32, u64)
	sigResultHandleU32PtrHandle types.CallInterface // VkResult(handle, u32, ptr, handle)
	sigResultHandle             types.CallInterface // VkResult(handle)
	sigVoidHandleHandlePtr      types.CallInterface // void(handle, handle, ptr)
	sigVoidHandleU32PtrU32Ptr   types.CallInterface // void(handle, u32, ptr, u32, ptr)
	sigVoidCmdPipelineBarrier   types.CallInterface // void(handle, u32, u32, u32, ptr, u32, ptr, u32, ptr)
)

func prepareCommandSignatures() error {
	type sig struct {
		cif  *types.CallInterface
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}

	h := types.UInt64TypeDescriptor
	p := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	i32 := types.SInt32TypeDescriptor
	voidRet := types.VoidTypeDescriptor

	sigs := []sig{
		{&sigResultHandlePtrPtr, i32, []*types.TypeDescriptor{h, p, p}},
		{&sigResultCreatePipelines, i32, []*types.TypeDescriptor{h, h, u32, p, p}},
		{&sigResultHandleHandlePtrPtr, i32, []*types.TypeDescriptor{h, h, p, p}},
		{&sigResultHandleHandleU32Ptr, i32, []*types.TypeDescriptor{h, h, u32, p}},
		{&sigResultHandleHandleU32, i32, []*types.TypeDescriptor{h, h, u32}},
		{&sigResultHandleU32Ptr, i32, []*types.TypeDescriptor{h, u32, p}},
		{&sigResultHandleHandle, i32, []*types.TypeDescriptor{h, h}},
		{&sigResultWaitForFences, i32, []*types.TypeDescriptor{h, u32, p, u32, u64}},
		{&sigResultHandleU32PtrHandle, i32, []*types.TypeDescriptor{h, u32, p, h}},
		{&sigResultHandle, i32, []*types.TypeDescriptor{h}},
		{&sigVoidHandleHandlePtr, voidRet, []*types.TypeDescriptor{h, h, p}},
		{&sigVoidHandleU32PtrU32Ptr, voidRet, []*types.TypeDescriptor{h, u32, p, u32, p}},
		{&sigVoidCmdPipelineBarrier, voidRet, []*types.TypeDescriptor{h, u32, u32, u32, p, u32, p, u32, p}},
	}

	for _, s := range sigs {
		if err := ffi.PrepareCallInterface(s.cif, types.DefaultCall, s.ret, s.args); err != nil {
			return err
		}
	}
	return nil
}
