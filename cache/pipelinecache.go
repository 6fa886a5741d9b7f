// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// LoadPipelineCache and SavePipelineCache persist a VkPipelineCache blob
// across process runs. The portable implementation (pipelinecache_other.go)
// calls os.ReadFile/os.WriteFile; pipelinecache_linux.go replaces it
// with an mmap-backed path, since pipeline cache blobs for a large shader
// corpus can run into tens of megabytes and a read/write pair doubles the
// copies the portable path makes.

// CreatePipelineCacheObject creates a VkPipelineCache seeded with initial
// data (the result of a prior LoadPipelineCache, or nil for an empty
// cache). The driver treats data as a hint: a blob built on a different
// device or driver version is silently discarded rather than rejected.
func CreatePipelineCacheObject(cmds *vk.Commands, device vk.Device, initialData []byte) (vk.PipelineCache, error) {
	info := vk.PipelineCacheCreateInfo{
		SType:       vk.StructureTypePipelineCacheCreateInfo,
		InitialData: initialData,
	}

	var handle vk.PipelineCache
	if res := cmds.CreatePipelineCache(device, unsafe.Pointer(&info), &handle); res != vk.Success {
		return 0, fmt.Errorf("cache: vkCreatePipelineCache failed: %d", res)
	}
	return handle, nil
}

// MergeInto combines every cache in srcs into dst, the in-process
// counterpart to the disk-serialization merge point spec.md §1 notes but
// leaves to the embedder: workers that each warmed up their own
// VkPipelineCache independently can fold their handles into one before a
// caller exports and persists it.
func MergeInto(cmds *vk.Commands, device vk.Device, dst vk.PipelineCache, srcs []vk.PipelineCache) error {
	if len(srcs) == 0 {
		return nil
	}
	if res := cmds.MergePipelineCaches(device, dst, uint32(len(srcs)), unsafe.Pointer(&srcs[0])); res != vk.Success {
		return fmt.Errorf("cache: vkMergePipelineCaches failed: %d", res)
	}
	return nil
}

// ExportPipelineCacheData reads the current contents of cache back out,
// ready to be persisted via SavePipelineCache.
func ExportPipelineCacheData(cmds *vk.Commands, device vk.Device, cache vk.PipelineCache) ([]byte, error) {
	var size uint64
	if res := cmds.GetPipelineCacheData(device, cache, &size, nil); res != vk.Success {
		return nil, fmt.Errorf("cache: vkGetPipelineCacheData (size query) failed: %d", res)
	}
	if size == 0 {
		return nil, nil
	}
	data := make([]byte, size)
	if res := cmds.GetPipelineCacheData(device, cache, &size, unsafe.Pointer(&data[0])); res != vk.Success {
		return nil, fmt.Errorf("cache: vkGetPipelineCacheData (data fetch) failed: %d", res)
	}
	return data[:size], nil
}
