// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Result mirrors VkResult for the codes the core subsystems branch on.
type Result int32

const (
	Success                  Result = 0
	NotReady                 Result = 1
	Timeout                  Result = 2
	Incomplete               Result = 5
	ErrorOutOfHostMemory     Result = -1
	ErrorOutOfDeviceMemory   Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost          Result = -4
	ErrorFragmentedPool      Result = -12
	ErrorOutOfPoolMemory     Result = -1000069000
)

// Bool32 mirrors VkBool32 (a 4-byte boolean at the ABI boundary).
type Bool32 uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)
