// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	vulkanLib             unsafe.Pointer
	vkGetInstanceProcAddr unsafe.Pointer
	vkGetDeviceProcAddr   unsafe.Pointer
	cifGetDeviceProcAddr  types.CallInterface

	initOnce sync.Once
	errInit  error
)

func vulkanLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "vulkan-1.dll"
	case "darwin":
		return "libvulkan.dylib"
	default:
		return "libvulkan.so.1"
	}
}

// Init loads the Vulkan loader library and prepares the signature table
// shared by every [Commands] call. Safe to call from multiple goroutines;
// only the first call does any work.
func Init() error {
	initOnce.Do(func() {
		errInit = doInit()
	})
	return errInit
}

func doInit() error {
	var err error

	vulkanLib, err = ffi.LoadLibrary(vulkanLibraryName())
	if err != nil {
		return fmt.Errorf("vk: load %s: %w", vulkanLibraryName(), err)
	}

	vkGetInstanceProcAddr, err = ffi.GetSymbol(vulkanLib, "vkGetInstanceProcAddr")
	if err != nil {
		return fmt.Errorf("vk: vkGetInstanceProcAddr not found: %w", err)
	}

	if err := prepareSignatures(); err != nil {
		return fmt.Errorf("vk: prepare signatures: %w", err)
	}

	return nil
}

var cifGetInstanceProcAddr types.CallInterface

func prepareSignatures() error {
	if err := ffi.PrepareCallInterface(&cifGetInstanceProcAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{
			types.UInt64TypeDescriptor,
			types.PointerTypeDescriptor,
		}); err != nil {
		return err
	}
	if err := ffi.PrepareCallInterface(&cifGetDeviceProcAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{
			types.UInt64TypeDescriptor,
			types.PointerTypeDescriptor,
		}); err != nil {
		return err
	}
	return prepareCommandSignatures()
}

// getDeviceProcAddr resolves a single device-level entry point by name.
// device must already be created by the caller's instance/device layer;
// this package never creates one itself.
func getDeviceProcAddr(device Device, name string) unsafe.Pointer {
	if vkGetDeviceProcAddr == nil {
		vkGetDeviceProcAddr = getInstanceProcAddr(0, "vkGetDeviceProcAddr")
		if vkGetDeviceProcAddr == nil {
			return nil
		}
	}

	cname := make([]byte, len(name)+1)
	copy(cname, name)

	var result unsafe.Pointer
	namePtr := unsafe.Pointer(&cname[0])
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&namePtr),
	}
	_ = ffi.CallFunction(&cifGetDeviceProcAddr, vkGetDeviceProcAddr, unsafe.Pointer(&result), args[:])
	return result
}

// getInstanceProcAddr resolves a global or instance-level entry point. An
// instance of 0 requests a global function (none of which this package
// needs directly, but getDeviceProcAddr's lazy lookup of
// vkGetDeviceProcAddr goes through here).
func getInstanceProcAddr(instance uintptr, name string) unsafe.Pointer {
	if vkGetInstanceProcAddr == nil {
		return nil
	}

	cname := make([]byte, len(name)+1)
	copy(cname, name)

	var result unsafe.Pointer
	namePtr := unsafe.Pointer(&cname[0])
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&namePtr),
	}
	_ = ffi.CallFunction(&cifGetInstanceProcAddr, vkGetInstanceProcAddr, unsafe.Pointer(&result), args[:])
	return result
}

// Close releases the Vulkan loader library. Intended for test teardown and
// process shutdown; callers that keep a [Device] alive across the whole
// process lifetime never need to call this.
func Close() error {
	if vulkanLib == nil {
		return nil
	}
	err := ffi.FreeLibrary(vulkanLib)
	vulkanLib = nil
	vkGetInstanceProcAddr = nil
	vkGetDeviceProcAddr = nil
	return err
}
