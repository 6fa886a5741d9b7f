// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build linux

package cache

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// LoadPipelineCache reads a previously saved VkPipelineCache blob from path
// via mmap rather than a read(2) into a freshly allocated buffer. A missing
// file is not an error: it returns (nil, nil) so the caller creates a
// fresh, empty pipeline cache on first run.
func LoadPipelineCache(path string) ([]byte, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache: open pipeline cache blob: %w", err)
	}
	defer unix.Close(fd)

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return nil, fmt.Errorf("cache: stat pipeline cache blob: %w", err)
	}
	if stat.Size == 0 {
		return nil, nil
	}

	mapped, err := unix.Mmap(fd, 0, int(stat.Size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("cache: mmap pipeline cache blob: %w", err)
	}
	defer unix.Munmap(mapped)

	data := make([]byte, len(mapped))
	copy(data, mapped)
	return data, nil
}

// SavePipelineCache writes data — typically the result of
// ExportPipelineCacheData's GetPipelineCacheData call — to path via a
// truncate-then-mmap-then-copy sequence, overwriting any existing file.
func SavePipelineCache(path string, data []byte) error {
	if len(data) == 0 {
		return os.WriteFile(path, nil, 0o644)
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("cache: open pipeline cache blob for write: %w", err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(len(data))); err != nil {
		return fmt.Errorf("cache: truncate pipeline cache blob: %w", err)
	}

	mapped, err := unix.Mmap(fd, 0, len(data), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("cache: mmap pipeline cache blob for write: %w", err)
	}
	copy(mapped, data)
	if err := unix.Msync(mapped, unix.MS_SYNC); err != nil {
		unix.Munmap(mapped)
		return fmt.Errorf("cache: msync pipeline cache blob: %w", err)
	}
	return unix.Munmap(mapped)
}
