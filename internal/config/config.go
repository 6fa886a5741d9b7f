// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package config loads the YAML-based tuning knobs for the descriptor pool
// and dependency injector: pool block sizing, flush cadence, and queue
// routing. Every field has a documented default so a missing or partial
// config file degrades to sane behavior rather than failing to start.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/vkcore/vk"
)

// PoolConfig tunes DescriptorPool block allocation. It resolves the "pool
// sizing is implementer-chosen" language in the descriptor-pool design:
// block capacity, the per-type size ratios within a block, and the flush
// countdown every descriptor set starts with.
type PoolConfig struct {
	// MaxSetsPerBlock bounds vkDescriptorPoolCreateInfo.MaxSets for every
	// block this pool allocates.
	MaxSetsPerBlock uint32 `yaml:"maxSetsPerBlock"`

	// PoolSizeRatios maps a descriptor type to the number of descriptors
	// of that type reserved per set, on average, within a block. The
	// block's VkDescriptorPoolSize entries are MaxSetsPerBlock * ratio.
	PoolSizeRatios map[vk.DescriptorType]uint32 `yaml:"poolSizeRatios"`

	// FlushPeriod is the number of Flush calls a descriptor set survives
	// after Get allocated or reused it before Flush recycles it; a Get that
	// finds the set already in a tier does not restart the count.
	FlushPeriod uint32 `yaml:"flushPeriod"`

	// CreateFlags is passed verbatim to VkDescriptorPoolCreateInfo.Flags
	// for every block (e.g. VK_DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT).
	CreateFlags vk.DescriptorPoolCreateFlags `yaml:"createFlags"`
}

// DefaultPoolConfig returns the baseline sizing this module ships with: 1024
// sets per block, a generous mix of the four most common descriptor types,
// and a three-flush recycling grace period.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxSetsPerBlock: 1024,
		PoolSizeRatios: map[vk.DescriptorType]uint32{
			vk.DescriptorTypeCombinedImageSampler: 4,
			vk.DescriptorTypeUniformBuffer:         4,
			vk.DescriptorTypeStorageBuffer:         2,
			vk.DescriptorTypeStorageImage:          1,
		},
		FlushPeriod: 3,
	}
}

// DependencyConfig tunes the dependency injector's queue-family router.
type DependencyConfig struct {
	// GraphicsQueueFamily, ComputeQueueFamily, and TransferQueueFamily are
	// the physical-device queue family indices the router uses to decide
	// whether a command crosses a queue-family boundary and therefore
	// needs an ownership-transfer barrier pair.
	GraphicsQueueFamily uint32 `yaml:"graphicsQueueFamily"`
	ComputeQueueFamily  uint32 `yaml:"computeQueueFamily"`
	TransferQueueFamily uint32 `yaml:"transferQueueFamily"`

	// WaitCapacity sizes the dependency injector's semaphore pool: the
	// number of binary semaphores it creates on demand and recycles across
	// cross-queue hand-offs before it starts logging capacity warnings. A
	// Prepare that needs a semaphore once that many exist and none is free
	// still succeeds — the pool creates another and keeps it for reuse
	// like the rest — but the warning is a sign WaitCapacity is sized too
	// low for the workload.
	WaitCapacity uint32 `yaml:"waitCapacity"`
}

// DefaultDependencyConfig assumes the common single-family-per-role layout
// (family 0 graphics+compute+transfer) until the embedder's device query
// overrides it, and a 64-semaphore pool, generous enough for several
// frames of cross-queue hand-offs in flight at once.
func DefaultDependencyConfig() DependencyConfig {
	return DependencyConfig{
		GraphicsQueueFamily: 0,
		ComputeQueueFamily:  0,
		TransferQueueFamily: 0,
		WaitCapacity:        64,
	}
}

// Config is the top-level document this package loads from YAML.
type Config struct {
	Pool       PoolConfig       `yaml:"pool"`
	Dependency DependencyConfig `yaml:"dependency"`
}

// Default returns a Config with every section at its documented default.
func Default() Config {
	return Config{Pool: DefaultPoolConfig(), Dependency: DefaultDependencyConfig()}
}

// Load reads and parses a YAML config file, starting from Default and
// overwriting only the fields present in the document.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes r as YAML into a Config seeded with Default.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}
