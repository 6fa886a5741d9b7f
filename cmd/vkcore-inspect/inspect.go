// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vkcore/cache"
	"github.com/gogpu/vkcore/dependency"
	"github.com/gogpu/vkcore/descriptor"
	"github.com/gogpu/vkcore/internal/config"
	"github.com/gogpu/vkcore/key"
	"github.com/gogpu/vkcore/structkey"
	"github.com/gogpu/vkcore/vk"
)

func runCmd() *cobra.Command {
	var samplerCount int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the synthetic cache/pool/dependency scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), samplerCount)
		},
	}
	cmd.Flags().IntVar(&samplerCount, "samplers", 4, "number of distinct sampler keys to warm the cache with")
	return cmd
}

// run exercises the three subsystems against a vk.Commands with no
// library loaded (every driver entry point is nil). The object-cache
// scenario derives each sampler's lookup key the way a real caller
// would — running a synthetic VkSamplerCreateInfo through
// structkey.ExtractSampler — but still fabricates the cached element
// directly rather than calling cmds.CreateSampler, so it demonstrates
// the cache's own bookkeeping without needing a real driver. The
// descriptor-pool scenario does call through cmds and prints the
// resulting driver error rather than treating it as fatal. The dependency
// scenario is a same-queue signal/wait round trip whose barrier calls do
// nothing against the unloaded cmds; it returns any error it gets as
// fatal. The point is to prove the code paths run end to end, not to
// simulate a successful allocation.
func run(ctx context.Context, samplerCount int) error {
	cmds := vk.NewCommands()
	device := vk.Device(1)

	fmt.Println("=== object cache ===")
	oc := cache.New(cmds, device)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < samplerCount; i++ {
		i := i
		g.Go(func() error {
			info := vk.SamplerCreateInfo{
				SType:         vk.StructureTypeSamplerCreateInfo,
				MaxAnisotropy: float32(i + 1),
				MinLod:        0,
				MaxLod:        float32(i) * 0.5,
			}
			k, err := structkey.ExtractSampler(info, nil)
			if err != nil {
				return fmt.Errorf("extracting sampler key %d: %w", i, err)
			}
			handle := vk.Sampler(uintptr(i) + 1)
			_, err = oc.Get(gctx, k, cache.KindSampler, func() (*cache.CacheElement, error) {
				return &cache.CacheElement{Kind: cache.KindSampler, Sampler: handle}, nil
			})
			if err != nil {
				return fmt.Errorf("getting sampler %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("cached elements: %d\n", oc.Len())
	oc.Flush()
	fmt.Printf("cached elements after flush: %d\n", oc.Len())

	fmt.Println()
	fmt.Println("=== descriptor pool ===")
	pool := descriptor.New(cmds, device, config.DefaultPoolConfig())
	sub := pool.Sub()
	layoutKey, err := key.NewBuilder().PushByte(1).Finalize()
	if err != nil {
		return fmt.Errorf("building layout key: %w", err)
	}
	layout := &cache.CacheElement{Kind: cache.KindDescriptorSetLayout, DescriptorSetLayout: vk.DescriptorSetLayout(1)}
	if _, err := pool.Get(ctx, sub, layout, layoutKey, nil); err != nil {
		fmt.Printf("pool.Get (expected without a loaded driver): %v\n", err)
	}
	pool.Unsub(sub)

	fmt.Println()
	fmt.Println("=== dependency injector ===")
	depCfg := config.DefaultDependencyConfig()
	dep := dependency.New(cmds, device,
		dependency.QueueTable{Graphics: vk.Queue(1), Compute: vk.Queue(2), Transfer: vk.Queue(3)},
		dependency.FamilyIndexFromConfig(depCfg),
		depCfg.WaitCapacity,
	)
	res := dependency.ResourceRef{IsBuffer: true, Buffer: vk.Buffer(7)}
	producer := dependency.NewInjection(dependency.FamilyGraphics, vk.Queue(1))
	signal := dependency.Command{
		Kind: dependency.CommandSignal, Resource: res,
		DstAccess: vk.AccessTransferWrite, DstStage: vk.PipelineStageTopOfPipe,
	}
	if err := dep.Prepare(ctx, vk.CommandBuffer(1), false, []dependency.Command{signal},
		[]dependency.InputRef{{Resource: res}}, producer); err != nil {
		return fmt.Errorf("dependency prepare: %w", err)
	}
	if err := dep.Finish(producer); err != nil {
		return fmt.Errorf("dependency finish: %w", err)
	}

	consumer := dependency.NewInjection(dependency.FamilyGraphics, vk.Queue(1))
	wait := dependency.Command{Kind: dependency.CommandWait, Resource: res}
	if err := dep.Catch(ctx, vk.CommandBuffer(2), []dependency.Command{wait}, nil, consumer); err != nil {
		return fmt.Errorf("dependency catch: %w", err)
	}
	if err := dep.Finish(consumer); err != nil {
		return fmt.Errorf("dependency finish (consumer): %w", err)
	}
	fmt.Printf("live sync records after round trip: %d\n", dep.Len())

	return nil
}
