// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for the core runtime's
// three stateful subsystems: the object cache, the descriptor pool, and
// the dependency injector. Collectors are created once at package init and
// registered into a package-private registry, which [Handler] serves;
// callers that embed this module alongside their own Prometheus setup can instead use
// [Registry] and merge it into their own gatherer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vkcore"

var (
	registry = prometheus.NewRegistry()

	// CacheHits / CacheMisses count ObjectCache.Get outcomes, labeled by
	// object kind (descriptorSetLayout, pipelineLayout, sampler, ...).
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Object cache lookups satisfied by an existing element.",
	}, []string{"kind"})

	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Object cache lookups that constructed a new element.",
	}, []string{"kind"})

	CacheConstructionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "construction_failures_total",
		Help:      "Object construction failures during Get or Warmup.",
	}, []string{"kind"})

	CacheSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "elements",
		Help:      "Current element count per tier.",
	}, []string{"tier"})

	// DescriptorPoolExhaustions counts VK_ERROR_OUT_OF_POOL_MEMORY /
	// VK_ERROR_FRAGMENTED_POOL returns observed when allocating a set.
	DescriptorPoolExhaustions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "descriptor",
		Name:      "pool_exhaustions_total",
		Help:      "Descriptor set allocation failures due to pool exhaustion.",
	}, []string{"reason"})

	DescriptorSetsInUse = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "descriptor",
		Name:      "sets_in_use",
		Help:      "Descriptor sets currently checked out across all pool blocks.",
	})

	DescriptorBlocksAllocated = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "descriptor",
		Name:      "blocks_allocated",
		Help:      "Descriptor pool blocks currently allocated.",
	})

	// DependencyInjections counts sync records by command: "catch" for
	// each Wait that Catch matched, "prepare" for each record Prepare
	// claimed. DependencyStaleResolutions counts Wait matches that Catch
	// skipped because the attachment's generation no longer matched.
	DependencyInjections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dependency",
		Name:      "injections_total",
		Help:      "Dependency injector operations by command kind.",
	}, []string{"command"})

	DependencyStaleResolutions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dependency",
		Name:      "stale_prepare_resolutions_total",
		Help:      "Wait matches skipped by Catch for a stale attachment generation.",
	})
)

func init() {
	registry.MustRegister(
		CacheHits, CacheMisses, CacheConstructionFailures, CacheSize,
		DescriptorPoolExhaustions, DescriptorSetsInUse, DescriptorBlocksAllocated,
		DependencyInjections, DependencyStaleResolutions,
	)
}

// Registry returns the registry these collectors are registered into, for
// embedders that want to merge it into a larger gatherer.
func Registry() *prometheus.Registry {
	return registry
}

// Handler returns an http.Handler serving this package's metrics in the
// standard Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
