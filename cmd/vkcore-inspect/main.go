// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command vkcore-inspect runs a synthetic object-cache, descriptor-pool,
// and dependency-injector scenario against an in-memory vk.Commands stub
// (every driver call no-ops) and prints the resulting statistics. It is a
// smoke test a developer can run without a real GPU or driver.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// initTracing installs a real SDK-backed TracerProvider so the spans
// dependency.Catch/Prepare, cache.Get, and descriptor.Get emit are
// actual sampled spans rather than the library's no-op default —
// this binary has no exporter configured, so the spans are recorded
// and then dropped, but the provider and sampler are real.
func initTracing() func(context.Context) error {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

func main() {
	shutdown := initTracing()
	defer shutdown(context.Background())

	rootCmd := &cobra.Command{
		Use:   "vkcore-inspect",
		Short: "Inspect vkcore's cache/pool/dependency subsystems",
		Long:  "Run a synthetic scenario against the object cache, descriptor pool, and dependency injector, and print statistics",
	}

	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
