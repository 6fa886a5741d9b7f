// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package tracing provides the OpenTelemetry tracer shared by the object
// cache, descriptor pool, and dependency injector. The core runtime never
// configures an SDK or exporter itself — the embedding application wires
// one up (e.g. via otel.SetTracerProvider), and this package simply asks
// the global provider for a tracer named after the module.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gogpu/vkcore"

// Tracer returns the shared tracer. Calling it before the application
// configures a TracerProvider is safe: the default no-op provider produces
// spans that record nothing and cost essentially zero overhead.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Start begins an internal span with the given name and attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// SetError marks span as failed and records err.
func SetError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Attribute keys shared across the cache, descriptor, and dependency spans.
var (
	AttrKind       = attribute.Key("vkcore.kind")
	AttrHashKey    = attribute.Key("vkcore.hash_key")
	AttrHit        = attribute.Key("vkcore.hit")
	AttrQueueFrom  = attribute.Key("vkcore.queue_family.from")
	AttrQueueTo    = attribute.Key("vkcore.queue_family.to")
	AttrInjection  = attribute.Key("vkcore.injection_id")
)
