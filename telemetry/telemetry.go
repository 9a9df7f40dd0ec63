// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package telemetry adapts the teacher's request-scoped tracing.Config and
// metrics.Recorder — built for an inbound HTTP server's middleware chain —
// to the engine's own outbound loop: one span per trial/sequence step, and
// counters keyed by (method, pattern, outcome) instead of by inbound route.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/protean-http/protean/metrics"
	"github.com/protean-http/protean/telemetry/semconv"
	"github.com/protean-http/protean/tracing"
)

// Telemetry bundles the tracer and recorder a Runner reports through;
// either field may be nil, in which case the corresponding call is a no-op.
type Telemetry struct {
	Tracer   *tracing.Config
	Recorder *metrics.Recorder
}

// Noop returns a Telemetry that records nothing, the default when a host
// caller wires none in.
func Noop() *Telemetry { return &Telemetry{} }

// StartStep opens a span for one trial or sequence-step execution.
func (t *Telemetry) StartStep(ctx context.Context, method, pattern string) (context.Context, trace.Span) {
	if t == nil || t.Tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	name := fmt.Sprintf("protean.step %s %s", method, pattern)
	ctx, span := t.Tracer.StartSpan(ctx, name)
	span.SetAttributes(
		attribute.String(semconv.HTTPMethod, method),
		attribute.String(semconv.HTTPRoute, pattern),
	)
	return ctx, span
}

// FinishStep completes a span and records the step's outcome counter.
func (t *Telemetry) FinishStep(ctx context.Context, span trace.Span, method, pattern string, status int, passed bool) {
	if t == nil {
		return
	}
	if t.Tracer != nil {
		t.Tracer.FinishSpan(span, status)
	}
	if t.Recorder != nil {
		outcome := "pass"
		if !passed {
			outcome = "fail"
		}
		t.Recorder.IncrementCounter(ctx, "protean_steps_total",
			attribute.String(semconv.HTTPMethod, method),
			attribute.String(semconv.HTTPRoute, pattern),
			attribute.String("outcome", outcome),
		)
	}
}

// RecordShrink records one adopted shrink candidate for a route, letting an
// operator see how much a failure shrank before it was reported.
func (t *Telemetry) RecordShrink(ctx context.Context, method, pattern string) {
	if t == nil || t.Recorder == nil {
		return
	}
	t.Recorder.IncrementCounter(ctx, "protean_shrink_steps_total",
		attribute.String(semconv.HTTPMethod, method),
		attribute.String(semconv.HTTPRoute, pattern),
	)
}

// RecordRuleFiring records one state-machine rule firing, keyed by rule ID,
// so a host can chart operation coverage across a sequence run.
func (t *Telemetry) RecordRuleFiring(ctx context.Context, ruleID string) {
	if t == nil || t.Recorder == nil {
		return
	}
	t.Recorder.IncrementCounter(ctx, "protean_rule_firings_total", attribute.String("rule", ruleID))
}

// Shutdown releases the tracer and recorder's background resources.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	if t.Recorder != nil {
		if err := t.Recorder.Shutdown(ctx); err != nil {
			return err
		}
	}
	if t.Tracer != nil {
		return t.Tracer.Shutdown(ctx)
	}
	return nil
}
