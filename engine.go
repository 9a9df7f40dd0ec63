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

package protean

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/protean-http/protean/auth"
	"github.com/protean-http/protean/filter"
	"github.com/protean-http/protean/obslog"
	"github.com/protean-http/protean/registry"
	"github.com/protean-http/protean/report"
	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/statemachine"
	"github.com/protean-http/protean/telemetry"
	"github.com/protean-http/protean/transport"
	"github.com/protean-http/protean/trial"
	"github.com/protean-http/protean/validate"
)

// Engine is the embeddable entry point: a host runner builds one Engine per
// target API, then calls RunStateless and/or RunStateful.
type Engine struct {
	Routes    []*route.Spec
	Registry  *registry.Registry
	Validator validate.Validator
	Transport transport.Transport
	AuthTable auth.Table
	Settings  Settings
	Logger    obslog.Logger
	Telemetry *telemetry.Telemetry

	// Filter optionally restricts which routes RunStateless exercises —
	// spec.md's Filter, by (method, path) glob.
	Filter *filter.Filter

	// Limiter, when set, paces every trial.Runner this Engine builds.
	Limiter *rate.Limiter
}

// New builds an Engine, defaulting Registry/Validator/Logger/Telemetry when
// the caller supplies none.
func New(routes []*route.Spec, tr transport.Transport, authTable auth.Table, settings Settings) *Engine {
	return &Engine{
		Routes:    routes,
		Registry:  registry.New(),
		Validator: validate.Composite{Children: []validate.Validator{validate.DefaultStatusValidator()}},
		Transport: tr,
		AuthTable: authTable,
		Settings:  settings,
		Logger:    obslog.Noop(),
		Telemetry: telemetry.Noop(),
	}
}

// selectedRoutes applies Filter, when set, to Routes: each surviving route
// keeps only the methods Filter selects.
func (e *Engine) selectedRoutes() []*route.Spec {
	if e.Filter == nil {
		return e.Routes
	}
	return filter.Apply(e.Routes, *e.Filter)
}

// RunStateless runs §4.7's TrialRunner over every (route, method) pair,
// honoring Settings.Concurrency, and returns one RouteResult per pair in
// Routes/Methods order.
func (e *Engine) RunStateless(ctx context.Context) ([]*trial.RouteResult, error) {
	type job struct {
		spec   *route.Spec
		method string
	}
	var jobs []job
	for _, spec := range e.selectedRoutes() {
		for _, m := range spec.Methods {
			jobs = append(jobs, job{spec: spec, method: m})
		}
	}

	runOne := func(ctx context.Context, reg *registry.Registry, i int) (*trial.RouteResult, error) {
		j := jobs[i]
		decorator := e.AuthTable.Resolve(j.spec.Path)
		runner := trial.New(j.spec, j.method, reg, e.Validator, e.Transport, decorator, e.Settings.TrialSettings())
		runner.Logger = e.Logger
		runner.Telemetry = e.Telemetry
		runner.Limiter = e.Limiter
		result, err := runner.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("protean: %s %s: %w", j.method, j.spec.Path, err)
		}
		return result, nil
	}

	results := make([]*trial.RouteResult, len(jobs))

	if e.Settings.Concurrency == "parallel" {
		// Every route-level goroutine shares one read-only registry.Snapshot
		// instead of the live, mutable Registry, and reports its
		// trial.RouteResult to this aggregator over a channel — §5's "no
		// locking needed" resource model.
		snapshot := e.Registry.Snapshot()
		type indexed struct {
			i      int
			result *trial.RouteResult
		}
		out := make(chan indexed, len(jobs))

		g, gctx := errgroup.WithContext(ctx)
		for i := range jobs {
			i := i
			g.Go(func() error {
				result, err := runOne(gctx, snapshot, i)
				if err != nil {
					return err
				}
				out <- indexed{i: i, result: result}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return results, err
		}
		close(out)
		for entry := range out {
			results[entry.i] = entry.result
		}
		return results, nil
	}

	for i := range jobs {
		result, err := runOne(ctx, e.Registry, i)
		if err != nil {
			return results, err
		}
		results[i] = result
	}
	return results, nil
}

// RunStateful runs §4.9's StateMachineRunner over Routes using edges built
// by the caller (typically statemachine.FromExplicit/FromInferred combined
// with any user-supplied links) and returns the aggregate sequence result.
func (e *Engine) RunStateful(ctx context.Context, edges []statemachine.Edge) (*statemachine.SequenceResult, error) {
	runner := statemachine.New(e.selectedRoutes(), edges, e.Registry, e.Validator, e.Transport, e.AuthTable, e.Settings.StateMachineSettings())
	runner.Logger = e.Logger
	runner.Telemetry = e.Telemetry
	return runner.Run(ctx)
}

// Problem renders a RouteResult's failure (if any) as an RFC 9457 document,
// the concrete shape §10's "report rendering" plumbing commits to.
func Problem(fr *report.FailureReport) (report.Problem, bool) {
	if fr == nil {
		return report.Problem{}, false
	}
	return report.RFC9457(*fr), true
}
