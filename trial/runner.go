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

// Package trial implements §4.7's TrialRunner: the single-route property
// loop draw → build request → send → validate → record, driving [shrink]
// on the first failing trial.
package trial

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/protean-http/protean/auth"
	"github.com/protean-http/protean/codec"
	"github.com/protean-http/protean/gen"
	"github.com/protean-http/protean/obslog"
	"github.com/protean-http/protean/pathenc"
	"github.com/protean-http/protean/registry"
	"github.com/protean-http/protean/report"
	"golang.org/x/time/rate"

	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/shrink"
	"github.com/protean-http/protean/telemetry"
	"github.com/protean-http/protean/transport"
	"github.com/protean-http/protean/validate"
)

// RunResult is §3's per-trial record.
type RunResult struct {
	Status             int
	Latency            time.Duration
	BodyHash           string
	Verdict            validate.Verdict
	RequestFingerprint string
	DrawTree           *gen.DrawTree
}

// RouteResult aggregates one route's trial run — §3's "for a route:
// aggregated counters."
type RouteResult struct {
	Route  *route.Spec
	Method string

	StatusCounts map[int]int
	Passed       int
	TrialsRun    int

	// Failure is non-nil when a trial failed and could not be shrunk
	// further; it carries the minimal reproducing input.
	Failure *report.FailureReport

	WallTime time.Duration
}

// Runner executes §4.7's TrialRunner for one (RouteSpec, method) pair.
type Runner struct {
	Spec      *route.Spec
	Method    string
	Registry  *registry.Registry
	Validator validate.Validator
	Transport transport.Transport
	Auth      auth.Decorator
	Codecs    *codec.Registry
	Settings  Settings
	Logger    obslog.Logger
	Telemetry *telemetry.Telemetry

	// Limiter, when set, paces outgoing trials against a target that
	// cannot absorb unthrottled load — client-side use of the teacher's
	// token-bucket pattern. Unset by default; never changes pass/fail
	// semantics, only the rate at which trials are sent.
	Limiter *rate.Limiter
}

// New builds a Runner, defaulting Codecs to a fresh registry, Logger to a
// no-op sink, and Telemetry to a no-op sink when the caller supplies none.
func New(spec *route.Spec, method string, reg *registry.Registry, v validate.Validator, tr transport.Transport, dec auth.Decorator, settings Settings) *Runner {
	return &Runner{
		Spec:      spec,
		Method:    method,
		Registry:  reg,
		Validator: v,
		Transport: tr,
		Auth:      dec,
		Codecs:    codec.NewRegistry(),
		Settings:  settings,
		Logger:    obslog.Noop(),
		Telemetry: telemetry.Noop(),
	}
}

// draw holds one materialized trial value alongside the DrawTree that
// produced it.
type draw struct {
	tree   *gen.DrawTree
	groups map[string]any
}

// Run executes up to Settings.MaxExamples trials, entering the shrink loop
// on the first failure — §4.7.
func (run *Runner) Run(ctx context.Context) (*RouteResult, error) {
	start := time.Now()
	result := &RouteResult{
		Route:        run.Spec,
		Method:       run.Method,
		StatusCounts: map[int]int{},
	}

	g, err := BuildGenerator(run.Registry, run.Spec, run.Method)
	if err != nil {
		return nil, fmt.Errorf("trial: %s %s: %w", run.Method, run.Spec.Path, err)
	}

	headers, query, err := run.Auth.Apply()
	if err != nil {
		// §4.10: a missing credential source fails the route fast, before
		// the first trial is executed — not per-trial.
		result.Failure = &report.FailureReport{
			Method:     run.Method,
			Pattern:    run.Spec.Path,
			Kind:       report.KindMissingCredential,
			Request:    report.RenderedRequest{Method: run.Method, Path: run.Spec.Path},
			Params:     map[string]any{},
			Seed:       run.Settings.Seed,
			TrialIndex: -1,
		}
		result.WallTime = time.Since(start)
		return result, nil
	}

	routeRand := gen.NewRand(run.Settings.Seed).Derive(fmt.Sprintf("route[%s %s]", run.Method, run.Spec.Path))

	maxExamples := run.Settings.MaxExamples
	if maxExamples <= 0 {
		maxExamples = 1
	}

	for i := 0; i < maxExamples; i++ {
		select {
		case <-ctx.Done():
			result.WallTime = time.Since(start)
			return result, nil
		default:
		}

		r := routeRand.Derive(fmt.Sprintf("trial[%d]", i))
		v, tree := g.Draw(r, run.Settings.size())
		groups, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("trial: %s %s: generator produced %T, want record", run.Method, run.Spec.Path, v)
		}

		stepCtx, span := run.Telemetry.StartStep(ctx, run.Method, run.Spec.Path)
		rr, fr, err := run.attempt(stepCtx, draw{tree: tree, groups: groups}, headers, query, i)
		if err != nil {
			return nil, err
		}
		run.Telemetry.FinishStep(stepCtx, span, run.Method, run.Spec.Path, rr.Status, rr.Verdict.Valid)
		result.TrialsRun++
		result.StatusCounts[rr.Status]++

		if rr.Verdict.Valid {
			result.Passed++
			continue
		}

		// Failing trial: halt generation and shrink — §4.7 steps 6-7.
		run.Logger.Info("trial failed, entering shrink loop",
			"method", run.Method, "path", run.Spec.Path, "trial", i, "kind", fr.Kind)
		fr.Seed = run.Settings.Seed
		fr.TrialIndex = i
		minimal := run.shrink(ctx, g, tree, fr, headers, query)
		run.Logger.Info("shrink complete",
			"method", run.Method, "path", run.Spec.Path, "kind", minimal.Kind)
		result.Failure = minimal
		break
	}

	result.WallTime = time.Since(start)
	return result, nil
}

// shrink drives shrink.Run against the first failing tree, replaying each
// candidate through the same request/response pipeline §4.7's shrink loop
// describes, and returns the FailureReport for the last adopted minimum.
func (run *Runner) shrink(ctx context.Context, g gen.Generator, initial *gen.DrawTree, initialReport *report.FailureReport, headers, query map[string]string) *report.FailureReport {
	current := initialReport
	replay := func(tree *gen.DrawTree) shrink.Outcome {
		v, ok := g.Rebuild(tree)
		if !ok {
			return shrink.Invalid
		}
		groups, ok := v.(map[string]any)
		if !ok {
			return shrink.Invalid
		}
		rr, fr, err := run.attempt(ctx, draw{tree: tree, groups: groups}, headers, query, current.TrialIndex)
		if err != nil {
			return shrink.Invalid
		}
		if rr.Verdict.Valid {
			return shrink.Passes
		}
		if fr.Kind != current.Kind {
			return shrink.Passes
		}
		fr.Seed = current.Seed
		fr.TrialIndex = current.TrialIndex
		current = fr
		run.Telemetry.RecordShrink(ctx, run.Method, run.Spec.Path)
		return shrink.StillFails
	}
	shrink.Run(g, initial, replay)
	return current
}

// attempt renders one drawn value into a request, sends it, validates the
// response, and returns both the internal RunResult and — when the trial
// failed — a populated FailureReport.
func (run *Runner) attempt(ctx context.Context, d draw, authHeaders, authQuery map[string]string, trialIndex int) (RunResult, *report.FailureReport, error) {
	req, renderedReq, err := run.buildRequest(d.groups, authHeaders, authQuery)
	if err != nil {
		return RunResult{}, nil, fmt.Errorf("trial: %s %s: %w", run.Method, run.Spec.Path, err)
	}

	if run.Limiter != nil {
		if err := run.Limiter.Wait(ctx); err != nil {
			return RunResult{}, nil, fmt.Errorf("trial: %s %s: rate limiter: %w", run.Method, run.Spec.Path, err)
		}
	}

	resp, terr := run.Transport.Send(ctx, req)
	if terr != nil {
		kind := transportKind(terr)
		fr := &report.FailureReport{
			Method:     run.Method,
			Pattern:    run.Spec.Path,
			Kind:       kind,
			Request:    renderedReq,
			Params:     d.groups,
			TrialIndex: trialIndex,
		}
		rr := RunResult{
			Status:             0,
			DrawTree:           d.tree,
			RequestFingerprint: fingerprint(req),
			Verdict:            validate.Verdict{Valid: false, Errors: []string{terr.Error()}},
		}
		return rr, fr, nil
	}

	verdict := run.Validator.Validate(ctx, resp, run.Method, run.Spec)
	rr := RunResult{
		Status:             resp.Status,
		Latency:            resp.Elapsed,
		BodyHash:           bodyHash(resp.Body),
		Verdict:            verdict,
		RequestFingerprint: fingerprint(req),
		DrawTree:           d.tree,
	}
	if verdict.Valid {
		return rr, nil, nil
	}

	fr := &report.FailureReport{
		Method:  run.Method,
		Pattern: run.Spec.Path,
		Kind:    classifyValidatorFailure(resp, verdict),
		Request: renderedReq,
		Response: &report.RenderedResponse{
			Status:  resp.Status,
			Headers: firstHeaders(resp.Headers),
			Body:    truncate(resp.Body, 4096),
		},
		Params:     d.groups,
		TrialIndex: trialIndex,
	}
	return rr, fr, nil
}

// buildRequest renders a drawn (path, query, header, body) group map into a
// transport.Request and the report.RenderedRequest that mirrors it,
// attaching auth last per §6's "includes auth injected last."
func (run *Runner) buildRequest(groups map[string]any, authHeaders, authQuery map[string]string) (transport.Request, report.RenderedRequest, error) {
	pathValues := toStringMap(groups["path"])
	rendered := map[string]string{}
	for name, v := range pathValues {
		rendered[name] = gen.RenderPathSafe(v)
	}
	encodedPath, err := pathenc.Encode(run.Spec.Path, rendered)
	if err != nil {
		return transport.Request{}, report.RenderedRequest{}, fmt.Errorf("encode path: %w", err)
	}

	queryValues := toStringMap(groups["query"])
	queryNames := make([]string, 0, len(queryValues)+len(authQuery))
	for n := range queryValues {
		queryNames = append(queryNames, n)
	}
	sort.Strings(queryNames)
	var pairs []transport.QueryPair
	reportQuery := map[string]string{}
	for _, n := range queryNames {
		rv := gen.RenderPathSafe(queryValues[n])
		pairs = append(pairs, transport.QueryPair{Name: n, Value: rv})
		reportQuery[n] = rv
	}
	authQueryNames := sortedStringKeys(authQuery)
	for _, n := range authQueryNames {
		pairs = append(pairs, transport.QueryPair{Name: n, Value: authQuery[n]})
		reportQuery[n] = authQuery[n]
	}

	headerValues := toStringMap(groups["header"])
	headers := map[string][]string{}
	reportHeaders := map[string]string{}
	for n, v := range headerValues {
		rv := gen.RenderPathSafe(v)
		headers[n] = []string{rv}
		reportHeaders[n] = rv
	}
	for n, v := range authHeaders {
		headers[n] = []string{v}
		reportHeaders[n] = v
	}

	req := transport.Request{
		Method:  run.Method,
		Path:    encodedPath,
		Query:   pairs,
		Headers: headers,
		Timeout: run.Settings.PerTrialTimeout,
	}
	renderedReq := report.RenderedRequest{
		Method:  run.Method,
		Path:    encodedPath,
		Query:   reportQuery,
		Headers: reportHeaders,
	}

	if bv, ok := groups[BodyFieldName]; ok && bv != nil {
		c, err := run.Codecs.For("")
		if err != nil {
			return transport.Request{}, report.RenderedRequest{}, err
		}
		bytes, err := c.Encode(bv)
		if err != nil {
			return transport.Request{}, report.RenderedRequest{}, fmt.Errorf("encode body: %w", err)
		}
		req.Body = &transport.Body{ContentType: c.ContentType(), Bytes: bytes}
		renderedReq.Body = bytes
		headers["Content-Type"] = []string{c.ContentType()}
	}

	return req, renderedReq, nil
}

func toStringMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

func sortedStringKeys(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func firstHeaders(h map[string][]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

func truncate(b []byte, max int) []byte {
	if len(b) <= max {
		return b
	}
	return b[:max]
}

func fingerprint(req transport.Request) string {
	h := sha256.New()
	h.Write([]byte(req.Method))
	h.Write([]byte{0})
	h.Write([]byte(req.Path))
	for _, p := range req.Query {
		h.Write([]byte{0})
		h.Write([]byte(p.Name + "=" + p.Value))
	}
	if req.Body != nil {
		h.Write([]byte{0})
		h.Write(req.Body.Bytes)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func bodyHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func transportKind(e *transport.Error) report.ErrorKind {
	switch e.Kind {
	case transport.Timeout:
		return report.KindTimeout
	case transport.Malformed:
		return report.KindMalformed
	default:
		return report.KindUnreachable
	}
}

// classifyValidatorFailure maps a failing Verdict to an ErrorKind using the
// server's status first, falling back to matching the verdict's error text
// — the validate package reports errors as plain strings rather than typed
// variants, so this is a best-effort classification for report rendering
// only; it never affects the pass/fail verdict itself.
func classifyValidatorFailure(resp *transport.Response, verdict validate.Verdict) report.ErrorKind {
	if resp.Status >= 500 {
		return report.KindServer5xx
	}
	for _, e := range verdict.Errors {
		lower := strings.ToLower(e)
		if strings.Contains(lower, "content-type") {
			return report.KindContentTypeViolation
		}
		if strings.Contains(lower, "schema") {
			return report.KindSchemaViolation
		}
	}
	return report.KindUnexpectedStatus
}
