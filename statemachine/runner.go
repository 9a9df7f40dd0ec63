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

package statemachine

import (
	"context"
	"fmt"
	"time"

	"github.com/protean-http/protean/auth"
	"github.com/protean-http/protean/codec"
	"github.com/protean-http/protean/gen"
	"github.com/protean-http/protean/obslog"
	"github.com/protean-http/protean/registry"
	"github.com/protean-http/protean/report"
	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/telemetry"
	"github.com/protean-http/protean/transport"
	"github.com/protean-http/protean/trial"
	"github.com/protean-http/protean/validate"
)

// Settings are §4.9's stateful-mode knobs.
type Settings struct {
	StepCount      int
	MaxSequences   int
	RecursionLimit int
	PerStepTimeout time.Duration
	TotalTimeout   time.Duration
	Seed           uint64
	Size           int
}

func (s Settings) size() int {
	if s.Size > 0 {
		return s.Size
	}
	return trial.DefaultSize
}

// step records one executed rule firing within a sequence, retaining its
// DrawTree and the bundle indices it consumed so a shrink pass can replay
// it deterministically with edits.
type step struct {
	rs         ruleSource
	tree       *gen.DrawTree
	groups     map[string]any
	consumed   map[string]int // bundle name -> index drawn
	request    report.RenderedRequest
	response   *report.RenderedResponse
	outcomeErr report.ErrorKind
	failed     bool
}

// SequenceResult is the outcome of one sequence of up to Settings.StepCount
// rule firings.
type SequenceResult struct {
	Failure        *report.FailureReport
	RuleFirings    map[string]int
	EdgeTraversals map[string]int
}

// Runner executes §4.9's StateMachineRunner over a set of RouteSpecs and a
// link graph.
type Runner struct {
	Rules     []ruleSource
	Registry  *registry.Registry
	Validator validate.Validator
	Transport transport.Transport
	AuthTable auth.Table
	Codecs    *codec.Registry
	Settings  Settings
	Logger    obslog.Logger
	Telemetry *telemetry.Telemetry
}

// New builds a Runner from RouteSpecs and a link graph built by
// FromExplicit/FromInferred/FromUserSupplied (or a concatenation of them).
func New(specs []*route.Spec, edges []Edge, reg *registry.Registry, v validate.Validator, tr transport.Transport, authTable auth.Table, settings Settings) *Runner {
	return &Runner{
		Rules:     BuildRules(specs, edges),
		Registry:  reg,
		Validator: v,
		Transport: tr,
		AuthTable: authTable,
		Codecs:    codec.NewRegistry(),
		Settings:  settings,
		Logger:    obslog.Noop(),
		Telemetry: telemetry.Noop(),
	}
}

// Run executes up to Settings.MaxSequences sequences, stopping at the
// first failure (shrunk at rule- and parameter-granularity) — §4.9.
func (run *Runner) Run(ctx context.Context) (*SequenceResult, error) {
	agg := &SequenceResult{RuleFirings: map[string]int{}, EdgeTraversals: map[string]int{}}
	root := gen.NewRand(run.Settings.Seed)

	maxSeq := run.Settings.MaxSequences
	if maxSeq <= 0 {
		maxSeq = 1
	}

	for s := 0; s < maxSeq; s++ {
		select {
		case <-ctx.Done():
			return agg, nil
		default:
		}

		seqRand := root.Derive(fmt.Sprintf("sequence[%d]", s))
		steps, fr := run.runSequence(ctx, seqRand, s)
		for id, n := range run.firingsOf(steps) {
			agg.RuleFirings[id] += n
		}
		for bundle, n := range run.traversalsOf(steps) {
			agg.EdgeTraversals[bundle] += n
		}
		if fr != nil {
			fr.Seed = run.Settings.Seed
			fr.TrialIndex = s
			minimal := run.shrinkSequence(ctx, steps, fr)
			agg.Failure = minimal
			return agg, nil
		}
	}
	return agg, nil
}

func (run *Runner) firingsOf(steps []step) map[string]int {
	out := map[string]int{}
	for _, st := range steps {
		out[st.rs.rule.ID]++
	}
	return out
}

func (run *Runner) traversalsOf(steps []step) map[string]int {
	out := map[string]int{}
	for _, st := range steps {
		for name := range st.consumed {
			out[name]++
		}
	}
	return out
}

// runSequence draws and executes rules until StepCount is reached, the
// total timeout elapses, no rule is eligible, or a step fails — §4.9. A
// transport error, a per-step timeout included, is a failing step, so the
// first timeout already ends the sequence with a failure report; the
// sequence does not wait for a second consecutive timeout.
func (run *Runner) runSequence(ctx context.Context, seqRand *gen.Rand, seqIdx int) ([]step, *report.FailureReport) {
	bundles := map[string]*Bundle{}
	bundleDepth := map[string]int{}
	var steps []step

	headerCache := map[string]auth.Decorator{}
	resolveAuth := func(path string) (map[string]string, map[string]string, error) {
		dec, ok := headerCache[path]
		if !ok {
			dec = run.AuthTable.Resolve(path)
			headerCache[path] = dec
		}
		return dec.Apply()
	}

	start := time.Now()
	consecutiveTimeouts := 0

	for i := 0; i < run.Settings.StepCount; i++ {
		if run.Settings.TotalTimeout > 0 && time.Since(start) > run.Settings.TotalTimeout {
			break
		}

		eligible := run.eligibleRules(bundles, bundleDepth)
		if len(eligible) == 0 {
			break
		}

		stepRand := seqRand.Derive(fmt.Sprintf("step[%d]", i))
		choice := eligible[stepRand.Derive("choice").IntRange(0, len(eligible)-1)]

		g, err := trial.BuildGenerator(run.Registry, choice.spec, choice.rule.Method)
		if err != nil {
			break
		}
		v, tree := g.Draw(stepRand.Derive("params"), run.Settings.size())
		groups, ok := v.(map[string]any)
		if !ok {
			break
		}

		consumed := map[string]int{}
		for _, c := range choice.rule.Consumes {
			b := bundles[c.Bundle]
			if b.Empty() {
				continue
			}
			idx := stepRand.Derive("bundle."+c.Bundle).IntRange(0, len(b.Values)-1)
			consumed[c.Bundle] = idx
			setGroupParam(groups, c.Group, c.Parameter, b.Values[idx])
		}

		headers, query, err := resolveAuth(choice.spec.Path)
		if err != nil {
			fr := &report.FailureReport{
				Method:   choice.rule.Method,
				Pattern:  choice.spec.Path,
				Kind:     report.KindMissingCredential,
				Params:   groups,
				Sequence: toReportSteps(steps),
			}
			return steps, fr
		}

		req, renderedReq, err := buildRequest(choice.spec, choice.rule.Method, run.Codecs, groups, headers, query)
		if err != nil {
			break
		}
		req.Timeout = run.Settings.PerStepTimeout

		stepCtx, span := run.Telemetry.StartStep(ctx, choice.rule.Method, choice.spec.Path)
		run.Telemetry.RecordRuleFiring(stepCtx, choice.rule.ID)
		resp, terr := run.Transport.Send(stepCtx, req)
		if terr != nil {
			run.Telemetry.FinishStep(stepCtx, span, choice.rule.Method, choice.spec.Path, 0, false)
			if terr.Kind == transport.Timeout {
				consecutiveTimeouts++
			} else {
				consecutiveTimeouts = 0
			}
			st := step{rs: choice, tree: tree, groups: groups, consumed: consumed, request: renderedReq, failed: true, outcomeErr: transportKind(terr)}
			steps = append(steps, st)
			if consecutiveTimeouts >= 2 {
				break
			}
			fr := &report.FailureReport{
				Method:   choice.rule.Method,
				Pattern:  choice.spec.Path,
				Kind:     st.outcomeErr,
				Request:  renderedReq,
				Params:   groups,
				Sequence: toReportSteps(steps[:len(steps)-1]),
			}
			return steps, fr
		}
		consecutiveTimeouts = 0

		verdict := run.Validator.Validate(stepCtx, resp, choice.rule.Method, choice.spec)
		run.Telemetry.FinishStep(stepCtx, span, choice.rule.Method, choice.spec.Path, resp.Status, verdict.Valid)
		rendered := &report.RenderedResponse{Status: resp.Status, Headers: firstHeaders(resp.Headers), Body: truncateBody(resp.Body, 4096)}
		st := step{rs: choice, tree: tree, groups: groups, consumed: consumed, request: renderedReq, response: rendered}

		if !verdict.Valid {
			st.failed = true
			st.outcomeErr = classifyValidatorFailure(resp, verdict)
			steps = append(steps, st)
			fr := &report.FailureReport{
				Method:   choice.rule.Method,
				Pattern:  choice.spec.Path,
				Kind:     st.outcomeErr,
				Request:  renderedReq,
				Response: rendered,
				Params:   groups,
				Sequence: toReportSteps(steps[:len(steps)-1]),
			}
			return steps, fr
		}

		steps = append(steps, st)
		for _, p := range choice.rule.Produces {
			val, ok := extractField(p.Field, resp)
			if !ok {
				// §4.9: extraction failure means the producing rule
				// produced nothing — not a crash.
				continue
			}
			b := bundles[p.Bundle]
			if b == nil {
				b = &Bundle{Name: p.Bundle}
				bundles[p.Bundle] = b
			}
			b.Values = append(b.Values, val)
			bundleDepth[p.Bundle]++
		}
	}

	return steps, nil
}

// eligibleRules returns the rules whose consumed bundles are all non-empty
// and within the recursion-depth guard — §4.9's "partitions eligible rules
// (satisfiable consumed bundles)" plus §3's "guard: recursion depth along
// any bundle chain <= recursion_limit."
func (run *Runner) eligibleRules(bundles map[string]*Bundle, depth map[string]int) []ruleSource {
	var out []ruleSource
	for _, rs := range run.Rules {
		ok := true
		for _, c := range rs.rule.Consumes {
			if bundles[c.Bundle].Empty() {
				ok = false
				break
			}
			if run.Settings.RecursionLimit > 0 && depth[c.Bundle] > run.Settings.RecursionLimit {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rs)
		}
	}
	return out
}

func setGroupParam(groups map[string]any, group, param string, value any) {
	g, ok := groups[group].(map[string]any)
	if !ok {
		g = map[string]any{}
		groups[group] = g
	}
	g[param] = value
}

func toReportSteps(steps []step) []report.Step {
	out := make([]report.Step, len(steps))
	for i, s := range steps {
		out[i] = report.Step{RuleName: s.rs.rule.ID, Request: s.request, Response: s.response}
	}
	return out
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

func truncateBody(b []byte, max int) []byte {
	if len(b) <= max {
		return b
	}
	return b[:max]
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

func classifyValidatorFailure(resp *transport.Response, verdict validate.Verdict) report.ErrorKind {
	if resp.Status >= 500 {
		return report.KindServer5xx
	}
	return report.KindUnexpectedStatus
}
