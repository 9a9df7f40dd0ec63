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

	"github.com/protean-http/protean/gen"
	"github.com/protean-http/protean/report"
	"github.com/protean-http/protean/shrink"
	"github.com/protean-http/protean/trial"
)

// shrinkSequence minimizes a failing sequence at two granularities — §4.9:
// first it drops steps that turn out not to be required to reproduce the
// failure (trying each non-final step for removal, repeatedly, until no
// more can go), then it shrinks the retained steps' own drawn parameters
// exactly as trial.Runner shrinks a single trial.
func (run *Runner) shrinkSequence(ctx context.Context, steps []step, fr *report.FailureReport) *report.FailureReport {
	if len(steps) == 0 {
		return fr
	}

	working := steps

	for {
		removed := false
		for i := 0; i < len(working)-1; i++ {
			candidate := removeAt(working, i)
			newFR, ok := run.replaySteps(ctx, candidate, fr.Kind)
			if ok && newFR != nil {
				working = candidate
				fr = newFR
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}

	for i := range working {
		g, err := trial.BuildGenerator(run.Registry, working[i].rs.spec, working[i].rs.rule.Method)
		if err != nil {
			continue
		}
		idx := i
		wantKind := fr.Kind
		replay := func(tree *gen.DrawTree) shrink.Outcome {
			v, ok := g.Rebuild(tree)
			if !ok {
				return shrink.Invalid
			}
			groups, ok := v.(map[string]any)
			if !ok {
				return shrink.Invalid
			}
			candidateSteps := cloneSteps(working)
			// Re-substitute linked parameter values the original draw
			// consumed from a bundle: Rebuild redraws every leaf,
			// including ones that were later overwritten, so the bundle
			// value has to be reapplied on top.
			for _, c := range working[idx].rs.rule.Consumes {
				if _, ok := working[idx].consumed[c.Bundle]; ok {
					if grp, ok2 := groups[c.Group].(map[string]any); ok2 {
						if orig, ok3 := working[idx].groups[c.Group].(map[string]any); ok3 {
							if origVal, ok4 := orig[c.Parameter]; ok4 {
								grp[c.Parameter] = origVal
							}
						}
					}
				}
			}
			candidateSteps[idx].tree = tree
			candidateSteps[idx].groups = groups

			newFR, ok := run.replaySteps(ctx, candidateSteps, wantKind)
			if !ok {
				return shrink.Invalid
			}
			if newFR == nil {
				return shrink.Passes
			}
			fr = newFR
			working = candidateSteps
			return shrink.StillFails
		}
		shrink.Run(g, working[idx].tree, replay)
	}

	fr.Sequence = toReportSteps(working[:len(working)-1])
	last := working[len(working)-1]
	fr.Request = last.request
	fr.Response = last.response
	fr.Params = last.groups
	return fr
}

// replaySteps re-executes candidateSteps in order, using each step's
// already-drawn (and, for linked parameters, already-substituted) groups.
// Every non-final step must still succeed for the candidate to be
// considered meaningful; the final step must fail with wantKind for the
// candidate to be adopted. A nil, true return means the candidate no longer
// reproduces the failure (shrink.Passes); a false ok means the candidate is
// structurally unusable (shrink.Invalid, e.g. a middle step now errors).
func (run *Runner) replaySteps(ctx context.Context, candidateSteps []step, wantKind report.ErrorKind) (*report.FailureReport, bool) {
	if len(candidateSteps) == 0 {
		return nil, false
	}

	for i, st := range candidateSteps {
		headers, query, err := run.AuthTable.Resolve(st.rs.spec.Path).Apply()
		if err != nil {
			if i == len(candidateSteps)-1 {
				return &report.FailureReport{
					Method:  st.rs.rule.Method,
					Pattern: st.rs.spec.Path,
					Kind:    report.KindMissingCredential,
					Params:  st.groups,
				}, wantKind == report.KindMissingCredential
			}
			return nil, false
		}

		req, renderedReq, err := buildRequest(st.rs.spec, st.rs.rule.Method, run.Codecs, st.groups, headers, query)
		if err != nil {
			return nil, false
		}
		req.Timeout = run.Settings.PerStepTimeout

		resp, terr := run.Transport.Send(ctx, req)
		if terr != nil {
			kind := transportKind(terr)
			if i != len(candidateSteps)-1 {
				return nil, false
			}
			if kind != wantKind {
				return nil, true
			}
			return &report.FailureReport{
				Method:  st.rs.rule.Method,
				Pattern: st.rs.spec.Path,
				Kind:    kind,
				Request: renderedReq,
				Params:  st.groups,
			}, true
		}

		verdict := run.Validator.Validate(ctx, resp, st.rs.rule.Method, st.rs.spec)
		if !verdict.Valid {
			kind := classifyValidatorFailure(resp, verdict)
			if i != len(candidateSteps)-1 {
				return nil, false
			}
			if kind != wantKind {
				return nil, true
			}
			rendered := &report.RenderedResponse{Status: resp.Status, Headers: firstHeaders(resp.Headers), Body: truncateBody(resp.Body, 4096)}
			return &report.FailureReport{
				Method:   st.rs.rule.Method,
				Pattern:  st.rs.spec.Path,
				Kind:     kind,
				Request:  renderedReq,
				Response: rendered,
				Params:   st.groups,
			}, true
		}

		if i == len(candidateSteps)-1 {
			return nil, true
		}
	}
	return nil, true
}

func removeAt(steps []step, i int) []step {
	out := make([]step, 0, len(steps)-1)
	out = append(out, steps[:i]...)
	out = append(out, steps[i+1:]...)
	return out
}

func cloneSteps(steps []step) []step {
	out := make([]step, len(steps))
	copy(out, steps)
	return out
}
