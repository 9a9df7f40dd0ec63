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

// Package validate implements §4.5's Validator: a pure predicate over
// (response, route) returning a [Verdict]. Validators never mutate shared
// state and compose via [Composite].
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/transport"
)

// Verdict is the result of running a Validator against one response.
type Verdict struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

func merge(into *Verdict, from Verdict) {
	if !from.Valid {
		into.Valid = false
	}
	into.Errors = append(into.Errors, from.Errors...)
	into.Warnings = append(into.Warnings, from.Warnings...)
}

// Validator is §4.5's (response, route) -> Verdict predicate.
type Validator interface {
	Validate(ctx context.Context, resp *transport.Response, method string, r *route.Spec) Verdict
}

// StatusValidator checks status membership in an explicitly configured
// Allowed set. §9's open question 1 directs implementers to document the
// default precisely rather than inherit either conflicting upstream form:
// this module's documented default is fail_on_5xx, i.e. Allowed = all
// non-5xx statuses (100-499, 600-599 is impossible but excluded anyway by
// construction).
type StatusValidator struct {
	// Allowed, when non-nil, is the exact set of acceptable statuses. When
	// nil, FailOn5xx governs.
	Allowed map[int]bool

	// FailOn5xx is the default policy: any status >= 500 is invalid, every
	// status below 500 is valid. Used only when Allowed is nil; with both
	// unset, every status is valid.
	FailOn5xx bool
}

// DefaultStatusValidator returns the documented default: fail_on_5xx.
func DefaultStatusValidator() StatusValidator {
	return StatusValidator{FailOn5xx: true}
}

func (v StatusValidator) Validate(_ context.Context, resp *transport.Response, _ string, _ *route.Spec) Verdict {
	if v.Allowed != nil {
		if v.Allowed[resp.Status] {
			return Verdict{Valid: true}
		}
		return Verdict{Valid: false, Errors: []string{fmt.Sprintf("status %d not in allowed set", resp.Status)}}
	}
	if v.FailOn5xx && resp.Status >= 500 {
		return Verdict{Valid: false, Errors: []string{fmt.Sprintf("status %d is a server error", resp.Status)}}
	}
	return Verdict{Valid: true}
}

// ContentTypeValidator checks the response Content-Type against a declared
// list, matching the media-type portion only (ignoring any ;charset=...
// parameter), the same negotiation rule this module's Accept/Content-Type
// matching convention uses elsewhere.
type ContentTypeValidator struct {
	Allowed []string
}

func (v ContentTypeValidator) Validate(_ context.Context, resp *transport.Response, _ string, _ *route.Spec) Verdict {
	if len(v.Allowed) == 0 {
		return Verdict{Valid: true}
	}
	ct := firstHeader(resp.Headers, "Content-Type")
	media := strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	for _, want := range v.Allowed {
		if strings.EqualFold(media, want) {
			return Verdict{Valid: true}
		}
	}
	return Verdict{Valid: false, Errors: []string{fmt.Sprintf("content-type %q not in allowed set %v", media, v.Allowed)}}
}

func firstHeader(h map[string][]string, key string) string {
	for k, vs := range h {
		if strings.EqualFold(k, key) && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

// Composite runs its children in declared order; overall invalid iff any
// child is invalid, with all errors/warnings aggregated.
type Composite struct {
	Children []Validator
}

func (c Composite) Validate(ctx context.Context, resp *transport.Response, method string, r *route.Spec) Verdict {
	out := Verdict{Valid: true}
	for _, child := range c.Children {
		merge(&out, child.Validate(ctx, resp, method, r))
	}
	return out
}
