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

// Package report defines the failure-report contract emitted to the host
// runner (spec.md §6) and an RFC 9457 Problem Details rendering of it for
// machine consumption by CI systems, adapted from the teacher's
// errors.RFC9457 formatter.
package report

import "encoding/json"

// ErrorKind classifies why a trial or sequence step failed.
type ErrorKind string

const (
	KindTimeout             ErrorKind = "timeout"
	KindUnreachable         ErrorKind = "unreachable"
	KindMalformed           ErrorKind = "malformed"
	KindServer5xx           ErrorKind = "server_5xx"
	KindUnexpectedStatus    ErrorKind = "unexpected_status"
	KindSchemaViolation     ErrorKind = "schema_violation"
	KindContentTypeViolation ErrorKind = "content_type_violation"
	KindMissingCredential   ErrorKind = "missing_credential"
)

// RenderedRequest is the concrete, fully-encoded request a FailureReport
// replays — the shrunk parameter values rendered to wire form.
type RenderedRequest struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   map[string]string `json:"query,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    []byte            `json:"body,omitempty"`
}

// RenderedResponse is the (possibly truncated) response observed for the
// shrunk failing request.
type RenderedResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    []byte            `json:"body,omitempty"`
}

// Step is one prior step of a stateful sequence leading up to the failure,
// carried for reproduction context — spec.md §6's "in stateful mode, the
// full sequence of prior steps."
type Step struct {
	RuleName string          `json:"rule_name"`
	Request  RenderedRequest `json:"request"`
	Response *RenderedResponse `json:"response,omitempty"`
}

// FailureReport is the concrete Go type backing spec.md §6's failure-report
// contract: route identity, error kind, the rendered request/response, the
// shrunk decoded parameter values, the seed and trial index, and — in
// stateful mode — the full sequence of prior steps.
type FailureReport struct {
	// Route identity.
	Method  string `json:"method"`
	Pattern string `json:"pattern"`

	Kind ErrorKind `json:"kind"`

	Request  RenderedRequest   `json:"request"`
	Response *RenderedResponse `json:"response,omitempty"`

	// Params holds the shrunk parameter values, decoded (not wire-encoded),
	// keyed by parameter name, ordered path/query/header/body per spec.md's
	// deterministic parameter-group ordering when iterated via ParamOrder.
	Params map[string]any `json:"params"`

	Seed       uint64 `json:"seed"`
	TrialIndex int    `json:"trial_index"`

	// Sequence carries prior steps in stateful mode; empty for a stateless
	// trial failure.
	Sequence []Step `json:"sequence,omitempty"`
}

// ParamOrder is the deterministic parameter-group ordering spec.md fixes for
// failure reports: path, then query, then header, then body.
var ParamOrder = []string{"path", "query", "header", "body"}

// Problem is an RFC 9457 Problem Details document.
type Problem struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// MarshalJSON merges Extensions inline with the fixed fields, protecting
// reserved field names — the same technique as the teacher's
// errors.ProblemDetail.MarshalJSON.
func (p Problem) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		if k != "type" && k != "title" && k != "status" && k != "detail" && k != "instance" {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// statusForKind maps an ErrorKind to the nominal HTTP status a Problem
// Details document reports under "status" — not the target's observed
// status (carried separately in Extensions["response"]) but the engine's
// own classification of severity.
func statusForKind(k ErrorKind) int {
	switch k {
	case KindTimeout, KindUnreachable:
		return 503
	case KindServer5xx:
		return 502
	case KindMalformed, KindUnexpectedStatus, KindSchemaViolation, KindContentTypeViolation:
		return 422
	case KindMissingCredential:
		return 412
	default:
		return 500
	}
}

// RFC9457 renders a FailureReport as an RFC 9457 Problem Details document,
// the one piece of "report rendering" this module keeps in scope: a
// concrete, emittable shape for a host runner or CI system to consume.
func RFC9457(fr FailureReport) Problem {
	return Problem{
		Type:     "https://protean.dev/problems/" + string(fr.Kind),
		Title:    string(fr.Kind),
		Status:   statusForKind(fr.Kind),
		Detail:   fr.Method + " " + fr.Pattern + " failed",
		Instance: fr.Pattern,
		Extensions: map[string]any{
			"method":      fr.Method,
			"request":     fr.Request,
			"response":    fr.Response,
			"params":      fr.Params,
			"seed":        fr.Seed,
			"trial_index": fr.TrialIndex,
			"sequence":    fr.Sequence,
		},
	}
}
