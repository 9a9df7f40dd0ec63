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
	"fmt"
	"sort"

	"github.com/protean-http/protean/codec"
	"github.com/protean-http/protean/gen"
	"github.com/protean-http/protean/pathenc"
	"github.com/protean-http/protean/report"
	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/transport"
	"github.com/protean-http/protean/trial"
)

// buildRequest renders one rule's drawn (path, query, header, body) groups
// into a transport.Request plus its report-friendly mirror, attaching auth
// last per §6. This mirrors trial.Runner's own request construction — the
// two orchestrators share the same generator machinery (trial.BuildGenerator)
// but build requests independently because a sequence step's linked
// parameters are substituted in from a Bundle before encoding.
func buildRequest(spec *route.Spec, method string, codecs *codec.Registry, groups map[string]any, authHeaders, authQuery map[string]string) (transport.Request, report.RenderedRequest, error) {
	pathValues := asMap(groups["path"])
	rendered := map[string]string{}
	for name, v := range pathValues {
		rendered[name] = gen.RenderPathSafe(v)
	}
	encodedPath, err := pathenc.Encode(spec.Path, rendered)
	if err != nil {
		return transport.Request{}, report.RenderedRequest{}, fmt.Errorf("encode path: %w", err)
	}

	queryValues := asMap(groups["query"])
	names := make([]string, 0, len(queryValues))
	for n := range queryValues {
		names = append(names, n)
	}
	sort.Strings(names)
	var pairs []transport.QueryPair
	reportQuery := map[string]string{}
	for _, n := range names {
		rv := gen.RenderPathSafe(queryValues[n])
		pairs = append(pairs, transport.QueryPair{Name: n, Value: rv})
		reportQuery[n] = rv
	}
	authNames := make([]string, 0, len(authQuery))
	for n := range authQuery {
		authNames = append(authNames, n)
	}
	sort.Strings(authNames)
	for _, n := range authNames {
		pairs = append(pairs, transport.QueryPair{Name: n, Value: authQuery[n]})
		reportQuery[n] = authQuery[n]
	}

	headerValues := asMap(groups["header"])
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

	req := transport.Request{Method: method, Path: encodedPath, Query: pairs, Headers: headers}
	renderedReq := report.RenderedRequest{Method: method, Path: encodedPath, Query: reportQuery, Headers: reportHeaders}

	if bv, ok := groups[trial.BodyFieldName]; ok && bv != nil {
		c, err := codecs.For("")
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

func asMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}
