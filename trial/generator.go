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

package trial

import (
	"sort"

	"github.com/protean-http/protean/gen"
	"github.com/protean-http/protean/registry"
	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/typeref"
)

// BodyFieldName is the record field holding the drawn body value, kept
// separate from path/query/header so buildRequest can serialize it through
// a codec instead of rendering it as a string. Exported so statemachine can
// share this package's generator composition instead of duplicating it.
const BodyFieldName = "body"

// BuildGenerator composes the single top-level generator for one
// (RouteSpec, method) pair: a Record over the four parameter groups in
// §4.7's fixed deterministic order — path, query, header, body — so that a
// drawn value's DrawTree orders its children identically to the order
// failure reports must use. Shared by TrialRunner and StateMachineRunner
// (§4.9 draws "the remaining (non-linked) parameters via the same
// generator machinery").
func BuildGenerator(r *registry.Registry, spec *route.Spec, method string) (gen.Generator, error) {
	pathGen, err := paramGroupGenerator(r, spec.PathParams, spec.SchemaTable)
	if err != nil {
		return nil, err
	}
	queryGen, err := queryGroupGenerator(r, spec.QueryParams, spec.SchemaTable)
	if err != nil {
		return nil, err
	}
	headerGen, err := paramGroupGenerator(r, spec.HeaderParams, spec.SchemaTable)
	if err != nil {
		return nil, err
	}

	fields := []gen.RecordField{
		{Name: "path", Gen: pathGen, Required: true},
		{Name: "query", Gen: queryGen, Required: true},
		{Name: "header", Gen: headerGen, Required: true},
	}

	if spec.Body != nil && route.AllowsBody(method) {
		bodyGen, err := r.Resolve(*spec.Body, spec.SchemaTable)
		if err != nil {
			return nil, err
		}
		fields = append(fields, gen.RecordField{Name: BodyFieldName, Gen: bodyGen, Required: true})
	}

	return gen.Record(fields), nil
}

// paramGroupGenerator builds the sub-Record for one of path/header, whose
// entries are typeref.Ref-only (always required — a declared path or
// header parameter is drawn on every trial; optionality of a header value
// itself is expressed via typeref.Opt in its TypeRef).
func paramGroupGenerator(r *registry.Registry, params map[string]typeref.Ref, table typeref.SchemaTable) (gen.Generator, error) {
	names := sortedKeys(params)
	fields := make([]gen.RecordField, len(names))
	for i, name := range names {
		g, err := r.Resolve(params[name], table)
		if err != nil {
			return nil, err
		}
		fields[i] = gen.RecordField{Name: name, Gen: g, Required: true}
	}
	return gen.Record(fields), nil
}

// queryGroupGenerator builds the query sub-Record, honoring each
// QueryParam's own Required flag per §3's "mapping from name to (TypeRef,
// required?)".
func queryGroupGenerator(r *registry.Registry, params map[string]route.QueryParam, table typeref.SchemaTable) (gen.Generator, error) {
	names := make([]string, 0, len(params))
	for n := range params {
		names = append(names, n)
	}
	sort.Strings(names)
	fields := make([]gen.RecordField, len(names))
	for i, name := range names {
		qp := params[name]
		g, err := r.Resolve(qp.Type, table)
		if err != nil {
			return nil, err
		}
		fields[i] = gen.RecordField{Name: name, Gen: g, Required: qp.Required}
	}
	return gen.Record(fields), nil
}

func sortedKeys(m map[string]typeref.Ref) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
