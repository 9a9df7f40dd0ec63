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

import "github.com/protean-http/protean/route"

// ruleSource pairs a built Rule with the route.Spec and method it operates
// against, so the sequence runner can reach RouteSpec fields without a
// second lookup.
type ruleSource struct {
	rule *Rule
	spec *route.Spec
}

// BuildRules synthesizes one Rule per (spec, method) operation from specs
// and the edges of a link graph (from FromExplicit/FromInferred/
// FromUserSupplied, or a combination) — §4.9's "synthesizes a state-machine
// with one rule per (method, path) operation."
func BuildRules(specs []*route.Spec, edges []Edge) []ruleSource {
	var out []ruleSource
	for _, s := range specs {
		opID := operationID(s)
		for _, method := range s.Methods {
			id := opID
			if len(s.Methods) > 1 {
				id = opID + "#" + method
			}
			r := &Rule{ID: id, Method: method, Path: s.Path}
			for _, e := range edges {
				if e.Consumer != opID && e.Consumer != id {
					continue
				}
				r.Consumes = append(r.Consumes, Consumption{
					Bundle:    e.Bundle,
					Parameter: e.Parameter,
					Group:     paramGroup(s, e.Parameter),
				})
			}
			for _, e := range edges {
				if e.Producer != opID && e.Producer != id {
					continue
				}
				r.Produces = append(r.Produces, Production{Bundle: e.Bundle, Field: e.Field})
			}
			out = append(out, ruleSource{rule: r, spec: s})
		}
	}
	return out
}

func paramGroup(s *route.Spec, name string) string {
	if _, ok := s.PathParams[name]; ok {
		return "path"
	}
	if _, ok := s.QueryParams[name]; ok {
		return "query"
	}
	if _, ok := s.HeaderParams[name]; ok {
		return "header"
	}
	return ""
}
