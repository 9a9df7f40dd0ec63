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
	"strings"

	"github.com/protean-http/protean/route"
)

// Edge is one link-graph edge: "operation Producer's response field Field
// feeds operation Consumer's parameter Parameter through Bundle" — §4.9's
// three construction modes all produce a []Edge in this same shape.
type Edge struct {
	Producer  string
	Field     string
	Consumer  string
	Parameter string
	Bundle    string
}

// FromExplicit collects edges declared verbatim on each route.Spec.Links —
// §4.9's "explicit links: taken verbatim from the schema."
func FromExplicit(specs []*route.Spec) []Edge {
	var edges []Edge
	for _, s := range specs {
		for _, l := range s.Links {
			edges = append(edges, Edge{
				Producer:  l.Producer,
				Field:     l.Field,
				Consumer:  l.Consumer,
				Parameter: l.Parameter,
				Bundle:    l.Bundle,
			})
		}
	}
	return edges
}

// FromUserSupplied is the identity pass-through for a user-authored table of
// (producer, field, consumer, parameter, bundle) rows — §4.9's "user
// supplied: a table of rows" / §9 open question 3's "minimum viable form."
func FromUserSupplied(rows []Edge) []Edge { return rows }

// FromInferred derives edges by matching response-producing fields against
// downstream parameter names: for every route whose response contract
// declares a record field named p, and every other route declaring a path
// or query parameter also named p, infer an edge producing bundle p from
// `$.body#/p` into that parameter — §4.9's data-dependency inference. Only
// names are matched: the field's and the parameter's types are not compared,
// and only the first 2xx contract declaring a field name is its producer.
func FromInferred(specs []*route.Spec) []Edge {
	type producer struct {
		opID  string
		field string
	}
	fieldProducers := map[string]producer{}
	for _, s := range specs {
		opID := operationID(s)
		for _, rc := range s.ResponseContracts {
			if rc.Status < 200 || rc.Status >= 300 {
				continue
			}
			for _, f := range rc.Body.Fields() {
				if _, exists := fieldProducers[f.Name]; !exists {
					fieldProducers[f.Name] = producer{opID: opID, field: "$.body#/" + f.Name}
				}
			}
		}
	}

	var edges []Edge
	for _, s := range specs {
		consumerID := operationID(s)
		for name := range s.PathParams {
			if p, ok := fieldProducers[name]; ok && p.opID != consumerID {
				edges = append(edges, Edge{Producer: p.opID, Field: p.field, Consumer: consumerID, Parameter: name, Bundle: name})
			}
		}
		for name := range s.QueryParams {
			if p, ok := fieldProducers[name]; ok && p.opID != consumerID {
				edges = append(edges, Edge{Producer: p.opID, Field: p.field, Consumer: consumerID, Parameter: name, Bundle: name})
			}
		}
	}
	return edges
}

// operationID resolves a rule identity for a RouteSpec: its declared
// OperationID when set, else a synthesized "METHOD path" token.
func operationID(s *route.Spec) string {
	if s.OperationID != "" {
		return s.OperationID
	}
	return strings.Join(s.Methods, "/") + " " + s.Path
}
