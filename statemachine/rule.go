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

// Package statemachine implements §4.9's StateMachineRunner: one Rule per
// (method, path) operation, Bundles threading producer output into
// consumer parameters along a link graph, and per-sequence shrinking at
// rule- and parameter-granularity.
package statemachine

// Production is one field a rule's successful response appends to a
// Bundle.
type Production struct {
	Bundle string
	Field  string // JSON-pointer-style expression, e.g. "$.body#/id".
}

// Rule is one state-machine step corresponding to one (method, path)
// operation, with declared bundle consumption and production — §4.9 /
// GLOSSARY "Rule."
type Rule struct {
	ID     string
	Method string
	Path   string

	// Consumes names the bundles that must be non-empty for this rule to
	// be eligible; a rule with no entries is always eligible.
	Consumes []Consumption

	// Produces names the bundles this rule's successful response feeds.
	Produces []Production
}

// Consumption is one bundle a rule draws from, and the parameter it
// substitutes the drawn value into.
type Consumption struct {
	Bundle    string
	Parameter string
	// Group is which of path/query/header the Parameter lives in.
	Group string
}

// Bundle is §3's named, append-only collection of values produced by prior
// responses in the current sequence; typed only in the sense that every
// value appended came from the same producing field.
type Bundle struct {
	Name   string
	Values []any
}

// Empty reports whether the bundle currently has no values to draw from.
func (b *Bundle) Empty() bool { return b == nil || len(b.Values) == 0 }
