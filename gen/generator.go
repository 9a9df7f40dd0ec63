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

// Package gen implements §3/§4.2's ValueGenerator: lazy, seeded, shrinkable
// producers of values keyed by [typeref.Ref], plus the composition rules
// (Optional, Seq, Map, Record, OneOf) that build composite generators out of
// element generators.
//
// Generators are deliberately not parameterized over a Go type: the schema
// they draw from ([typeref.Ref]) is only known at run time, constructed by
// an extractor, so there is no static T to parameterize over for Record or
// OneOf composition. Primitive generators still return idiomatic Go values
// (string, int64, float64, bool, []byte, ...) boxed as `any`; callers that
// know the expected shape type-assert, exactly as a JSON-decode-into-any
// caller would.
package gen

import "iter"

// Generator is a pure, seeded, shrinkable producer of values of one
// [typeref.Ref] shape. Implementations own no mutable state and may be
// invoked an unbounded number of times (§3: "lazy... Send-able /
// reentrant-safe").
type Generator interface {
	// Draw produces one value and the DrawTree recording every decision
	// taken to construct it. size loosely bounds collection lengths and
	// numeric magnitudes (a larger size draws larger structures).
	Draw(r *Rand, size int) (any, *DrawTree)

	// Shrink yields, lazily, the ordered sequence of structurally-smaller
	// candidate DrawTrees a shrink loop should try next, most impactful
	// move first. The shrinker package drives this; Generator
	// implementations only need to enumerate their own moves.
	Shrink(tree *DrawTree) iter.Seq[*DrawTree]

	// Rebuild replays tree deterministically into a value without drawing
	// fresh randomness. It reports ok=false if tree is structurally
	// invalid for this generator (e.g. edited into a shape Draw could
	// never have produced), in which case the caller discards the
	// candidate per §4.7's shrink loop.
	Rebuild(tree *DrawTree) (v any, ok bool)
}
