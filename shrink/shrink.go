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

// Package shrink implements §4.8's Shrinker: a structural minimizer over
// [gen.DrawTree] that is independent of the materialized value's type — it
// only drives the candidate sequence a [gen.Generator.Shrink] emits and
// decides, via a caller-supplied predicate, which candidates to adopt.
package shrink

import "github.com/protean-http/protean/gen"

// Outcome classifies replaying one candidate tree.
type Outcome int

const (
	// StillFails means the candidate reproduces the same failure kind —
	// adopt it and restart shrinking from it.
	StillFails Outcome = iota
	// Passes means the candidate no longer fails — discard it.
	Passes
	// Invalid means the candidate tree could not be rebuilt into a value
	// at all (structurally invalid after the edit) — discard it.
	Invalid
)

// Replay replays one candidate DrawTree and reports what happened. Callers
// implement this against their own TrialRunner/StateMachineRunner replay
// path.
type Replay func(tree *gen.DrawTree) Outcome

// Run drives §4.7's shrink loop to termination: for each candidate the
// generator offers (in the priority order §4.8 fixes — deletions, length
// reductions, then per-leaf reductions), replay it; on StillFails adopt the
// candidate and restart from it; on Passes or Invalid discard and try the
// next. Shrinking terminates when no candidate yields a smaller failing
// tree (Testable Property 4: every adoption strictly decreases the
// lexicographic (Size, Magnitude) metric; Size is a non-negative integer and
// Magnitude is bounded below by zero).
func Run(g gen.Generator, initial *gen.DrawTree, replay Replay) *gen.DrawTree {
	current := initial
	for {
		adopted := false
		for cand := range g.Shrink(current) {
			switch replay(cand) {
			case StillFails:
				if !cand.MetricOf().Less(current.MetricOf()) {
					// A conforming implementation never offers a
					// non-decreasing candidate, but guard against it
					// here so a misbehaving custom generator cannot spin
					// forever.
					continue
				}
				current = cand
				adopted = true
			case Passes, Invalid:
				continue
			}
			if adopted {
				break
			}
		}
		if !adopted {
			return current
		}
	}
}
