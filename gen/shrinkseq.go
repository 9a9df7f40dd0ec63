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

package gen

import "iter"

// intShrinkSeq yields, lazily, the shrink-to target first, then a binary
// search from target toward original — §4.8's "Replace a primitive draw
// with its shrink-to target, then binary-search toward the original if that
// specific value still fails."
func intShrinkSeq(original, target int64) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if original == target {
			return
		}
		if !yield(target) {
			return
		}
		lo, hi := target, original
		for {
			mid := lo + (hi-lo)/2
			if mid == lo || mid == hi {
				return
			}
			if !yield(mid) {
				return
			}
			// Assume the caller will tell us (by not continuing to pull)
			// when a candidate is adopted; absent that feedback this
			// sequence simply narrows toward original monotonically so a
			// shrink loop can keep consuming until it stops helping.
			lo = mid
		}
	}
}

func floatShrinkSeq(original, target float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if original == target {
			return
		}
		if !yield(target) {
			return
		}
		lo, hi := target, original
		for i := 0; i < 32; i++ {
			mid := lo + (hi-lo)/2
			if mid == lo || mid == hi {
				return
			}
			if !yield(mid) {
				return
			}
			lo = mid
		}
	}
}
