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

import "time"

// Settings are the per-route knobs §4.7 names: max_examples,
// per_trial_timeout, seed.
type Settings struct {
	MaxExamples     int
	PerTrialTimeout time.Duration
	Seed            uint64

	// Size loosely bounds collection lengths and numeric magnitude on every
	// draw (gen.Generator.Draw's size parameter). Left at zero, DefaultSize
	// applies.
	Size int
}

// DefaultSize is used when Settings.Size is unset.
const DefaultSize = 50

func (s Settings) size() int {
	if s.Size > 0 {
		return s.Size
	}
	return DefaultSize
}
