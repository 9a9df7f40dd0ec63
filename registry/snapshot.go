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

package registry

import (
	"github.com/protean-http/protean/gen"
)

// Snapshot flattens the current frame stack (top-most binding wins) into a
// single-frame Registry copy safe to share read-only across goroutines. A
// run hands every concurrent per-route task the same Snapshot so that
// TypeRegistry mutation never races with Resolve calls — §5's "the
// TypeRegistry snapshot is read-only across all concurrent tasks."
//
// The returned Registry must not have Register/Unregister/Scoped called on
// it concurrently with Resolve from other goroutines; callers that need a
// fresh scoped override for a single route should call Scoped on their own
// private Snapshot, never on the shared run-level Registry.
func (r *Registry) Snapshot() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flat := make(map[string]gen.Generator)
	for _, frame := range r.frames {
		for k, v := range frame {
			flat[k] = v
		}
	}
	return &Registry{
		frames:         []map[string]gen.Generator{flat},
		recursionLimit: r.recursionLimit,
	}
}
