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

// Package obslog re-exposes this module's ambient structured-logging
// interface for the engine packages (trial, statemachine). It is a direct
// alias of the teacher's logging.Logger shape — log/slog-compatible,
// never a third-party logging library, matching the one ambient concern
// where the teacher itself reaches for the standard library instead of an
// ecosystem package.
package obslog

import (
	"io"

	"github.com/protean-http/protean/logging"
)

// Logger is the structured logging interface engine components accept.
type Logger = *logging.Logger

// Noop returns a Logger that discards everything, the default when a host
// caller supplies none.
func Noop() Logger {
	return logging.MustNew(logging.WithOutput(io.Discard))
}
