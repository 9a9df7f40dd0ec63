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
	"encoding/json"
	"strings"

	"github.com/go-openapi/jsonpointer"

	"github.com/protean-http/protean/transport"
)

// extractField evaluates a link edge's field expression (e.g.
// "$.body#/id") against a successful response, returning the extracted
// value and whether extraction succeeded. Only a "$.body#<pointer>" source
// is supported — the minimum viable form §4.9 asks for; any other source
// or a pointer that fails to resolve is treated as "producing rule produced
// nothing," never a crash.
func extractField(expr string, resp *transport.Response) (any, bool) {
	source, ptrExpr, ok := strings.Cut(expr, "#")
	if !ok || source != "$.body" {
		return nil, false
	}

	var doc any
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, false
	}

	ptr, err := jsonpointer.New(ptrExpr)
	if err != nil {
		return nil, false
	}
	v, _, err := ptr.Get(doc)
	if err != nil {
		return nil, false
	}
	return v, true
}
