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

package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFC9457_MapsKindToStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind ErrorKind
		want int
	}{
		{KindTimeout, 503},
		{KindUnreachable, 503},
		{KindServer5xx, 502},
		{KindMalformed, 422},
		{KindUnexpectedStatus, 422},
		{KindSchemaViolation, 422},
		{KindContentTypeViolation, 422},
		{KindMissingCredential, 412},
	}

	for _, c := range cases {
		fr := FailureReport{Method: "GET", Pattern: "/users/{id}", Kind: c.kind}
		p := RFC9457(fr)
		assert.Equal(t, c.want, p.Status, c.kind)
		assert.Equal(t, "https://protean.dev/problems/"+string(c.kind), p.Type)
	}
}

func TestProblem_MarshalJSON_ExtensionsCannotShadowFixedFields(t *testing.T) {
	t.Parallel()

	p := Problem{
		Type:   "https://protean.dev/problems/timeout",
		Title:  "timeout",
		Status: 503,
		Extensions: map[string]any{
			"status": 999, // must not override the real status
			"seed":   uint64(42),
		},
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, float64(503), decoded["status"])
	assert.Equal(t, float64(42), decoded["seed"])
}

func TestProblem_MarshalJSON_OmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	p := Problem{Type: "t", Title: "t", Status: 500}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.NotContains(t, decoded, "detail")
	assert.NotContains(t, decoded, "instance")
}

func TestRFC9457_DetailNamesMethodAndPattern(t *testing.T) {
	t.Parallel()

	fr := FailureReport{Method: "POST", Pattern: "/orders", Kind: KindSchemaViolation}
	p := RFC9457(fr)

	assert.Equal(t, "POST /orders failed", p.Detail)
	assert.Equal(t, "/orders", p.Instance)
}

func TestParamOrder_FixedPathQueryHeaderBody(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"path", "query", "header", "body"}, ParamOrder)
}
