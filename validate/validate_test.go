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

package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protean-http/protean/transport"
)

func TestDefaultStatusValidator_FailsOn5xx(t *testing.T) {
	t.Parallel()

	v := DefaultStatusValidator()

	assert.True(t, v.Validate(context.Background(), &transport.Response{Status: 200}, "GET", nil).Valid)
	assert.True(t, v.Validate(context.Background(), &transport.Response{Status: 404}, "GET", nil).Valid)

	verdict := v.Validate(context.Background(), &transport.Response{Status: 500}, "GET", nil)
	assert.False(t, verdict.Valid)
	assert.NotEmpty(t, verdict.Errors)
}

func TestStatusValidator_AllowedSetOverridesFailOn5xx(t *testing.T) {
	t.Parallel()

	v := StatusValidator{Allowed: map[int]bool{500: true}, FailOn5xx: true}

	assert.True(t, v.Validate(context.Background(), &transport.Response{Status: 500}, "GET", nil).Valid)
	assert.False(t, v.Validate(context.Background(), &transport.Response{Status: 200}, "GET", nil).Valid)
}

func TestContentTypeValidator_IgnoresCharsetParameter(t *testing.T) {
	t.Parallel()

	v := ContentTypeValidator{Allowed: []string{"application/json"}}
	resp := &transport.Response{Headers: map[string][]string{"Content-Type": {"application/json; charset=utf-8"}}}

	assert.True(t, v.Validate(context.Background(), resp, "GET", nil).Valid)
}

func TestContentTypeValidator_RejectsUnlisted(t *testing.T) {
	t.Parallel()

	v := ContentTypeValidator{Allowed: []string{"application/json"}}
	resp := &transport.Response{Headers: map[string][]string{"Content-Type": {"text/plain"}}}

	verdict := v.Validate(context.Background(), resp, "GET", nil)
	assert.False(t, verdict.Valid)
	assert.NotEmpty(t, verdict.Errors)
}

func TestContentTypeValidator_EmptyAllowedIsPermissive(t *testing.T) {
	t.Parallel()

	v := ContentTypeValidator{}
	assert.True(t, v.Validate(context.Background(), &transport.Response{}, "GET", nil).Valid)
}

func TestComposite_InvalidIfAnyChildInvalid(t *testing.T) {
	t.Parallel()

	c := Composite{Children: []Validator{
		DefaultStatusValidator(),
		ContentTypeValidator{Allowed: []string{"application/json"}},
	}}
	resp := &transport.Response{Status: 200, Headers: map[string][]string{"Content-Type": {"text/plain"}}}

	verdict := c.Validate(context.Background(), resp, "GET", nil)
	assert.False(t, verdict.Valid)
	assert.Len(t, verdict.Errors, 1)
}

func TestComposite_ValidWhenAllChildrenValid(t *testing.T) {
	t.Parallel()

	c := Composite{Children: []Validator{DefaultStatusValidator()}}
	resp := &transport.Response{Status: 201}

	assert.True(t, c.Validate(context.Background(), resp, "POST", nil).Valid)
}
