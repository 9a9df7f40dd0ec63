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

// Package route defines [Spec], the normalized, framework-agnostic
// endpoint descriptor §3 calls RouteSpec. A Spec is produced once by an
// extractor (out of scope here — see §6's ingestion contract) and consumed
// read-only by the rest of the engine.
package route

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	openapivalidate "github.com/protean-http/protean/openapi/validate"
	"github.com/protean-http/protean/pathenc"
	"github.com/protean-http/protean/typeref"
)

// QueryParam describes one query-string parameter.
type QueryParam struct {
	Type     typeref.Ref
	Required bool
}

// ResponseContract declares the expected schema for one (status, content
// type) pair of a route's responses.
type ResponseContract struct {
	Status      int
	ContentType string
	Body        typeref.Ref
}

// Spec is the immutable RouteSpec of §3.
type Spec struct {
	// Path is a pattern of literal segments and named placeholders
	// (`{name}`, optionally `{name:type}`).
	Path string `validate:"required"`

	// Methods is the non-empty ordered set of HTTP method tokens this
	// route responds to.
	Methods []string `validate:"required,min=1,dive,required"`

	PathParams   map[string]typeref.Ref
	QueryParams  map[string]QueryParam
	HeaderParams map[string]typeref.Ref

	// Body is consulted only for methods where a body may exist; absent
	// for GET/HEAD/DELETE by convention.
	Body *typeref.Ref

	ResponseContracts []ResponseContract

	Tags        []string
	Name        string
	Description string
	Deprecated  bool

	// OperationID and Links support stateful mode's explicit-link
	// configuration (§4.9); both may be left zero for stateless use.
	OperationID string
	Links       []Link

	// SchemaTable carries the bodies of any typeref.Named nodes reachable
	// from this route's parameter or body types.
	SchemaTable typeref.SchemaTable
}

// Link is one explicit stateful-mode edge: "operation Producer's response
// field Field feeds operation Consumer's parameter Param" — the minimum
// viable form §4.9/§9 (open question 3) settles on.
type Link struct {
	Producer  string // OperationID of the producing rule
	Field     string // JSON-pointer expression, e.g. "$.body#/id"
	Consumer  string // OperationID of the consuming rule
	Parameter string // parameter name on the consumer
	Bundle    string // bundle name threading Producer's output to Consumer
}

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// normalizePlaceholders strips the `:type` and trailing `?` pathenc
// supports (`{name:type}`, `{name?}`, `{name:type?}`) down to bare `{name}`
// placeholders, the only shape openapivalidate.ValidatePath's syntax check
// understands.
func normalizePlaceholders(path string) string {
	var b strings.Builder
	i := 0
	for i < len(path) {
		if path[i] != '{' {
			b.WriteByte(path[i])
			i++
			continue
		}
		end := strings.IndexByte(path[i:], '}')
		if end < 0 {
			b.WriteString(path[i:])
			break
		}
		end += i
		name := strings.TrimSuffix(path[i+1:end], "?")
		if idx := strings.IndexByte(name, ':'); idx >= 0 {
			name = name[:idx]
		}
		b.WriteByte('{')
		b.WriteString(name)
		b.WriteByte('}')
		i = end + 1
	}
	return b.String()
}

// Validate checks the cross-field invariants §3 requires: Path is a
// well-formed OpenAPI-style path pattern (openapivalidate.ValidatePath),
// placeholder names are unique, no placeholder collides with a declared
// query/header name, and every placeholder in Path has a PathParams entry
// (and vice versa).
func (s *Spec) Validate() error {
	if err := openapivalidate.ValidatePath(normalizePlaceholders(s.Path)); err != nil {
		return fmt.Errorf("route: invalid path %q: %w", s.Path, err)
	}
	if err := structValidator.Struct(s); err != nil {
		return fmt.Errorf("route: invalid spec: %w", err)
	}

	names := pathenc.ParamNames(s.Path)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("route: placeholder %q appears more than once in %q", n, s.Path)
		}
		seen[n] = true
		if _, ok := s.PathParams[n]; !ok {
			return fmt.Errorf("route: placeholder %q has no PathParams entry", n)
		}
	}
	for n := range s.PathParams {
		if !seen[n] {
			return fmt.Errorf("route: PathParams entry %q does not appear in path %q", n, s.Path)
		}
	}
	for n := range s.QueryParams {
		if seen[n] {
			return fmt.Errorf("route: query parameter %q collides with a path placeholder", n)
		}
	}
	for n := range s.HeaderParams {
		if seen[n] {
			return fmt.Errorf("route: header parameter %q collides with a path placeholder", n)
		}
	}
	return nil
}

// AllowsBody reports whether method conventionally carries a request body.
func AllowsBody(method string) bool {
	switch method {
	case "GET", "HEAD", "DELETE":
		return false
	default:
		return true
	}
}
