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

// Package pathenc turns a path pattern and a values-per-parameter map into
// a concrete URI — §4.3's PathEncoder. Canonical primitive renderings come
// from [gen.RenderPathSafe]; this package owns only percent-encoding and
// the empty-segment rejection rule.
package pathenc

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptySegment is returned when substituting a parameter would collapse
// a path segment to empty, unless the pattern explicitly allows it (a
// placeholder written `{name?}` admits an empty rendering).
var ErrEmptySegment = errors.New("pathenc: parameter renders to an empty segment")

// Encode walks pattern substituting each `{name}` or `{name:type}`
// placeholder with values[name]'s canonical URL-safe rendering, percent
// -encoded per RFC 3986 segment rules (net/url.PathEscape — the correct,
// and only idiomatic, tool for this: there is no ecosystem alternative that
// improves on the standard library's segment escaper).
func Encode(pattern string, values map[string]string) (string, error) {
	var b strings.Builder
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		rendered, err := encodeSegment(seg, values)
		if err != nil {
			return "", err
		}
		b.WriteString(rendered)
	}
	return b.String(), nil
}

func encodeSegment(seg string, values map[string]string) (string, error) {
	if !strings.Contains(seg, "{") {
		return url.PathEscape(seg), nil
	}
	var b strings.Builder
	i := 0
	for i < len(seg) {
		if seg[i] != '{' {
			b.WriteString(url.PathEscape(string(seg[i])))
			i++
			continue
		}
		end := strings.IndexByte(seg[i:], '}')
		if end < 0 {
			return "", fmt.Errorf("pathenc: unterminated placeholder in %q", seg)
		}
		placeholder := seg[i+1 : i+end]
		name, optional := parsePlaceholder(placeholder)
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("pathenc: no value supplied for parameter %q", name)
		}
		if v == "" && !optional {
			return "", fmt.Errorf("%w: parameter %q", ErrEmptySegment, name)
		}
		b.WriteString(url.PathEscape(v))
		i += end + 1
	}
	return b.String(), nil
}

// parsePlaceholder splits `name`, `name:type`, or `name?` (and `name:type?`)
// into the bare parameter name and whether an empty rendering is permitted.
func parsePlaceholder(raw string) (name string, optional bool) {
	name = raw
	if strings.HasSuffix(name, "?") {
		optional = true
		name = strings.TrimSuffix(name, "?")
	}
	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		name = name[:idx]
	}
	return name, optional
}

// ParamNames returns the ordered list of placeholder names declared in
// pattern, used by route.Spec validation to check the "each name appears
// exactly once" invariant.
func ParamNames(pattern string) []string {
	var names []string
	i := 0
	for i < len(pattern) {
		start := strings.IndexByte(pattern[i:], '{')
		if start < 0 {
			break
		}
		start += i
		end := strings.IndexByte(pattern[start:], '}')
		if end < 0 {
			break
		}
		end += start
		name, _ := parsePlaceholder(pattern[start+1 : end])
		names = append(names, name)
		i = end + 1
	}
	return names
}
