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

// Package filter implements §4.4's glob-based route Filter. Matching is
// delegated to doublestar, whose documented `*`-within-segment /
// `**`-across-segments semantics are exactly the fixed rule §9's open
// question 2 calls for, rather than a second hand-rolled glob matcher.
package filter

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/protean-http/protean/route"
)

// Filter is a pure, total selection over path and method — §4.4.
type Filter struct {
	Include []string
	Exclude []string
	Methods []string // empty means all methods
}

// Matches reports whether path is selected: (Include is empty OR path
// matches at least one Include pattern) AND path matches no Exclude
// pattern.
func (f Filter) Matches(path string) bool {
	clean := strings.TrimPrefix(path, "/")
	if len(f.Include) > 0 {
		included := false
		for _, pat := range f.Include {
			if globMatch(pat, clean) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, pat := range f.Exclude {
		if globMatch(pat, clean) {
			return false
		}
	}
	return true
}

func globMatch(pattern, path string) bool {
	pattern = strings.TrimPrefix(pattern, "/")
	ok, _ := doublestar.Match(pattern, path)
	return ok
}

// MatchesMethod reports whether method is selected; an empty Methods set
// selects every method.
func (f Filter) MatchesMethod(method string) bool {
	if len(f.Methods) == 0 {
		return true
	}
	for _, m := range f.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// Apply returns copies of the specs whose Path survives f, each with its
// Methods narrowed to those f selects; a spec left with no method is
// dropped. A filter that selects nothing (§7's FilterAllEmpty, a warning)
// yields an empty slice; Apply has no error return, so callers check
// len(result) == 0 themselves.
func Apply(specs []*route.Spec, f Filter) []*route.Spec {
	var out []*route.Spec
	for _, s := range specs {
		if !f.Matches(s.Path) {
			continue
		}
		var methods []string
		for _, m := range s.Methods {
			if f.MatchesMethod(m) {
				methods = append(methods, m)
			}
		}
		if len(methods) == 0 {
			continue
		}
		cp := *s
		cp.Methods = methods
		out = append(out, &cp)
	}
	return out
}
