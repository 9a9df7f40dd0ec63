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

// Package auth implements §4.10's AuthDecorator: injects credentials into
// outgoing requests per route. Decorators are plain values (None, Bearer,
// ApiKey, Composite) and a Table maps route globs to them; the package has
// no option constructors and no New/MustNew.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrMissingCredential is §7's MissingCredential: the token source resolved
// to nothing. Fatal for the affected route, resolved once before the first
// trial rather than per-trial.
var ErrMissingCredential = errors.New("auth: missing credential")

// Location names where an API key is injected.
type Location int

const (
	LocationHeader Location = iota
	LocationQuery
)

// TokenSource resolves a concrete credential string once per route.
type TokenSource interface {
	Resolve() (string, error)
}

// EnvSource resolves from an environment variable; a missing or empty env
// var is ErrMissingCredential.
type EnvSource struct{ Var string }

func (s EnvSource) Resolve() (string, error) {
	v, ok := os.LookupEnv(s.Var)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: environment variable %q is unset", ErrMissingCredential, s.Var)
	}
	return v, nil
}

// StaticSource resolves to a fixed string, useful in tests.
type StaticSource string

func (s StaticSource) Resolve() (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: static token source is empty", ErrMissingCredential)
	}
	return string(s), nil
}

// Decorator is one of None, Bearer, ApiKey or Composite — §4.10.
type Decorator interface {
	// Apply resolves this decorator's credential(s) and returns the
	// headers and query parameters to add to an outgoing request.
	Apply() (headers map[string]string, query map[string]string, err error)
}

// None injects nothing.
type None struct{}

func (None) Apply() (map[string]string, map[string]string, error) { return nil, nil, nil }

// Bearer injects an `Authorization: Bearer <token>` header.
type Bearer struct{ Source TokenSource }

func (b Bearer) Apply() (map[string]string, map[string]string, error) {
	tok, err := b.Source.Resolve()
	if err != nil {
		return nil, nil, err
	}
	return map[string]string{"Authorization": "Bearer " + tok}, nil, nil
}

// ApiKey injects a named key into a header or query parameter.
type ApiKey struct {
	Name     string
	Location Location
	Source   TokenSource
}

func (a ApiKey) Apply() (map[string]string, map[string]string, error) {
	tok, err := a.Source.Resolve()
	if err != nil {
		return nil, nil, err
	}
	switch a.Location {
	case LocationQuery:
		return nil, map[string]string{a.Name: tok}, nil
	default:
		return map[string]string{a.Name: tok}, nil, nil
	}
}

// Composite applies each child decorator in order, merging their headers
// and query parameters (later children win on key collision).
type Composite struct{ Children []Decorator }

func (c Composite) Apply() (map[string]string, map[string]string, error) {
	headers := map[string]string{}
	query := map[string]string{}
	for _, child := range c.Children {
		h, q, err := child.Apply()
		if err != nil {
			return nil, nil, err
		}
		for k, v := range h {
			headers[k] = v
		}
		for k, v := range q {
			query[k] = v
		}
	}
	return headers, query, nil
}

// Override binds a glob over route paths to a Decorator, for the
// longest-match override table.
type Override struct {
	Glob      string
	Decorator Decorator
}

// Table resolves a Decorator per route path: the longest-matching Override
// glob wins; DefaultDecorator applies when no Override matches.
type Table struct {
	Overrides        []Override
	DefaultDecorator Decorator
}

// Resolve returns the Decorator that applies to path, chosen by
// longest-match glob over Overrides before the first trial — §4.10.
func (t Table) Resolve(path string) Decorator {
	best := -1
	var bestDecorator Decorator
	clean := strings.TrimPrefix(path, "/")
	for _, o := range t.Overrides {
		pat := strings.TrimPrefix(o.Glob, "/")
		if ok, _ := doublestar.Match(pat, clean); ok {
			if len(pat) > best {
				best = len(pat)
				bestDecorator = o.Decorator
			}
		}
	}
	if bestDecorator != nil {
		return bestDecorator
	}
	if t.DefaultDecorator != nil {
		return t.DefaultDecorator
	}
	return None{}
}
