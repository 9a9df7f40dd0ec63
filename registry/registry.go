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

// Package registry implements §4.1's TypeRegistry: a stack of frames
// binding [typeref.Ref] keys to [gen.Generator]s, with scoped
// overrides modeled as an RAII-style guard rather than a process-wide
// singleton — the pattern §9's Design Notes calls for explicitly ("Model as
// a stack-of-maps owned by the run context; the 'scoped' context manager
// becomes an RAII guard whose destructor pops and whose release is
// idempotent").
package registry

import (
	"iter"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/protean-http/protean/gen"
	"github.com/protean-http/protean/typeref"
)

// defaultRecursionLimit bounds Ref(name) expansion absent an explicit
// override, per §4.2's "resolves against a finite guard depth."
const defaultRecursionLimit = 8

// Registry is the run-scoped, mutable TypeRegistry. It is safe for
// concurrent Resolve calls once setup (Register/RegisterMany) has
// completed; Scoped pushes are not safe to interleave with concurrent
// Resolve from other goroutines — §5 scopes TypeRegistry overrides as
// thread-local to the owning run.
type Registry struct {
	mu     sync.RWMutex
	frames []map[string]gen.Generator

	recursionLimit int
}

// New constructs a Registry with all built-in primitive generators
// installed, per §4.1's "Built-in primitive generators... all are
// registered at construction."
func New() *Registry {
	r := &Registry{recursionLimit: defaultRecursionLimit}
	r.frames = []map[string]gen.Generator{builtins()}
	return r
}

func builtins() map[string]gen.Generator {
	return map[string]gen.Generator{
		typeref.PrimitiveRef(typeref.Str).Key():      gen.Str(),
		typeref.PrimitiveRef(typeref.Int).Key():      gen.Int(),
		typeref.PrimitiveRef(typeref.Float).Key():    gen.Float(),
		typeref.PrimitiveRef(typeref.Bool).Key():     gen.Bool(),
		typeref.PrimitiveRef(typeref.Bytes).Key():    gen.Bytes(),
		typeref.PrimitiveRef(typeref.Uuid).Key():     gen.Uuid(),
		typeref.PrimitiveRef(typeref.DateTime).Key(): gen.DateTime(),
		typeref.PrimitiveRef(typeref.Date).Key():     gen.Date(),
	}
}

// WithRecursionLimit overrides the default Ref(name) expansion depth.
func (r *Registry) WithRecursionLimit(n int) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recursionLimit = n
	return r
}

// Register inserts a generator for t. It fails with [ErrAlreadyRegistered]
// unless override is true.
func (r *Registry) Register(t typeref.Ref, g gen.Generator, override bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	top := r.frames[len(r.frames)-1]
	key := t.Key()
	if _, exists := top[key]; exists && !override {
		return &AlreadyRegisteredError{Key: key}
	}
	top[key] = g
	return nil
}

// RegisterMany installs every (type, generator) pair atomically: if any key
// already exists in the top frame and override is false, no entries are
// inserted — §4.1's "atomic, all-or-nothing on duplicate without override."
func (r *Registry) RegisterMany(pairs map[typeref.Ref]gen.Generator, override bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	top := r.frames[len(r.frames)-1]
	if !override {
		for t := range pairs {
			if _, exists := top[t.Key()]; exists {
				return &AlreadyRegisteredError{Key: t.Key()}
			}
		}
	}
	for t, g := range pairs {
		top[t.Key()] = g
	}
	return nil
}

// Unregister removes a binding from the top frame.
func (r *Registry) Unregister(t typeref.Ref) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	top := r.frames[len(r.frames)-1]
	key := t.Key()
	if _, exists := top[key]; !exists {
		return ErrNotRegistered
	}
	delete(top, key)
	return nil
}

// Guard releases a [Registry.Scoped] override. Release is idempotent and
// safe to call multiple times, including from a recover() path on a panic
// unwind — Testable Property 6.
type Guard struct {
	released atomic.Bool
	release  func()
}

// Release restores the prior binding. Calling Release more than once is a
// no-op after the first call.
func (g *Guard) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.release()
	}
}

// Scoped pushes an override frame binding t to g, returning a [Guard] whose
// Release pops it. Scopes nest: releasing out of LIFO order still restores
// each frame correctly because each Guard closes over its own frame.
func (r *Registry) Scoped(t typeref.Ref, g gen.Generator) *Guard {
	r.mu.Lock()
	frame := map[string]gen.Generator{t.Key(): g}
	r.frames = append(r.frames, frame)
	r.mu.Unlock()

	return &Guard{release: func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		// Remove this guard's own frame by identity, wherever it now sits,
		// so a non-LIFO release never pops another guard's frame.
		want := reflect.ValueOf(frame).Pointer()
		for i := len(r.frames) - 1; i > 0; i-- {
			if reflect.ValueOf(r.frames[i]).Pointer() == want {
				r.frames = append(r.frames[:i], r.frames[i+1:]...)
				return
			}
		}
	}}
}

// lookupExact walks frames top-down for an exact key match.
func (r *Registry) lookupExact(key string) (gen.Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.frames) - 1; i >= 0; i-- {
		if g, ok := r.frames[i][key]; ok {
			return g, true
		}
	}
	return nil, false
}

// Resolve returns the generator bound to ref, per §4.1's resolution order:
// registered exact match, then structural match (identical here — keys
// already encode structure), then fallback synthesis (Optional-unwrapping,
// Seq/Map lifting, Record field-wise composition, primitive table). table
// supplies the bodies of any Named (Ref) nodes reachable from ref.
func (r *Registry) Resolve(ref typeref.Ref, table typeref.SchemaTable) (gen.Generator, error) {
	return r.resolve(ref, table, 0)
}

func (r *Registry) resolve(ref typeref.Ref, table typeref.SchemaTable, depth int) (gen.Generator, error) {
	if g, ok := r.lookupExact(ref.Key()); ok {
		return g, nil
	}

	switch ref.Kind() {
	case typeref.KindPrimitive:
		return nil, &UnsupportedTypeError{Key: ref.Key()}

	case typeref.KindOptional:
		inner, err := r.resolve(ref.Elem(), table, depth)
		if err != nil {
			return nil, err
		}
		return gen.Optional(inner), nil

	case typeref.KindSeq:
		inner, err := r.resolve(ref.Elem(), table, depth)
		if err != nil {
			return nil, err
		}
		min, _, max, hasMax := ref.Bounds()
		if !hasMax {
			return gen.SeqUnbounded(inner, min), nil
		}
		return gen.Seq(inner, min, max), nil

	case typeref.KindMap:
		kg, err := r.resolve(ref.MapKey(), table, depth)
		if err != nil {
			return nil, err
		}
		vg, err := r.resolve(ref.Elem(), table, depth)
		if err != nil {
			return nil, err
		}
		min, _, max, hasMax := ref.Bounds()
		if !hasMax {
			max = min + 10
		}
		return gen.Map(kg, vg, min, max), nil

	case typeref.KindEnum:
		return gen.Enum(ref.EnumValues()), nil

	case typeref.KindRecord:
		fields := ref.Fields()
		rfs := make([]gen.RecordField, len(fields))
		for i, f := range fields {
			fg, err := r.resolve(f.Type, table, depth)
			if err != nil {
				return nil, err
			}
			rfs[i] = gen.RecordField{Name: f.Name, Gen: fg, Required: f.Required}
		}
		return gen.Record(rfs), nil

	case typeref.KindOneOf:
		variants := ref.Variants()
		vgs := make([]gen.Generator, len(variants))
		for i, v := range variants {
			vg, err := r.resolve(v, table, depth)
			if err != nil {
				return nil, err
			}
			vgs[i] = vg
		}
		return gen.OneOf(vgs), nil

	case typeref.KindRef:
		r.mu.RLock()
		limit := r.recursionLimit
		r.mu.RUnlock()
		if depth >= limit {
			return r.mostDefault(ref, table)
		}
		body, ok := table[ref.RefName()]
		if !ok {
			return nil, &UnsupportedTypeError{Key: ref.Key()}
		}
		return r.resolve(body, table, depth+1)
	}

	return nil, &UnsupportedTypeError{Key: ref.Key()}
}

// mostDefault implements §4.2's recursion-depth floor: "at maximum depth an
// Optional surrounding becomes none if present, otherwise the most-default
// variant of a sum is chosen."
func (r *Registry) mostDefault(ref typeref.Ref, table typeref.SchemaTable) (gen.Generator, error) {
	body, ok := table[ref.RefName()]
	if !ok {
		return nil, &UnsupportedTypeError{Key: ref.Key()}
	}
	switch body.Kind() {
	case typeref.KindOptional:
		return alwaysNone{}, nil
	case typeref.KindOneOf:
		variants := body.Variants()
		if len(variants) == 0 {
			return nil, &UnsupportedTypeError{Key: ref.Key()}
		}
		return r.resolve(variants[0], table, r.recursionLimit)
	default:
		return nil, &UnsupportedTypeError{Key: ref.Key()}
	}
}

// alwaysNone is the terminal generator substituted for a recursive Optional
// once the recursion-depth guard trips.
type alwaysNone struct{}

func (alwaysNone) Draw(_ *gen.Rand, _ int) (any, *gen.DrawTree) {
	return nil, &gen.DrawTree{Label: "optional", Present: false}
}
func (alwaysNone) Shrink(_ *gen.DrawTree) iter.Seq[*gen.DrawTree] {
	return func(func(*gen.DrawTree) bool) {}
}
func (alwaysNone) Rebuild(tree *gen.DrawTree) (any, bool) {
	if tree == nil || tree.Label != "optional" || tree.Present {
		return nil, false
	}
	return nil, true
}
