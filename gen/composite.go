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

package gen

import (
	"fmt"
	"iter"
)

// optionalGen is 50/50 none vs. inner, shrinking toward none — §4.2's
// Optional(t).
type optionalGen struct{ inner Generator }

func Optional(inner Generator) Generator { return optionalGen{inner: inner} }

func (g optionalGen) Draw(r *Rand, size int) (any, *DrawTree) {
	if !r.Bool() {
		return nil, &DrawTree{Label: "optional", Present: false}
	}
	v, inner := g.inner.Draw(r.Derive("optional.some"), size)
	return v, &DrawTree{Label: "optional", Present: true, Children: []*DrawTree{inner}}
}

func (g optionalGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		if tree.Present {
			if !yield(&DrawTree{Label: "optional", Present: false}) {
				return
			}
			for cand := range g.inner.Shrink(tree.Children[0]) {
				if !yield(&DrawTree{Label: "optional", Present: true, Children: []*DrawTree{cand}}) {
					return
				}
			}
		}
	}
}

func (g optionalGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || tree.Label != "optional" {
		return nil, false
	}
	if !tree.Present {
		return nil, true
	}
	if len(tree.Children) != 1 {
		return nil, false
	}
	return g.inner.Rebuild(tree.Children[0])
}

// seqGen draws a length in [lo, hi] then draws that many independent
// elements — §4.2's Seq(t, lo, hi).
type seqGen struct {
	elem     Generator
	lo, hi   int
	hasUpper bool
}

func Seq(elem Generator, lo, hi int) Generator {
	return seqGen{elem: elem, lo: lo, hi: hi, hasUpper: true}
}

// SeqUnbounded builds a Seq with only a minimum length (the generator caps
// the drawn length using the size parameter).
func SeqUnbounded(elem Generator, lo int) Generator {
	return seqGen{elem: elem, lo: lo, hasUpper: false}
}

func (g seqGen) upper(size int) int {
	if g.hasUpper {
		return g.hi
	}
	cap := g.lo + size
	if cap < g.lo {
		cap = g.lo
	}
	return cap
}

func (g seqGen) Draw(r *Rand, size int) (any, *DrawTree) {
	n := r.IntRange(g.lo, g.upper(size))
	values := make([]any, n)
	children := make([]*DrawTree, n)
	for i := 0; i < n; i++ {
		v, t := g.elem.Draw(r.Derive(fmt.Sprintf("seq[%d]", i)), size)
		values[i] = v
		children[i] = t
	}
	return values, &DrawTree{Label: "seq", Children: children}
}

func (g seqGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		n := len(tree.Children)
		// 1. Remove an element, preferring internal positions before endpoints.
		order := internalFirstOrder(n)
		for _, idx := range order {
			if n <= g.lo {
				break
			}
			cand := make([]*DrawTree, 0, n-1)
			cand = append(cand, tree.Children[:idx]...)
			cand = append(cand, tree.Children[idx+1:]...)
			if !yield(&DrawTree{Label: "seq", Children: cand}) {
				return
			}
		}
		// 2. Halve the length.
		for keep := n / 2; keep >= g.lo && keep < n; keep /= 2 {
			if !yield(&DrawTree{Label: "seq", Children: append([]*DrawTree(nil), tree.Children[:keep]...)}) {
				return
			}
			if keep == 0 {
				break
			}
		}
		// 3. Shrink individual elements, in order.
		for i, c := range tree.Children {
			for cand := range g.elem.Shrink(c) {
				next := append([]*DrawTree(nil), tree.Children...)
				next[i] = cand
				if !yield(&DrawTree{Label: "seq", Children: next}) {
					return
				}
			}
		}
	}
}

func internalFirstOrder(n int) []int {
	if n == 0 {
		return nil
	}
	order := make([]int, 0, n)
	lo, hi := 1, n-2
	for lo <= hi {
		order = append(order, lo, hi)
		lo++
		hi--
	}
	if n >= 1 {
		order = append(order, 0)
	}
	if n >= 2 {
		order = append(order, n-1)
	}
	return order
}

func (g seqGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || tree.Label != "seq" || len(tree.Children) < g.lo {
		return nil, false
	}
	if g.hasUpper && len(tree.Children) > g.hi {
		return nil, false
	}
	values := make([]any, len(tree.Children))
	for i, c := range tree.Children {
		v, ok := g.elem.Rebuild(c)
		if !ok {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// MapEntry is one drawn (key, value) pair of a Map generator's result.
type MapEntry struct {
	Key   any
	Value any
}

// mapGen draws as Seq((k,v)) with dedup on k — §4.2's Map(k, v, lo, hi).
type mapGen struct {
	key, val Generator
	lo, hi   int
}

func Map(key, val Generator, lo, hi int) Generator {
	return mapGen{key: key, val: val, lo: lo, hi: hi}
}

func (g mapGen) Draw(r *Rand, size int) (any, *DrawTree) {
	target := r.IntRange(g.lo, g.hi)
	seen := map[string]bool{}
	var entries []MapEntry
	var children []*DrawTree
	for attempt := 0; len(entries) < target && attempt < target*10+10; attempt++ {
		kr := r.Derive(fmt.Sprintf("map.key[%d]", attempt))
		vr := r.Derive(fmt.Sprintf("map.val[%d]", attempt))
		k, kt := g.key.Draw(kr, size)
		keyID := fmt.Sprintf("%v", k)
		if seen[keyID] {
			continue
		}
		seen[keyID] = true
		v, vt := g.val.Draw(vr, size)
		entries = append(entries, MapEntry{Key: k, Value: v})
		children = append(children, &DrawTree{Label: "pair", Children: []*DrawTree{kt, vt}})
	}
	return entries, &DrawTree{Label: "map", Children: children}
}

func (g mapGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		n := len(tree.Children)
		for _, idx := range internalFirstOrder(n) {
			if n <= g.lo {
				break
			}
			cand := make([]*DrawTree, 0, n-1)
			cand = append(cand, tree.Children[:idx]...)
			cand = append(cand, tree.Children[idx+1:]...)
			if !yield(&DrawTree{Label: "map", Children: cand}) {
				return
			}
		}
		for i, pair := range tree.Children {
			if len(pair.Children) != 2 {
				continue
			}
			for cand := range g.val.Shrink(pair.Children[1]) {
				next := append([]*DrawTree(nil), tree.Children...)
				next[i] = &DrawTree{Label: "pair", Children: []*DrawTree{pair.Children[0], cand}}
				if !yield(&DrawTree{Label: "map", Children: next}) {
					return
				}
			}
		}
	}
}

func (g mapGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || tree.Label != "map" || len(tree.Children) < g.lo || len(tree.Children) > g.hi {
		return nil, false
	}
	entries := make([]MapEntry, 0, len(tree.Children))
	seen := map[string]bool{}
	for _, pair := range tree.Children {
		if len(pair.Children) != 2 {
			return nil, false
		}
		k, ok := g.key.Rebuild(pair.Children[0])
		if !ok {
			return nil, false
		}
		keyID := fmt.Sprintf("%v", k)
		if seen[keyID] {
			return nil, false
		}
		seen[keyID] = true
		v, ok := g.val.Rebuild(pair.Children[1])
		if !ok {
			return nil, false
		}
		entries = append(entries, MapEntry{Key: k, Value: v})
	}
	return entries, true
}

// RecordField pairs a field's name and requiredness with its generator.
type RecordField struct {
	Name     string
	Gen      Generator
	Required bool
}

// recordGen draws each required field independently and each optional
// field via an include/exclude decision then draw, shrinking field-wise in
// declaration order — §4.2's Record.
type recordGen struct{ fields []RecordField }

func Record(fields []RecordField) Generator { return recordGen{fields: fields} }

func (g recordGen) Draw(r *Rand, size int) (any, *DrawTree) {
	values := make(map[string]any, len(g.fields))
	children := make([]*DrawTree, len(g.fields))
	for i, f := range g.fields {
		fr := r.Derive("field." + f.Name)
		if f.Required {
			v, t := f.Gen.Draw(fr, size)
			values[f.Name] = v
			children[i] = Node(f.Name, t)
			continue
		}
		include := fr.Derive("include").Bool()
		if !include {
			children[i] = &DrawTree{Label: f.Name, Present: false}
			continue
		}
		v, t := f.Gen.Draw(fr.Derive("value"), size)
		values[f.Name] = v
		children[i] = &DrawTree{Label: f.Name, Present: true, Children: []*DrawTree{t}}
	}
	return values, &DrawTree{Label: "record", Children: children}
}

func (g recordGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		for i, f := range g.fields {
			field := tree.Children[i]
			if !f.Required {
				if field.Present {
					dropped := append([]*DrawTree(nil), tree.Children...)
					dropped[i] = &DrawTree{Label: f.Name, Present: false}
					if !yield(&DrawTree{Label: "record", Children: dropped}) {
						return
					}
					for cand := range f.Gen.Shrink(field.Children[0]) {
						next := append([]*DrawTree(nil), tree.Children...)
						next[i] = &DrawTree{Label: f.Name, Present: true, Children: []*DrawTree{cand}}
						if !yield(&DrawTree{Label: "record", Children: next}) {
							return
						}
					}
				}
				continue
			}
			for cand := range f.Gen.Shrink(field.Children[0]) {
				next := append([]*DrawTree(nil), tree.Children...)
				next[i] = Node(f.Name, cand)
				if !yield(&DrawTree{Label: "record", Children: next}) {
					return
				}
			}
		}
	}
}

func (g recordGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || tree.Label != "record" || len(tree.Children) != len(g.fields) {
		return nil, false
	}
	values := make(map[string]any, len(g.fields))
	for i, f := range g.fields {
		field := tree.Children[i]
		if field.Label != f.Name {
			return nil, false
		}
		if !f.Required {
			if !field.Present {
				continue
			}
			if len(field.Children) != 1 {
				return nil, false
			}
			v, ok := f.Gen.Rebuild(field.Children[0])
			if !ok {
				return nil, false
			}
			values[f.Name] = v
			continue
		}
		if len(field.Children) != 1 {
			return nil, false
		}
		v, ok := f.Gen.Rebuild(field.Children[0])
		if !ok {
			return nil, false
		}
		values[f.Name] = v
	}
	return values, true
}

// oneOfGen chooses a variant index uniformly, shrinking toward the
// lowest-index variant then within it — §4.2's OneOf(vs).
type oneOfGen struct{ variants []Generator }

func OneOf(variants []Generator) Generator { return oneOfGen{variants: variants} }

func (g oneOfGen) Draw(r *Rand, size int) (any, *DrawTree) {
	idx := r.IntRange(0, len(g.variants)-1)
	v, inner := g.variants[idx].Draw(r.Derive("oneof.variant"), size)
	return v, &DrawTree{Label: "oneof", IntValue: int64(idx), Children: []*DrawTree{inner}}
}

func (g oneOfGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		idx := int(tree.IntValue)
		for lowerIdx := range intShrinkSeq(int64(idx), 0) {
			li := int(lowerIdx)
			if li < 0 || li >= len(g.variants) || li == idx {
				continue
			}
			// The candidate keeps this tree's inner shape under the lower
			// index; Rebuild rejects it when the lower variant cannot
			// replay that shape.
			if !yield(&DrawTree{Label: "oneof", IntValue: lowerIdx, Children: tree.Children}) {
				return
			}
		}
		for cand := range g.variants[idx].Shrink(tree.Children[0]) {
			if !yield(&DrawTree{Label: "oneof", IntValue: int64(idx), Children: []*DrawTree{cand}}) {
				return
			}
		}
	}
}

func (g oneOfGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || tree.Label != "oneof" || len(tree.Children) != 1 {
		return nil, false
	}
	idx := int(tree.IntValue)
	if idx < 0 || idx >= len(g.variants) {
		return nil, false
	}
	return g.variants[idx].Rebuild(tree.Children[0])
}
