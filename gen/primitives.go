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
	"time"

	"github.com/google/uuid"
)

const strAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// strGen draws code points from {lower, upper, digit}, length in [1, 100],
// shrinking toward the empty string then toward the alphabetically least
// character — §4.2's Str generator.
type strGen struct{}

func Str() Generator { return strGen{} }

func (strGen) Draw(r *Rand, size int) (any, *DrawTree) {
	max := 100
	if size > 0 && size < max {
		max = size
	}
	if max < 1 {
		max = 1
	}
	n := r.IntRange(1, max)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = strAlphabet[r.IntRange(0, len(strAlphabet)-1)]
	}
	return string(buf), LeafRaw("str", buf)
}

func (strGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		raw := tree.Raw
		if len(raw) == 0 {
			return
		}
		// Toward empty first.
		if !yield(LeafRaw("str", nil)) {
			return
		}
		// Then halve the length repeatedly.
		for n := len(raw) / 2; n > 0; n /= 2 {
			if !yield(LeafRaw("str", append([]byte(nil), raw[:n]...))) {
				return
			}
			if n == 1 {
				break
			}
		}
		// Then lower each byte toward the alphabet's first character.
		for i := range raw {
			if raw[i] == strAlphabet[0] {
				continue
			}
			cand := append([]byte(nil), raw...)
			cand[i] = strAlphabet[0]
			if !yield(LeafRaw("str", cand)) {
				return
			}
		}
	}
}

func (strGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "str" {
		return nil, false
	}
	return string(tree.Raw), true
}

// intGen draws uniformly in [-1000, 1000], shrinking toward 0.
type intGen struct{}

func Int() Generator { return intGen{} }

func (intGen) Draw(r *Rand, size int) (any, *DrawTree) {
	v := r.IntRange(-1000, 1000)
	return int64(v), Leaf("int", int64(v))
}

func (intGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		for v := range intShrinkSeq(tree.IntValue, 0) {
			if !yield(Leaf("int", v)) {
				return
			}
		}
	}
}

func (intGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "int" {
		return nil, false
	}
	return tree.IntValue, true
}

// floatGen draws finite floats only (no NaN, no Inf), shrinking toward 0.0.
type floatGen struct{}

func Float() Generator { return floatGen{} }

func (floatGen) Draw(r *Rand, size int) (any, *DrawTree) {
	v := (r.Float64()*2 - 1) * 1000
	return v, LeafFloat("float", v)
}

func (floatGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		for v := range floatShrinkSeq(tree.FloatValue, 0) {
			if !yield(LeafFloat("float", v)) {
				return
			}
		}
	}
}

func (floatGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "float" {
		return nil, false
	}
	return tree.FloatValue, true
}

// boolGen draws uniformly, shrinking to false.
type boolGen struct{}

func Bool() Generator { return boolGen{} }

func (boolGen) Draw(r *Rand, size int) (any, *DrawTree) {
	v := r.Bool()
	iv := int64(0)
	if v {
		iv = 1
	}
	return v, Leaf("bool", iv)
}

func (boolGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		if tree.IntValue != 0 {
			yield(Leaf("bool", 0))
		}
	}
}

func (boolGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "bool" {
		return nil, false
	}
	return tree.IntValue != 0, true
}

// uuidGen draws a uniform v4 UUID, shrinking to the zero UUID.
type uuidGen struct{}

func Uuid() Generator { return uuidGen{} }

func (uuidGen) Draw(r *Rand, size int) (any, *DrawTree) {
	var raw [16]byte
	copy(raw[:], r.Bytes(16))
	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80
	id, _ := uuid.FromBytes(raw[:])
	return id, LeafRaw("uuid", raw[:])
}

func (uuidGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		if !allZero(tree.Raw) {
			yield(LeafRaw("uuid", make([]byte, 16)))
		}
	}
}

func (uuidGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "uuid" || len(tree.Raw) != 16 {
		return nil, false
	}
	id, err := uuid.FromBytes(tree.Raw)
	if err != nil {
		return nil, false
	}
	return id, true
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// dateTimeGen draws within a representable range, shrinking toward the Unix
// epoch.
type dateTimeGen struct{ dateOnly bool }

func DateTime() Generator { return dateTimeGen{} }
func Date() Generator     { return dateTimeGen{dateOnly: true} }

const epochSpanSeconds = int64(60 * 60 * 24 * 365 * 80) // ~80 years either side

func (g dateTimeGen) Draw(r *Rand, size int) (any, *DrawTree) {
	offset := int64(r.IntRange(int(-epochSpanSeconds), int(epochSpanSeconds)))
	t := time.Unix(offset, 0).UTC()
	if g.dateOnly {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset = t.Unix()
	}
	return t, Leaf("datetime", offset)
}

func (g dateTimeGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		for v := range intShrinkSeq(tree.IntValue, 0) {
			if !yield(Leaf("datetime", v)) {
				return
			}
		}
	}
}

func (g dateTimeGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "datetime" {
		return nil, false
	}
	t := time.Unix(tree.IntValue, 0).UTC()
	if g.dateOnly {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t, true
}

// bytesGen draws length in [1, 100], shrinking toward the empty sequence.
type bytesGen struct{}

func Bytes() Generator { return bytesGen{} }

func (bytesGen) Draw(r *Rand, size int) (any, *DrawTree) {
	max := 100
	if size > 0 && size < max {
		max = size
	}
	if max < 1 {
		max = 1
	}
	n := r.IntRange(1, max)
	b := r.Bytes(n)
	return b, LeafRaw("bytes", b)
}

func (bytesGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		raw := tree.Raw
		if len(raw) == 0 {
			return
		}
		if !yield(LeafRaw("bytes", nil)) {
			return
		}
		for n := len(raw) / 2; n > 0; n /= 2 {
			if !yield(LeafRaw("bytes", append([]byte(nil), raw[:n]...))) {
				return
			}
			if n == 1 {
				break
			}
		}
	}
}

func (bytesGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "bytes" {
		return nil, false
	}
	return append([]byte(nil), tree.Raw...), true
}

// enumGen chooses uniformly among a fixed value set, shrinking toward the
// lowest index.
type enumGen struct{ values []string }

func Enum(values []string) Generator { return enumGen{values: values} }

func (g enumGen) Draw(r *Rand, size int) (any, *DrawTree) {
	if len(g.values) == 0 {
		panic("gen: Enum with no values")
	}
	i := r.IntRange(0, len(g.values)-1)
	return g.values[i], Leaf("enum", int64(i))
}

func (g enumGen) Shrink(tree *DrawTree) iter.Seq[*DrawTree] {
	return func(yield func(*DrawTree) bool) {
		for v := range intShrinkSeq(tree.IntValue, 0) {
			if !yield(Leaf("enum", v)) {
				return
			}
		}
	}
}

func (g enumGen) Rebuild(tree *DrawTree) (any, bool) {
	if tree == nil || !tree.IsLeaf || tree.Label != "enum" {
		return nil, false
	}
	i := int(tree.IntValue)
	if i < 0 || i >= len(g.values) {
		return nil, false
	}
	return g.values[i], true
}

// RenderPathSafe renders a primitive value for use inside a path segment
// before percent-encoding, per §4.2's "URL-safe renderings" constraint:
// ints decimal, UUIDs canonical lowercase, bools true/false, everything
// else its natural string form. pathenc.Encode still percent-encodes the
// result; this only picks the canonical textual form.
func RenderPathSafe(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return fmt.Sprintf("%d", t)
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case uuid.UUID:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
