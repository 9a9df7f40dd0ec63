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

// Package typeref defines the tagged-variant schema AST used to describe the
// shape of path, query, header and body parameters across the engine.
//
// A [Ref] is never type-switched on by callers via reflection; every
// generator and registry key is the value returned by [Ref.Key], an opaque
// structural identity. This mirrors the version-agnostic schema
// intermediate representation used elsewhere in this module's ancestry, but
// is deliberately a closed sum type rather than an open struct: the engine
// never needs OpenAPI-specific concerns (discriminators, XML hints, external
// docs) that complicate a general-purpose schema IR.
package typeref

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the variant held by a [Ref].
type Kind int

const (
	KindPrimitive Kind = iota
	KindOptional
	KindSeq
	KindMap
	KindEnum
	KindRecord
	KindOneOf
	KindRef
)

// Primitive enumerates the leaf primitive tags of §3's TypeRef.
type Primitive int

const (
	Str Primitive = iota
	Int
	Float
	Bool
	Bytes
	Uuid
	DateTime
	Date
)

func (p Primitive) String() string {
	switch p {
	case Str:
		return "str"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Bytes:
		return "bytes"
	case Uuid:
		return "uuid"
	case DateTime:
		return "datetime"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// Field is one entry of a Record, in declaration order.
type Field struct {
	Name     string
	Type     Ref
	Required bool
}

// Ref is the tagged-variant TypeRef node from §3. Exactly one of the
// variant-specific fields is meaningful, selected by Kind. Construct
// instances with the helper functions ([PrimitiveRef], [Opt], [SeqOf],
// [SeqUnbounded], [MapOf], [EnumOf], [RecordOf], [OneOfOf], [Named]) rather
// than struct literals —
// the helpers enforce each variant's invariants.
type Ref struct {
	kind Kind

	prim Primitive

	// Optional/Seq/Map element type(s).
	elem Ref
	key  Ref

	min, max int
	hasMin   bool
	hasMax   bool

	enum []string

	fields []Field

	variants []Ref

	refName string
}

func (r Ref) Kind() Kind { return r.kind }

// PrimitiveOf returns the tag of a KindPrimitive node. Panics if Kind() is
// not KindPrimitive.
func (r Ref) PrimitiveOf() Primitive {
	if r.kind != KindPrimitive {
		panic("typeref: PrimitiveOf on non-primitive Ref")
	}
	return r.prim
}

// Elem returns the element type of an Optional, Seq or Map node.
func (r Ref) Elem() Ref { return r.elem }

// MapKey returns the key type of a Map node.
func (r Ref) MapKey() Ref { return r.key }

// Bounds returns the (min, max) length/size bounds of a Seq or Map node, and
// whether each bound is present. An absent min defaults to 0; an absent max
// means unbounded (the generator applies its own cap).
func (r Ref) Bounds() (min int, hasMin bool, max int, hasMax bool) {
	return r.min, r.hasMin, r.max, r.hasMax
}

// EnumValues returns the allowed values of a KindEnum node.
func (r Ref) EnumValues() []string { return append([]string(nil), r.enum...) }

// Fields returns the ordered field list of a KindRecord node.
func (r Ref) Fields() []Field { return append([]Field(nil), r.fields...) }

// Variants returns the ordered variant list of a KindOneOf node.
func (r Ref) Variants() []Ref { return append([]Ref(nil), r.variants...) }

// RefName returns the schema-table name of a KindRef node.
func (r Ref) RefName() string { return r.refName }

func PrimitiveRef(p Primitive) Ref { return Ref{kind: KindPrimitive, prim: p} }

func Opt(elem Ref) Ref { return Ref{kind: KindOptional, elem: elem} }

func SeqOf(elem Ref, min, max int) Ref {
	return Ref{kind: KindSeq, elem: elem, min: min, hasMin: true, max: max, hasMax: true}
}

// SeqUnbounded builds a Seq with only a minimum length constraint.
func SeqUnbounded(elem Ref, min int) Ref {
	return Ref{kind: KindSeq, elem: elem, min: min, hasMin: true}
}

func MapOf(key, val Ref, min, max int) Ref {
	return Ref{kind: KindMap, key: key, elem: val, min: min, hasMin: true, max: max, hasMax: true}
}

func EnumOf(values ...string) Ref {
	return Ref{kind: KindEnum, enum: append([]string(nil), values...)}
}

func RecordOf(fields ...Field) Ref {
	return Ref{kind: KindRecord, fields: append([]Field(nil), fields...)}
}

func OneOfOf(variants ...Ref) Ref {
	return Ref{kind: KindOneOf, variants: append([]Ref(nil), variants...)}
}

// Named builds a Ref(name) node resolved later against a [SchemaTable].
func Named(name string) Ref { return Ref{kind: KindRef, refName: name} }

// SchemaTable carries the bodies of named (possibly mutually recursive)
// schemas referenced by Named nodes. It is passed explicitly alongside a
// registry resolution rather than held in a package global, so that
// resolution stays reentrant-safe across concurrently-running routes.
type SchemaTable map[string]Ref

// Key returns a stable, structural string identity for r, suitable as a map
// key in a registry's structural-match tier. Two Refs describing the same
// shape produce the same Key regardless of construction order.
func (r Ref) Key() string {
	var b strings.Builder
	r.writeKey(&b)
	return b.String()
}

func (r Ref) writeKey(b *strings.Builder) {
	switch r.kind {
	case KindPrimitive:
		fmt.Fprintf(b, "prim(%s)", r.prim)
	case KindOptional:
		b.WriteString("opt(")
		r.elem.writeKey(b)
		b.WriteByte(')')
	case KindSeq:
		fmt.Fprintf(b, "seq(%d,%d,", r.min, r.max)
		r.elem.writeKey(b)
		b.WriteByte(')')
	case KindMap:
		fmt.Fprintf(b, "map(%d,%d,", r.min, r.max)
		r.key.writeKey(b)
		b.WriteByte(',')
		r.elem.writeKey(b)
		b.WriteByte(')')
	case KindEnum:
		vs := append([]string(nil), r.enum...)
		sort.Strings(vs)
		fmt.Fprintf(b, "enum(%s)", strings.Join(vs, "|"))
	case KindRecord:
		b.WriteString("record(")
		for i, f := range r.fields {
			if i > 0 {
				b.WriteByte(';')
			}
			fmt.Fprintf(b, "%s:%v:", f.Name, f.Required)
			f.Type.writeKey(b)
		}
		b.WriteByte(')')
	case KindOneOf:
		b.WriteString("oneof(")
		for i, v := range r.variants {
			if i > 0 {
				b.WriteByte(';')
			}
			v.writeKey(b)
		}
		b.WriteByte(')')
	case KindRef:
		fmt.Fprintf(b, "ref(%s)", r.refName)
	}
}

func (r Ref) String() string { return r.Key() }
