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

// Package codec serializes a drawn body value into request bytes per a
// route's declared content type — §6's "implementations may register
// additional serializers via TypeRegistry composition but JSON is
// mandatory." Each Codec here encodes an untyped map[string]any drawn by
// [gen.Record] rather than a typed Go struct.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	goyaml "github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes a generated body value and reports the wire content type to
// send it under.
type Codec interface {
	ContentType() string
	Encode(v any) ([]byte, error)
}

// Registry maps a content type string to its Codec. JSON is always present
// and cannot be removed, per §6.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry builds a Registry with JSON, YAML, TOML and MessagePack
// codecs installed, used for outbound body construction.
func NewRegistry() *Registry {
	r := &Registry{codecs: map[string]Codec{}}
	for _, c := range []Codec{jsonCodec{}, yamlCodec{}, tomlCodec{}, msgpackCodec{}} {
		r.codecs[c.ContentType()] = c
	}
	return r
}

// Register installs or overrides a codec for its declared content type.
func (r *Registry) Register(c Codec) { r.codecs[c.ContentType()] = c }

// For resolves the codec bound to contentType, defaulting to JSON when
// contentType is empty.
func (r *Registry) For(contentType string) (Codec, error) {
	if contentType == "" {
		contentType = "application/json"
	}
	c, ok := r.codecs[contentType]
	if !ok {
		return nil, fmt.Errorf("codec: no codec registered for content type %q", contentType)
	}
	return c, nil
}

type jsonCodec struct{}

func (jsonCodec) ContentType() string       { return "application/json" }
func (jsonCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

type yamlCodec struct{}

func (yamlCodec) ContentType() string          { return "application/yaml" }
func (yamlCodec) Encode(v any) ([]byte, error) { return goyaml.Marshal(v) }

type tomlCodec struct{}

func (tomlCodec) ContentType() string { return "application/toml" }
func (tomlCodec) Encode(v any) ([]byte, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("codec: toml encoding requires a record (map[string]any), got %T", v)
	}
	var buf []byte
	w := &sliceWriter{buf: &buf}
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return nil, err
	}
	return buf, nil
}

type msgpackCodec struct{}

func (msgpackCodec) ContentType() string          { return "application/msgpack" }
func (msgpackCodec) Encode(v any) ([]byte, error) { return msgpack.Marshal(v) }

// sliceWriter adapts a []byte accumulator to io.Writer for toml.Encoder,
// which requires an io.Writer rather than returning []byte directly.
type sliceWriter struct{ buf *[]byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
