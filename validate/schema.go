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
	"encoding/json"
	"fmt"

	oapivalidate "github.com/protean-http/protean/openapi/validate"
	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/transport"
	"github.com/protean-http/protean/typeref"
)

// SchemaValidator checks that a response body conforms to the JSON Schema
// declared for the response's status on this route — §4.5. Contracts are
// selected by status alone: the method argument is not consulted, so every
// method of the route shares one contract per status. It is a thin
// domain wrapper around the teacher's openapi/validate.Engine
// (santhosh-tekuri/jsonschema/v6), adapted from validating an OpenAPI
// document against a meta-schema to validating a captured response body
// against a per-route schema.
type SchemaValidator struct {
	engine *oapivalidate.Engine
}

// NewSchemaValidator constructs a SchemaValidator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{engine: oapivalidate.New()}
}

func (v *SchemaValidator) Validate(ctx context.Context, resp *transport.Response, method string, r *route.Spec) Verdict {
	var contract *route.ResponseContract
	for i := range r.ResponseContracts {
		c := &r.ResponseContracts[i]
		if c.Status == resp.Status {
			contract = c
			break
		}
	}
	if contract == nil {
		// No declared contract for this status: nothing to check.
		return Verdict{Valid: true}
	}

	schemaJSON, err := schemaRefToJSONSchema(contract.Body, r.SchemaTable)
	if err != nil {
		return Verdict{Valid: false, Errors: []string{fmt.Sprintf("schema: %v", err)}}
	}

	if len(resp.Body) == 0 {
		return Verdict{Valid: false, Errors: []string{"schema violation: empty body where a schema was declared"}}
	}

	if err := v.engine.ValidateJSON(ctx, schemaJSON, resp.Body); err != nil {
		return Verdict{Valid: false, Errors: []string{fmt.Sprintf("schema violation: %v", err)}}
	}
	return Verdict{Valid: true}
}

// schemaRefToJSONSchema lowers a typeref.Ref into the JSON Schema document
// santhosh-tekuri/jsonschema/v6 expects. This is the inverse direction of
// the JSON-Schema-to-TypeRef lowering §9's Design Notes mentions as the
// other half of the schema-AST story. Named refs are inlined against table
// with a recursion-depth guard matching registry's own Ref expansion
// limit, since a single jsonschema.Compiler document has no notion of this
// module's TypeRegistry scoping.
func schemaRefToJSONSchema(ref typeref.Ref, table typeref.SchemaTable) ([]byte, error) {
	doc := lowerRef(ref, table, 0)
	return json.Marshal(doc)
}

const schemaRecursionLimit = 8

func lowerRef(ref typeref.Ref, table typeref.SchemaTable, depth int) map[string]any {
	switch ref.Kind() {
	case typeref.KindPrimitive:
		switch ref.PrimitiveOf() {
		case typeref.Str, typeref.Uuid, typeref.DateTime, typeref.Date:
			return map[string]any{"type": "string"}
		case typeref.Int:
			return map[string]any{"type": "integer"}
		case typeref.Float:
			return map[string]any{"type": "number"}
		case typeref.Bool:
			return map[string]any{"type": "boolean"}
		case typeref.Bytes:
			return map[string]any{"type": "string"}
		default:
			return map[string]any{}
		}
	case typeref.KindOptional:
		inner := lowerRef(ref.Elem(), table, depth)
		return map[string]any{"anyOf": []any{map[string]any{"type": "null"}, inner}}
	case typeref.KindSeq:
		min, hasMin, max, hasMax := ref.Bounds()
		schema := map[string]any{"type": "array", "items": lowerRef(ref.Elem(), table, depth)}
		if hasMin {
			schema["minItems"] = min
		}
		if hasMax {
			schema["maxItems"] = max
		}
		return schema
	case typeref.KindMap:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": lowerRef(ref.Elem(), table, depth),
		}
	case typeref.KindEnum:
		values := ref.EnumValues()
		out := make([]any, len(values))
		for i, v := range values {
			out[i] = v
		}
		return map[string]any{"enum": out}
	case typeref.KindRecord:
		props := map[string]any{}
		var required []string
		for _, f := range ref.Fields() {
			props[f.Name] = lowerRef(f.Type, table, depth)
			if f.Required {
				required = append(required, f.Name)
			}
		}
		schema := map[string]any{"type": "object", "properties": props}
		if len(required) > 0 {
			schema["required"] = required
		}
		return schema
	case typeref.KindOneOf:
		variants := ref.Variants()
		out := make([]any, len(variants))
		for i, v := range variants {
			out[i] = lowerRef(v, table, depth)
		}
		return map[string]any{"oneOf": out}
	case typeref.KindRef:
		if depth >= schemaRecursionLimit {
			return map[string]any{}
		}
		body, ok := table[ref.RefName()]
		if !ok {
			return map[string]any{}
		}
		return lowerRef(body, table, depth+1)
	default:
		return map[string]any{}
	}
}
