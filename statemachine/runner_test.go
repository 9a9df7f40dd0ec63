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

package statemachine

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protean-http/protean/auth"
	"github.com/protean-http/protean/registry"
	"github.com/protean-http/protean/route"
	"github.com/protean-http/protean/transport"
	"github.com/protean-http/protean/typeref"
	"github.com/protean-http/protean/validate"
)

func createWidget() *route.Spec {
	return &route.Spec{
		Path:        "/widgets",
		Methods:     []string{"POST"},
		OperationID: "createWidget",
		ResponseContracts: []route.ResponseContract{
			{Status: 201, ContentType: "application/json", Body: typeref.RecordOf(
				typeref.Field{Name: "id", Type: typeref.PrimitiveRef(typeref.Str), Required: true},
			)},
		},
	}
}

func getWidget() *route.Spec {
	return &route.Spec{
		Path:        "/widgets/{id}",
		Methods:     []string{"GET"},
		OperationID: "getWidget",
		PathParams:  map[string]typeref.Ref{"id": typeref.PrimitiveRef(typeref.Str)},
	}
}

func TestFromInferred_InfersEdgeByFieldName(t *testing.T) {
	t.Parallel()

	edges := FromInferred([]*route.Spec{createWidget(), getWidget()})

	require.Len(t, edges, 1)
	assert.Equal(t, "createWidget", edges[0].Producer)
	assert.Equal(t, "getWidget", edges[0].Consumer)
	assert.Equal(t, "id", edges[0].Parameter)
	assert.Equal(t, "$.body#/id", edges[0].Field)
}

func TestBuildRules_AssignsConsumesAndProduces(t *testing.T) {
	t.Parallel()

	specs := []*route.Spec{createWidget(), getWidget()}
	edges := FromInferred(specs)
	rules := BuildRules(specs, edges)

	require.Len(t, rules, 2)
	var create, get *Rule
	for _, rs := range rules {
		switch rs.rule.ID {
		case "createWidget":
			create = rs.rule
		case "getWidget":
			get = rs.rule
		}
	}
	require.NotNil(t, create)
	require.NotNil(t, get)
	assert.Empty(t, create.Consumes)
	require.Len(t, create.Produces, 1)
	assert.Equal(t, "id", create.Produces[0].Bundle)

	require.Len(t, get.Consumes, 1)
	assert.Equal(t, "id", get.Consumes[0].Bundle)
	assert.Equal(t, "path", get.Consumes[0].Group)
}

func TestRun_SequenceThreadsProducedFieldIntoConsumer(t *testing.T) {
	t.Parallel()

	var gotGetPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "widget-42"})
			return
		}
		gotGetPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	specs := []*route.Spec{createWidget(), getWidget()}
	edges := FromInferred(specs)
	runner := New(specs, edges, registry.New(), validate.DefaultStatusValidator(), transport.NewFake(handler), auth.Table{}, Settings{
		StepCount:    6,
		MaxSequences: 1,
		Seed:         1,
	})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result.Failure)

	if result.RuleFirings["getWidget"] > 0 {
		assert.True(t, strings.HasPrefix(gotGetPath, "/widgets/"))
		assert.NotEqual(t, "/widgets/{id}", gotGetPath)
	}
}

func TestRun_SequenceFailureIsShrunk(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "widget-42"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	specs := []*route.Spec{createWidget(), getWidget()}
	edges := FromInferred(specs)
	runner := New(specs, edges, registry.New(), validate.DefaultStatusValidator(), transport.NewFake(handler), auth.Table{}, Settings{
		StepCount:    6,
		MaxSequences: 1,
		Seed:         2,
	})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
	assert.Equal(t, "GET", result.Failure.Method)
}
