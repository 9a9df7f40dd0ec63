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

package transport

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_Send_RoundTripsStatusAndBody(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/42", r.URL.Path)
		assert.Equal(t, "include=orders", r.URL.RawQuery)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"name":"ada"}`, string(body))

		w.Header().Set("X-Trace", "1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42}`))
	})
	ft := NewFake(handler)

	resp, terr := ft.Send(context.Background(), Request{
		Method:  "POST",
		Path:    "/users/42",
		Query:   []QueryPair{{Name: "include", Value: "orders"}},
		Headers: map[string][]string{"Authorization": {"Bearer tok"}},
		Body:    &Body{ContentType: "application/json", Bytes: []byte(`{"name":"ada"}`)},
		Timeout: time.Second,
	})

	require.Nil(t, terr)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, `{"id":42}`, string(resp.Body))
	if assert.Contains(t, resp.Headers, "X-Trace") {
		assert.Equal(t, []string{"1"}, resp.Headers["X-Trace"])
	}
}

func TestFake_Send_TimeoutYieldsTransportError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ft := NewFake(handler)

	_, terr := ft.Send(context.Background(), Request{Method: "GET", Path: "/slow", Timeout: time.Millisecond})

	require.NotNil(t, terr)
	assert.Equal(t, Timeout, terr.Kind)
	assert.ErrorIs(t, terr, ErrTransport)
}

func TestError_StringAndUnwrap(t *testing.T) {
	t.Parallel()

	base := context.DeadlineExceeded
	e := &Error{Kind: Unreachable, Err: base}

	assert.Equal(t, "transport: unreachable: context deadline exceeded", e.Error())
	assert.ErrorIs(t, e, base)
	assert.ErrorIs(t, e, ErrTransport)
}
