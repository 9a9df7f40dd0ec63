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
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"
)

// Fake is an in-memory Transport backed directly by an http.Handler via
// httptest, used by this module's own tests and available to host callers
// for hermetic runs — the deterministic Transport every scenario in §8
// requires, since two runs against a real socket can never byte-for-byte
// guarantee identical timing, connection reuse, or header canonicalization.
type Fake struct {
	Handler http.Handler
}

func NewFake(h http.Handler) *Fake { return &Fake{Handler: h} }

func (t *Fake) Send(ctx context.Context, req Request) (*Response, *Error) {
	target := req.Path
	if len(req.Query) > 0 {
		q := make([]byte, 0, 64)
		q = append(q, '?')
		for i, p := range req.Query {
			if i > 0 {
				q = append(q, '&')
			}
			q = append(q, []byte(p.Name)...)
			q = append(q, '=')
			q = append(q, []byte(p.Value)...)
		}
		target += string(q)
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body.Bytes)
	}

	httpReq := httptest.NewRequest(req.Method, target, bodyReader)
	for k, vs := range req.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", req.Body.ContentType)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	httpReq = httpReq.WithContext(reqCtx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	start := time.Now()
	go func() {
		defer close(done)
		t.Handler.ServeHTTP(rec, httpReq)
	}()

	select {
	case <-done:
	case <-reqCtx.Done():
		return nil, &Error{Kind: Timeout, Err: reqCtx.Err()}
	}

	elapsed := time.Since(start)
	return &Response{
		Status:  rec.Code,
		Headers: map[string][]string(rec.Header()),
		Body:    rec.Body.Bytes(),
		Elapsed: elapsed,
	}, nil
}
