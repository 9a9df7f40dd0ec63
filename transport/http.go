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
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTP is the wire Transport: a thin net/http.Client wrapper. This is the
// literal wire transport §1 places out of the hard core — the standard
// library's client is the correct and only idiomatic tool here, nothing in
// the example pack improves on it for a plain request/response round trip.
type HTTP struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTP constructs an HTTP transport against baseURL using a client with
// no default timeout (per-request timeouts come from Request.Timeout).
func NewHTTP(baseURL string) *HTTP {
	return &HTTP{BaseURL: baseURL, Client: &http.Client{}}
}

func (t *HTTP) Send(ctx context.Context, req Request) (*Response, *Error) {
	u, err := url.Parse(t.BaseURL + req.Path)
	if err != nil {
		return nil, &Error{Kind: Malformed, Err: err}
	}
	q := u.Query()
	for _, p := range req.Query {
		q.Add(p.Name, p.Value)
	}
	u.RawQuery = q.Encode()

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body.Bytes)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, req.Method, u.String(), bodyReader)
	if err != nil {
		return nil, &Error{Kind: Malformed, Err: err}
	}
	for k, vs := range req.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", req.Body.ContentType)
	}

	start := time.Now()
	resp, err := t.Client.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: Timeout, Err: err}
		}
		return nil, &Error{Kind: Unreachable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: Malformed, Err: err}
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: map[string][]string(resp.Header),
		Body:    body,
		Elapsed: elapsed,
	}, nil
}
