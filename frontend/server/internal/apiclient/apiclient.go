// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package apiclient is a small JSON-over-HTTP client shared by the clients of
// the remote recipe APIs.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Kind classifies a failed API call.
type Kind int

const (
	// KindNetwork means no response was received.
	KindNetwork Kind = iota
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
	// KindEmptyBody means a 2xx response had no body.
	KindEmptyBody
	// KindDecode means the response body could not be decoded.
	KindDecode
)

// Error is returned for every failed API call.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyBody:
		return "Empty response body"
	case KindHTTP:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	case KindNetwork:
		return "Network error: " + e.Message
	default:
		return "Decode error: " + e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client calls a JSON API rooted at BaseURL.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// EditRequest, if set, is called on every request before it is sent.
	EditRequest func(req *http.Request)
}

// Do sends body as JSON, if not nil, and decodes the response into out, if not
// nil. A successful response without a body is an error when out is set.
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, reqBody)
	if err != nil {
		return fmt.Errorf("apiclient: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.EditRequest != nil {
		c.EditRequest(req)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &Error{Kind: KindHTTP, StatusCode: res.StatusCode, Message: errorMessage(res, resBody)}
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(resBody)) == 0 {
		return &Error{Kind: KindEmptyBody, StatusCode: res.StatusCode}
	}
	if err := json.Unmarshal(resBody, out); err != nil {
		return &Error{Kind: KindDecode, StatusCode: res.StatusCode, Message: err.Error(), Err: err}
	}
	return nil
}

// errorMessage prefers the message field of a JSON error body, then the raw
// body, then the status text.
func errorMessage(res *http.Response, body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(res.StatusCode)
}
