// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type SupabaseIO struct {
	http       *http.Client
	baseURL    string
	serviceKey string
	bucket     string
}

// baseURL is the project URL, e.g. https://abcd.supabase.co.
func NewSupabaseIO(httpClient *http.Client, baseURL string, serviceKey string, bucket string) *SupabaseIO {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SupabaseIO{
		http:       httpClient,
		baseURL:    strings.TrimRight(baseURL, "/") + "/storage/v1",
		serviceKey: serviceKey,
		bucket:     bucket,
	}
}

func (s *SupabaseIO) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	u := fmt.Sprintf("%s/object/%s/%s", s.baseURL, s.bucket, escapePath(path))
	if err := s.do(ctx, http.MethodPost, u, contentType, data, map[string]string{"x-upsert": "true"}); err != nil {
		return "", fmt.Errorf("file: uploading to supabase: %w", err)
	}
	return s.URL(path), nil
}

func (s *SupabaseIO) DeleteFile(ctx context.Context, path string) error {
	body, err := json.Marshal(map[string][]string{"prefixes": {path}})
	if err != nil {
		return fmt.Errorf("file: marshalling delete request: %w", err)
	}
	u := fmt.Sprintf("%s/object/%s", s.baseURL, s.bucket)
	if err := s.do(ctx, http.MethodDelete, u, "application/json", body, nil); err != nil {
		return fmt.Errorf("file: deleting from supabase: %w", err)
	}
	return nil
}

func (s *SupabaseIO) URL(path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, s.bucket, escapePath(path))
}

func (s *SupabaseIO) do(ctx context.Context, method string, u string, contentType string, body []byte, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode >= 400 {
		resBody, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("status %d: %s", res.StatusCode, supabaseErrorMessage(resBody))
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

func supabaseErrorMessage(body []byte) string {
	var errRes struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errRes); err != nil {
		return strings.TrimSpace(string(body))
	}
	if errRes.Message != "" {
		return errRes.Message
	}
	return errRes.Error
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
