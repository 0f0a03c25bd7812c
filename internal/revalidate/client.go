// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package revalidate implements the cache-invalidation contract: a
// client the publish workflow calls after a write, and the request and
// response shapes served by the local /api/revalidate endpoint.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Timeout bounds the revalidation call; publish does not wait longer
// than this for a cache bust.
const Timeout = 5 * time.Second

// secretHeader carries the shared secret on revalidation requests.
const secretHeader = "X-Revalidate-Secret"

// Request is the revalidation request body.
type Request struct {
	Slug string `json:"slug"`
}

// Response is the revalidation response body.
type Response struct {
	OK      bool   `json:"ok"`
	Slug    string `json:"slug,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Client calls an external revalidation endpoint. The zero endpoint
// disables the client.
type Client struct {
	endpoint   string
	secret     string
	httpClient *http.Client
}

// NewClient creates a revalidation client for the given endpoint.
func NewClient(endpoint, secret string) *Client {
	return &Client{
		endpoint:   endpoint,
		secret:     secret,
		httpClient: &http.Client{Timeout: Timeout},
	}
}

// Revalidate asks the endpoint to drop its cached copy of slug. The
// call is bounded by Timeout regardless of the parent context. Callers
// treat an error as a degraded-but-published state, never a failure.
func (c *Client) Revalidate(ctx context.Context, slug string) error {
	if c.endpoint == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	body, err := json.Marshal(Request{Slug: slug})
	if err != nil {
		return fmt.Errorf("encode revalidate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build revalidate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a little of the body for the log line; ignore failures.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("revalidate endpoint returned %d: %s", resp.StatusCode, snippet)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode revalidate response: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("revalidate endpoint rejected slug: %s", out.Error)
	}
	return nil
}

// SecretHeader returns the header name the endpoint reads the shared
// secret from. The handler side uses it to stay in lockstep with the
// client.
func SecretHeader() string {
	return secretHeader
}
