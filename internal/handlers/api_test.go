// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"landingpress/internal/config"
	"landingpress/internal/content"
	"landingpress/internal/models"
	"landingpress/internal/publish"
)

const rawContent = `{
	"biggestBusinessBenefitBuyerStatement": "Reduce costs by 40%",
	"BuyersName": "Acme",
	"SellersName": "Vendor",
	"meetingSchedulerLink": "https://calendly.com/x",
	"highestOperationalBenefit": {"benefits": [{"statement": "Save time", "content": "desc"}]}
}`

const rawMeta = `{
	"page_url_key": "acme-vendor-0326",
	"buyer_id": "acme",
	"seller_id": "vendor",
	"mmyy": "0326"
}`

// stubStore is the minimal persistence the publish workflow needs.
type stubStore struct {
	pages map[string]*models.Page
}

func (s *stubStore) FindPublished(_ context.Context, slug string) (*models.Page, error) {
	return s.pages[slug], nil
}

func (s *stubStore) SubdomainConflict(_ context.Context, _, _ string) (*models.Page, error) {
	return nil, nil
}

func (s *stubStore) Upsert(_ context.Context, page *models.Page) (*models.Page, bool, error) {
	stored := *page
	stored.Version = 1
	s.pages[page.Slug] = &stored
	return &stored, true, nil
}

type stubThrottle struct {
	remaining time.Duration
}

func (t *stubThrottle) Remaining(_ context.Context, _ string) time.Duration { return t.remaining }
func (t *stubThrottle) Mark(_ context.Context, _ string)                    {}

func newTestAPI(throttle *stubThrottle) *API {
	cfg := &config.Config{
		Env:            "testing",
		PublishSecret:  "s3cret",
		PublicBaseURL:  "https://pages.example.com",
		ThrottleWindow: 15 * time.Second,
	}
	validator := content.NewValidator(content.DefaultLimits())
	publisher := publish.New(cfg, validator, &stubStore{pages: map[string]*models.Page{}},
		throttle, nil, nil, nil, nil, nil)
	return NewAPI(validator, publisher)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestValidateEndpoint(t *testing.T) {
	api := newTestAPI(&stubThrottle{})

	rr := postJSON(t, api.Validate, rawContent)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var result content.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.IsValid {
		t.Errorf("expected valid content, got errors %v", result.Errors)
	}
	if result.ContentSha == "" {
		t.Error("valid content should carry a content sha")
	}
	if result.Normalized == nil {
		t.Error("valid content should carry the normalized tree")
	}
}

// Validation failures still answer 200; validity lives in the body.
func TestValidateEndpointInvalidContent(t *testing.T) {
	api := newTestAPI(&stubThrottle{})

	rr := postJSON(t, api.Validate, `{"BuyersName": "Acme"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var result content.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.IsValid {
		t.Error("incomplete content should be invalid")
	}
	if len(result.Errors) == 0 {
		t.Error("expected structured errors in the body")
	}
}

func TestValidateEndpointEmptyBody(t *testing.T) {
	api := newTestAPI(&stubThrottle{})

	rr := postJSON(t, api.Validate, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func publishBody(secret string) string {
	return fmt.Sprintf(`{"rawJson": %s, "meta": %s, "secret": %q}`, rawContent, rawMeta, secret)
}

func TestPublishEndpoint(t *testing.T) {
	api := newTestAPI(&stubThrottle{})

	rr := postJSON(t, api.Publish, publishBody("s3cret"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rr.Code, rr.Body.String())
	}

	var result publish.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.OK || !result.Changed {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.URL != "https://pages.example.com/p/acme-vendor-0326" {
		t.Errorf("url = %q", result.URL)
	}
}

// TestPublishEndpointStatusMapping checks each workflow failure class
// lands on its HTTP status.
func TestPublishEndpointStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		throttle   time.Duration
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad secret",
			body:       publishBody("wrong"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   publish.CodeAuth,
		},
		{
			name:       "invalid metadata",
			body:       fmt.Sprintf(`{"rawJson": %s, "meta": {"page_url_key": "Bad Slug"}, "secret": "s3cret"}`, rawContent),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   publish.CodeMeta,
		},
		{
			name:       "invalid content",
			body:       fmt.Sprintf(`{"rawJson": {"BuyersName": "Acme"}, "meta": %s, "secret": "s3cret"}`, rawMeta),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   publish.CodeValidation,
		},
		{
			name:       "throttled",
			body:       publishBody("s3cret"),
			throttle:   9 * time.Second,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   publish.CodeThrottled,
		},
		{
			name:       "missing fields",
			body:       `{"secret": "s3cret"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   publish.CodeRequest,
		},
		{
			name:       "body not json",
			body:       "not json at all",
			wantStatus: http.StatusBadRequest,
			wantCode:   publish.CodeRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(&stubThrottle{remaining: tt.throttle})

			rr := postJSON(t, api.Publish, tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rr.Code, tt.wantStatus, rr.Body.String())
			}

			var result publish.Result
			if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if result.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.OK {
				t.Error("failed publish should not report ok")
			}
		})
	}
}

func TestPublishEndpointThrottledRetryAfter(t *testing.T) {
	api := newTestAPI(&stubThrottle{remaining: 9 * time.Second})

	rr := postJSON(t, api.Publish, publishBody("s3cret"))
	var result publish.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.RetryAfterSeconds != 9 {
		t.Errorf("retryAfterSeconds = %d, want 9", result.RetryAfterSeconds)
	}
}
