// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handler groups.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"landingpress/internal/content"
	"landingpress/internal/publish"
)

// maxBodyBytes bounds request bodies; landing-page JSON is small.
const maxBodyBytes = 1 << 20

// API groups the validation and publish endpoints used by the
// authoring workflow.
type API struct {
	validator *content.Validator
	publisher *publish.Publisher
}

// NewAPI creates the API handler group.
func NewAPI(validator *content.Validator, publisher *publish.Publisher) *API {
	return &API{validator: validator, publisher: publisher}
}

// Validate runs the content pipeline without side effects and returns
// the full ValidationResult: normalized tree, hash, errors, warnings.
// The endpoint always answers 200; validity is in the body.
func (a *API) Validate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read request body"})
		return
	}

	result := a.validator.ValidateAndNormalize(body)
	writeJSON(w, http.StatusOK, result)
}

// publishRequest is the publish endpoint's body.
type publishRequest struct {
	RawJSON json.RawMessage `json:"rawJson"`
	Meta    json.RawMessage `json:"meta"`
	Secret  string          `json:"secret"`
}

// Publish runs the full publish workflow and maps the outcome's error
// class onto the HTTP status.
func (a *API) Publish(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, publish.Result{
			Code: publish.CodeRequest, Error: "could not read request body",
		})
		return
	}

	var req publishRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, publish.Result{
			Code: publish.CodeRequest, Error: "request body must be a JSON object",
		})
		return
	}

	result := a.publisher.Publish(r.Context(), req.RawJSON, req.Meta, req.Secret)
	writeJSON(w, statusFor(result), result)
}

// statusFor maps a publish outcome to its HTTP status.
func statusFor(result publish.Result) int {
	if result.OK {
		return http.StatusOK
	}
	switch result.Code {
	case publish.CodeAuth:
		return http.StatusUnauthorized
	case publish.CodeConflict:
		return http.StatusConflict
	case publish.CodeThrottled:
		return http.StatusTooManyRequests
	case publish.CodeMeta, publish.CodeValidation:
		return http.StatusUnprocessableEntity
	case publish.CodeRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// readBody drains a size-bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}
	return body, nil
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
