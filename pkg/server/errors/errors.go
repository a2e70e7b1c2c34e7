/*
Copyright 2022-2023 EscherCloud.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package errors turns the frontend package's internal error taxonomy
// (InternalError, AccessError) plus host-level routing failures into
// concrete HTTP artifacts, mirroring the single HTTPError chokepoint the
// rest of this module's ambient stack is built around.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ErrRequest is wrapped by every HTTPError this package constructs.
var ErrRequest = errors.New("request error")

// body is the RFC 6749 §5.2/§7 error wire shape.
type body struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HTTPError carries everything needed to both log server-side detail and
// emit a client-safe response, without ever leaking the former into the
// latter.
type HTTPError struct {
	status      int
	code        string
	description string
	err         error
	values      []interface{}
}

func newHTTPError(status int, code, description string) *HTTPError {
	return &HTTPError{status: status, code: code, description: description}
}

// WithError augments the error with detail from a wrapped library error.
// The detail is logged only, never returned to the client.
func (e *HTTPError) WithError(err error) *HTTPError {
	e.err = err

	return e
}

// WithValues augments the error with K/V pairs for logging. Do not use
// the "error" key, it collides with WithError.
func (e *HTTPError) WithValues(values ...interface{}) *HTTPError {
	e.values = values

	return e
}

// Unwrap implements Go 1.13 errors.
func (e *HTTPError) Unwrap() error {
	return ErrRequest
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.description
}

// Write emits the error to the client and logs the server-side detail.
func (e *HTTPError) Write(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	var details []interface{}

	if e.description != "" {
		details = append(details, "detail", e.description)
	}

	if e.err != nil {
		details = append(details, "error", e.err)
	}

	details = append(details, e.values...)

	logger.Info("error detail", details...)

	w.Header().Set("Cache-Control", "no-store")

	switch e.status {
	case http.StatusNotFound:
		w.WriteHeader(e.status)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.status)

	payload, err := json.Marshal(&body{Error: e.code, ErrorDescription: e.description})
	if err != nil {
		logger.Error(err, "failed to marshal error response")

		return
	}

	if _, err := w.Write(payload); err != nil {
		logger.Error(err, "failed to write error response")
	}
}

// HTTPNotFound builds a bare 404.
func HTTPNotFound() *HTTPError {
	return newHTTPError(http.StatusNotFound, "", "")
}

// HTTPMethodNotAllowed builds a bare 405.
func HTTPMethodNotAllowed() *HTTPError {
	return newHTTPError(http.StatusMethodNotAllowed, "", "")
}

// OAuth2InvalidRequest covers a malformed request the router or an
// adapter rejected before the frontend flows even ran.
func OAuth2InvalidRequest(description string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, "invalid_request", description)
}

// OAuth2ServerError signals an InternalError surfaced by the frontend
// flows: the protocol could not safely continue and no detail may reach
// the client.
func OAuth2ServerError(description string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, "server_error", description)
}

// OAuth2AccessDenied covers an AccessError from the Access flow's guard.
func OAuth2AccessDenied(description string) *HTTPError {
	return newHTTPError(http.StatusForbidden, "access_denied", description)
}
