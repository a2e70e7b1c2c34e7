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

package frontend_test

import (
	"errors"
	"net/url"

	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

// fakeRequest is a hand-rolled Request fixture; the core's Request
// interface is small enough that a generated mock would add no value over
// a literal struct.
type fakeRequest struct {
	query      url.Values
	queryErr   error
	body       url.Values
	bodyErr    error
	authHeader string
	authOK     bool
	authErr    error
}

var _ frontend.Request = &fakeRequest{}
var _ frontend.ResponseFactory = &fakeResponseFactory{}

func (r *fakeRequest) Query() (url.Values, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}

	if r.query == nil {
		return url.Values{}, nil
	}

	return r.query, nil
}

func (r *fakeRequest) URLBody() (url.Values, error) {
	if r.bodyErr != nil {
		return nil, r.bodyErr
	}

	if r.body == nil {
		return url.Values{}, nil
	}

	return r.body, nil
}

func (r *fakeRequest) AuthHeader() (string, bool, error) {
	if r.authErr != nil {
		return "", false, r.authErr
	}

	return r.authHeader, r.authOK, nil
}

// fakeResponse records what a fakeResponseFactory built.
type fakeResponse struct {
	kind            string
	redirectURL     string
	body            string
	status          int
	wwwAuthenticate string
}

// fakeResponseFactory is a minimal, mutation-based ResponseFactory that
// mirrors the linear builder contract: each method mutates and returns the
// same *fakeResponse.
type fakeResponseFactory struct {
	failRedirectError bool
}

var errTransportFixture = errors.New("fixture transport failure")

func (f *fakeResponseFactory) Redirect(u string) (frontend.Response, error) {
	return &fakeResponse{kind: "redirect", redirectURL: u, status: 302}, nil
}

func (f *fakeResponseFactory) Text(body string) (frontend.Response, error) {
	return &fakeResponse{kind: "text", body: body, status: 200}, nil
}

func (f *fakeResponseFactory) JSON(body string) (frontend.Response, error) {
	return &fakeResponse{kind: "json", body: body, status: 200}, nil
}

func (f *fakeResponseFactory) RedirectError(errorURL string) (frontend.Response, error) {
	if f.failRedirectError {
		return nil, errTransportFixture
	}

	return &fakeResponse{kind: "redirect", redirectURL: errorURL, status: 302}, nil
}

func (f *fakeResponseFactory) AsClientError(resp frontend.Response) (frontend.Response, error) {
	r := resp.(*fakeResponse)
	r.status = 400

	return r, nil
}

func (f *fakeResponseFactory) AsUnauthorized(resp frontend.Response) (frontend.Response, error) {
	r := resp.(*fakeResponse)
	r.status = 401

	return r, nil
}

func (f *fakeResponseFactory) WithAuthorization(resp frontend.Response, scheme string) (frontend.Response, error) {
	r := resp.(*fakeResponse)
	r.wwwAuthenticate = scheme

	return r, nil
}
