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

package transport

import (
	"net/http"

	"github.com/FrancisMurillo/oxide-auth/pkg/consent"
	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

// buffered is the concrete frontend.Response artifact this package builds:
// the flows thread it through AsClientError/AsUnauthorized/WithAuthorization
// before it is finally written out by Write, so status and headers are
// accumulated rather than written to the wire immediately.
type buffered struct {
	status  int
	headers http.Header
	body    string
}

// ResponseFactory implements frontend.ResponseFactory by accumulating a
// buffered response, deferring the actual net/http write until the caller
// is done threading it through the builder chain.
type ResponseFactory struct{}

var _ frontend.ResponseFactory = ResponseFactory{}

func (ResponseFactory) Redirect(url string) (frontend.Response, error) {
	return &buffered{
		status:  http.StatusFound,
		headers: http.Header{"Location": []string{url}},
	}, nil
}

func (ResponseFactory) RedirectError(errorURL string) (frontend.Response, error) {
	return &buffered{
		status:  http.StatusFound,
		headers: http.Header{"Location": []string{errorURL}},
	}, nil
}

func (ResponseFactory) Text(body string) (frontend.Response, error) {
	return &buffered{
		status:  http.StatusOK,
		headers: http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
		body:    body,
	}, nil
}

func (ResponseFactory) JSON(body string) (frontend.Response, error) {
	return &buffered{
		status:  http.StatusOK,
		headers: http.Header{"Content-Type": []string{"application/json"}},
		body:    body,
	}, nil
}

func (ResponseFactory) AsClientError(resp frontend.Response) (frontend.Response, error) {
	b := resp.(*buffered)
	b.status = http.StatusBadRequest

	return b, nil
}

func (ResponseFactory) AsUnauthorized(resp frontend.Response) (frontend.Response, error) {
	b := resp.(*buffered)
	b.status = http.StatusUnauthorized

	return b, nil
}

func (ResponseFactory) WithAuthorization(resp frontend.Response, scheme string) (frontend.Response, error) {
	b := resp.(*buffered)
	b.headers.Set("WWW-Authenticate", scheme)

	return b, nil
}

// Write flushes resp onto w. A *consent.RenderedHTML payload (the
// InProgress path of the Authorization flow, built by the owner
// authorizer rather than this factory) is rendered here too, since it's
// the only place that knows how to turn a frontend.Response into bytes.
func Write(w http.ResponseWriter, resp frontend.Response) {
	if html, ok := resp.(*consent.RenderedHTML); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html.Body))

		return
	}

	b, ok := resp.(*buffered)
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	header := w.Header()

	for key, values := range b.headers {
		for _, value := range values {
			header.Add(key, value)
		}
	}

	status := b.status
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)

	if b.body != "" {
		_, _ = w.Write([]byte(b.body))
	}
}
