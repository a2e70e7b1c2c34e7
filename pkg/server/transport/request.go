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

// Package transport binds the transport-agnostic frontend flows to
// net/http: it implements frontend.Request and frontend.ResponseFactory.
// It is kept separate from the top-level server package (which owns
// routing and process lifecycle) so that server/middleware can both depend
// on it without the two forming an import cycle.
package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

// Request adapts *http.Request to frontend.Request.
type Request struct {
	r *http.Request
}

// NewRequest wraps r as a frontend.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{r: r}
}

var _ frontend.Request = &Request{}

// Query implements frontend.Request. An empty query yields an empty
// mapping rather than an error, as required by §6.
func (req *Request) Query() (url.Values, error) {
	return url.ParseQuery(req.r.URL.RawQuery)
}

// URLBody implements frontend.Request. Anything other than
// application/x-www-form-urlencoded is reported as malformed.
func (req *Request) URLBody() (url.Values, error) {
	contentType := req.r.Header.Get("Content-Type")

	if contentType != "" && !strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	if err := req.r.ParseForm(); err != nil {
		return nil, err
	}

	return req.r.PostForm, nil
}

// AuthHeader implements frontend.Request.
func (req *Request) AuthHeader() (string, bool, error) {
	header := req.r.Header.Get("Authorization")
	if header == "" {
		return "", false, nil
	}

	return header, true, nil
}
