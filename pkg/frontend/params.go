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

package frontend

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// AuthorizationParameter is the decoded /authorize query. Valid is false
// whenever the transport itself failed to decode the query; in that case
// every other field is left at its zero value, but the value still
// satisfies the request-view contract handed to the back end.
type AuthorizationParameter struct {
	Valid       bool
	ClientID    string
	Scope       string
	RedirectURL string
	State       string
}

// AccessTokenParameter is the decoded /token request. Authorization is
// populated only when an "Authorization: Basic ..." header was present and
// decoded successfully; its absence does not affect Valid, which tracks
// only the body/transport decode outcome.
type AccessTokenParameter struct {
	Valid         bool
	ClientID      string
	Code          string
	RedirectURL   string
	GrantType     string
	Authorization *ClientCredentials
}

// ClientCredentials carries the client_id/secret pair recovered from an
// HTTP Basic Authorization header, after base64 decoding.
type ClientCredentials struct {
	ClientID string
	Secret   []byte
}

// GuardParameter is the decoded bearer request. Token is the verbatim
// Authorization header contents, scheme prefix included; the guard back end
// is responsible for parsing it further.
type GuardParameter struct {
	Valid bool
	Token string
}

// singleValue implements the §4.1 extraction rule: a key is retained only
// if its value list has exactly one element. Duplicate or absent keys are
// treated identically - both yield ("", false).
func singleValue(values url.Values, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) != 1 {
		return "", false
	}

	return v[0], true
}

// basicAuthPrefix is the literal, case-sensitive scheme prefix required on
// a Basic Authorization header.
const basicAuthPrefix = "Basic "

// decodeBasicCredentials implements the corrected Basic-auth parsing: the
// full base64 blob is decoded first, and the result is split on the first
// colon. This differs from the historical behaviour of splitting the
// still-encoded text - see the design notes on why that reading is wrong.
func decodeBasicCredentials(header string) (*ClientCredentials, bool) {
	if !strings.HasPrefix(header, basicAuthPrefix) {
		return nil, false
	}

	encoded := header[len(basicAuthPrefix):]

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}

	clientID, secret, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil, false
	}

	return &ClientCredentials{ClientID: clientID, Secret: []byte(secret)}, true
}

// ExtractAuthorizationParameter builds an AuthorizationParameter from the
// host request's query string.
func ExtractAuthorizationParameter(r Request) *AuthorizationParameter {
	query, err := r.Query()
	if err != nil {
		return &AuthorizationParameter{Valid: false}
	}

	p := &AuthorizationParameter{Valid: true}

	p.ClientID, _ = singleValue(query, "client_id")
	p.Scope, _ = singleValue(query, "scope")
	p.RedirectURL, _ = singleValue(query, "redirect_url")
	p.State, _ = singleValue(query, "state")

	return p
}

// ExtractAccessTokenParameter builds an AccessTokenParameter from the host
// request's form body and, if present, its Authorization header.
func ExtractAccessTokenParameter(r Request) *AccessTokenParameter {
	body, err := r.URLBody()
	if err != nil {
		return &AccessTokenParameter{Valid: false}
	}

	header, present, err := r.AuthHeader()
	if err != nil {
		return &AccessTokenParameter{Valid: false}
	}

	p := &AccessTokenParameter{Valid: true}

	p.ClientID, _ = singleValue(body, "client_id")
	p.Code, _ = singleValue(body, "code")
	p.RedirectURL, _ = singleValue(body, "redirect_url")
	p.GrantType, _ = singleValue(body, "grant_type")

	if present {
		creds, ok := decodeBasicCredentials(header)
		if !ok {
			// A malformed Authorization header invalidates the whole
			// parameter set - this is distinct from "no credentials".
			return &AccessTokenParameter{Valid: false}
		}

		p.Authorization = creds
	}

	return p
}

// ExtractGuardParameter builds a GuardParameter from the host request's
// Authorization header.
func ExtractGuardParameter(r Request) *GuardParameter {
	header, present, err := r.AuthHeader()
	if err != nil {
		return &GuardParameter{Valid: false}
	}

	if !present {
		return &GuardParameter{Valid: true, Token: ""}
	}

	return &GuardParameter{Valid: true, Token: header}
}
