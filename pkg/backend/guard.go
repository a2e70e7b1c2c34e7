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

package backend

import (
	"strings"

	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

// Guard implements frontend.GuardRef: it parses the bearer scheme out of a
// raw Authorization header and validates the access token Issuer minted.
type Guard struct {
	issuer *Issuer
}

// NewGuard constructs a Guard backed by issuer's verification key.
func NewGuard(issuer *Issuer) *Guard {
	return &Guard{issuer: issuer}
}

var _ frontend.GuardRef = &Guard{}

// Protect implements frontend.GuardRef.
func (g *Guard) Protect(params *frontend.GuardParameter) *frontend.AccessError {
	if !params.Valid {
		return &frontend.AccessError{Kind: frontend.AccessErrorInvalidRequest}
	}

	if params.Token == "" {
		return &frontend.AccessError{Kind: frontend.AccessErrorAccessDenied}
	}

	scheme, token, ok := strings.Cut(params.Token, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return &frontend.AccessError{Kind: frontend.AccessErrorAccessDenied}
	}

	if _, err := g.issuer.VerifyAccessToken(token); err != nil {
		return &frontend.AccessError{Kind: frontend.AccessErrorAccessDenied}
	}

	return nil
}

// Owner recovers the resource owner id a bearer token was issued to. It
// re-parses and re-verifies the header independently of Protect, since
// frontend.GuardRef's signature has no room to return anything but an
// AccessError; callers that already called Protect successfully can rely
// on this succeeding too.
func (g *Guard) Owner(authHeader string) (string, bool) {
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}

	owner, err := g.issuer.VerifyAccessToken(token)
	if err != nil {
		return "", false
	}

	return owner, true
}
