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

// Package oidcscope recognizes the "openid" scope string a client may
// request alongside an ordinary OAuth2 grant, using the scope constant
// go-oidc defines for its own relying-party flows. It does not act as an
// OIDC relying party itself - upstream IdP delegation is an external
// collaborator per the core's scope - it only tells the Issuer when to
// mint the extra OIDC-flavored claims a client asked for.
package oidcscope

import (
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Requested reports whether scope, a space-separated scope string as
// carried on AuthorizationParameter and bound into an authorization code,
// includes the OIDC "openid" scope.
func Requested(scope string) bool {
	for _, s := range strings.Fields(scope) {
		if s == oidc.ScopeOpenID {
			return true
		}
	}

	return false
}

// IDTokenClaims is the minimal OIDC standard claim set this module mints
// into an id_token when a client requests the openid scope.
type IDTokenClaims struct {
	Issuer   string `json:"iss"`
	Subject  string `json:"sub"`
	Audience string `json:"aud"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
}
