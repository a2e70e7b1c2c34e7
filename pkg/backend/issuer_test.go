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
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

func newTestIssuer(t *testing.T) (*Issuer, *Registrar, *ClientStore) {
	t.Helper()

	clients := newTestClientStore(t)
	require.NoError(t, clients.Put(ClientRecord{ID: "app", Secret: "s3cret", RedirectURL: "https://c/cb"}))

	keys := newTestKeyPair(t)

	registrar := NewRegistrar(&RegistrarOptions{Issuer: "https://auth.example", CodeTTL: time.Minute}, clients, keys)
	issuer := NewIssuer(&IssuerOptions{Issuer: "https://auth.example", AccessTokenTTL: time.Hour}, clients, keys)

	return issuer, registrar, clients
}

func basicHeader(t *testing.T, clientID, secret string) *frontend.ClientCredentials {
	t.Helper()

	return &frontend.ClientCredentials{ClientID: clientID, Secret: []byte(secret)}
}

func mintCode(t *testing.T, registrar *Registrar, state string) string {
	t.Helper()

	negotiated, codeErr := registrar.Negotiate(&frontend.AuthorizationParameter{
		Valid: true, ClientID: "app", RedirectURL: "https://c/cb", State: state,
	})
	require.Nil(t, codeErr)

	redirectURL, codeErr := negotiated.Authorize("alice")
	require.Nil(t, codeErr)

	parsed := parseRedirectCode(t, redirectURL)

	return parsed
}

func parseRedirectCode(t *testing.T, redirectURL string) string {
	t.Helper()

	u, err := url.Parse(redirectURL)
	require.NoError(t, err)

	return u.Query().Get("code")
}

func TestIssuerUseCodeHappyPath(t *testing.T) {
	t.Parallel()

	issuer, registrar, _ := newTestIssuer(t)
	code := mintCode(t, registrar, "xyz")

	params := &frontend.AccessTokenParameter{
		Valid:         true,
		GrantType:     "authorization_code",
		Code:          code,
		RedirectURL:   "https://c/cb",
		Authorization: basicHeader(t, "app", "s3cret"),
	}

	token, issuerErr := issuer.UseCode(params)
	require.Nil(t, issuerErr)

	body, err := token.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, body, `"token_type":"bearer"`)
}

func TestIssuerUseCodeBadSecretUnauthorized(t *testing.T) {
	t.Parallel()

	issuer, registrar, _ := newTestIssuer(t)
	code := mintCode(t, registrar, "xyz")

	params := &frontend.AccessTokenParameter{
		Valid:         true,
		GrantType:     "authorization_code",
		Code:          code,
		RedirectURL:   "https://c/cb",
		Authorization: basicHeader(t, "app", "wrong-secret"),
	}

	_, issuerErr := issuer.UseCode(params)
	require.NotNil(t, issuerErr)
	assert.Equal(t, frontend.IssuerErrorUnauthorized, issuerErr.Kind)
	assert.Equal(t, basicAuthenticateScheme, issuerErr.Scheme)
}

func TestIssuerUseCodeMalformedCodeInvalid(t *testing.T) {
	t.Parallel()

	issuer, _, _ := newTestIssuer(t)

	params := &frontend.AccessTokenParameter{
		Valid:         true,
		GrantType:     "authorization_code",
		Code:          "not-a-real-code",
		RedirectURL:   "https://c/cb",
		Authorization: basicHeader(t, "app", "s3cret"),
	}

	_, issuerErr := issuer.UseCode(params)
	require.NotNil(t, issuerErr)
	assert.Equal(t, frontend.IssuerErrorInvalid, issuerErr.Kind)
}

func TestIssuerUseCodeUnsupportedGrantType(t *testing.T) {
	t.Parallel()

	issuer, _, _ := newTestIssuer(t)

	params := &frontend.AccessTokenParameter{Valid: true, GrantType: "password"}

	_, issuerErr := issuer.UseCode(params)
	require.NotNil(t, issuerErr)
	assert.Equal(t, frontend.IssuerErrorInvalid, issuerErr.Kind)
}

func TestIssuerUseCodeOpenIDScopeMintsIDToken(t *testing.T) {
	t.Parallel()

	issuer, registrar, _ := newTestIssuer(t)

	negotiated, codeErr := registrar.Negotiate(&frontend.AuthorizationParameter{
		Valid: true, ClientID: "app", RedirectURL: "https://c/cb", Scope: "profile openid",
	})
	require.Nil(t, codeErr)

	redirectURL, codeErr := negotiated.Authorize("alice")
	require.Nil(t, codeErr)

	code := parseRedirectCode(t, redirectURL)

	token, issuerErr := issuer.UseCode(&frontend.AccessTokenParameter{
		Valid: true, GrantType: "authorization_code", Code: code, RedirectURL: "https://c/cb",
		Authorization: basicHeader(t, "app", "s3cret"),
	})
	require.Nil(t, issuerErr)

	tr := token.(*tokenResponse)
	assert.NotEmpty(t, tr.IDToken)
}

func TestIssuerUseCodeWithoutOpenIDScopeOmitsIDToken(t *testing.T) {
	t.Parallel()

	issuer, registrar, _ := newTestIssuer(t)
	code := mintCode(t, registrar, "")

	token, issuerErr := issuer.UseCode(&frontend.AccessTokenParameter{
		Valid: true, GrantType: "authorization_code", Code: code, RedirectURL: "https://c/cb",
		Authorization: basicHeader(t, "app", "s3cret"),
	})
	require.Nil(t, issuerErr)

	tr := token.(*tokenResponse)
	assert.Empty(t, tr.IDToken)
}

func TestIssuerVerifyAccessToken(t *testing.T) {
	t.Parallel()

	issuer, registrar, _ := newTestIssuer(t)
	code := mintCode(t, registrar, "")

	token, issuerErr := issuer.UseCode(&frontend.AccessTokenParameter{
		Valid: true, GrantType: "authorization_code", Code: code, RedirectURL: "https://c/cb",
		Authorization: basicHeader(t, "app", "s3cret"),
	})
	require.Nil(t, issuerErr)

	tr := token.(*tokenResponse)

	owner, err := issuer.VerifyAccessToken(tr.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}
