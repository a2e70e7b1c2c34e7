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
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gopkg.in/go-jose/go-jose.v2/jwt"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend/jose"
	"github.com/FrancisMurillo/oxide-auth/pkg/backend/oidcscope"
	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

// accessClaims are the signed-and-encrypted claims bound into an access
// token returned from the token endpoint.
type accessClaims struct {
	jwt.Claims `json:",inline"`

	ClientID string `json:"client_id"`
	Scope    string `json:"scope,omitempty"`
}

// oauthError is the RFC 6749 §5.2 wire shape for a token endpoint error.
type oauthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func errorJSON(code, description string) string {
	body, err := json.Marshal(oauthError{Error: code, ErrorDescription: description})
	if err != nil {
		// Marshalling a fixed, ASCII-only struct cannot fail in
		// practice; fall back to a minimal literal rather than panic.
		return `{"error":"server_error"}`
	}

	return string(body)
}

// tokenResponse implements frontend.TokenResponse with the RFC 6749 §5.1
// success body. IDToken is populated only when the client requested the
// OIDC "openid" scope.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
	IDToken     string `json:"id_token,omitempty"`
}

func (t *tokenResponse) ToJSON() (string, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// IssuerOptions configures the Issuer.
type IssuerOptions struct {
	// Issuer is this service's own identity, stamped into and checked
	// against the iss/aud claims of codes and tokens.
	Issuer string

	// AccessTokenTTL bounds how long an issued access token is valid for.
	AccessTokenTTL time.Duration
}

// Issuer implements frontend.IssuerRef: it authenticates the client via its
// HTTP Basic credentials, redeems a one-shot authorization code minted by
// Registrar, and mints a bearer access token in its place.
type Issuer struct {
	options *IssuerOptions
	clients *ClientStore
	codes   *jose.KeyPair
}

// NewIssuer constructs an Issuer.
func NewIssuer(options *IssuerOptions, clients *ClientStore, codes *jose.KeyPair) *Issuer {
	return &Issuer{options: options, clients: clients, codes: codes}
}

var _ frontend.IssuerRef = &Issuer{}

const basicAuthenticateScheme = `Basic realm="oauth"`

// UseCode implements frontend.IssuerRef.
func (i *Issuer) UseCode(params *frontend.AccessTokenParameter) (frontend.TokenResponse, *frontend.IssuerError) {
	if !params.Valid {
		return nil, frontend.InvalidIssuerError(errorJSON("invalid_request", "malformed token request"))
	}

	if params.GrantType != "authorization_code" {
		return nil, frontend.InvalidIssuerError(errorJSON("unsupported_grant_type", params.GrantType))
	}

	if params.Authorization == nil {
		return nil, frontend.UnauthorizedIssuerError(errorJSON("invalid_client", "client authentication required"), basicAuthenticateScheme)
	}

	record, err := i.clients.Get(params.Authorization.ClientID)
	if err != nil || !VerifySecret(record, params.Authorization.Secret) {
		return nil, frontend.UnauthorizedIssuerError(errorJSON("invalid_client", "unknown client or bad secret"), basicAuthenticateScheme)
	}

	claims, err := decodeCode(i.codes, i.options.Issuer, params.Code)
	if err != nil {
		return nil, frontend.InvalidIssuerError(errorJSON("invalid_grant", "code is malformed or expired"))
	}

	if claims.ClientID != record.ID || claims.RedirectURL != params.RedirectURL {
		return nil, frontend.InvalidIssuerError(errorJSON("invalid_grant", "code was not issued to this client/redirect_url"))
	}

	token, err := i.issueAccessToken(record.ID, claims.OwnerID, claims.Scope)
	if err != nil {
		return nil, frontend.InvalidIssuerError(errorJSON("server_error", "failed to issue access token"))
	}

	response := &tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(i.options.AccessTokenTTL.Seconds()),
		Scope:       claims.Scope,
	}

	if oidcscope.Requested(claims.Scope) {
		idToken, err := i.issueIDToken(record.ID, claims.OwnerID)
		if err != nil {
			return nil, frontend.InvalidIssuerError(errorJSON("server_error", "failed to issue id token"))
		}

		response.IDToken = idToken
	}

	return response, nil
}

// issueIDToken mints the OIDC id_token that accompanies an access token
// when the redeemed code carried the "openid" scope.
func (i *Issuer) issueIDToken(clientID, ownerID string) (string, error) {
	now := time.Now()

	claims := &oidcscope.IDTokenClaims{
		Issuer:   i.options.Issuer,
		Subject:  ownerID,
		Audience: clientID,
		IssuedAt: now.Unix(),
		Expiry:   now.Add(i.options.AccessTokenTTL).Unix(),
	}

	return i.codes.Encode(claims)
}

func (i *Issuer) issueAccessToken(clientID, ownerID, scope string) (string, error) {
	now := time.Now()
	issued := jwt.NumericDate(now.Unix())
	expiry := jwt.NumericDate(now.Add(i.options.AccessTokenTTL).Unix())

	claims := &accessClaims{
		Claims: jwt.Claims{
			ID:        uuid.New().String(),
			Subject:   ownerID,
			Issuer:    i.options.Issuer,
			Audience:  jwt.Audience{i.options.Issuer},
			IssuedAt:  &issued,
			NotBefore: &issued,
			Expiry:    &expiry,
		},
		ClientID: clientID,
		Scope:    scope,
	}

	return i.codes.Encode(claims)
}

// VerifyAccessToken decrypts and validates a bearer token, returning the
// owner id it was issued to. Used by Guard.
func (i *Issuer) VerifyAccessToken(token string) (string, error) {
	claims := &accessClaims{}

	if err := i.codes.Decode(token, claims); err != nil {
		return "", err
	}

	expected := jwt.Expected{
		Issuer:   i.options.Issuer,
		Audience: jwt.Audience{i.options.Issuer},
		Time:     time.Now(),
	}

	if err := claims.Claims.Validate(expected); err != nil {
		return "", err
	}

	return claims.Subject, nil
}
