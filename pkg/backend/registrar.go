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
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gopkg.in/go-jose/go-jose.v2/jwt"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend/jose"
	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

// codeClaims are the signed-and-encrypted claims bound into an
// authorization code. The issuer re-validates the client/redirect_url pair
// it was minted for and its expiry on every exchange; redeemed codes are
// not recorded, so a code can be exchanged more than once until it expires.
type codeClaims struct {
	jwt.Claims `json:",inline"`

	ClientID    string `json:"client_id"`
	RedirectURL string `json:"redirect_url"`
	Scope       string `json:"scope,omitempty"`
	OwnerID     string `json:"owner_id"`
}

// RegistrarOptions configures the Registrar.
type RegistrarOptions struct {
	// Issuer is this service's own identity, stamped into the iss/aud
	// claims of every code it mints.
	Issuer string

	// CodeTTL bounds how long an authorization code remains exchangeable.
	CodeTTL time.Duration
}

// Registrar implements frontend.CodeRef: it validates the client_id and
// redirect_url pair presented to /authorize against the registered client
// table, and on consent mints a JWE authorization code binding the owner,
// client and redirect target together. The requested scope is passed
// through as given; it is not checked against ClientRecord.Scopes.
type Registrar struct {
	options *RegistrarOptions
	clients *ClientStore
	codes   *jose.KeyPair
}

// NewRegistrar constructs a Registrar.
func NewRegistrar(options *RegistrarOptions, clients *ClientStore, codes *jose.KeyPair) *Registrar {
	return &Registrar{options: options, clients: clients, codes: codes}
}

var _ frontend.CodeRef = &Registrar{}

// Negotiate implements frontend.CodeRef.
func (r *Registrar) Negotiate(params *frontend.AuthorizationParameter) (frontend.Negotiated, *frontend.CodeError) {
	if !params.Valid || params.ClientID == "" || params.RedirectURL == "" {
		// No registered client to blame and no trustworthy redirect_url
		// to bounce the error back through.
		return nil, frontend.IgnoreCodeError()
	}

	record, err := r.clients.Get(params.ClientID)
	if err != nil {
		return nil, frontend.IgnoreCodeError()
	}

	if record.RedirectURL != params.RedirectURL {
		// Never redirect to a URL we didn't register for this client -
		// that's the open-redirector hole this whole check exists to
		// close.
		return nil, frontend.IgnoreCodeError()
	}

	return &negotiation{
		registrar: r,
		client:    record,
		scope:     params.Scope,
		state:     params.State,
	}, nil
}

// negotiation is the per-request handle returned by Registrar.Negotiate.
type negotiation struct {
	registrar *Registrar
	client    ClientRecord
	scope     string
	state     string
}

var _ frontend.Negotiated = &negotiation{}

// ClientParameter implements frontend.Negotiated.
func (n *negotiation) ClientParameter() *frontend.ClientParameter {
	return &frontend.ClientParameter{
		ClientID:    n.client.ID,
		RedirectURL: n.client.RedirectURL,
		Scope:       n.scope,
	}
}

// Authorize implements frontend.Negotiated.
func (n *negotiation) Authorize(ownerID string) (string, *frontend.CodeError) {
	now := time.Now()
	expiry := jwt.NumericDate(now.Add(n.registrar.options.CodeTTL).Unix())
	issued := jwt.NumericDate(now.Unix())

	claims := &codeClaims{
		Claims: jwt.Claims{
			ID:        uuid.New().String(),
			Subject:   ownerID,
			Issuer:    n.registrar.options.Issuer,
			Audience:  jwt.Audience{n.registrar.options.Issuer},
			IssuedAt:  &issued,
			NotBefore: &issued,
			Expiry:    &expiry,
		},
		ClientID:    n.client.ID,
		RedirectURL: n.client.RedirectURL,
		Scope:       n.scope,
		OwnerID:     ownerID,
	}

	code, err := n.registrar.codes.Encode(claims)
	if err != nil {
		return n.errorRedirect("server_error"), nil
	}

	return n.successRedirect(code), nil
}

// Deny implements frontend.Negotiated.
func (n *negotiation) Deny() (string, *frontend.CodeError) {
	return n.errorRedirect("access_denied"), nil
}

func (n *negotiation) successRedirect(code string) string {
	q := url.Values{"code": {code}}

	if n.state != "" {
		q.Set("state", n.state)
	}

	return n.client.RedirectURL + "?" + q.Encode()
}

func (n *negotiation) errorRedirect(errorCode string) string {
	q := url.Values{"error": {errorCode}}

	if n.state != "" {
		q.Set("state", n.state)
	}

	return n.client.RedirectURL + "?" + q.Encode()
}

// decodeCode recovers the code claims minted by Authorize, validating
// expiry and audience. Used by Issuer.
func decodeCode(codes *jose.KeyPair, issuer, code string) (*codeClaims, error) {
	claims := &codeClaims{}

	if err := codes.Decode(code, claims); err != nil {
		return nil, err
	}

	expected := jwt.Expected{
		Issuer:   issuer,
		Audience: jwt.Audience{issuer},
		Time:     time.Now(),
	}

	if err := claims.Claims.Validate(expected); err != nil {
		return nil, fmt.Errorf("%w: %v", jose.ErrTokenVerification, err)
	}

	return claims, nil
}
