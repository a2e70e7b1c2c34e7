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

// PreparedGrant is the handoff between GrantFlow's Prepare and Handle.
type PreparedGrant struct {
	params *AccessTokenParameter
}

// GrantFlow drives the POST /token exchange: decode Basic credentials,
// merge with the form body, invoke the issuer, and emit JSON with the
// correct status and headers.
type GrantFlow struct {
	Factory ResponseFactory
}

// NewGrantFlow constructs a GrantFlow that builds its HTTP artifacts
// through factory.
func NewGrantFlow(factory ResponseFactory) *GrantFlow {
	return &GrantFlow{Factory: factory}
}

// Prepare extracts and merges the form body and Authorization header into
// a single AccessTokenParameter. A malformed Authorization header - bad
// prefix, missing colon, bad base64 - marks the whole parameter invalid;
// no partial credentials are retained.
func (f *GrantFlow) Prepare(r Request) *PreparedGrant {
	return &PreparedGrant{params: ExtractAccessTokenParameter(r)}
}

// Handle invokes the issuer and translates its verdict into a response.
func (f *GrantFlow) Handle(issuer IssuerRef, prepared *PreparedGrant) (Response, error) {
	token, issuerErr := issuer.UseCode(prepared.params)
	if issuerErr == nil {
		body, err := token.ToJSON()
		if err != nil {
			return nil, err
		}

		return f.Factory.JSON(body)
	}

	resp, err := f.Factory.JSON(issuerErr.Body)
	if err != nil {
		return nil, err
	}

	switch issuerErr.Kind {
	case IssuerErrorInvalid:
		return f.Factory.AsClientError(resp)

	case IssuerErrorUnauthorized:
		// Status must be set before the WWW-Authenticate header is
		// added - the response builder is linear.
		resp, err = f.Factory.AsUnauthorized(resp)
		if err != nil {
			return nil, err
		}

		return f.Factory.WithAuthorization(resp, issuerErr.Scheme)
	}

	return resp, nil
}
