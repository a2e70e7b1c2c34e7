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

// PreparedAuthorization is the handoff between AuthorizationFlow's Prepare
// and Handle. It borrows the original request so the consent handler can
// read additional context (cookies, form fields) beyond the extracted
// parameter view.
type PreparedAuthorization struct {
	params  *AuthorizationParameter
	request Request
}

// AuthorizationFlow drives the GET /authorize exchange: negotiate with the
// registrar, consult the owner, and emit a redirect (allow or deny) or pass
// through an in-progress consent UI response.
type AuthorizationFlow struct {
	Factory ResponseFactory
}

// NewAuthorizationFlow constructs an AuthorizationFlow that builds its HTTP
// artifacts through factory.
func NewAuthorizationFlow(factory ResponseFactory) *AuthorizationFlow {
	return &AuthorizationFlow{Factory: factory}
}

// Prepare decodes the query. It always succeeds unless the transport layer
// itself refuses to yield a request object; malformed queries are carried
// forward as an invalid parameter view rather than an error.
func (f *AuthorizationFlow) Prepare(r Request) *PreparedAuthorization {
	return &PreparedAuthorization{
		params:  ExtractAuthorizationParameter(r),
		request: r,
	}
}

// Handle drives the full exchange described in RFC 6749 §4.1: negotiate,
// consult the owner, then dispatch either a redirect, an internal error, or
// the consent UI's own in-progress response.
func (f *AuthorizationFlow) Handle(codeRef CodeRef, prepared *PreparedAuthorization, consent OwnerAuthorizer) (Response, error) {
	negotiated, codeErr := codeRef.Negotiate(prepared.params)
	if codeErr != nil {
		return dispatchCodeResult(f.Factory, "", codeErr)
	}

	auth, resp, err := consent.GetOwnerAuthorization(prepared.request, negotiated.ClientParameter())
	if err != nil {
		return nil, err
	}

	switch auth.State {
	case AuthenticationInProgress:
		// The consent UI hasn't reached a verdict; its response is
		// returned verbatim and no further back-end calls are made.
		return resp, nil

	case AuthenticationFailed:
		url, codeErr := negotiated.Deny()
		return dispatchCodeResult(f.Factory, url, codeErr)

	case AuthenticationAuthenticated:
		url, codeErr := negotiated.Authorize(auth.OwnerID)
		return dispatchCodeResult(f.Factory, url, codeErr)
	}

	return nil, newInternalCodeError(nil)
}
