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

func newTestRegistrar(t *testing.T) (*Registrar, *ClientStore) {
	t.Helper()

	clients := newTestClientStore(t)
	require.NoError(t, clients.Put(ClientRecord{ID: "app", Secret: "s3cret", RedirectURL: "https://c/cb"}))

	registrar := NewRegistrar(&RegistrarOptions{Issuer: "https://auth.example", CodeTTL: time.Minute}, clients, newTestKeyPair(t))

	return registrar, clients
}

func TestRegistrarNegotiateUnknownClientIgnored(t *testing.T) {
	t.Parallel()

	registrar, _ := newTestRegistrar(t)

	_, codeErr := registrar.Negotiate(&frontend.AuthorizationParameter{Valid: true, ClientID: "ghost", RedirectURL: "https://c/cb"})
	require.NotNil(t, codeErr)
	assert.Equal(t, frontend.CodeErrorIgnore, codeErr.Kind)
}

func TestRegistrarNegotiateMismatchedRedirectIgnored(t *testing.T) {
	t.Parallel()

	registrar, _ := newTestRegistrar(t)

	_, codeErr := registrar.Negotiate(&frontend.AuthorizationParameter{Valid: true, ClientID: "app", RedirectURL: "https://evil/cb"})
	require.NotNil(t, codeErr)
	assert.Equal(t, frontend.CodeErrorIgnore, codeErr.Kind)
}

func TestRegistrarNegotiateAuthorizeRoundTrip(t *testing.T) {
	t.Parallel()

	registrar, _ := newTestRegistrar(t)

	negotiated, codeErr := registrar.Negotiate(&frontend.AuthorizationParameter{
		Valid: true, ClientID: "app", RedirectURL: "https://c/cb", State: "xyz",
	})
	require.Nil(t, codeErr)

	redirectURL, codeErr := negotiated.Authorize("alice")
	require.Nil(t, codeErr)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)
	assert.Equal(t, "xyz", parsed.Query().Get("state"))
	assert.NotEmpty(t, parsed.Query().Get("code"))
}

func TestRegistrarNegotiateDeny(t *testing.T) {
	t.Parallel()

	registrar, _ := newTestRegistrar(t)

	negotiated, codeErr := registrar.Negotiate(&frontend.AuthorizationParameter{
		Valid: true, ClientID: "app", RedirectURL: "https://c/cb", State: "xyz",
	})
	require.Nil(t, codeErr)

	redirectURL, codeErr := negotiated.Deny()
	require.Nil(t, codeErr)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)
	assert.Equal(t, "access_denied", parsed.Query().Get("error"))
	assert.Equal(t, "xyz", parsed.Query().Get("state"))
}
