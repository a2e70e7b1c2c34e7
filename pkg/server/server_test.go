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

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerAddFlagsRegistersEveryOptionGroup(t *testing.T) {
	t.Parallel()

	s := &Server{}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	s.AddFlags(flags)

	for _, name := range []string{
		"server-listen-address",
		"jose-tls-key",
		"client-store-path",
		"issuer",
		"consent-action-path",
	} {
		assert.NotNil(t, flags.Lookup(name), "expected flag %q to be registered", name)
	}
}

func TestGetServerBuildsRouterWithExpectedRoutes(t *testing.T) {
	t.Parallel()

	s := &Server{
		BackendOptions: newTestBackendOptions(t, t.TempDir()),
	}

	httpServer, err := s.GetServer()
	require.NoError(t, err)
	require.NotNil(t, httpServer.Handler)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/nonexistent-route", nil)

	httpServer.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
