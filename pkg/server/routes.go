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
	"errors"
	"net/http"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend"
	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
	servercontext "github.com/FrancisMurillo/oxide-auth/pkg/server/context"
	serverrors "github.com/FrancisMurillo/oxide-auth/pkg/server/errors"
	"github.com/FrancisMurillo/oxide-auth/pkg/server/transport"
	"github.com/FrancisMurillo/oxide-auth/pkg/server/util"
)

// routes binds the Authorization and Grant flows to the concrete backend
// collaborators as the /authorize and /token handlers. GetServer registers
// them on the router, together with the whoami demonstration resource
// behind the Access flow's RequireAccess middleware.
type routes struct {
	collaborators *backend.Collaborators
	consent       frontend.OwnerAuthorizer
}

func (s *routes) authorize(w http.ResponseWriter, r *http.Request) {
	flow := frontend.NewAuthorizationFlow(transport.ResponseFactory{})

	prepared := flow.Prepare(transport.NewRequest(r))

	resp, err := flow.Handle(s.collaborators.Registrar, prepared, s.consent)
	if err != nil {
		writeFlowError(w, r, err)

		return
	}

	transport.Write(w, resp)
}

func (s *routes) token(w http.ResponseWriter, r *http.Request) {
	flow := frontend.NewGrantFlow(transport.ResponseFactory{})

	prepared := flow.Prepare(transport.NewRequest(r))

	resp, err := flow.Handle(s.collaborators.Issuer, prepared)
	if err != nil {
		writeFlowError(w, r, err)

		return
	}

	transport.Write(w, resp)
}

// writeFlowError handles the only error class Authorization/Grant can
// still propagate: an InternalError (no trustworthy redirect target) or a
// transport-level failure from building the response itself. Neither may
// leak back-end detail to the client.
func writeFlowError(w http.ResponseWriter, r *http.Request, err error) {
	var internal *frontend.InternalError
	if errors.As(err, &internal) {
		serverrors.OAuth2ServerError("request could not be completed safely").WithError(err).Write(w, r)

		return
	}

	serverrors.OAuth2ServerError("failed to build response").WithError(err).Write(w, r)
}

// whoami is a minimal protected resource demonstrating RequireAccess: it
// echoes back the owner id the Access flow's guard resolved the bearer
// token to.
func whoami(w http.ResponseWriter, r *http.Request) {
	owner, err := servercontext.OwnerFromContext(r.Context())
	if err != nil {
		serverrors.OAuth2ServerError("owner identity missing from context").WithError(err).Write(w, r)

		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, struct {
		Owner string `json:"owner"`
	}{Owner: owner})
}
