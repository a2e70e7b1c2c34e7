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

package middleware

import (
	"errors"
	"net/http"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend"
	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
	servercontext "github.com/FrancisMurillo/oxide-auth/pkg/server/context"
	serverrors "github.com/FrancisMurillo/oxide-auth/pkg/server/errors"
	"github.com/FrancisMurillo/oxide-auth/pkg/server/transport"
)

// Authorizer drives the Access flow in front of arbitrary resource
// handlers. Unlike the Authorization/Grant flows, Access never produces an
// HTTP artifact itself (§4.4); translating its verdict into 400/403 is
// this middleware's job.
type Authorizer struct {
	flow  *frontend.AccessFlow
	guard *backend.Guard
}

// NewAuthorizer returns an Authorizer backed by guard.
func NewAuthorizer(guard *backend.Guard) *Authorizer {
	return &Authorizer{flow: frontend.NewAccessFlow(), guard: guard}
}

// RequireAccess wraps next with the resource guard check, stashing the
// authenticated owner id in the request context on success so downstream
// handlers can read it via servercontext.OwnerFromContext.
func (a *Authorizer) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prepared := a.flow.Prepare(transport.NewRequest(r))

		if err := a.flow.Handle(a.guard, prepared); err != nil {
			var internal *frontend.InternalError
			if errors.As(err, &internal) {
				serverrors.OAuth2ServerError("access guard could not evaluate the request").WithError(err).Write(w, r)

				return
			}

			serverrors.OAuth2AccessDenied("access denied").WithError(err).Write(w, r)

			return
		}

		ctx := r.Context()

		if owner, ok := a.guard.Owner(r.Header.Get("Authorization")); ok {
			ctx = servercontext.NewContextWithOwner(ctx, owner)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
