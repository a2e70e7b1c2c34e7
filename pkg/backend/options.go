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
	"time"

	"github.com/spf13/pflag"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend/jose"
)

// Options bundles every back-end collaborator's configuration so a host
// binding can flatten them onto a single flag set.
type Options struct {
	JoseOptions        jose.Options
	ClientStoreOptions ClientStoreOptions
	RegistrarOptions   RegistrarOptions
	IssuerOptions      IssuerOptions
}

// AddFlags registers flags with the provided flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	o.JoseOptions.AddFlags(f)
	o.ClientStoreOptions.AddFlags(f)

	f.StringVar(&o.RegistrarOptions.Issuer, "issuer", "", "This service's own issuer identity, stamped into codes and tokens.")
	f.DurationVar(&o.RegistrarOptions.CodeTTL, "code-ttl", time.Minute, "How long an authorization code remains exchangeable.")
	f.DurationVar(&o.IssuerOptions.AccessTokenTTL, "access-token-ttl", time.Hour, "How long an issued access token remains valid.")

	o.IssuerOptions.Issuer = o.RegistrarOptions.Issuer
}

// Collaborators are the fully constructed back-end references a host
// binding wires into the frontend flows.
type Collaborators struct {
	Clients   *ClientStore
	Registrar *Registrar
	Issuer    *Issuer
	Guard     *Guard
}

// New constructs every back-end collaborator from options. Both the
// Registrar and the Issuer take their issuer identity from
// RegistrarOptions.Issuer; IssuerOptions.Issuer is overwritten with it.
func New(options *Options) (*Collaborators, error) {
	clients, err := NewClientStore(&options.ClientStoreOptions)
	if err != nil {
		return nil, err
	}

	keys := jose.NewKeyPair(&options.JoseOptions)

	registrarOptions := options.RegistrarOptions

	registrar := NewRegistrar(&registrarOptions, clients, keys)

	issuerOptions := options.IssuerOptions
	issuerOptions.Issuer = registrarOptions.Issuer

	issuer := NewIssuer(&issuerOptions, clients, keys)
	guard := NewGuard(issuer)

	return &Collaborators{
		Clients:   clients,
		Registrar: registrar,
		Issuer:    issuer,
		Guard:     guard,
	}, nil
}
