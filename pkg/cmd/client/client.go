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

// Package client implements the "oauth2gatectl client" subcommand tree:
// create/get/delete/list operations against the JSON-file backed client
// table both this CLI and the server's Registrar/Issuer read.
package client

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend"
)

// NewClientCommand returns the "client" subcommand and its children.
func NewClientCommand(options *backend.ClientStoreOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage registered OAuth2 clients",
	}

	cmd.AddCommand(
		newCreateCommand(options),
		newGetCommand(options),
		newDeleteCommand(options),
		newListCommand(options),
	)

	return cmd
}

func openStore(options *backend.ClientStoreOptions) (*backend.ClientStore, error) {
	return backend.NewClientStore(options)
}

func newCreateCommand(options *backend.ClientStoreOptions) *cobra.Command {
	var (
		redirectURL string
		scopes      string
		secret      string
	)

	cmd := &cobra.Command{
		Use:   "create <client_id>",
		Short: "Register a new OAuth2 client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(options)
			if err != nil {
				return err
			}

			if secret == "" {
				secret, err = generateSecret()
				if err != nil {
					return err
				}
			}

			record := backend.ClientRecord{
				ID:          args[0],
				Secret:      secret,
				RedirectURL: redirectURL,
				Scopes:      splitScopes(scopes),
			}

			if err := store.Put(record); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "client %q registered, secret: %s\n", record.ID, record.Secret)

			return nil
		},
	}

	cmd.Flags().StringVar(&redirectURL, "redirect-url", "", "Registered redirect_url for this client.")
	cmd.Flags().StringVar(&scopes, "scopes", "", "Comma separated list of scopes to record for this client (not enforced by the registrar).")
	cmd.Flags().StringVar(&secret, "secret", "", "Client secret. A random one is generated if not given.")

	_ = cmd.MarkFlagRequired("redirect-url")

	return cmd
}

func newGetCommand(options *backend.ClientStoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <client_id>",
		Short: "Print a registered client's record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(options)
			if err != nil {
				return err
			}

			record, err := store.Get(args[0])
			if err != nil {
				return err
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(record)
		},
	}
}

func newDeleteCommand(options *backend.ClientStoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <client_id>",
		Short: "Remove a registered client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(options)
			if err != nil {
				return err
			}

			return store.Delete(args[0])
		},
	}
}

func newListCommand(options *backend.ClientStoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(options)
			if err != nil {
				return err
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(store.List())
		},
	}
}

func splitScopes(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")

	scopes := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			scopes = append(scopes, p)
		}
	}

	return scopes
}

func generateSecret() (string, error) {
	buf := make([]byte, 24)

	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
