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

// Package cmd assembles the oauth2gatectl admin CLI: a cobra command tree
// that edits the same JSON-file backed client table the server reads
// (pkg/backend.ClientStore), mirroring the create/get/delete subcommand
// split the rest of the example stack uses for its resource CLIs.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend"
	"github.com/FrancisMurillo/oxide-auth/pkg/cmd/client"
	"github.com/FrancisMurillo/oxide-auth/pkg/constants"
)

// newRootCommand returns the root command and all its subordinates.
func newRootCommand() *cobra.Command {
	options := &backend.ClientStoreOptions{}

	cmd := &cobra.Command{
		Use:   constants.Application,
		Short: "OAuth2 client registry administration.",
		Long: `oauth2gatectl manages the registered OAuth2 client table that the
oauth2gate-server authorization front end consults when it negotiates an
/authorize request and authenticates a /token request.`,
	}

	options.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(client.NewClientCommand(options))

	return cmd
}

// Generate creates a hierarchy of cobra commands for the application.
func Generate() *cobra.Command {
	return newRootCommand()
}
