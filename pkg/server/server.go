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

// Package server binds the transport-agnostic frontend flows (pkg/frontend)
// to net/http, using chi for routing and the pkg/backend collaborators for
// the registrar/issuer/guard. It owns process-level concerns the core
// deliberately has no opinion on: flags, logging, tracing and route
// registration.
package server

import (
	"context"
	"flag"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/FrancisMurillo/oxide-auth/pkg/backend"
	"github.com/FrancisMurillo/oxide-auth/pkg/consent"
	serverrors "github.com/FrancisMurillo/oxide-auth/pkg/server/errors"
	"github.com/FrancisMurillo/oxide-auth/pkg/server/middleware"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Server composes every option group this binary needs and produces a
// ready-to-run *http.Server.
type Server struct {
	// Options are server specific options e.g. listener address etc.
	Options Options

	// ZapOptions configure logging.
	ZapOptions zap.Options

	// BackendOptions configures the registrar/issuer/guard collaborators.
	BackendOptions backend.Options

	// ConsentActionPath is where the rendered consent form submits back to.
	ConsentActionPath string
}

// AddFlags registers every option group's flags onto flags.
func (s *Server) AddFlags(flags *pflag.FlagSet) {
	s.Options.AddFlags(flags)
	s.ZapOptions.BindFlags(flag.CommandLine)
	s.BackendOptions.AddFlags(flags)

	flags.StringVar(&s.ConsentActionPath, "consent-action-path", "/authorize", "Path the rendered consent form submits its decision back to.")
}

// SetupLogging installs the zap-backed logr sink every component in this
// module fetches via log.FromContext.
func (s *Server) SetupLogging() {
	log.SetLogger(zap.New(zap.UseFlagOptions(&s.ZapOptions)))
}

// SetupOpenTelemetry adds a span processor that logs every span as it
// starts and ends, and optionally ships spans to an OTLP collector.
func (s *Server) SetupOpenTelemetry(ctx context.Context) error {
	otel.SetLogger(log.Log)

	opts := []trace.TracerProviderOption{
		trace.WithSpanProcessor(&middleware.LoggingSpanProcessor{}),
	}

	if s.Options.OTLPEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(s.Options.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return err
		}

		opts = append(opts, trace.WithBatcher(exporter))
	}

	otel.SetTracerProvider(trace.NewTracerProvider(opts...))

	return nil
}

// GetServer builds the collaborators, wires up routing and returns a
// ready-to-run *http.Server.
func (s *Server) GetServer() (*http.Server, error) {
	collaborators, err := backend.New(&s.BackendOptions)
	if err != nil {
		return nil, err
	}

	routes := &routes{
		collaborators: collaborators,
		consent:       consent.NewFormAuthorizer(s.ConsentActionPath),
	}

	authorizer := middleware.NewAuthorizer(collaborators.Guard)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) { serverrors.HTTPNotFound().Write(w, r) })
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { serverrors.HTTPMethodNotAllowed().Write(w, r) })

	router.Get("/authorize", routes.authorize)
	router.Post("/token", routes.token)

	router.Group(func(r chi.Router) {
		r.Use(authorizer.RequireAccess)
		r.Get("/whoami", whoami)
	})

	httpServer := &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadHeaderTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           http.TimeoutHandler(router, s.Options.RequestTimeout, "request timed out"),
	}

	return httpServer, nil
}
