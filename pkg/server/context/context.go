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

package context

import (
	"context"
	"fmt"
)

// contextKey defines a new context key type unique to this package.
type contextKey string

const (
	// ownerKey is the key used to store the resource owner identity that
	// RequireAccess resolved from a bearer token.
	ownerKey contextKey = "owner"
)

// newContextString stores s into a new context, unless empty.
func newContextString(ctx context.Context, key contextKey, s string) context.Context {
	if s == "" {
		return ctx
	}

	return context.WithValue(ctx, key, s)
}

// fromContextString looks up key and converts its value to a string.
func fromContextString(ctx context.Context, key contextKey) (string, error) {
	value := ctx.Value(key)
	if value == nil {
		return "", fmt.Errorf("context key %q not present", key)
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("context value for key %q not a string", key)
	}

	return s, nil
}

// NewContextWithOwner adds the authenticated resource owner to the context.
func NewContextWithOwner(ctx context.Context, value string) context.Context {
	return newContextString(ctx, ownerKey, value)
}

// OwnerFromContext extracts the resource owner RequireAccess resolved.
func OwnerFromContext(ctx context.Context) (string, error) {
	return fromContextString(ctx, ownerKey)
}
