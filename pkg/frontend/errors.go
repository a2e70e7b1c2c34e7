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

import "errors"

// ErrTransport is a sentinel a host's Request/ResponseFactory
// implementation may wrap its own errors in. The core never wraps errors
// in it itself; errors from the host are returned unchanged.
var ErrTransport = errors.New("transport error")

// InternalErrorKind discriminates the two internal-error shapes the core
// can raise. Both signal that the protocol cannot safely continue; neither
// may be translated into client-visible detail.
type InternalErrorKind int

const (
	// InternalCodeError means the Authorization flow had no trustworthy
	// redirect target to report a protocol failure through.
	InternalCodeError InternalErrorKind = iota

	// InternalAccessError means the Access flow's guard reported a
	// malformed request it could not otherwise surface.
	InternalAccessError
)

// InternalError is surfaced to the host for logging. The host decides the
// final HTTP status but MUST NOT leak Err's detail to the client.
type InternalError struct {
	Kind InternalErrorKind
	Err  error
}

func (e *InternalError) Error() string {
	if e.Kind == InternalCodeError {
		return "internal code error"
	}

	return "internal access error"
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// newInternalCodeError wraps err (if any) as an InternalCodeError.
func newInternalCodeError(err error) *InternalError {
	return &InternalError{Kind: InternalCodeError, Err: err}
}

// newInternalAccessError builds the InternalAccessError that replaces an
// AccessErrorInvalidRequest. The guard's AccessError is not retained.
func newInternalAccessError() *InternalError {
	return &InternalError{Kind: InternalAccessError}
}

// dispatchCodeResult translates the common Ok(url)/CodeError result shape
// shared by Negotiate, Authorize and Deny into an HTTP artifact, per §4.5.
func dispatchCodeResult(factory ResponseFactory, url string, codeErr *CodeError) (Response, error) {
	if codeErr != nil {
		if codeErr.Kind == CodeErrorIgnore {
			return nil, newInternalCodeError(nil)
		}

		resp, err := factory.RedirectError(codeErr.RedirectURL)
		if err != nil {
			return nil, err
		}

		return resp, nil
	}

	return factory.Redirect(url)
}
