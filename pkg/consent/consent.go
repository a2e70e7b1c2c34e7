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

// Package consent implements the owner-consent UI adapter the frontend
// package calls out to as an OwnerAuthorizer. The core treats session
// management as out of scope, so this adapter carries its own state
// (owner name, decision) as query parameters on the form it renders,
// rather than relying on a server-side session.
package consent

import (
	"bytes"
	"html/template"
	"net/url"

	"github.com/FrancisMurillo/oxide-auth/pkg/frontend"
)

const (
	ownerParam    = "consent_owner"
	decisionParam = "consent_decision"

	decisionAllow = "allow"
	decisionDeny  = "deny"
)

var pageTemplate = template.Must(template.New("consent").Parse(`<!DOCTYPE html>
<html>
<head><title>Authorize {{.ClientID}}</title></head>
<body>
<h1>{{.ClientID}} is requesting access</h1>
<p>Scope: {{.Scope}}</p>
<form method="get" action="{{.Action}}">
{{range $key, $values := .HiddenFields}}{{range $values}}<input type="hidden" name="{{$key}}" value="{{.}}">
{{end}}{{end}}
<label>Username: <input type="text" name="` + ownerParam + `"></label>
<button type="submit" name="` + decisionParam + `" value="` + decisionAllow + `">Allow</button>
<button type="submit" name="` + decisionParam + `" value="` + decisionDeny + `">Deny</button>
</form>
</body>
</html>
`))

type pageData struct {
	ClientID     string
	Scope        string
	Action       string
	HiddenFields url.Values
}

// FormAuthorizer implements frontend.OwnerAuthorizer by rendering an HTML
// consent page whose form resubmits the original /authorize query plus the
// owner's decision.
type FormAuthorizer struct {
	// ActionPath is the path the consent form submits back to - normally
	// the same /authorize endpoint that rendered it.
	ActionPath string
}

// NewFormAuthorizer constructs a FormAuthorizer.
func NewFormAuthorizer(actionPath string) *FormAuthorizer {
	return &FormAuthorizer{ActionPath: actionPath}
}

var _ frontend.OwnerAuthorizer = &FormAuthorizer{}

// GetOwnerAuthorization implements frontend.OwnerAuthorizer.
func (a *FormAuthorizer) GetOwnerAuthorization(r frontend.Request, client *frontend.ClientParameter) (frontend.Authentication, frontend.Response, error) {
	query, err := r.Query()
	if err != nil {
		return frontend.Failed(), nil, nil
	}

	decision := query.Get(decisionParam)

	switch decision {
	case decisionDeny:
		return frontend.Failed(), nil, nil

	case decisionAllow:
		owner := query.Get(ownerParam)
		if owner == "" {
			return a.renderPage(query, client)
		}

		return frontend.Authenticated(owner), nil, nil
	}

	return a.renderPage(query, client)
}

// renderPage builds the InProgress verdict carrying the rendered consent
// HTML. The returned Response is a *RenderedHTML rather than one built by
// a ResponseFactory; the host binding type-asserts for it and writes the
// HTML itself - see RenderedHTML.
func (a *FormAuthorizer) renderPage(query url.Values, client *frontend.ClientParameter) (frontend.Authentication, frontend.Response, error) {
	hidden := url.Values{}

	for key, values := range query {
		if key == ownerParam || key == decisionParam {
			continue
		}

		hidden[key] = values
	}

	var buf bytes.Buffer

	data := pageData{
		ClientID:     client.ClientID,
		Scope:        client.Scope,
		Action:       a.ActionPath,
		HiddenFields: hidden,
	}

	if err := pageTemplate.Execute(&buf, data); err != nil {
		return frontend.Failed(), nil, err
	}

	return frontend.InProgress(), &RenderedHTML{Body: buf.String()}, nil
}

// RenderedHTML is the frontend.Response payload returned for an InProgress
// verdict; host bindings type-assert for it to know to emit HTML rather
// than treat it as an opaque Response built via their own ResponseFactory.
type RenderedHTML struct {
	Body string
}
