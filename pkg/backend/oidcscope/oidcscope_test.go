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

package oidcscope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		scope string
		want  bool
	}{
		{name: "empty scope", scope: "", want: false},
		{name: "unrelated scope", scope: "profile email", want: false},
		{name: "openid alone", scope: "openid", want: true},
		{name: "openid among others", scope: "profile openid email", want: true},
		{name: "prefix match is not enough", scope: "openid-extended", want: false},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Requested(tt.scope))
		})
	}
}
