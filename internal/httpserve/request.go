// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpserve

import (
	"regexp"

	"zhttpto/internal/sandbox"
)

// requestLinePrefix bounds how much of the first read is inspected; larger
// request lines are silently truncated.
const requestLinePrefix = 500

var requestLineRe = regexp.MustCompile(`GET /(\S*)\s`)

// ParseRequestLine extracts the requested path from up to the first 500
// bytes of a raw HTTP request. An empty capture is Root; anything else is
// validated as a RelPath under root via the sandbox.
func ParseRequestLine(root string, raw []byte) (sandbox.Path, error) {
	if len(raw) > requestLinePrefix {
		raw = raw[:requestLinePrefix]
	}
	m := requestLineRe.FindSubmatch(raw)
	if m == nil {
		return sandbox.Path{}, sandbox.ErrNotFound
	}
	captured := string(m[1])
	if captured == "" {
		return sandbox.NewRoot(), nil
	}
	return sandbox.Validate(root, captured)
}
