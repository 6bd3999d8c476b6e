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
	"os"
	"path/filepath"
	"testing"

	"zhttpto/internal/sandbox"
)

func TestParseRequestLine_RootOnEmptyCapture(t *testing.T) {
	root := t.TempDir()
	p, err := ParseRequestLine(root, []byte("GET / HTTP/1.1\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsRoot() {
		t.Fatalf("expected Root, got %+v", p)
	}
}

func TestParseRequestLine_RelPath(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := ParseRequestLine(root, []byte("GET /index.html HTTP/1.1\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Rel != "index.html" {
		t.Fatalf("expected index.html, got %q", p.Rel)
	}
}

func TestParseRequestLine_OutOfBounds(t *testing.T) {
	root := t.TempDir()
	_, err := ParseRequestLine(root, []byte("GET /../README.md HTTP/1.1\r\n"))
	if err != sandbox.ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestParseRequestLine_TruncatesBeyond500Bytes(t *testing.T) {
	root := t.TempDir()
	huge := "GET /" + string(make([]byte, 600)) + " HTTP/1.1\r\n"
	// Cut at 500 bytes, the request line loses the whitespace after the path,
	// so the regex finds no match (ErrNotFound). Untruncated, the 600-byte
	// path would match and be rejected by extension (ErrTypeNotAllowed).
	_, err := ParseRequestLine(root, []byte(huge))
	if err != sandbox.ErrNotFound {
		t.Fatalf("expected ErrNotFound from the truncated request line, got %v", err)
	}
}
