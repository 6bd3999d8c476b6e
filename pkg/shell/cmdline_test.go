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

package shell

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCommand_Simple(t *testing.T) {
	pc, err := ParseCommand("ls -l")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc.IsPipeChain() {
		t.Fatalf("expected single command")
	}
	cmd := pc.Chain[0]
	if cmd.Name != "ls" || len(cmd.Args) != 1 || cmd.Args[0] != "-l" {
		t.Fatalf("unexpected parse: %+v", cmd)
	}
	if cmd.Background {
		t.Fatalf("expected background=false")
	}
}

func TestParseCommand_Background(t *testing.T) {
	pc, err := ParseCommand("ls -l &")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pc.Chain[0].Background {
		t.Fatalf("expected background=true")
	}
}

func TestParseCommand_StdoutRedirect(t *testing.T) {
	pc, err := ParseCommand("cat > temp.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd := pc.Chain[0]
	if cmd.Stdout.Kind != IOFile || cmd.Stdout.Path != "temp.txt" {
		t.Fatalf("unexpected stdout: %+v", cmd.Stdout)
	}
	if cmd.Stdin.Kind != IOConsole {
		t.Fatalf("expected stdin=Console, got %+v", cmd.Stdin)
	}
}

func TestParseCommand_StdinRedirectMissingFile(t *testing.T) {
	_, err := ParseCommand("cat < missing")
	if err == nil {
		t.Fatalf("expected error for nonexistent stdin file")
	}
	if err.Error() != "missing is not a valid file" {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestParseCommand_StdinRedirectExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	pc, err := ParseCommand("cat < " + path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc.Chain[0].Stdin.Kind != IOFile || pc.Chain[0].Stdin.Path != path {
		t.Fatalf("unexpected stdin: %+v", pc.Chain[0].Stdin)
	}
}

func TestParseCommand_PipeChain(t *testing.T) {
	pc, err := ParseCommand("ls -l | wc -l")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pc.IsPipeChain() || len(pc.Chain) != 2 {
		t.Fatalf("expected 2-stage pipe chain, got %+v", pc)
	}
	first, second := pc.Chain[0], pc.Chain[1]
	if first.Stdin.Kind != IOConsole || first.Stdout.Kind != IOPipe {
		t.Fatalf("unexpected first stage io: %+v", first)
	}
	if second.Stdin.Kind != IOPipe || second.Stdout.Kind != IOConsole {
		t.Fatalf("unexpected second stage io: %+v", second)
	}
}

func TestParseCommand_EmptyInput(t *testing.T) {
	if _, err := ParseCommand(""); err == nil {
		t.Fatalf("expected error for empty command")
	}
}
