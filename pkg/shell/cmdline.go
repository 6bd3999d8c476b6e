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

// Package shell implements a small command-line parser and executor for
// pipe chains with redirection, the gash/PS2 subsystem this repository's
// SSI interpolator runs commands through.
package shell

import (
	"fmt"
	"os"
	"strings"
)

// IOKind tags how a CmdLine's stdin or stdout is wired.
type IOKind int

const (
	IOConsole IOKind = iota
	IOFile
	IOPipe
)

// CmdIO is the variant {Console, File(path), Pipe}.
type CmdIO struct {
	Kind IOKind
	Path string // set only when Kind == IOFile
}

var consoleIO = CmdIO{Kind: IOConsole}

// CmdLine is a single command within a pipe chain (or a standalone command).
type CmdLine struct {
	Name       string
	Args       []string
	Background bool
	Stdin      CmdIO
	Stdout     CmdIO
}

// ParsedCommand is either a single command or a pipe chain of length >= 2.
type ParsedCommand struct {
	Chain []CmdLine // len == 1 for SingleCommand, len >= 2 for PipeChain
}

// IsPipeChain reports whether the parsed command has more than one stage.
func (p ParsedCommand) IsPipeChain() bool { return len(p.Chain) >= 2 }

// ParseCommand tokenizes a single command or pipe chain with redirection and
// background flags. Segments are split on "|" first; each segment is then
// split on ASCII space, trimmed, and consumed left to right.
func ParseCommand(line string) (ParsedCommand, error) {
	segments := strings.Split(line, "|")
	cmds := make([]CmdLine, 0, len(segments))
	for _, seg := range segments {
		cmd, err := parseSegment(seg)
		if err != nil {
			return ParsedCommand{}, err
		}
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 || cmds[0].Name == "" {
		return ParsedCommand{}, fmt.Errorf("empty command")
	}
	if len(cmds) > 1 {
		setPipeIO(cmds)
	}
	return ParsedCommand{Chain: cmds}, nil
}

func parseSegment(seg string) (CmdLine, error) {
	cmd := CmdLine{Stdin: consoleIO, Stdout: consoleIO}
	fields := strings.Fields(seg)
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		switch tok {
		case ">":
			if i+1 >= len(fields) {
				return CmdLine{}, fmt.Errorf("missing redirect target for >")
			}
			i++
			cmd.Stdout = CmdIO{Kind: IOFile, Path: fields[i]}
		case "<":
			if i+1 >= len(fields) {
				return CmdLine{}, fmt.Errorf("missing redirect target for <")
			}
			i++
			path := fields[i]
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return CmdLine{}, fmt.Errorf("%s is not a valid file", path)
			}
			cmd.Stdin = CmdIO{Kind: IOFile, Path: path}
		case "&":
			cmd.Background = true
		default:
			if cmd.Name == "" {
				cmd.Name = tok
			} else {
				cmd.Args = append(cmd.Args, tok)
			}
		}
	}
	return cmd, nil
}

// setPipeIO rewrites stdin/stdout to Pipe at interior positions of a chain
// per the CmdLine invariant: position 0 has stdout=Pipe, position n-1 has
// stdin=Pipe, interior positions have both. The first stdin and the last
// stdout are never piped.
func setPipeIO(cmds []CmdLine) {
	n := len(cmds)
	for i := range cmds {
		if i > 0 {
			cmds[i].Stdin = CmdIO{Kind: IOPipe}
		}
		if i < n-1 {
			cmds[i].Stdout = CmdIO{Kind: IOPipe}
		}
	}
}
