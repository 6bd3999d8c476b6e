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

// Package interpolate rewrites Server-Side-Include-style `#exec` directives
// in shtml documents by running the captured command through the shell
// package and substituting its standard output.
package interpolate

import (
	"regexp"

	"zhttpto/pkg/shell"
)

// execPattern is greedy to the last "-->" on the line: an embedded "-->"
// inside the command text is absorbed into the capture, documented
// behavior rather than a bug.
var execPattern = regexp.MustCompile(`<!--\s*#exec\s+(.+)-->`)

// Stats tallies how many #exec directives in a document ran cleanly versus
// failed (parse, spawn, wait, or decode error), so callers can observe the
// outcome without re-scanning the document themselves.
type Stats struct {
	OK    int
	Error int
}

// Insert scans body for `#exec` directives and replaces each with the
// captured command's standard output. Only called for shtml documents; the
// extension check (pass-through otherwise) is the caller's responsibility
// per the Payload model, since interpolation is defined only over an
// already-materialised Block.
func Insert(dir, body string) (string, Stats) {
	var stats Stats
	out := execPattern.ReplaceAllStringFunc(body, func(match string) string {
		sub := execPattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		result, err := runCaptured(dir, sub[1])
		if err != nil {
			stats.Error++
			return err.Error()
		}
		stats.OK++
		return result
	})
	return out, stats
}

// runCaptured parses the captured command text and executes it: a single
// command via Executor.Run, a pipe chain via Executor.RunChain. Any error —
// parse, spawn, wait, decode — is returned for the caller to stringify and
// substitute verbatim in place of the directive; the directive is never
// left intact on error.
func runCaptured(dir, cmdText string) (string, error) {
	pc, err := shell.ParseCommand(cmdText)
	if err != nil {
		return "", err
	}
	ex := shell.NewExecutor(dir)
	ex.CaptureConsole = true
	if pc.IsPipeChain() {
		return ex.RunChain(pc.Chain)
	}
	return ex.Run(pc.Chain[0])
}
