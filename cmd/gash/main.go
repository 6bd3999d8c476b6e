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

// Package main provides a small non-interactive runner for the command
// parser and executor behind zhttpto's #exec directives. It exists to
// exercise pkg/shell standalone, outside the HTTP server; the interactive
// REPL, job control, and history buffer are out of scope here as they are
// for the #exec path itself.
package main

import (
	"flag"
	"fmt"
	"os"

	"zhttpto/pkg/shell"
)

func main() {
	dir := flag.String("dir", ".", "Working directory the command runs in")
	command := flag.String("c", "", "Command (or pipe chain) to parse and run")
	flag.Parse()

	if *command == "" {
		fmt.Fprintln(os.Stderr, "gash: -c \"<command>\" is required")
		os.Exit(2)
	}

	pc, err := shell.ParseCommand(*command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gash: parse error: %v\n", err)
		os.Exit(1)
	}

	exec := shell.NewExecutor(*dir)
	exec.CaptureConsole = true

	var out string
	if pc.IsPipeChain() {
		out, err = exec.RunChain(pc.Chain)
	} else {
		out, err = exec.Run(pc.Chain[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "gash: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
