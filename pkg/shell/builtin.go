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
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// builtinFunc runs in-process rather than via os/exec. dir is the
// executor's current working directory, mutable for cd.
type builtinFunc func(args []string, dir *string, stdout io.Writer) error

// builtins are recognized by the executor before falling back to external
// process spawning. They never leave a CmdLine/ParsedCommand shape from the
// parser's perspective — a builtin is just a CmdLine whose name matches this
// table, checked at execution time, not parse time.
var builtins = map[string]builtinFunc{
	"cd":   builtinCd,
	"pwd":  builtinPwd,
	"exit": builtinExit,
}

func builtinCd(args []string, dir *string, _ io.Writer) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(*dir, target)
	}
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("cd: %s is not a directory", target)
	}
	*dir = filepath.Clean(target)
	return nil
}

func builtinPwd(_ []string, dir *string, stdout io.Writer) error {
	_, err := fmt.Fprintln(stdout, *dir)
	return err
}

// builtinExit is accepted as a no-op: the server process lifecycle is
// explicitly out of scope for #exec-driven command execution, so "exit"
// never terminates anything here.
func builtinExit(_ []string, _ *string, _ io.Writer) error {
	return nil
}
