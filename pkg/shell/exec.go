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
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Executor spawns a single external process or a piped chain, wiring
// standard streams per CmdLine.Stdin/Stdout.
//
// CaptureConsole controls what CmdIO{Kind: IOConsole} means for stdout:
// when false (the NewExecutor default), Console inherits the process's
// own stdio. When true (as both the SSI interpolator and the gash runner
// set it), Console is captured into a buffer instead, and Run/RunChain
// return the captured bytes to the caller.
type Executor struct {
	Dir            string
	CaptureConsole bool
}

// NewExecutor returns an Executor rooted at dir.
func NewExecutor(dir string) *Executor {
	return &Executor{Dir: dir}
}

// Run spawns a single command and waits for it, returning captured stdout.
// Non-zero exit is not itself an error; I/O errors (failed spawn, failed
// wait) are.
func (e *Executor) Run(cmd CmdLine) (string, error) {
	if fn, ok := builtins[cmd.Name]; ok {
		var buf bytes.Buffer
		err := fn(cmd.Args, &e.Dir, &buf)
		return buf.String(), err
	}
	out, waitFn, err := e.start(cmd, nil)
	if err != nil {
		return "", err
	}
	return waitFn(out)
}

// RunChain spawns the head of a pipe chain, then iteratively spawns each
// subsequent command with its stdin bound to the previous child's stdout.
// Within the chain, every stage but the last uses a pipe for stdout even
// when its CmdIO is Console, so the next stage can read from it; the final
// stage uses its CmdIO normally. If any spawn fails the chain
// short-circuits with an error; already-spawned children are not killed.
func (e *Executor) RunChain(chain []CmdLine) (string, error) {
	if len(chain) < 2 {
		return "", fmt.Errorf("pipe chain must have at least 2 stages")
	}
	type stage struct {
		cmd      *exec.Cmd
		builtin  bool
		buf      *bytes.Buffer
		pipeOut  io.ReadCloser
	}
	stages := make([]stage, len(chain))
	var prevOut io.Reader
	for i, cl := range chain {
		isLast := i == len(chain)-1
		if fn, ok := builtins[cl.Name]; ok {
			var buf bytes.Buffer
			if err := fn(cl.Args, &e.Dir, &buf); err != nil {
				return "", err
			}
			stages[i] = stage{builtin: true, buf: &buf}
			prevOut = &buf
			continue
		}
		c := exec.Command(cl.Name, cl.Args...)
		c.Dir = e.Dir
		c.Stderr = os.Stderr
		if i == 0 {
			if err := wireStdin(c, cl.Stdin, nil); err != nil {
				return "", err
			}
		} else {
			if err := wireStdin(c, cl.Stdin, prevOut); err != nil {
				return "", err
			}
		}
		var buf *bytes.Buffer
		var pipeOut io.ReadCloser
		if isLast {
			buf = e.wireFinalStdout(c, cl.Stdout)
		} else {
			p, err := c.StdoutPipe()
			if err != nil {
				return "", err
			}
			pipeOut = p
		}
		if err := c.Start(); err != nil {
			return "", err
		}
		stages[i] = stage{cmd: c, buf: buf, pipeOut: pipeOut}
		if pipeOut != nil {
			prevOut = pipeOut
		}
	}
	var result string
	for i := range stages {
		s := &stages[i]
		if s.builtin {
			if i == len(stages)-1 {
				result = s.buf.String()
			}
			continue
		}
		if err := s.cmd.Wait(); err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				return "", err
			}
		}
		if s.buf != nil {
			result = s.buf.String()
		}
	}
	return result, nil
}

func (e *Executor) start(cmd CmdLine, stdin io.Reader) (*exec.Cmd, func(*exec.Cmd) (string, error), error) {
	c := exec.Command(cmd.Name, cmd.Args...)
	c.Dir = e.Dir
	c.Stderr = os.Stderr
	if err := wireStdin(c, cmd.Stdin, stdin); err != nil {
		return nil, nil, err
	}
	buf := e.wireFinalStdout(c, cmd.Stdout)
	if err := c.Start(); err != nil {
		return nil, nil, err
	}
	return c, func(cc *exec.Cmd) (string, error) {
		if err := cc.Wait(); err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				return "", err
			}
		}
		if buf != nil {
			return buf.String(), nil
		}
		return "", nil
	}, nil
}

func wireStdin(c *exec.Cmd, io_ CmdIO, piped io.Reader) error {
	switch io_.Kind {
	case IOConsole:
		c.Stdin = os.Stdin
	case IOFile:
		f, err := os.Open(io_.Path)
		if err != nil {
			return err
		}
		c.Stdin = f
	case IOPipe:
		if piped == nil {
			return fmt.Errorf("no piped stdin available for %s", c.Path)
		}
		c.Stdin = piped
	}
	return nil
}

// wireFinalStdout wires the command's stdout per io_, returning a buffer to
// read captured output from when the destination is an in-memory sink
// (Console in capture mode, or Pipe).
func (e *Executor) wireFinalStdout(c *exec.Cmd, io_ CmdIO) *bytes.Buffer {
	switch io_.Kind {
	case IOFile:
		f, err := os.OpenFile(io_.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err == nil {
			c.Stdout = f
		}
		return nil
	case IOConsole:
		if !e.CaptureConsole {
			c.Stdout = os.Stdout
			return nil
		}
		fallthrough
	default: // IOPipe, or captured Console
		var buf bytes.Buffer
		c.Stdout = &buf
		return &buf
	}
}
