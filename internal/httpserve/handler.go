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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"zhttpto/internal/interpolate"
	"zhttpto/internal/sandbox"
)

// Request holds the connection byte-stream and a parsed-path result,
// computed once at accept time and reused by both the weight estimator and
// the handler. At most one worker processes a given Request; once handed
// to the worker pool the accept loop retains no reference.
type Request struct {
	RemoteAddr string
	Path       sandbox.Path
	PathErr    error
	Sink       io.Writer
}

// VisitorCounter exposes the process-wide visitor counter to response
// rendering via a relaxed read.
type VisitorCounter interface {
	Value() int64
}

// ContentCache is satisfied by both cache.LRU and cache.Tiered: get by
// relative path, put on miss.
type ContentCache interface {
	CacheChecker
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
}

const rootTemplate = `<html><body><h1>Greetings, Krusty!</h1><p>Visitor Count: %d</p></body></html>`

// Handler composes the sandbox, cache, and SSI interpolator into the
// request-handling pipeline: resolve a URL-relative path, retrieve file
// bytes (cache on hit, disk + fire-and-forget populate on miss), rewrite
// #exec directives for shtml, and write the response.
type Handler struct {
	Root    string
	Cache   ContentCache
	Counter VisitorCounter
}

// NewHandler constructs a Handler serving files under root.
func NewHandler(root string, cache ContentCache, counter VisitorCounter) *Handler {
	return &Handler{Root: root, Cache: cache, Counter: counter}
}

// Outcome carries the bookkeeping a caller needs beyond the bare Status:
// how many body bytes were written, whether the content cache was hit, and
// how any #exec directives in an shtml document resolved. None of these
// fields affect what is written to the connection; they exist so the
// worker pool can feed metrics and the audit trail without Handle
// re-deriving them.
type Outcome struct {
	Bytes    int
	CacheHit bool
	SSI      interpolate.Stats
}

// Handle turns a request path into a written response, returning the
// status that reflects the first failure, if any, plus an Outcome for
// observability.
func (h *Handler) Handle(req Request) (Status, Outcome) {
	if req.PathErr != nil {
		_ = WriteHeader(req.Sink, mapAccessError(req.PathErr))
		return mapAccessError(req.PathErr), Outcome{}
	}
	if req.Path.IsRoot() {
		body := fmt.Sprintf(rootTemplate, h.Counter.Value())
		if err := WriteHeader(req.Sink, StatusOK); err != nil {
			return StatusError, Outcome{}
		}
		if err := WriteBlock(req.Sink, body); err != nil {
			return StatusError, Outcome{}
		}
		return StatusOK, Outcome{Bytes: len(body)}
	}
	return h.handleRelPath(req)
}

func (h *Handler) handleRelPath(req Request) (Status, Outcome) {
	rel := req.Path.Rel
	shtml := req.Path.Ext() == "shtml"

	if cached, ok := h.Cache.Get(rel); ok {
		body := string(cached)
		var stats interpolate.Stats
		if shtml {
			body, stats = interpolate.Insert(h.Root, body)
		}
		if err := WriteHeader(req.Sink, StatusOK); err != nil {
			return StatusError, Outcome{}
		}
		if err := WriteBlock(req.Sink, body); err != nil {
			return StatusError, Outcome{}
		}
		return StatusOK, Outcome{Bytes: len(body), CacheHit: true, SSI: stats}
	}

	full := filepath.Join(h.Root, rel)

	// shtml bodies are rewritten in place, which needs the whole document
	// in memory regardless; read it as a Block like a cache hit would.
	if shtml {
		data, err := os.ReadFile(full)
		if err != nil {
			_ = WriteHeader(req.Sink, StatusError)
			return StatusError, Outcome{}
		}
		cache, key := h.Cache, rel
		go func() { cache.Put(key, data) }()

		body, stats := interpolate.Insert(h.Root, string(data))
		if err := WriteHeader(req.Sink, StatusOK); err != nil {
			return StatusError, Outcome{}
		}
		if err := WriteBlock(req.Sink, body); err != nil {
			return StatusError, Outcome{}
		}
		return StatusOK, Outcome{Bytes: len(body), SSI: stats}
	}

	// Everything else is a Payload::Stream: the file is never fully
	// materialised for our own sake, only tee'd into a buffer so the
	// fire-and-forget cache populate still has bytes to store.
	f, err := os.Open(full)
	if err != nil {
		_ = WriteHeader(req.Sink, StatusError)
		return StatusError, Outcome{}
	}
	defer f.Close()

	var tee bytes.Buffer
	if err := WriteHeader(req.Sink, StatusOK); err != nil {
		return StatusError, Outcome{}
	}
	n, err := WriteStream(req.Sink, io.TeeReader(f, &tee))
	if err != nil {
		return StatusError, Outcome{}
	}
	cache, key, data := h.Cache, rel, append([]byte(nil), tee.Bytes()...)
	go func() { cache.Put(key, data) }()

	return StatusOK, Outcome{Bytes: int(n)}
}

func mapAccessError(err error) Status {
	switch err {
	case sandbox.ErrNotFound:
		return StatusFileNotFound
	case sandbox.ErrOutOfBounds, sandbox.ErrTypeNotAllowed:
		return StatusNotAuthorized
	default:
		return StatusError
	}
}
