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

// Package audit records a durable trail of per-request outcomes, for
// post-hoc analysis independent of the Prometheus counters: a JSONL file
// sink always available, and an optional Kafka topic for downstream
// consumers.
package audit

import "time"

// Event is one request's outcome, as recorded by a Sink.
type Event struct {
	TsUnixMs   int64  `json:"ts_unix_ms"`
	RemoteAddr string `json:"remote_addr"`
	Path       string `json:"path"`
	Lane       string `json:"lane"`
	Weight     uint64 `json:"weight"`
	Status     string `json:"status"`
	Bytes      int    `json:"bytes"`
	CacheHit   bool   `json:"cache_hit"`
}

// NewEvent stamps an Event with the given fields and the current time.
func NewEvent(remoteAddr, path, lane string, weight uint64, status string, bytes int, cacheHit bool) Event {
	return Event{
		TsUnixMs:   time.Now().UnixMilli(),
		RemoteAddr: remoteAddr,
		Path:       path,
		Lane:       lane,
		Weight:     weight,
		Status:     status,
		Bytes:      bytes,
		CacheHit:   cacheHit,
	}
}

// Sink durably records Events. Implementations must be safe for
// concurrent use: workers on both lanes record outcomes independently.
type Sink interface {
	Record(e Event)
	Close() error
}
