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

package audit

import (
	"path/filepath"
	"testing"
)

func TestFileSink_RecordThenReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	s, err := NewFileSink(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Record(NewEvent("10.0.0.1:1234", "/index.html", "fast", 12, "200", 1024, true))
	s.Record(NewEvent("10.0.0.2:1234", "/missing.html", "slow", 0, "404", 0, false))
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	events, err := ReadAllEvents(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Path != "/index.html" || events[0].Status != "200" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Lane != "slow" || events[1].Weight != 0 {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestBuildSink_RequiresLogPath(t *testing.T) {
	if _, err := BuildSink(Options{}); err == nil {
		t.Fatalf("expected error with empty LogPath")
	}
}

func TestBuildSink_FileOnlyWhenNoKafkaConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink, err := BuildSink(Options{LogPath: path})
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()
	if _, ok := sink.(*FileSink); !ok {
		t.Fatalf("expected a bare *FileSink when Kafka is not configured, got %T", sink)
	}
}
