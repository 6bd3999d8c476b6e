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

package visitor

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeCommitter struct {
	mu     sync.Mutex
	totals []int64
	err    error
}

func (f *fakeCommitter) Commit(_ context.Context, total int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.totals = append(f.totals, total)
	return nil
}

func (f *fakeCommitter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.totals)
}

func TestWorker_CommitsOnceThresholdReached(t *testing.T) {
	l := NewLedger(0)
	for i := 0; i < 3; i++ {
		l.Increment()
	}
	fc := &fakeCommitter{}
	w := NewWorker(l, fc, 3, time.Millisecond)
	w.Start()
	defer w.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if fc.calls() >= 1 {
			scalar, vector := l.State()
			if scalar != 3 || vector != 0 {
				t.Fatalf("expected scalar=3 vector=0 after commit, got scalar=%d vector=%d", scalar, vector)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected at least one commit")
}

func TestWorker_StopFlushesRemainder(t *testing.T) {
	l := NewLedger(0)
	l.Increment()
	fc := &fakeCommitter{}
	w := NewWorker(l, fc, 1000, time.Hour)
	w.Start()
	w.Stop()

	if fc.calls() != 1 {
		t.Fatalf("expected final flush to commit once, got %d", fc.calls())
	}
	if v := l.Value(); v != 1 {
		t.Fatalf("expected value still 1 after flush, got %d", v)
	}
}

func TestWorker_NoCommitBelowThreshold(t *testing.T) {
	l := NewLedger(0)
	l.Increment()
	fc := &fakeCommitter{}
	w := NewWorker(l, fc, 10, time.Millisecond)
	w.Start()
	time.Sleep(20 * time.Millisecond)

	// Below the threshold, the periodic ticks must not have committed yet;
	// only Stop's unconditional final flush commits the remainder.
	if fc.calls() != 0 {
		t.Fatalf("expected no mid-loop commit below threshold, got %d", fc.calls())
	}
	w.Stop()
	if fc.calls() != 1 {
		t.Fatalf("expected Stop's final flush to commit the remainder, got %d", fc.calls())
	}
}
