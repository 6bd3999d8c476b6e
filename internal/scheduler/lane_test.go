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

package scheduler

import (
	"sync"
	"testing"
)

func TestLane_PopsAscendingWeight(t *testing.T) {
	l := NewLane()
	l.Push(WeightedRequest{Weight: 50})
	l.Push(WeightedRequest{Weight: 10})
	l.Push(WeightedRequest{Weight: 30})

	want := []uint64{10, 30, 50}
	for _, w := range want {
		wr, ok := l.Pop()
		if !ok || wr.Weight != w {
			t.Fatalf("expected %d, got %d ok=%v", w, wr.Weight, ok)
		}
	}
	if _, ok := l.Pop(); ok {
		t.Fatalf("expected empty lane")
	}
}

func TestLane_PopEmptyReturnsFalse(t *testing.T) {
	l := NewLane()
	if _, ok := l.Pop(); ok {
		t.Fatalf("expected ok=false on empty lane")
	}
}

func TestLane_ConcurrentPushPop(t *testing.T) {
	l := NewLane()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(w uint64) {
			defer wg.Done()
			l.Push(WeightedRequest{Weight: w})
		}(uint64(i))
	}
	wg.Wait()
	if l.Len() != 100 {
		t.Fatalf("expected 100 queued, got %d", l.Len())
	}

	seen := 0
	for {
		if _, ok := l.Pop(); !ok {
			break
		}
		seen++
	}
	if seen != 100 {
		t.Fatalf("expected to drain 100, got %d", seen)
	}
}
