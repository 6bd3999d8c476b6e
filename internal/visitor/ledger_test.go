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
	"sync"
	"testing"
)

func TestLedger_IncrementAccumulatesIntoValue(t *testing.T) {
	l := NewLedger(10)
	l.Increment()
	l.Increment()
	if v := l.Value(); v != 12 {
		t.Fatalf("expected 12, got %d", v)
	}
}

func TestLedger_ConcurrentIncrements(t *testing.T) {
	l := NewLedger(0)
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Increment()
		}()
	}
	wg.Wait()
	if v := l.Value(); v != 200 {
		t.Fatalf("expected 200, got %d", v)
	}
}

func TestLedger_CheckCommitBelowThreshold(t *testing.T) {
	l := NewLedger(0)
	l.Increment()
	if should, _ := l.CheckCommit(5); should {
		t.Fatalf("expected no commit below threshold")
	}
}

func TestLedger_CommitFoldsVectorIntoScalar(t *testing.T) {
	l := NewLedger(100)
	for i := 0; i < 5; i++ {
		l.Increment()
	}
	should, delta := l.CheckCommit(5)
	if !should || delta != 5 {
		t.Fatalf("expected commit of 5, got should=%v delta=%d", should, delta)
	}
	l.Commit(delta)

	scalar, vector := l.State()
	if scalar != 105 || vector != 0 {
		t.Fatalf("expected scalar=105 vector=0, got scalar=%d vector=%d", scalar, vector)
	}
	if v := l.Value(); v != 105 {
		t.Fatalf("expected Value()=105, got %d", v)
	}
}
