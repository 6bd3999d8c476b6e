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
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Committer durably persists the ledger's absolute committed total.
// PostgresCommitter is the production implementation; tests use a fake.
type Committer interface {
	Commit(ctx context.Context, total int64) error
}

// Worker periodically checks the ledger against a commit threshold and,
// once crossed, persists the new total (scalar plus the accumulated delta)
// and folds the delta into the ledger's scalar. Modeled on the rate limiter's commit/evict background
// loop: a ticker plus a stop channel plus a WaitGroup, no eviction side
// since a single ledger never goes stale.
type Worker struct {
	ledger         *Ledger
	committer      Committer
	threshold      int64
	commitInterval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  uint32
}

// NewWorker builds a worker that commits ledger through committer whenever
// the accumulated vector reaches threshold, checked every commitInterval.
func NewWorker(ledger *Ledger, committer Committer, threshold int64, commitInterval time.Duration) *Worker {
	return &Worker{
		ledger:         ledger,
		committer:      committer,
		threshold:      threshold,
		commitInterval: commitInterval,
		stopChan:       make(chan struct{}),
	}
}

// Start launches the commit loop.
func (w *Worker) Start() {
	fmt.Println("Starting visitor ledger worker...")
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.commitLoop()
	}()
}

// Stop signals the commit loop to perform one final flush and exit, then
// waits for it to return.
func (w *Worker) Stop() {
	if !atomic.CompareAndSwapUint32(&w.stopped, 0, 1) {
		return
	}
	fmt.Println("Stopping visitor ledger worker...")
	close(w.stopChan)
	w.wg.Wait()
}

func (w *Worker) commitLoop() {
	ticker := time.NewTicker(w.commitInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runCommitCycle(w.threshold)
		case <-w.stopChan:
			w.runCommitCycle(0)
			return
		}
	}
}

// runCommitCycle commits the accumulated vector if it has reached
// minDelta (0 forces an unconditional final flush of any remainder).
func (w *Worker) runCommitCycle(minDelta int64) {
	shouldCommit, delta := w.ledger.CheckCommit(minDelta)
	if !shouldCommit || delta == 0 {
		return
	}
	scalar, _ := w.ledger.State()
	if err := w.committer.Commit(context.Background(), scalar+delta); err != nil {
		fmt.Printf("ERROR: failed to commit visitor ledger: %v\n", err)
		return
	}
	w.ledger.Commit(delta)
}
