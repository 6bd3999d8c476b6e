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

// Package visitor tracks the server's visitor counter as a Vector-Scalar
// Accumulator: a stable scalar (last value durably committed) plus a
// volatile vector (increments accumulated since the last commit). Every
// accepted connection bumps the vector with a single in-memory add; a
// background worker periodically folds the vector into the scalar and
// persists it, so the hot path never blocks on I/O.
package visitor

import "sync"

// Ledger is a thread-safe scalar/vector counter. Unlike the consume/refund
// VSA it is modeled on, Ledger only ever grows: Commit folds the vector
// into the scalar by addition rather than subtraction, since a visit is
// never retracted.
type Ledger struct {
	mu     sync.RWMutex
	scalar int64
	vector int64
}

// NewLedger creates a ledger seeded with the last known committed value.
func NewLedger(initialScalar int64) *Ledger {
	return &Ledger{scalar: initialScalar}
}

// Increment records one more visit. Fast, in-memory, non-blocking.
func (l *Ledger) Increment() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vector++
}

// Value returns the current total: committed scalar plus the
// not-yet-committed vector.
func (l *Ledger) Value() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.scalar + l.vector
}

// CheckCommit reports whether the accumulated vector has reached
// threshold, and if so returns the amount to commit. Read-only; the
// caller must call Commit with this exact value after persisting it.
func (l *Ledger) CheckCommit(threshold int64) (shouldCommit bool, delta int64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.vector >= threshold {
		return true, l.vector
	}
	return false, 0
}

// Commit folds a successfully persisted delta from the vector into the
// scalar. The caller must pass exactly the value returned by the
// CheckCommit call that triggered the persist.
func (l *Ledger) Commit(delta int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scalar += delta
	l.vector -= delta
}

// State returns the current scalar and vector, for monitoring.
func (l *Ledger) State() (scalar, vector int64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.scalar, l.vector
}
