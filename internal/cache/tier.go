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

package cache

import "context"

// Tier is an optional distributed L2 consulted only on an in-process LRU
// (L1) miss. A miss on Tier is not an error: the server falls back to
// reading the file from disk exactly as it would with no tier configured.
type Tier interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// NoTier is the zero-configuration default: every lookup misses, and Set is
// a no-op. Used when no distributed cache backend is configured, so callers
// never need a nil check.
type NoTier struct{}

func (NoTier) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NoTier) Set(context.Context, string, []byte)        {}

// Tiered composes an in-process LRU with an optional distributed Tier. Gets
// consult L1 first, then L2; an L2 hit populates L1 so a subsequent Get for
// the same key is an L1 hit. The LRU's own invariants (single mutex,
// promotion on get, eviction on put) are unchanged — this wrapper only adds
// an additional lookup/populate step around them.
type Tiered struct {
	L1 *LRU
	L2 Tier
}

// NewTiered composes l1 with l2. Pass NoTier{} for l2 to disable the
// distributed tier.
func NewTiered(l1 *LRU, l2 Tier) *Tiered {
	if l2 == nil {
		l2 = NoTier{}
	}
	return &Tiered{L1: l1, L2: l2}
}

// Get consults L1 then L2, populating L1 on an L2 hit. Takes no context:
// the request path never needs to cancel a cache lookup, matching the
// LRU's own synchronous, always-completes contract; RedisTier internally
// uses context.Background() for its round trip.
func (t *Tiered) Get(key string) ([]byte, bool) {
	if v, ok := t.L1.Get(key); ok {
		return v, true
	}
	if v, ok := t.L2.Get(context.Background(), key); ok {
		t.L1.Put(key, v)
		return v, true
	}
	return nil, false
}

// Has reports whether key is resident in L1, without consulting L2 or
// promoting it. Mirrors LRU.Has — used by the weight estimator.
func (t *Tiered) Has(key string) bool { return t.L1.Has(key) }

// Put writes through to both L1 and, if configured, L2.
func (t *Tiered) Put(key string, value []byte) {
	t.L1.Put(key, value)
	t.L2.Set(context.Background(), key, value)
}
