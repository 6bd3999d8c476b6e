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

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisTier is a Tier backed by github.com/redis/go-redis/v9, giving the LRU
// an optional distributed L2 shared across server instances. Keys are
// namespaced under "zhttpto:cache:" so the cache can share a Redis instance
// with other uses without key collisions.
type RedisTier struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTier dials addr (e.g. "127.0.0.1:6379") and returns a Tier that
// expires entries after ttl. A ttl <= 0 defaults to one hour.
func NewRedisTier(addr string, ttl time.Duration) *RedisTier {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisTier{client: redis.NewClient(&redis.Options{Addr: addr}), ttl: ttl}
}

func redisKey(key string) string { return fmt.Sprintf("zhttpto:cache:%s", key) }

// Get returns the cached bytes for key, or (nil, false) on a miss or any
// Redis error. A Tier miss is never itself an error: the caller falls back
// to reading the file from disk.
func (r *RedisTier) Get(ctx context.Context, key string) ([]byte, bool) {
	v, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// not logged anywhere; a transient Redis error degrades
			// gracefully to an L1-only cache.
		}
		return nil, false
	}
	return v, true
}

// Set write-behinds value into Redis with the configured TTL. Errors are
// swallowed: the distributed tier is a cache primer, not a correctness
// path, exactly like the in-process cache-populate task.
func (r *RedisTier) Set(ctx context.Context, key string, value []byte) {
	_ = r.client.Set(ctx, redisKey(key), value, r.ttl).Err()
}

// Close releases the underlying connection pool.
func (r *RedisTier) Close() error { return r.client.Close() }
