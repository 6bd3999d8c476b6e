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
	"math"
	"os"
	"path/filepath"

	"zhttpto/internal/sandbox"
)

// CacheChecker reports whether a path is currently cached, without
// promoting it — satisfied by both cache.LRU and cache.Tiered.
type CacheChecker interface {
	Has(key string) bool
}

// Weight estimates a per-request service cost; smaller weights are higher
// priority. An Err path_result weighs 0 (first); Root weighs 1; a RelPath's
// base weight is its file size (math.MaxUint64 if stat fails), doubled for
// the shtml dynamic penalty, and divided by 10 for a cache-hit discount.
func Weight(root string, ch CacheChecker, p sandbox.Path, pathErr error) uint64 {
	if pathErr != nil {
		return 0
	}
	if p.IsRoot() {
		return 1
	}
	var size uint64
	info, err := os.Stat(filepath.Join(root, p.Rel))
	if err != nil {
		size = math.MaxUint64
	} else {
		size = uint64(info.Size())
	}
	if p.Ext() == "shtml" {
		size *= 2
	}
	if ch != nil && ch.Has(p.Rel) {
		size /= 10
	}
	return size
}
