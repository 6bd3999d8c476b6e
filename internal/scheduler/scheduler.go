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

// Package scheduler implements the dual-lane priority admission path: two
// independent min-heaps (Fast, Slow), each behind its own mutex, with no
// rebalancing and no aging between them.
package scheduler

import (
	"zhttpto/internal/httpserve"
)

// Scheduler owns the Fast and Slow lanes and the classify/weight steps that
// decide where an incoming Request lands.
type Scheduler struct {
	Fast  *Lane
	Slow  *Lane
	root  string
	cache httpserve.CacheChecker
}

// New constructs a Scheduler that weighs requests against files under root,
// consulting cache to discount cache-resident paths. cache may be nil.
func New(root string, cache httpserve.CacheChecker) *Scheduler {
	return &Scheduler{
		Fast:  NewLane(),
		Slow:  NewLane(),
		root:  root,
		cache: cache,
	}
}

// Enqueue classifies req via C8, weighs it via C9, and pushes the resulting
// WeightedRequest into the chosen lane atomically under that lane's mutex.
func (s *Scheduler) Enqueue(req httpserve.Request) {
	wr := WeightedRequest{
		Request: req,
		Weight:  httpserve.Weight(s.root, s.cache, req.Path, req.PathErr),
	}
	switch httpserve.Classify(req.RemoteAddr) {
	case httpserve.High:
		s.Fast.Push(wr)
	default:
		s.Slow.Push(wr)
	}
}
