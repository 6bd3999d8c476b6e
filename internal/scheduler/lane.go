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
	"container/heap"
	"sync"

	"zhttpto/internal/httpserve"
)

// WeightedRequest pairs a Request with the weight C9 assigned it. Ordering
// is by weight only; two requests with equal weight tie-break arbitrarily.
type WeightedRequest struct {
	Request httpserve.Request
	Weight  uint64
}

// requestHeap is a container/heap.Interface over WeightedRequest, ordered
// ascending by Weight. container/heap produces a min-heap from Less, so no
// inversion is needed here — the inversion point (had the source used a
// max-heap library) is documented rather than applied.
type requestHeap []WeightedRequest

func (h requestHeap) Len() int            { return len(h) }
func (h requestHeap) Less(i, j int) bool  { return h[i].Weight < h[j].Weight }
func (h requestHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *requestHeap) Push(x interface{}) { *h = append(*h, x.(WeightedRequest)) }
func (h *requestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Lane is a min-priority heap of WeightedRequest protected by its own
// mutex. Push and Pop are the only entry points; callers never touch the
// underlying heap directly.
type Lane struct {
	mu sync.Mutex
	h  requestHeap
}

// NewLane returns an empty lane.
func NewLane() *Lane {
	l := &Lane{}
	heap.Init(&l.h)
	return l
}

// Push inserts wr into the lane under the lane's mutex.
func (l *Lane) Push(wr WeightedRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	heap.Push(&l.h, wr)
}

// Pop removes and returns the least-weight element, or ok=false if the
// lane is empty. A worker holds the lane mutex only for the duration of
// this call — it releases before handling the popped request.
func (l *Lane) Pop() (wr WeightedRequest, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.h.Len() == 0 {
		return WeightedRequest{}, false
	}
	return heap.Pop(&l.h).(WeightedRequest), true
}

// Len reports the current lane depth, for metrics.
func (l *Lane) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Len()
}
