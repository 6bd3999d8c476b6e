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

// Package httpserve composes the path sandbox, cache, and shell
// interpolator into the request handler, plus the priority classifier and
// weight estimator the scheduler consumes ahead of it.
package httpserve

import "net"

// Priority is the scheduling lane a request is admitted to.
type Priority int

const (
	Low Priority = iota
	High
)

// institutional prefixes route to the fast lane; everything else —
// including an unparseable address and any IPv6 address — defaults to Low.
// Classify never returns an error: uncertainty always resolves to the
// conservative (Low) branch, the same default-on-uncertainty shape the
// pack's tfd.Classify uses for its Scalar/Vector decision.
var institutionalPrefixes = [][2]byte{
	{128, 143},
	{137, 54},
}

// Classify maps a source address to {High, Low}. High iff the address is
// IPv4 with its first two octets matching a known institutional prefix.
func Classify(addr string) Priority {
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return Low
	}
	v4 := ip.To4()
	if v4 == nil {
		return Low
	}
	for _, prefix := range institutionalPrefixes {
		if v4[0] == prefix[0] && v4[1] == prefix[1] {
			return High
		}
	}
	return Low
}
