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

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		addr string
		want Priority
	}{
		{"128.143.1.2:5000", High},
		{"137.54.9.9:5000", High},
		{"10.2.10.5:5000", Low},
		{"[::1]:5000", Low},
		{"not-an-address", Low},
	}
	for _, c := range cases {
		if got := Classify(c.addr); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.addr, got, c.want)
		}
	}
}
