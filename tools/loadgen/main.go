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

// loadgen is a tiny, dependency-free load generator tailored for zhttpto.
// zhttpto speaks a raw, no-keep-alive request line rather than full HTTP/1.1
// (no Content-Length, no Connection header, the socket closes once the
// response is written), so this tool dials TCP directly instead of going
// through net/http: one connection per request, write the request line,
// read until EOF, close.
//
// Modes:
//   - single: request the same path N times
//   - zipf:   approximate 80/20 skew (hot/cold) without PRNG: the hot path
//     is requested 4/5 of the time by default
//
// Usage examples:
//
//	loadgen -addr=127.0.0.1:4414 -mode=single -path=/index.html -n=5000 -c=16
//	loadgen -addr=127.0.0.1:4414 -mode=zipf -hot_path=/hot.html -cold_paths=50 -n=8000 -c=16
package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type modeType string

const (
	modeSingle modeType = "single"
	modeZipf   modeType = "zipf"
)

func main() {
	var (
		addr     = flag.String("addr", "127.0.0.1:4414", "zhttpto listen address")
		path     = flag.String("path", "/index.html", "Request path for single mode")
		modeS    = flag.String("mode", string(modeSingle), "Mode: single|zipf")
		hotPath  = flag.String("hot_path", "/hot.html", "Hot path for zipf mode")
		coldN    = flag.Int("cold_paths", 50, "Number of cold paths to round-robin in zipf mode")
		N        = flag.Int("n", 5000, "Total requests to send")
		conc     = flag.Int("c", 8, "Number of concurrent workers")
		hotEvery = flag.Int("hot_every", 5, "Zipf-like skew period (all but 1 of each period go to hot; minimum 2)")
		timeout  = flag.Duration("timeout", 20*time.Second, "Overall timeout for the loadgen run")
		dialTO   = flag.Duration("dial_timeout", 2*time.Second, "Per-connection dial timeout")
	)
	flag.Parse()

	m := modeType(strings.ToLower(*modeS))
	if m != modeSingle && m != modeZipf {
		fmt.Fprintf(os.Stderr, "unknown -mode=%s (want single|zipf)\n", *modeS)
		os.Exit(2)
	}
	if *N <= 0 || *conc <= 0 {
		fmt.Fprintln(os.Stderr, "-n and -c must be > 0")
		os.Exit(2)
	}
	if m == modeZipf {
		if *coldN <= 0 {
			fmt.Fprintln(os.Stderr, "-cold_paths must be > 0 in zipf mode")
			os.Exit(2)
		}
		if *hotEvery < 2 {
			*hotEvery = 2
		}
	}

	deadline := time.Now().Add(*timeout)
	start := time.Now()
	var done, errs int64

	worker := func(id, count int) {
		defer atomic.AddInt64(&done, int64(count))
		for i := 0; i < count; i++ {
			if time.Now().After(deadline) {
				return
			}
			var p string
			if m == modeSingle {
				p = *path
			} else if (i+id)%*hotEvery != 0 {
				p = *hotPath
			} else {
				idx := ((i + id) % *coldN) + 1
				p = fmt.Sprintf("/cold-%d.html", idx)
			}
			if err := fetch(*addr, p, *dialTO); err != nil {
				atomic.AddInt64(&errs, 1)
				time.Sleep(200 * time.Microsecond)
			}
		}
	}

	per := *N / *conc
	rem := *N - per**conc
	var wg sync.WaitGroup
	wg.Add(*conc)
	for w := 0; w < *conc; w++ {
		count := per
		if w == *conc-1 {
			count += rem
		}
		go func(id, n int) {
			defer wg.Done()
			worker(id, n)
		}(w, count)
	}
	wg.Wait()

	elapsed := time.Since(start)
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	ops := float64(*N) / elapsed.Seconds()
	fmt.Printf("LoadGen: mode=%s N=%d c=%d go=%d errs=%d Duration=%s Throughput=%.0f req/s\n",
		m, *N, *conc, runtime.GOMAXPROCS(0), errs, elapsed.Truncate(time.Millisecond), ops)
}

// fetch opens one connection, writes the request line zhttpto expects, and
// drains the response until the server closes the socket.
func fetch(addr, path string, dialTimeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(conn, "GET %s HTTP/1.1\r\n\r\n", path); err != nil {
		return err
	}
	_, err = io.Copy(io.Discard, conn)
	return err
}
