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

// Package main provides the entry point for the zhttpto static file
// server: a concurrent, priority-scheduled, LRU-cached web server with
// Server-Side-Include-style shell interpolation.
//
// This file orchestrates the whole service:
//  1. Parse configuration flags.
//  2. Build the content cache, visitor ledger, audit sink, and metrics.
//  3. Start their background workers.
//  4. Run the accept loop: read a request line, classify + weigh it, and
//     enqueue it onto the dual-lane scheduler for the worker pool to drain.
//  5. On SIGINT/SIGTERM, stop accepting, drain in-flight workers, flush
//     the visitor ledger and audit sinks, and exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"zhttpto/internal/audit"
	"zhttpto/internal/cache"
	"zhttpto/internal/httpserve"
	"zhttpto/internal/metrics"
	"zhttpto/internal/scheduler"
	"zhttpto/internal/visitor"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:4414", "TCP listen address")
	root := flag.String("root", ".", "Directory served as the request path root")
	cacheCap := flag.Int("cache-cap", 512, "In-process LRU content cache capacity (entries)")
	fastWorkers := flag.Int("fast-workers", 3, "Number of worker goroutines bound to the fast lane")
	slowWorkers := flag.Int("slow-workers", 1, "Number of worker goroutines bound to the slow lane")
	metricsAddr := flag.String("metrics-addr", "", "If non-empty, expose Prometheus /metrics on this address")
	redisAddr := flag.String("redis-addr", "", "If non-empty, use a Redis-backed L2 cache tier at this address")
	postgresDSN := flag.String("postgres-dsn", "", "If non-empty, durably commit the visitor ledger to this Postgres DSN")
	kafkaBrokers := flag.String("kafka-brokers", "", "Comma-separated Kafka brokers for the audit sink (optional)")
	kafkaTopic := flag.String("kafka-topic", "zhttpto-audit", "Kafka topic for the audit sink, if brokers are set")
	auditLog := flag.String("audit-log", "zhttpto-audit.jsonl", "Path to the durable JSONL audit log")
	visitorCommitThreshold := flag.Int64("visitor-commit-threshold", 10, "Visits accumulated before a ledger commit")
	visitorCommitInterval := flag.Duration("visitor-commit-interval", 5*time.Second, "How often the ledger worker checks whether to commit")
	flag.Parse()

	m := metrics.New()
	if *metricsAddr != "" {
		m.ServeHTTP(*metricsAddr)
	}

	var tier cache.Tier = cache.NoTier{}
	if *redisAddr != "" {
		tier = cache.NewRedisTier(*redisAddr, time.Hour)
	}
	contentCache := cache.NewTiered(cache.NewLRU(*cacheCap), tier)

	ledger := visitor.NewLedger(0)
	var ledgerWorker *visitor.Worker
	if *postgresDSN != "" {
		committer, err := visitor.NewPostgresCommitter(*postgresDSN)
		if err != nil {
			log.Fatalf("visitor ledger: %v", err)
		}
		ledgerWorker = visitor.NewWorker(ledger, committer, *visitorCommitThreshold, *visitorCommitInterval)
		ledgerWorker.Start()
	}

	var kafkaBrokerList []string
	if *kafkaBrokers != "" {
		kafkaBrokerList = strings.Split(*kafkaBrokers, ",")
	}
	auditSink, err := audit.BuildSink(audit.Options{
		LogPath:      *auditLog,
		KafkaBrokers: kafkaBrokerList,
		KafkaTopic:   *kafkaTopic,
	})
	if err != nil {
		log.Fatalf("audit sink: %v", err)
	}

	handler := httpserve.NewHandler(*root, contentCache, ledger)
	sched := scheduler.New(*root, contentCache)
	pool := scheduler.NewPool(sched, handler, *fastWorkers, *slowWorkers)
	pool.OnHandled = func(lane string, wr scheduler.WeightedRequest, status httpserve.Status, outcome httpserve.Outcome) {
		m.ObserveRequest(status.Label())
		m.ObserveWeight(wr.Weight)
		if outcome.CacheHit {
			m.ObserveCacheHit()
		} else {
			m.ObserveCacheMiss()
		}
		for i := 0; i < outcome.SSI.OK; i++ {
			m.ObserveSSIExec("ok")
		}
		for i := 0; i < outcome.SSI.Error; i++ {
			m.ObserveSSIExec("error")
		}
		auditSink.Record(audit.NewEvent(wr.Request.RemoteAddr, wr.Request.Path.Rel, lane, wr.Weight, status.Label(), outcome.Bytes, outcome.CacheHit))
	}
	pool.OnWorkerBusy = m.SetWorkerBusy
	pool.Start()

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("listen on %s: %v", *addr, err)
	}
	fmt.Printf("zhttpto listening on %s, serving %s\n", *addr, *root)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	acceptDone := make(chan struct{})
	go func() {
		defer close(acceptDone)
		acceptLoop(ln, *root, ledger, sched, m)
	}()

	<-stop
	fmt.Println("\nShutting down...")
	_ = ln.Close()
	<-acceptDone

	pool.Stop()
	if ledgerWorker != nil {
		ledgerWorker.Stop()
	}
	_ = auditSink.Close()
	fmt.Println("zhttpto stopped.")
}

// acceptLoop runs the single accept thread: it blocks on Accept, reads the
// bounded request-line prefix itself, and enqueues the resulting Request
// onto the scheduler. Per the concurrency model, there is exactly one
// accept thread; request handling happens only on the worker pool.
func acceptLoop(ln net.Listener, root string, ledger *visitor.Ledger, sched *scheduler.Scheduler, m *metrics.Metrics) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		ledger.Increment()

		buf := make([]byte, 500)
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		n, err := conn.Read(buf)
		if err != nil && n == 0 {
			_ = conn.Close()
			continue
		}

		path, pathErr := httpserve.ParseRequestLine(root, buf[:n])
		sched.Enqueue(httpserve.Request{
			RemoteAddr: conn.RemoteAddr().String(),
			Path:       path,
			PathErr:    pathErr,
			Sink:       conn,
		})
		m.SetLaneDepth("fast", sched.Fast.Len())
		m.SetLaneDepth("slow", sched.Slow.Len())
	}
}
