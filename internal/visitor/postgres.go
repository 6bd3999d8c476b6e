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

package visitor

// Postgres schema (reference):
//
// CREATE TABLE IF NOT EXISTS visitor_counter (
//   id SMALLINT PRIMARY KEY DEFAULT 1,
//   total BIGINT NOT NULL,
//   updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//   CHECK (id = 1)
// );
//
// Seeded once with (1, 0); every commit is a single idempotent UPSERT
// carrying the absolute total rather than a delta, so a retried commit
// after a dropped connection never double-counts.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresCommitter persists the visitor ledger's running total to a
// single-row table, upserting the absolute value on every commit.
type PostgresCommitter struct {
	db             *sql.DB
	defaultTimeout time.Duration
}

// NewPostgresCommitter opens a connection pool against dsn using the
// lib/pq driver. Schema initialization is the operator's responsibility.
func NewPostgresCommitter(dsn string) (*PostgresCommitter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &PostgresCommitter{db: db, defaultTimeout: 10 * time.Second}, nil
}

// Commit upserts total as the visitor counter's durable value.
func (p *PostgresCommitter) Commit(ctx context.Context, total int64) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok && p.defaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.defaultTimeout)
		defer cancel()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO visitor_counter (id, total, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET total = EXCLUDED.total, updated_at = now()`,
		total)
	if err != nil {
		return fmt.Errorf("upsert visitor_counter: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *PostgresCommitter) Close() error {
	return p.db.Close()
}
