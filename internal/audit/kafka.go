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

package audit

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
)

// KafkaSink publishes Events to a Kafka topic via an idempotent
// SyncProducer, using RemoteAddr as the message key so per-visitor
// ordering and broker-side dedup are preserved.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaSink dials brokers and constructs a sink publishing to topic.
// The producer is configured for idempotent writes acknowledged by all
// in-sync replicas.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("dial kafka brokers: %w", err)
	}
	return &KafkaSink{producer: producer, topic: topic}, nil
}

// Record publishes e as a single JSON-encoded Kafka message. A marshal or
// publish failure is logged rather than propagated: audit delivery is
// best-effort. The send is synchronous, so Record blocks its caller until
// the brokers acknowledge the message or the send fails.
func (k *KafkaSink) Record(e Event) {
	b, err := json.Marshal(&e)
	if err != nil {
		fmt.Printf("ERROR: failed to marshal audit event: %v\n", err)
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(e.RemoteAddr),
		Value: sarama.ByteEncoder(b),
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		fmt.Printf("ERROR: failed to publish audit event: %v\n", err)
	}
}

// Close releases the underlying producer's connections.
func (k *KafkaSink) Close() error {
	return k.producer.Close()
}
