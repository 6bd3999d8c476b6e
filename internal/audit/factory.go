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

import "fmt"

// Options configures the sinks BuildSink wires up.
type Options struct {
	// LogPath is always written to; a JSONL audit trail is never optional.
	LogPath string
	// KafkaBrokers and KafkaTopic, if both set, additionally publish every
	// event to Kafka.
	KafkaBrokers []string
	KafkaTopic   string
}

// multiSink fans a Record out to every configured sink, and closes them
// all together.
type multiSink struct {
	sinks []Sink
}

func (m *multiSink) Record(e Event) {
	for _, s := range m.sinks {
		s.Record(e)
	}
}

func (m *multiSink) Close() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// BuildSink constructs the durable file sink required by opts.LogPath,
// plus an additional Kafka sink if brokers and topic are both configured.
func BuildSink(opts Options) (Sink, error) {
	if opts.LogPath == "" {
		return nil, fmt.Errorf("audit: LogPath must be set")
	}
	file, err := NewFileSink(opts.LogPath)
	if err != nil {
		return nil, fmt.Errorf("audit: open file sink: %w", err)
	}
	sinks := []Sink{file}

	if len(opts.KafkaBrokers) > 0 && opts.KafkaTopic != "" {
		kafka, err := NewKafkaSink(opts.KafkaBrokers, opts.KafkaTopic)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("audit: open kafka sink: %w", err)
		}
		sinks = append(sinks, kafka)
	}

	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return &multiSink{sinks: sinks}, nil
}
