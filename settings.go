// Copyright 2025 The Rivaas Authors
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

// Package protean is the top-level facade: it ties registry, route,
// trial, statemachine, auth, transport, and telemetry together behind one
// embeddable entry point, and loads Settings via the teacher's config
// package — §10.2.
package protean

import (
	"context"
	"fmt"
	"time"

	"github.com/protean-http/protean/config"
	"github.com/protean-http/protean/statemachine"
	"github.com/protean-http/protean/trial"
)

// Settings is the config-bound surface a host runner loads once and hands
// to every TrialRunner/StateMachineRunner it builds — §10.2's
// "max_examples, per_trial_timeout, seed, step_count, max_sequences,
// recursion_limit, per_step_timeout, total_timeout, concurrency mode."
type Settings struct {
	MaxExamples     int           `config:"max_examples" default:"100"`
	PerTrialTimeout time.Duration `config:"per_trial_timeout" default:"10s"`
	Seed            uint64        `config:"seed"`
	Size            int           `config:"size" default:"50"`

	StepCount      int           `config:"step_count" default:"20"`
	MaxSequences   int           `config:"max_sequences" default:"10"`
	RecursionLimit int           `config:"recursion_limit" default:"5"`
	PerStepTimeout time.Duration `config:"per_step_timeout" default:"10s"`
	TotalTimeout   time.Duration `config:"total_timeout" default:"2m"`

	// Concurrency is the cross-route execution mode — §5. "sequential" runs
	// one route at a time; "parallel" fans every route's Runner out onto
	// its own goroutine.
	Concurrency string `config:"concurrency" default:"sequential"`
}

// Validate implements config.Validator, checked by config.Config.Load after
// binding — rejects settings that would make a Runner meaningless rather
// than merely slow.
func (s Settings) Validate() error {
	if s.MaxExamples <= 0 {
		return fmt.Errorf("protean: max_examples must be positive, got %d", s.MaxExamples)
	}
	if s.StepCount <= 0 {
		return fmt.Errorf("protean: step_count must be positive, got %d", s.StepCount)
	}
	if s.MaxSequences <= 0 {
		return fmt.Errorf("protean: max_sequences must be positive, got %d", s.MaxSequences)
	}
	if s.Concurrency != "sequential" && s.Concurrency != "parallel" {
		return fmt.Errorf("protean: concurrency must be %q or %q, got %q", "sequential", "parallel", s.Concurrency)
	}
	return nil
}

// TrialSettings projects Settings onto trial.Settings for a single-route run.
func (s Settings) TrialSettings() trial.Settings {
	return trial.Settings{
		MaxExamples:     s.MaxExamples,
		PerTrialTimeout: s.PerTrialTimeout,
		Seed:            s.Seed,
		Size:            s.Size,
	}
}

// StateMachineSettings projects Settings onto statemachine.Settings for a
// stateful run.
func (s Settings) StateMachineSettings() statemachine.Settings {
	return statemachine.Settings{
		StepCount:      s.StepCount,
		MaxSequences:   s.MaxSequences,
		RecursionLimit: s.RecursionLimit,
		PerStepTimeout: s.PerStepTimeout,
		TotalTimeout:   s.TotalTimeout,
		Seed:           s.Seed,
		Size:           s.Size,
	}
}

// LoadSettings builds a config.Config from opts (host-supplied sources —
// typically config.WithFile/config.WithEnv), binds it onto a Settings, and
// validates it — the one concrete instantiation of §10.2's config.Load.
func LoadSettings(ctx context.Context, opts ...config.Option) (Settings, error) {
	var settings Settings
	allOpts := append([]config.Option{config.WithBinding(&settings)}, opts...)
	allOpts = append(allOpts, config.WithEnv("PROTEAN_"))
	cfg, err := config.New(allOpts...)
	if err != nil {
		return Settings{}, fmt.Errorf("protean: build config: %w", err)
	}
	if err := cfg.Load(ctx); err != nil {
		return Settings{}, fmt.Errorf("protean: load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
