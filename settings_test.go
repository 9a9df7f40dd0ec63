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

package protean

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	return Settings{
		MaxExamples:    100,
		StepCount:      20,
		MaxSequences:   10,
		RecursionLimit: 5,
		Concurrency:    "sequential",
	}
}

func TestSettings_Validate_AcceptsWellFormedSettings(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validSettings().Validate())
}

func TestSettings_Validate_RejectsNonPositiveMaxExamples(t *testing.T) {
	t.Parallel()
	s := validSettings()
	s.MaxExamples = 0
	assert.Error(t, s.Validate())
}

func TestSettings_Validate_RejectsNonPositiveStepCount(t *testing.T) {
	t.Parallel()
	s := validSettings()
	s.StepCount = -1
	assert.Error(t, s.Validate())
}

func TestSettings_Validate_RejectsNonPositiveMaxSequences(t *testing.T) {
	t.Parallel()
	s := validSettings()
	s.MaxSequences = 0
	assert.Error(t, s.Validate())
}

func TestSettings_Validate_RejectsUnknownConcurrencyMode(t *testing.T) {
	t.Parallel()
	s := validSettings()
	s.Concurrency = "concurrent"
	assert.Error(t, s.Validate())
}

func TestTrialSettings_ProjectsSharedFields(t *testing.T) {
	t.Parallel()

	s := Settings{MaxExamples: 42, PerTrialTimeout: 5 * time.Second, Seed: 7, Size: 30}
	ts := s.TrialSettings()

	assert.Equal(t, 42, ts.MaxExamples)
	assert.Equal(t, 5*time.Second, ts.PerTrialTimeout)
	assert.Equal(t, uint64(7), ts.Seed)
	assert.Equal(t, 30, ts.Size)
}

func TestStateMachineSettings_ProjectsSharedFields(t *testing.T) {
	t.Parallel()

	s := Settings{
		StepCount:      15,
		MaxSequences:   3,
		RecursionLimit: 4,
		PerStepTimeout: 2 * time.Second,
		TotalTimeout:   time.Minute,
		Seed:           9,
		Size:           20,
	}
	sm := s.StateMachineSettings()

	assert.Equal(t, 15, sm.StepCount)
	assert.Equal(t, 3, sm.MaxSequences)
	assert.Equal(t, 4, sm.RecursionLimit)
	assert.Equal(t, 2*time.Second, sm.PerStepTimeout)
	assert.Equal(t, time.Minute, sm.TotalTimeout)
	assert.Equal(t, uint64(9), sm.Seed)
	assert.Equal(t, 20, sm.Size)
}

func TestLoadSettings_BindsDefaultsWhenNoSourceSetsAValue(t *testing.T) {
	t.Parallel()

	settings, err := LoadSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, settings.MaxExamples)
	assert.Equal(t, 10*time.Second, settings.PerTrialTimeout)
	assert.Equal(t, 50, settings.Size)
	assert.Equal(t, 20, settings.StepCount)
	assert.Equal(t, 10, settings.MaxSequences)
	assert.Equal(t, 5, settings.RecursionLimit)
	assert.Equal(t, 2*time.Minute, settings.TotalTimeout)
	assert.Equal(t, "sequential", settings.Concurrency)
}

func TestLoadSettings_EnvOverridesDefault(t *testing.T) {
	// Only single-word config keys round-trip through the env source's
	// underscore-nesting (PROTEAN_CONCURRENCY -> {concurrency: ...}); a
	// multi-word key like max_examples would land under a nested
	// {max: {examples: ...}} map instead of the flat tag the binder expects.
	t.Setenv("PROTEAN_CONCURRENCY", "parallel")

	settings, err := LoadSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "parallel", settings.Concurrency)
}

func TestLoadSettings_RejectsInvalidConcurrencyFromEnv(t *testing.T) {
	t.Setenv("PROTEAN_CONCURRENCY", "bogus")

	_, err := LoadSettings(context.Background())
	assert.Error(t, err)
}
