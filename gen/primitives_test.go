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

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRand_SameSeedIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewRand(42)
	b := NewRand(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
}

func TestRand_DeriveIsStableByLabel(t *testing.T) {
	t.Parallel()

	parent := NewRand(7)
	childA := parent.Derive("body")
	childB := NewRand(7).Derive("body")

	assert.Equal(t, childA.IntRange(0, 1000), childB.IntRange(0, 1000))
}

func TestStr_DrawWithinSizeBound(t *testing.T) {
	t.Parallel()

	r := NewRand(1)
	v, tree := Str().Draw(r, 5)

	s, ok := v.(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(s), 5)
	assert.True(t, tree.IsLeaf)
}

func TestStr_ShrinkTowardEmptyFirst(t *testing.T) {
	t.Parallel()

	r := NewRand(1)
	_, tree := Str().Draw(r, 20)

	var first *DrawTree
	for cand := range Str().Shrink(tree) {
		first = cand
		break
	}
	require.NotNil(t, first)
	assert.Empty(t, first.Raw)
}

func TestInt_ShrinkMonotonicallyDecreasesMetric(t *testing.T) {
	t.Parallel()

	r := NewRand(3)
	_, tree := Int().Draw(r, 50)

	for cand := range Int().Shrink(tree) {
		assert.True(t, cand.MetricOf().Less(tree.MetricOf()))
	}
}

func TestMetric_Less_SizeThenMagnitude(t *testing.T) {
	t.Parallel()

	assert.True(t, Metric{Size: 1, Magnitude: 100}.Less(Metric{Size: 2, Magnitude: 0}))
	assert.True(t, Metric{Size: 2, Magnitude: 1}.Less(Metric{Size: 2, Magnitude: 2}))
	assert.False(t, Metric{Size: 2, Magnitude: 2}.Less(Metric{Size: 2, Magnitude: 2}))
}

func TestOptional_DrawCanBeAbsentOrPresent(t *testing.T) {
	t.Parallel()

	r := NewRand(9)
	g := Optional(Int())

	seenAbsent, seenPresent := false, false
	for i := 0; i < 200; i++ {
		_, tree := g.Draw(r, 10)
		if tree.Present {
			seenPresent = true
		} else {
			seenAbsent = true
		}
	}
	assert.True(t, seenAbsent)
	assert.True(t, seenPresent)
}

func TestRecord_DrawProducesAllFields(t *testing.T) {
	t.Parallel()

	r := NewRand(5)
	g := Record([]RecordField{
		{Name: "name", Gen: Str(), Required: true},
		{Name: "age", Gen: Int(), Required: true},
	})

	v, _ := g.Draw(r, 10)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "name")
	assert.Contains(t, m, "age")
}
