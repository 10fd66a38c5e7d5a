// Copyright 2025 reelrank Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logics

import (
	"context"
	"testing"

	"github.com/chewxy/math32"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reelrank/reelrank/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecallAt(t *testing.T) {
	relevant := mapset.NewThreadUnsafeSet[int32](1, 2, 3, 4)
	recall, ok := RecallAt([]int32{1, 2, 9}, relevant)
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), recall)

	// perfect and disjoint recommendations bound the metric
	recall, ok = RecallAt([]int32{1, 2, 3, 4}, relevant)
	assert.True(t, ok)
	assert.Equal(t, float32(1), recall)
	recall, ok = RecallAt([]int32{8, 9}, relevant)
	assert.True(t, ok)
	assert.Equal(t, float32(0), recall)
}

func TestRecallAtUndefined(t *testing.T) {
	_, ok := RecallAt([]int32{1, 2}, mapset.NewThreadUnsafeSet[int32]())
	assert.False(t, ok)
	_, ok = RecallAt([]int32{1, 2}, nil)
	assert.False(t, ok)
}

func TestAverageRecallAt(t *testing.T) {
	recommendations := map[int32][]int32{
		1: {1, 2},
		2: {3},
		3: {4},
	}
	groundTruth := map[int32]mapset.Set[int32]{
		1: mapset.NewThreadUnsafeSet[int32](1, 2),
		2: mapset.NewThreadUnsafeSet[int32](9),
		// user 3 has no held-out movies and is skipped
	}
	average := AverageRecallAt(recommendations, groundTruth)
	assert.Equal(t, float32(0.5), average)
}

func TestAverageRecallAtNoDefinedUsers(t *testing.T) {
	recommendations := map[int32][]int32{1: {1, 2}}
	average := AverageRecallAt(recommendations, map[int32]mapset.Set[int32]{})
	assert.Equal(t, float32(0), average)
	assert.False(t, math32.IsNaN(average))
}

func TestGroundTruth(t *testing.T) {
	test := []dataset.Rating{
		{UserId: 1, MovieId: 10},
		{UserId: 1, MovieId: 11},
		{UserId: 2, MovieId: 10},
	}
	truth := GroundTruth(test)
	require.Len(t, truth, 2)
	assert.True(t, truth[1].Contains(10))
	assert.True(t, truth[1].Contains(11))
	assert.Equal(t, 1, truth[2].Cardinality())
}

func TestEvaluate(t *testing.T) {
	movies := []dataset.Movie{
		{MovieId: 1, Genres: []string{"X"}},
		{MovieId: 2, Genres: []string{"X"}},
		{MovieId: 3, Genres: []string{"Y"}},
	}
	train := []dataset.Rating{{UserId: 10, MovieId: 1, Score: 5}}
	test := []dataset.Rating{{UserId: 10, MovieId: 2, Score: 4}}
	m := fitModel(t, movies, train)
	// movie 2 shares the user's only genre and tops the ranking
	recall, err := Evaluate(context.Background(), m, train, test, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(1), recall)
}
