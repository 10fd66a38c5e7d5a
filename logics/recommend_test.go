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

	"github.com/reelrank/reelrank/dataset"
	"github.com/reelrank/reelrank/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rankEpsilon = 1e-5

func fitModel(t *testing.T, movies []dataset.Movie, train []dataset.Rating) *model.Model {
	t.Helper()
	m, err := model.Fit(context.Background(), movies, train, model.WithNJobs(1))
	require.NoError(t, err)
	return m
}

func TestRecommend(t *testing.T) {
	movies := []dataset.Movie{
		{MovieId: 1, Title: "A (1990)", Genres: []string{"X"}},
		{MovieId: 2, Title: "B (1991)", Genres: []string{"Y"}},
	}
	train := []dataset.Rating{
		{UserId: 10, MovieId: 1, Score: 5},
		{UserId: 10, MovieId: 2, Score: 1},
	}
	m := fitModel(t, movies, train)

	// both rated movies excluded, nothing left to rank
	assert.Empty(t, Recommend(10, m, train, movies, 10))

	// only movie 2 excluded, movie 1 comes back with its score and title
	recommendations := Recommend(10, m, train[1:], movies, 10)
	require.Len(t, recommendations, 1)
	assert.Equal(t, int32(1), recommendations[0].MovieId)
	assert.Equal(t, "A (1990)", recommendations[0].Title)
	assert.InDelta(t, 0.98058, recommendations[0].Score, rankEpsilon)
}

func TestRecommendColdUser(t *testing.T) {
	movies := []dataset.Movie{{MovieId: 1, Title: "A (1990)", Genres: []string{"X"}}}
	train := []dataset.Rating{{UserId: 10, MovieId: 1, Score: 5}}
	m := fitModel(t, movies, train)
	assert.Empty(t, Recommend(99, m, train, movies, 10))
}

func TestRecommendExclusion(t *testing.T) {
	movies := []dataset.Movie{
		{MovieId: 1, Genres: []string{"X"}},
		{MovieId: 2, Genres: []string{"X"}},
		{MovieId: 3, Genres: []string{"X", "Y"}},
		{MovieId: 4, Genres: []string{"Y"}},
	}
	train := []dataset.Rating{
		{UserId: 10, MovieId: 1, Score: 5},
		{UserId: 10, MovieId: 3, Score: 2},
		{UserId: 20, MovieId: 4, Score: 4},
	}
	m := fitModel(t, movies, train)
	recommendations := Recommend(10, m, train, movies, 10)
	for _, recommendation := range recommendations {
		// a rated movie never reappears, only another user's ratings do
		assert.NotEqual(t, int32(1), recommendation.MovieId)
		assert.NotEqual(t, int32(3), recommendation.MovieId)
	}
	ids := make([]int32, len(recommendations))
	for i, recommendation := range recommendations {
		ids[i] = recommendation.MovieId
	}
	assert.Contains(t, ids, int32(4))
}

func TestRecommendTieBreak(t *testing.T) {
	// all movies share one genre, every score ties
	movies := []dataset.Movie{
		{MovieId: 5, Genres: []string{"X"}},
		{MovieId: 2, Genres: []string{"X"}},
		{MovieId: 9, Genres: []string{"X"}},
		{MovieId: 1, Genres: []string{"X"}},
	}
	train := []dataset.Rating{{UserId: 10, MovieId: 1, Score: 4}}
	m := fitModel(t, movies, train)
	recommendations := Recommend(10, m, train, movies, 2)
	require.Len(t, recommendations, 2)
	assert.Equal(t, int32(2), recommendations[0].MovieId)
	assert.Equal(t, int32(5), recommendations[1].MovieId)
}

func TestRecommendAll(t *testing.T) {
	movies := []dataset.Movie{
		{MovieId: 1, Genres: []string{"X"}},
		{MovieId: 2, Genres: []string{"Y"}},
		{MovieId: 3, Genres: []string{"X"}},
	}
	train := []dataset.Rating{
		{UserId: 10, MovieId: 1, Score: 5},
		{UserId: 20, MovieId: 2, Score: 5},
	}
	m := fitModel(t, movies, train)
	recommendations, err := RecommendAll(context.Background(), m, train, 10, 2)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)
	assert.Equal(t, []int32{3, 2}, recommendations[10])
	assert.NotContains(t, recommendations[20], int32(2))
}
