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

// Package logics ranks movies for users against a fitted model and evaluates
// ranking quality on held-out ratings.
package logics

import (
	"context"
	"slices"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/reelrank/reelrank/base/log"
	"github.com/reelrank/reelrank/common/parallel"
	"github.com/reelrank/reelrank/dataset"
	"github.com/reelrank/reelrank/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Recommendation is a single ranked movie for a user.
type Recommendation struct {
	MovieId int32
	Title   string
	Score   float32
}

// Recommend returns the top k unrated movies for a user, descending by
// similarity score. Ties break by ascending movie id so that the ranking is
// deterministic. A user without a profile gets an empty list, not an error,
// and excluded movie ids unknown to the matrix are ignored.
func Recommend(userId int32, m *model.Model, exclude []dataset.Rating, movies []dataset.Movie, k int) []Recommendation {
	row, ok := m.Similarity.Row(userId)
	if !ok {
		log.Logger().Debug("no profile for user", zap.Int32("user_id", userId))
		return nil
	}
	rated := mapset.NewThreadUnsafeSet[int32]()
	for _, rating := range exclude {
		if rating.UserId == userId {
			rated.Add(rating.MovieId)
		}
	}
	ranked, scores := rankRow(row, m.Similarity.MovieIds, rated, k)
	titles := lo.SliceToMap(movies, func(movie dataset.Movie) (int32, string) {
		return movie.MovieId, movie.Title
	})
	recommendations := make([]Recommendation, len(ranked))
	for i, movieId := range ranked {
		recommendations[i] = Recommendation{
			MovieId: movieId,
			Title:   titles[movieId],
			Score:   scores[i],
		}
	}
	return recommendations
}

// RecommendAll ranks the top k unrated movies for every user present in
// exclude, returning only movie ids. User rows are independent and ranked in
// parallel.
func RecommendAll(ctx context.Context, m *model.Model, exclude []dataset.Rating, k, nJobs int) (map[int32][]int32, error) {
	byUser := lo.GroupBy(exclude, func(rating dataset.Rating) int32 {
		return rating.UserId
	})
	userIds := lo.Keys(byUser)
	slices.Sort(userIds)
	results := make([][]int32, len(userIds))
	if err := parallel.Parallel(ctx, len(userIds), nJobs, func(_, userIndex int) error {
		userId := userIds[userIndex]
		row, ok := m.Similarity.Row(userId)
		if !ok {
			return nil
		}
		rated := mapset.NewThreadUnsafeSet[int32]()
		for _, rating := range byUser[userId] {
			rated.Add(rating.MovieId)
		}
		results[userIndex], _ = rankRow(row, m.Similarity.MovieIds, rated, k)
		return nil
	}); err != nil {
		return nil, errors.Trace(err)
	}
	recommendations := make(map[int32][]int32, len(userIds))
	for i, userId := range userIds {
		recommendations[userId] = results[i]
	}
	return recommendations, nil
}

// rankRow sorts the unrated entries of a similarity row descending by score,
// ties ascending by movie id, and truncates to k.
func rankRow(row []float32, movieIds []int32, rated mapset.Set[int32], k int) ([]int32, []float32) {
	type entry struct {
		movieId int32
		score   float32
	}
	candidates := make([]entry, 0, len(movieIds))
	for i, movieId := range movieIds {
		if rated.Contains(movieId) {
			continue
		}
		candidates = append(candidates, entry{movieId: movieId, score: row[i]})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].movieId < candidates[j].movieId
	})
	if k >= 0 && len(candidates) > k {
		candidates = candidates[:k]
	}
	ids := make([]int32, len(candidates))
	scores := make([]float32, len(candidates))
	for i, candidate := range candidates {
		ids[i] = candidate.movieId
		scores[i] = candidate.score
	}
	return ids, scores
}
