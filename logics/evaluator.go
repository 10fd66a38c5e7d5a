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

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/reelrank/reelrank/dataset"
	"github.com/reelrank/reelrank/model"
)

// RecallAt computes the fraction of relevant movies that appear among the
// recommended movies:
//
//	|recommended ∩ relevant| / |relevant|
//
// The second return value is false when the relevant set is empty: a user
// with no held-out movies contributes no signal and must be excluded from
// the aggregate, not penalized as zero.
func RecallAt(recommended []int32, relevant mapset.Set[int32]) (float32, bool) {
	if relevant == nil || relevant.Cardinality() == 0 {
		return 0, false
	}
	hits := 0
	for _, movieId := range recommended {
		if relevant.Contains(movieId) {
			hits++
		}
	}
	return float32(hits) / float32(relevant.Cardinality()), true
}

// AverageRecallAt returns the arithmetic mean of the defined recall values
// over all users with recommendations, or 0 when no user produced a defined
// value.
func AverageRecallAt(recommendations map[int32][]int32, groundTruth map[int32]mapset.Set[int32]) float32 {
	var sum float32
	var count int
	for userId, recommended := range recommendations {
		if recall, ok := RecallAt(recommended, groundTruth[userId]); ok {
			sum += recall
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float32(count)
}

// GroundTruth collects the held-out movie ids per user.
func GroundTruth(test []dataset.Rating) map[int32]mapset.Set[int32] {
	truth := make(map[int32]mapset.Set[int32])
	for _, rating := range test {
		if _, ok := truth[rating.UserId]; !ok {
			truth[rating.UserId] = mapset.NewThreadUnsafeSet[int32]()
		}
		truth[rating.UserId].Add(rating.MovieId)
	}
	return truth
}

// Evaluate scores the model with the average Recall@k over the users of the
// training set, judged against held-out test ratings. Training ratings are
// excluded from every user's ranking.
func Evaluate(ctx context.Context, m *model.Model, train, test []dataset.Rating, k, nJobs int) (float32, error) {
	recommendations, err := RecommendAll(ctx, m, train, k, nJobs)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return AverageRecallAt(recommendations, GroundTruth(test)), nil
}
