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

package dataset

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reelrank/reelrank/base/log"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// FilterActivity prunes users with fewer than minUserRatings ratings, then
// movies with fewer than minMovieRatings ratings on the already user-filtered
// set, and projects movies down to the surviving movie ids.
//
// The filter is a single pass: pruning unpopular movies may drop some users
// back below the threshold afterwards. Iterating to a fixed point would
// change recall numbers, so the single pass is kept.
func FilterActivity(ratings []Rating, movies []Movie, minUserRatings, minMovieRatings int) ([]Rating, []Movie) {
	userCounts := make(map[int32]int)
	for _, rating := range ratings {
		userCounts[rating.UserId]++
	}
	kept := lo.Filter(ratings, func(rating Rating, _ int) bool {
		return userCounts[rating.UserId] >= minUserRatings
	})
	// movie counts are recomputed on the user-filtered ratings
	movieCounts := make(map[int32]int)
	for _, rating := range kept {
		movieCounts[rating.MovieId]++
	}
	kept = lo.Filter(kept, func(rating Rating, _ int) bool {
		return movieCounts[rating.MovieId] >= minMovieRatings
	})
	surviving := mapset.NewThreadUnsafeSet[int32]()
	for _, rating := range kept {
		surviving.Add(rating.MovieId)
	}
	keptMovies := lo.Filter(movies, func(movie Movie, _ int) bool {
		return surviving.Contains(movie.MovieId)
	})
	log.Logger().Info("filtered inactive users and movies",
		zap.Int("ratings", len(kept)),
		zap.Int("movies", len(keptMovies)),
		zap.Int("min_user_ratings", minUserRatings),
		zap.Int("min_movie_ratings", minMovieRatings))
	return kept, keptMovies
}
