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

package model

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/reelrank/reelrank/base/log"
	"github.com/reelrank/reelrank/dataset"
	"go.uber.org/zap"
)

// Model is the immutable trained recommendation model: genre vectors, user
// profiles and the similarity matrix. It must be rebuilt with Fit whenever
// the underlying movie or rating data changes; there is no incremental
// update.
type Model struct {
	Genres     *GenreMatrix
	Profiles   *UserProfiles
	Similarity *SimilarityMatrix
}

// Fit builds a model from cleaned movies and training ratings.
func Fit(ctx context.Context, movies []dataset.Movie, train []dataset.Rating, opts ...FitOption) (*Model, error) {
	start := time.Now()
	genres := EncodeGenres(movies)
	profiles := BuildProfiles(train, genres)
	similarity, err := Similarity(ctx, profiles, genres, opts...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("fitted model",
		zap.Int("users", len(profiles.UserIds)),
		zap.Int("movies", len(genres.MovieIds)),
		zap.Int("genres", len(genres.Columns)),
		zap.Duration("fit_time", time.Since(start)))
	return &Model{
		Genres:     genres,
		Profiles:   profiles,
		Similarity: similarity,
	}, nil
}
