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
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/reelrank/reelrank/common/floats"
	"github.com/reelrank/reelrank/common/parallel"
)

// SimilarityMatrix is the dense user-movie affinity matrix. Rows are keyed by
// user id, columns by movie id, through explicit ordered key lists and an
// index map.
type SimilarityMatrix struct {
	UserIds     []int32
	MovieIds    []int32
	Values      [][]float32
	rowIndex    map[int32]int
	columnIndex map[int32]int
}

// Similarity computes the cosine similarity between every user profile and
// every movie genre vector:
//
//	dot(u, m) / (|u| * |m|)
//
// with the convention that the similarity is 0 when either norm is 0. No
// filtering happens here; exclusion of rated movies belongs to the
// recommender. User rows are independent and computed in parallel.
func Similarity(ctx context.Context, profiles *UserProfiles, genres *GenreMatrix, opts ...FitOption) (*SimilarityMatrix, error) {
	options := NewFitOptions(opts)
	matrix := &SimilarityMatrix{
		UserIds:     profiles.UserIds,
		MovieIds:    genres.MovieIds,
		Values:      make([][]float32, len(profiles.UserIds)),
		rowIndex:    make(map[int32]int, len(profiles.UserIds)),
		columnIndex: make(map[int32]int, len(genres.MovieIds)),
	}
	for i, userId := range profiles.UserIds {
		matrix.rowIndex[userId] = i
	}
	for i, movieId := range genres.MovieIds {
		matrix.columnIndex[movieId] = i
	}
	// movie norms are shared across users
	movieNorms := make([]float32, len(genres.MovieIds))
	for i, row := range genres.Values {
		movieNorms[i] = floats.Norm(row)
	}
	var done atomic.Int64
	if err := parallel.Parallel(ctx, len(profiles.UserIds), options.NJobs, func(_, userIndex int) error {
		profile := profiles.Values[userIndex]
		userNorm := floats.Norm(profile)
		row := make([]float32, len(genres.MovieIds))
		if userNorm > 0 {
			for movieIndex, genreRow := range genres.Values {
				if movieNorms[movieIndex] > 0 {
					row[movieIndex] = floats.Dot(profile, genreRow) / (userNorm * movieNorms[movieIndex])
				}
			}
		}
		matrix.Values[userIndex] = row
		if options.OnProgress != nil {
			options.OnProgress(int(done.Add(1)), len(profiles.UserIds))
		}
		return nil
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return matrix, nil
}

// Row returns the similarity row of a user. The second return value is false
// if the user has no profile.
func (m *SimilarityMatrix) Row(userId int32) ([]float32, bool) {
	if i, ok := m.rowIndex[userId]; ok {
		return m.Values[i], true
	}
	return nil, false
}

// Score returns the similarity between a user and a movie. The second return
// value is false if either key is unknown.
func (m *SimilarityMatrix) Score(userId, movieId int32) (float32, bool) {
	row, ok := m.Row(userId)
	if !ok {
		return 0, false
	}
	if i, ok := m.columnIndex[movieId]; ok {
		return row[i], true
	}
	return 0, false
}
