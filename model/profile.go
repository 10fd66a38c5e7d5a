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
	"slices"

	"github.com/reelrank/reelrank/common/floats"
	"github.com/reelrank/reelrank/dataset"
	"github.com/samber/lo"
)

// UserProfiles holds one taste vector per user over the same column space as
// the genre matrix. Each value is the rating-weighted average of the genre's
// presence across the user's training ratings.
type UserProfiles struct {
	Columns  []string
	UserIds  []int32
	Values   [][]float32
	rowIndex map[int32]int
}

// BuildProfiles aggregates user profiles from training ratings as a
// accumulate-then-normalize fold keyed by user id:
//
//	profile[genre] = sum(score_i * genre_i) / sum(score_i)
//
// A genre appearing only in highly rated movies therefore scores higher than
// one appearing only in low rated movies. Users with zero total weight get a
// zero vector, never NaN. Genres a user never encountered stay zero.
func BuildProfiles(train []dataset.Rating, genres *GenreMatrix) *UserProfiles {
	byUser := lo.GroupBy(train, func(rating dataset.Rating) int32 {
		return rating.UserId
	})
	userIds := lo.Keys(byUser)
	slices.Sort(userIds)
	profiles := &UserProfiles{
		Columns:  genres.Columns,
		UserIds:  userIds,
		Values:   make([][]float32, len(userIds)),
		rowIndex: make(map[int32]int, len(userIds)),
	}
	for i, userId := range userIds {
		accumulator := make([]float32, len(genres.Columns))
		var weight float32
		for _, rating := range byUser[userId] {
			row := genres.Row(rating.MovieId)
			if row == nil {
				continue
			}
			floats.MulConstAdd(row, rating.Score, accumulator)
			weight += rating.Score
		}
		if weight > 0 {
			floats.MulConst(accumulator, 1/weight)
		} else {
			// degenerate zero-weight user keeps the zero vector
			floats.Zero(accumulator)
		}
		profiles.rowIndex[userId] = i
		profiles.Values[i] = accumulator
	}
	return profiles
}

// Row returns the profile of a user, or nil if the user is unknown.
func (p *UserProfiles) Row(userId int32) []float32 {
	if i, ok := p.rowIndex[userId]; ok {
		return p.Values[i]
	}
	return nil
}
