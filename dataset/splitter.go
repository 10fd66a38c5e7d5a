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
	"slices"

	"github.com/reelrank/reelrank/base"
	"github.com/samber/lo"
)

// minRatingsToSplit is the minimum history a user needs before any of it can
// be safely held out.
const minRatingsToSplit = 5

// Split partitions each user's ratings into train and test subsets. Users
// with fewer than minRatingsToSplit ratings go entirely to train. For the
// rest a uniform random fraction of testFraction is held out. Users are
// visited in ascending id order so the same seed yields the same partition
// regardless of input order.
func Split(ratings []Rating, testFraction float64, seed int64) (train, test []Rating) {
	byUser := lo.GroupBy(ratings, func(rating Rating) int32 {
		return rating.UserId
	})
	userIds := lo.Keys(byUser)
	slices.Sort(userIds)
	rng := base.NewRandomGenerator(seed)
	train = make([]Rating, 0, len(ratings))
	for _, userId := range userIds {
		userRatings := byUser[userId]
		if len(userRatings) < minRatingsToSplit {
			train = append(train, userRatings...)
			continue
		}
		perm := rng.Perm(len(userRatings))
		testSize := int(float64(len(userRatings)) * testFraction)
		for i, index := range perm {
			if i < testSize {
				test = append(test, userRatings[index])
			} else {
				train = append(train, userRatings[index])
			}
		}
	}
	return train, test
}
