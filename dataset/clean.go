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
	"regexp"
	"slices"

	"github.com/reelrank/reelrank/base/log"
	"github.com/reelrank/reelrank/common/util"
	"go.uber.org/zap"
)

var yearPattern = regexp.MustCompile(`\((\d{4})\)\s*$`)

// Clean removes movies whose id appears as a key of replacements (known
// duplicate identifiers), rewrites ratings pointing at a duplicate onto its
// canonical id, drops movies without genre information, extracts the release
// year from titles and min-max normalizes it over the surviving movies.
// Ratings are rewritten rather than dropped so that the rating signal
// survives under the canonical id. An empty replacement map skips remapping.
func Clean(movies []Movie, ratings []Rating, replacements map[int32]int32) ([]Movie, []Rating) {
	kept := make([]Movie, 0, len(movies))
	for _, movie := range movies {
		if _, duplicate := replacements[movie.MovieId]; duplicate {
			continue
		}
		if len(movie.Genres) == 0 || slices.Contains(movie.Genres, NoGenres) {
			continue
		}
		movie.Year = extractYear(movie.Title)
		kept = append(kept, movie)
	}
	if len(replacements) > 0 {
		remapped := make([]Rating, len(ratings))
		for i, rating := range ratings {
			if canonical, ok := replacements[rating.MovieId]; ok {
				rating.MovieId = canonical
			}
			remapped[i] = rating
		}
		ratings = remapped
	}
	normalizeYears(kept)
	log.Logger().Info("cleaned movies",
		zap.Int("before", len(movies)), zap.Int("after", len(kept)),
		zap.Int("replacements", len(replacements)))
	return kept, ratings
}

// extractYear returns the 4-digit year parenthesized at the end of a title,
// or -1 when no year can be parsed. The missing value is propagated instead
// of defaulting to zero, which would bias normalization.
func extractYear(title string) int32 {
	matches := yearPattern.FindStringSubmatch(title)
	if matches == nil {
		return -1
	}
	year, err := util.ParseInt[int32](matches[1])
	if err != nil {
		return -1
	}
	return year
}

// normalizeYears min-max scales known years into [0,1]. Movies without a
// year keep a zero normalized value but stay marked by Year == -1.
func normalizeYears(movies []Movie) {
	minYear, maxYear := int32(-1), int32(-1)
	for _, movie := range movies {
		if movie.Year < 0 {
			continue
		}
		if minYear < 0 || movie.Year < minYear {
			minYear = movie.Year
		}
		if maxYear < 0 || movie.Year > maxYear {
			maxYear = movie.Year
		}
	}
	if minYear < 0 || minYear == maxYear {
		return
	}
	span := float32(maxYear - minYear)
	for i := range movies {
		if movies[i].Year >= 0 {
			movies[i].NormalizedYear = float32(movies[i].Year-minYear) / span
		}
	}
}
