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

// Package model builds the content-based recommendation model: multi-hot
// genre vectors, rating-weighted user profiles and the dense user-movie
// cosine similarity matrix.
package model

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reelrank/reelrank/dataset"
)

// GenreMatrix is a multi-hot genre encoding with one row per movie and one
// column per distinct genre observed across all movies. Rows are keyed by
// movie id through an explicit index, not by position.
type GenreMatrix struct {
	Columns  []string
	MovieIds []int32
	Values   [][]float32
	rowIndex map[int32]int
}

// EncodeGenres builds the genre matrix over the full vocabulary of genres
// observed in movies. Columns are sorted so that the encoding does not depend
// on input order.
func EncodeGenres(movies []dataset.Movie) *GenreMatrix {
	vocabulary := mapset.NewThreadUnsafeSet[string]()
	for _, movie := range movies {
		for _, genre := range movie.Genres {
			vocabulary.Add(genre)
		}
	}
	columns := vocabulary.ToSlice()
	slices.Sort(columns)
	columnIndex := make(map[string]int, len(columns))
	for i, column := range columns {
		columnIndex[column] = i
	}
	matrix := &GenreMatrix{
		Columns:  columns,
		MovieIds: make([]int32, 0, len(movies)),
		Values:   make([][]float32, 0, len(movies)),
		rowIndex: make(map[int32]int, len(movies)),
	}
	for _, movie := range movies {
		row := make([]float32, len(columns))
		for _, genre := range movie.Genres {
			row[columnIndex[genre]] = 1
		}
		matrix.rowIndex[movie.MovieId] = len(matrix.MovieIds)
		matrix.MovieIds = append(matrix.MovieIds, movie.MovieId)
		matrix.Values = append(matrix.Values, row)
	}
	return matrix
}

// Row returns the genre vector of a movie, or nil if the movie is unknown.
func (m *GenreMatrix) Row(movieId int32) []float32 {
	if i, ok := m.rowIndex[movieId]; ok {
		return m.Values[i]
	}
	return nil
}

// ColumnIndex returns the position of a genre column, or -1 if the genre is
// not in the vocabulary.
func (m *GenreMatrix) ColumnIndex(genre string) int {
	for i, column := range m.Columns {
		if column == genre {
			return i
		}
	}
	return -1
}
