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

// Package dataset holds raw movie and rating records and the transformations
// that prepare them for profile building: cleaning, activity filtering and
// train/test splitting.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/reelrank/reelrank/base/log"
	"github.com/reelrank/reelrank/common/util"
	"go.uber.org/zap"
)

// NoGenres is the sentinel placed in the genres column of movies without
// genre information. Such movies carry no usable feature signal.
const NoGenres = "(no genres listed)"

// Movie is a single movie record.
type Movie struct {
	MovieId        int32
	Title          string
	Genres         []string
	Year           int32 // -1 when the title carries no parseable year
	NormalizedYear float32
}

// Rating is a single user rating record.
type Rating struct {
	UserId    int32
	MovieId   int32
	Score     float32
	Timestamp int64
}

// SplitGenres splits a raw genres field into trimmed genre tokens.
func SplitGenres(field, sep string) []string {
	if field == "" {
		return nil
	}
	tokens := strings.Split(field, sep)
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens
}

// LoadMoviesFromCSV loads movie records from a CSV file with a header. The
// required columns are movieId, title and genres; extra columns are ignored.
// The genres column is split on sep.
func LoadMoviesFromCSV(path, sep string) ([]Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read header of %s", path)
	}
	columns, err := findColumns(header, "movieId", "title", "genres")
	if err != nil {
		return nil, errors.Annotatef(err, "malformed movie table %s", path)
	}
	var movies []Movie
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		movieId, err := util.ParseInt[int32](row[columns[0]])
		if err != nil {
			return nil, errors.Annotatef(err, "invalid movie id %q", row[columns[0]])
		}
		movies = append(movies, Movie{
			MovieId: movieId,
			Title:   row[columns[1]],
			Genres:  SplitGenres(row[columns[2]], sep),
			Year:    -1,
		})
	}
	log.Logger().Info("loaded movies", zap.String("path", path), zap.Int("count", len(movies)))
	return movies, nil
}

// LoadRatingsFromCSV loads rating records from a CSV file with a header. The
// required columns are userId, movieId, rating and timestamp.
func LoadRatingsFromCSV(path string) ([]Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read header of %s", path)
	}
	columns, err := findColumns(header, "userId", "movieId", "rating", "timestamp")
	if err != nil {
		return nil, errors.Annotatef(err, "malformed rating table %s", path)
	}
	var ratings []Rating
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		userId, err := util.ParseInt[int32](row[columns[0]])
		if err != nil {
			return nil, errors.Annotatef(err, "invalid user id %q", row[columns[0]])
		}
		movieId, err := util.ParseInt[int32](row[columns[1]])
		if err != nil {
			return nil, errors.Annotatef(err, "invalid movie id %q", row[columns[1]])
		}
		score, err := util.ParseFloat[float32](row[columns[2]])
		if err != nil {
			return nil, errors.Annotatef(err, "invalid rating %q", row[columns[2]])
		}
		timestamp, err := util.ParseInt[int64](row[columns[3]])
		if err != nil {
			return nil, errors.Annotatef(err, "invalid timestamp %q", row[columns[3]])
		}
		ratings = append(ratings, Rating{
			UserId:    userId,
			MovieId:   movieId,
			Score:     score,
			Timestamp: timestamp,
		})
	}
	log.Logger().Info("loaded ratings", zap.String("path", path), zap.Int("count", len(ratings)))
	return ratings, nil
}

func findColumns(header []string, names ...string) ([]int, error) {
	indices := make([]int, len(names))
	for i, name := range names {
		indices[i] = -1
		for j, column := range header {
			if strings.TrimSpace(column) == name {
				indices[i] = j
				break
			}
		}
		if indices[i] < 0 {
			return nil, errors.NotFoundf("column %q", name)
		}
	}
	return indices, nil
}
