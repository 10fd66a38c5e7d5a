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

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reelrank/reelrank/config"
	"github.com/reelrank/reelrank/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	moviesPath := filepath.Join(dir, "movies.csv")
	require.NoError(t, os.WriteFile(moviesPath, []byte(
		"movieId,title,genres\n"+
			"1,Toy Story (1995),Adventure|Comedy\n"), 0644))
	ratingsPath := filepath.Join(dir, "ratings.csv")
	require.NoError(t, os.WriteFile(ratingsPath, []byte(
		"userId,movieId,rating,timestamp\n"+
			"1,1,4.0,964982703\n"), 0644))

	source, err := NewSource(&config.DataConfig{
		MoviesPath:     moviesPath,
		RatingsPath:    ratingsPath,
		GenreSeparator: "|",
	})
	require.NoError(t, err)

	movies, err := source.LoadMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, []string{"Adventure", "Comedy"}, movies[0].Genres)

	ratings, err := source.LoadRatings(context.Background())
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, float32(4), ratings[0].Score)
}

func TestNewSourceUnconfigured(t *testing.T) {
	_, err := NewSource(&config.DataConfig{GenreSeparator: "|"})
	assert.Error(t, err)
	_, err = NewSource(&config.DataConfig{MoviesPath: "movies.csv", GenreSeparator: "|"})
	assert.Error(t, err)
}

func TestNewSQLSourceUnsupportedScheme(t *testing.T) {
	_, err := NewSQLSource("postgres://localhost/reelrank", "|")
	assert.Error(t, err)
}

func TestSQLSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelrank.db")
	source, err := NewSQLSource("sqlite://"+path, "|")
	require.NoError(t, err)

	require.NoError(t, source.gormDB.Exec(
		"CREATE TABLE movies (movieId INTEGER, title TEXT, genres TEXT)").Error)
	require.NoError(t, source.gormDB.Exec(
		"INSERT INTO movies VALUES (1, 'Toy Story (1995)', 'Adventure|Comedy')").Error)
	require.NoError(t, source.gormDB.Exec(
		"CREATE TABLE ratings (userId INTEGER, movieId INTEGER, rating REAL, timestamp INTEGER)").Error)
	require.NoError(t, source.gormDB.Exec(
		"INSERT INTO ratings VALUES (1, 1, 4.0, 964982703)").Error)

	movies, err := source.LoadMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, dataset.Movie{
		MovieId: 1,
		Title:   "Toy Story (1995)",
		Genres:  []string{"Adventure", "Comedy"},
		Year:    -1,
	}, movies[0])

	ratings, err := source.LoadRatings(context.Background())
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, dataset.Rating{
		UserId:    1,
		MovieId:   1,
		Score:     4,
		Timestamp: 964982703,
	}, ratings[0])
}
