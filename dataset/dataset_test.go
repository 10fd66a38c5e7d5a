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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMoviesFromCSV(t *testing.T) {
	path := writeFile(t, "movies.csv",
		"movieId,title,genres\n"+
			"1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy\n"+
			"2,\"American President, The (1995)\",Comedy|Drama|Romance\n"+
			"3,Static Noise,(no genres listed)\n")
	movies, err := LoadMoviesFromCSV(path, "|")
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, int32(1), movies[0].MovieId)
	assert.Equal(t, "Toy Story (1995)", movies[0].Title)
	assert.Equal(t, []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}, movies[0].Genres)
	assert.Equal(t, "American President, The (1995)", movies[1].Title)
	assert.Equal(t, []string{NoGenres}, movies[2].Genres)
	assert.Equal(t, int32(-1), movies[0].Year)
}

func TestLoadMoviesFromCSVMissingColumn(t *testing.T) {
	path := writeFile(t, "movies.csv", "movieId,name\n1,Toy Story\n")
	_, err := LoadMoviesFromCSV(path, "|")
	assert.Error(t, err)
}

func TestLoadRatingsFromCSV(t *testing.T) {
	path := writeFile(t, "ratings.csv",
		"userId,movieId,rating,timestamp\n"+
			"1,1,4.0,964982703\n"+
			"1,3,4.5,964981247\n")
	ratings, err := LoadRatingsFromCSV(path)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, Rating{UserId: 1, MovieId: 1, Score: 4, Timestamp: 964982703}, ratings[0])
	assert.Equal(t, Rating{UserId: 1, MovieId: 3, Score: 4.5, Timestamp: 964981247}, ratings[1])
}

func TestLoadRatingsFromCSVMissingFile(t *testing.T) {
	_, err := LoadRatingsFromCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Sci-Fi"}, SplitGenres("Action|Sci-Fi", "|"))
	assert.Equal(t, []string{"Action", "Sci-Fi"}, SplitGenres(" Action | Sci-Fi ", "|"))
	assert.Nil(t, SplitGenres("", "|"))
}
