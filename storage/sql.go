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
	"strings"

	"github.com/juju/errors"
	"github.com/reelrank/reelrank/dataset"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	sqlitePrefix = "sqlite://"
	mysqlPrefix  = "mysql://"
)

var gormConfig = &gorm.Config{
	Logger: logger.Default.LogMode(logger.Silent),
	NamingStrategy: schema.NamingStrategy{
		SingularTable: true,
	},
}

// SQLSource reads the movie and rating tables from a SQL database. The
// tables follow the column names of the raw CSV feed.
type SQLSource struct {
	gormDB         *gorm.DB
	genreSeparator string
}

// NewSQLSource connects to a database URL (sqlite:// or mysql://).
func NewSQLSource(url, genreSeparator string) (*SQLSource, error) {
	var (
		gormDB *gorm.DB
		err    error
	)
	switch {
	case strings.HasPrefix(url, sqlitePrefix):
		gormDB, err = gorm.Open(sqlite.Open(url[len(sqlitePrefix):]), gormConfig)
	case strings.HasPrefix(url, mysqlPrefix):
		gormDB, err = gorm.Open(mysql.Open(url[len(mysqlPrefix):]), gormConfig)
	default:
		return nil, errors.NotSupportedf("database url %q", url)
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &SQLSource{
		gormDB:         gormDB,
		genreSeparator: genreSeparator,
	}, nil
}

func (s *SQLSource) LoadMovies(ctx context.Context) ([]dataset.Movie, error) {
	var rows []struct {
		MovieId int32  `gorm:"column:movieId"`
		Title   string `gorm:"column:title"`
		Genres  string `gorm:"column:genres"`
	}
	if err := s.gormDB.WithContext(ctx).Table("movies").
		Select("movieId, title, genres").Find(&rows).Error; err != nil {
		return nil, errors.Trace(err)
	}
	movies := make([]dataset.Movie, len(rows))
	for i, row := range rows {
		movies[i] = dataset.Movie{
			MovieId: row.MovieId,
			Title:   row.Title,
			Genres:  dataset.SplitGenres(row.Genres, s.genreSeparator),
			Year:    -1,
		}
	}
	return movies, nil
}

func (s *SQLSource) LoadRatings(ctx context.Context) ([]dataset.Rating, error) {
	var rows []struct {
		UserId    int32   `gorm:"column:userId"`
		MovieId   int32   `gorm:"column:movieId"`
		Rating    float32 `gorm:"column:rating"`
		Timestamp int64   `gorm:"column:timestamp"`
	}
	if err := s.gormDB.WithContext(ctx).Table("ratings").
		Select("userId, movieId, rating, timestamp").Find(&rows).Error; err != nil {
		return nil, errors.Trace(err)
	}
	ratings := make([]dataset.Rating, len(rows))
	for i, row := range rows {
		ratings[i] = dataset.Rating{
			UserId:    row.UserId,
			MovieId:   row.MovieId,
			Score:     row.Rating,
			Timestamp: row.Timestamp,
		}
	}
	return ratings, nil
}
