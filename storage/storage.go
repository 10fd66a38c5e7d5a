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

// Package storage feeds raw movie and rating tables into the pipeline, from
// CSV files or from a SQL database.
package storage

import (
	"context"

	"github.com/juju/errors"
	"github.com/reelrank/reelrank/config"
	"github.com/reelrank/reelrank/dataset"
)

// Source loads the two raw input tables.
type Source interface {
	LoadMovies(ctx context.Context) ([]dataset.Movie, error)
	LoadRatings(ctx context.Context) ([]dataset.Rating, error)
}

// NewSource creates a source from the data configuration. A configured
// database URL takes precedence over CSV paths.
func NewSource(cfg *config.DataConfig) (Source, error) {
	if cfg.Database != "" {
		return NewSQLSource(cfg.Database, cfg.GenreSeparator)
	}
	if cfg.MoviesPath == "" || cfg.RatingsPath == "" {
		return nil, errors.New("either a database URL or both CSV paths must be configured")
	}
	return &CSVSource{
		MoviesPath:     cfg.MoviesPath,
		RatingsPath:    cfg.RatingsPath,
		GenreSeparator: cfg.GenreSeparator,
	}, nil
}

// CSVSource reads the movie and rating tables from CSV files.
type CSVSource struct {
	MoviesPath     string
	RatingsPath    string
	GenreSeparator string
}

func (s *CSVSource) LoadMovies(_ context.Context) ([]dataset.Movie, error) {
	movies, err := dataset.LoadMoviesFromCSV(s.MoviesPath, s.GenreSeparator)
	return movies, errors.Trace(err)
}

func (s *CSVSource) LoadRatings(_ context.Context) ([]dataset.Rating, error) {
	ratings, err := dataset.LoadRatingsFromCSV(s.RatingsPath)
	return ratings, errors.Trace(err)
}
