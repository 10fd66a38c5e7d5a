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

package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/reelrank/reelrank/common/util"
	"github.com/spf13/viper"
)

// Config is the configuration for the recommender.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

// DataConfig describes where raw movie and rating tables come from and how
// they are interpreted.
type DataConfig struct {
	// MoviesPath is the path of the movie CSV file.
	MoviesPath string `mapstructure:"movies_path"`
	// RatingsPath is the path of the rating CSV file.
	RatingsPath string `mapstructure:"ratings_path"`
	// Database is a database URL (sqlite:// or mysql://). When set, tables
	// are read from the database instead of CSV files.
	Database string `mapstructure:"database"`
	// GenreSeparator is the delimiter of the genres column.
	GenreSeparator string `mapstructure:"genre_separator" validate:"required"`
	// Replacements maps known duplicate movie ids to their canonical ids.
	// Keys are decimal movie ids. The map is configuration, not discovered
	// at runtime.
	Replacements map[string]int32 `mapstructure:"replacements"`
}

// RecommendConfig holds the tunables of the recommendation pipeline.
type RecommendConfig struct {
	MinUserRatings  int     `mapstructure:"min_user_ratings" validate:"gte=0"`
	MinMovieRatings int     `mapstructure:"min_movie_ratings" validate:"gte=0"`
	TestFraction    float64 `mapstructure:"test_fraction" validate:"gte=0,lte=1"`
	Seed            int64   `mapstructure:"seed"`
	TopK            int     `mapstructure:"top_k" validate:"gt=0"`
	NJobs           int     `mapstructure:"n_jobs" validate:"gte=0"`
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			GenreSeparator: "|",
		},
		Recommend: RecommendConfig{
			MinUserRatings:  20,
			MinMovieRatings: 10,
			TestFraction:    0.2,
			TopK:            10,
		},
	}
}

func setDefault(v *viper.Viper) {
	defaults := GetDefaultConfig()
	v.SetDefault("data.genre_separator", defaults.Data.GenreSeparator)
	v.SetDefault("recommend.min_user_ratings", defaults.Recommend.MinUserRatings)
	v.SetDefault("recommend.min_movie_ratings", defaults.Recommend.MinMovieRatings)
	v.SetDefault("recommend.test_fraction", defaults.Recommend.TestFraction)
	v.SetDefault("recommend.top_k", defaults.Recommend.TopK)
}

// LoadConfig loads and validates the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, errors.Trace(err)
	}
	if _, err := config.Data.ReplacementMap(); err != nil {
		return nil, errors.Trace(err)
	}
	return &config, nil
}

// ReplacementMap parses the configured replacement table into movie id
// pairs. A malformed key is a configuration error and stops the pipeline.
func (config *DataConfig) ReplacementMap() (map[int32]int32, error) {
	replacements := make(map[int32]int32, len(config.Replacements))
	for key, canonical := range config.Replacements {
		movieId, err := util.ParseInt[int32](key)
		if err != nil {
			return nil, errors.Annotatef(err, "invalid movie id %q in replacement map", key)
		}
		replacements[movieId] = canonical
	}
	return replacements, nil
}
