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

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/reelrank/reelrank/base/log"
	"github.com/reelrank/reelrank/config"
	"github.com/reelrank/reelrank/dataset"
	"github.com/reelrank/reelrank/logics"
	"github.com/reelrank/reelrank/model"
	"github.com/reelrank/reelrank/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

var rootCommand = &cobra.Command{
	Use:   "reelrank",
	Short: "Content-based movie recommender.",
	Run: func(cmd *cobra.Command, _ []string) {
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println("reelrank version", version)
			return
		}
		_ = cmd.Help()
	},
}

var evalCommand = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate recommendation quality with average Recall@K.",
	Run: func(cmd *cobra.Command, _ []string) {
		conf, movies, ratings := prepare(cmd)
		train, test := dataset.Split(ratings, conf.Recommend.TestFraction, conf.Recommend.Seed)
		log.Logger().Info("split ratings",
			zap.Int("train", len(train)), zap.Int("test", len(test)),
			zap.Int64("seed", conf.Recommend.Seed))
		m := fit(conf, movies, train)
		recall, err := logics.Evaluate(context.Background(), m, train, test,
			conf.Recommend.TopK, jobs(conf))
		if err != nil {
			log.Logger().Fatal("failed to evaluate", zap.Error(err))
		}
		log.Logger().Info("evaluated model",
			zap.Int("top_k", conf.Recommend.TopK),
			zap.Float32("recall", recall))
		fmt.Printf("Recall@%d: %.4f\n", conf.Recommend.TopK, recall)
	},
}

var recommendCommand = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend top movies for a user.",
	Run: func(cmd *cobra.Command, _ []string) {
		conf, movies, ratings := prepare(cmd)
		userId, _ := cmd.Flags().GetInt32("user")
		// keep table output clean unless debugging
		if debug, _ := cmd.Flags().GetBool("debug"); !debug {
			log.CloseLogger()
		}
		m := fit(conf, movies, ratings)
		recommendations := logics.Recommend(userId, m, ratings, movies, conf.Recommend.TopK)
		if len(recommendations) == 0 {
			fmt.Printf("no recommendations for user %d\n", userId)
			return
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Movie ID", "Title", "Score"})
		for _, recommendation := range recommendations {
			table.Append([]string{
				strconv.Itoa(int(recommendation.MovieId)),
				recommendation.Title,
				fmt.Sprintf("%.4f", recommendation.Score),
			})
		}
		table.Render()
	},
}

// prepare loads the configuration and raw tables and runs cleaning and
// activity filtering.
func prepare(cmd *cobra.Command) (*config.Config, []dataset.Movie, []dataset.Rating) {
	debug, _ := cmd.Flags().GetBool("debug")
	log.SetLogger(cmd.Flags(), debug)
	configPath, _ := cmd.Flags().GetString("config")
	log.Logger().Info("load config", zap.String("config", configPath))
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		log.Logger().Fatal("failed to load config", zap.Error(err))
	}
	source, err := storage.NewSource(&conf.Data)
	if err != nil {
		log.Logger().Fatal("failed to create data source", zap.Error(err))
	}
	ctx := context.Background()
	movies, err := source.LoadMovies(ctx)
	if err != nil {
		log.Logger().Fatal("failed to load movies", zap.Error(err))
	}
	ratings, err := source.LoadRatings(ctx)
	if err != nil {
		log.Logger().Fatal("failed to load ratings", zap.Error(err))
	}
	replacements, err := conf.Data.ReplacementMap()
	if err != nil {
		log.Logger().Fatal("failed to parse replacement map", zap.Error(err))
	}
	movies, ratings = dataset.Clean(movies, ratings, replacements)
	ratings, movies = dataset.FilterActivity(ratings, movies,
		conf.Recommend.MinUserRatings, conf.Recommend.MinMovieRatings)
	return conf, movies, ratings
}

func fit(conf *config.Config, movies []dataset.Movie, train []dataset.Rating) *model.Model {
	users := mapset.NewThreadUnsafeSet[int32]()
	for _, rating := range train {
		users.Add(rating.UserId)
	}
	bar := progressbar.Default(int64(users.Cardinality()), "compute similarity")
	m, err := model.Fit(context.Background(), movies, train,
		model.WithNJobs(jobs(conf)),
		model.WithProgress(func(_, _ int) {
			_ = bar.Add(1)
		}))
	if err != nil {
		log.Logger().Fatal("failed to fit model", zap.Error(err))
	}
	_ = bar.Finish()
	return m
}

func jobs(conf *config.Config) int {
	if conf.Recommend.NJobs > 0 {
		return conf.Recommend.NJobs
	}
	return runtime.NumCPU()
}

func init() {
	rootCommand.PersistentFlags().BoolP("version", "v", false, "reelrank version")
	for _, command := range []*cobra.Command{evalCommand, recommendCommand} {
		log.AddFlags(command.Flags())
		command.Flags().Bool("debug", false, "use debug log mode")
		command.Flags().StringP("config", "c", "config.toml", "configuration file path")
	}
	recommendCommand.Flags().Int32("user", 0, "user id to recommend for")
	rootCommand.AddCommand(evalCommand)
	rootCommand.AddCommand(recommendCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
