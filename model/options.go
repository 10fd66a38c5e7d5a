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

package model

import (
	"runtime"
)

// FitOptions defines options used when fitting the model.
type FitOptions struct {
	NJobs      int                   // number of concurrent jobs
	OnProgress func(done, total int) // invoked after each finished similarity row
}

// NewFitOptions creates a (FitOptions) object from (FitOption)s.
func NewFitOptions(setters []FitOption) *FitOptions {
	options := new(FitOptions)
	options.NJobs = runtime.NumCPU()
	for _, setter := range setters {
		setter(options)
	}
	return options
}

// FitOption is used to change (FitOptions).
type FitOption func(options *FitOptions)

// WithNJobs sets the number of jobs.
func WithNJobs(nJobs int) FitOption {
	return func(options *FitOptions) {
		options.NJobs = nJobs
	}
}

// WithProgress sets the progress callback.
func WithProgress(onProgress func(done, total int)) FitOption {
	return func(options *FitOptions) {
		options.OnProgress = onProgress
	}
}
