// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner applies a config to files
type Runner struct {
	opts Options
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	return &Runner{opts: opts}, nil
}

// 🏃 Run processes every path and returns one result per path, in input order.
// A file that fails is reported in its result; Run itself only fails when the
// context is cancelled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(paths)).Int("jobs", r.opts.Jobs).Msg("running")

	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.Process(gctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, errors.Errorf("operation cancelled: %w", err)
	}

	return results, nil
}
