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
	"path/filepath"
	"strings"

	"github.com/walteh/mdreplace/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📂 Kind is how a file's content is read
type Kind string

const (
	KindTree Kind = "tree" // serialized tree (.json, .yaml, .yml)
	KindText Kind = "text" // anything else, treated as one text node
)

// KindOf picks the kind for path from its extension
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return KindTree
	default:
		return KindText
	}
}

// 🔧 Options contains configuration for the runner
type Options struct {
	// Config holds the rules to apply
	Config *config.Config
	// Write writes modified files back in place
	Write bool
	// Diff computes a unified diff for every modified file
	Diff bool
	// Jobs limits how many files are processed at once, 0 or less means one per CPU
	Jobs int
}

// 📄 FileResult is what happened to a single file
type FileResult struct {
	Path         string
	Kind         Kind
	Rules        int    // Rules that applied to the file
	Replacements int    // Matches replaced or removed
	Modified     bool   // Content changed
	Written      bool   // Change written back
	Skipped      bool   // File was not processed
	Reason       string // Why the file was skipped
	Diff         string // Unified diff, when requested
	Err          error
}

// Status is a short status word for display
func (r FileResult) Status() string {
	switch {
	case r.Err != nil:
		return "FAILED"
	case r.Skipped:
		return strings.ToUpper(r.Reason)
	case r.Modified && r.Written:
		return "UPDATED"
	case r.Modified:
		return "WOULD UPDATE"
	default:
		return "no change"
	}
}

// Failed collects the errors of failed results
func Failed(results []FileResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, errors.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return errors.Join(errs...)
}
