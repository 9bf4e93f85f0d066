package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mdreplace/cmd/mdreplace/opts"
	"github.com/walteh/mdreplace/pkg/log"
	"github.com/walteh/mdreplace/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		write    bool
		diff     bool
		check    bool
		jobs     int
		excludes []string
	)

	cmd := &cobra.Command{
		Use:   "apply [globs...]",
		Short: "Apply the rules to matching files",
		Long: `Apply runs every rule of the config over the files matching the given
globs (default "**/*.md"). It will:
1. Load and validate the config
2. Expand the globs, dropping excluded files and the config itself
3. Rewrite each file, trees node by node and anything else as plain text
4. Print what changed, and write it back when --write is set

A .json, .yaml or .yml tree with at least one replacement is written back
re-encoded: comments and the original layout are not kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())
			logger := rootOpts.Logger

			cfg, err := rootOpts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			patterns := args
			if len(patterns) == 0 {
				patterns = DefaultPatterns
			}

			files, err := ExpandGlobs(patterns, excludes, rootOpts.ConfigFile)
			if err != nil {
				return errors.Errorf("finding files: %w", err)
			}
			if len(files) == 0 {
				logger.Warning("no files matched")
				return nil
			}

			runner, err := operation.NewRunner(operation.Options{
				Config: cfg,
				Write:  write,
				Diff:   diff,
				Jobs:   jobs,
			})
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			logger.StartRun(ctx, log.RunOperation{Config: rootOpts.ConfigFile, Files: len(files), Write: write})

			results, err := runner.Run(ctx, files)

			modified := 0
			for _, res := range results {
				logger.LogFileOperation(ctx, toFileOperation(res))
				if res.Err != nil {
					logger.Errorf("%s: %s", res.Path, res.Err)
				}
				if res.Diff != "" {
					logger.Diff(res.Diff)
				}
				if res.Modified {
					modified++
				}
			}

			logger.EndRun(ctx)

			if err != nil {
				return err
			}
			if err := operation.Failed(results); err != nil {
				return errors.Errorf("applying rules: %w", err)
			}
			if check && !write && modified > 0 {
				return errors.Errorf("%d files would change", modified)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write changes back to the files")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff of every change")
	cmd.Flags().BoolVar(&check, "check", false, "fail when a file would change (ignored with --write)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files processed at once (default: number of CPUs)")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "glob of files to skip (repeatable)")

	return cmd
}

// toFileOperation converts a file result into its console line
func toFileOperation(res operation.FileResult) log.FileOperation {
	return log.FileOperation{
		Path:         res.Path,
		Kind:         string(res.Kind),
		Status:       res.Status(),
		Rules:        res.Rules,
		Replacements: res.Replacements,
		IsModified:   res.Modified,
		IsWritten:    res.Written,
		IsSkipped:    res.Skipped,
		IsFailed:     res.Err != nil,
	}
}
