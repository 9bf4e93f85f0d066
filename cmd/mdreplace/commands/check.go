package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/mdreplace/cmd/mdreplace/opts"
	"github.com/walteh/mdreplace/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config and list its rules",
		Long: `Check loads the config without touching any file. It will:
1. Parse and validate every rule, mapping entry and glob
2. Compile every pattern
3. Print the rules in the order they run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := rootOpts.Logger

			cfg, err := rootOpts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			// compiling catches anything Validate cannot see
			if _, err := cfg.Ruleset(""); err != nil {
				return errors.Errorf("compiling rules: %w", err)
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(ruleTable(cfg)).Srender()
			if err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}

			logger.Header(rootOpts.ConfigFile)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			logger.LogNewline()

			if len(cfg.Ignore) > 0 {
				logger.Infof("ignoring text inside: %v", cfg.Ignore)
			}
			if len(cfg.Exclude) > 0 {
				logger.Infof("excluding files: %v", cfg.Exclude)
			}

			logger.Successf("config is valid: %d rules, %d mapping entries", len(cfg.Rules), len(cfg.Mapping))
			return nil
		},
	}

	return cmd
}

// ruleTable lists rules then mapping entries, in run order
func ruleTable(cfg *config.Config) pterm.TableData {
	data := pterm.TableData{{"#", "find", "action", "files"}}
	for i, r := range cfg.Rules {
		data = append(data, []string{strconv.Itoa(i), r.Pattern(), r.Action(), r.Files})
	}
	for _, e := range cfg.Mapping {
		data = append(data, []string{"map", strconv.Quote(e.Find), strconv.Quote(e.Replace), ""})
	}
	return data
}
