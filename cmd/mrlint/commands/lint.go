package commands

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bartekus/mrlint/cmd/mrlint/internal/clierr"
	"github.com/bartekus/mrlint/internal/commitlint"
	"github.com/bartekus/mrlint/internal/config"
	"github.com/bartekus/mrlint/internal/policy"
	"github.com/bartekus/mrlint/internal/report"
	"github.com/bartekus/mrlint/internal/runner"
)

// lintTarget validates target, prints the report and maps the result to an
// exit error.
func lintTarget(cmd *cobra.Command, g *globalOptions, cfg *config.Config, target policy.Target, logger *log.Logger) error {
	rules, err := commitlint.Conventional(cfg.HeaderMaxLength)
	if err != nil {
		return clierr.Wrap(clierr.InvalidContext, "building rules", err)
	}

	color, err := g.useColor(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	rep, err := report.New(cfg.Format, report.Text{Color: color, Verbose: g.verbose, HelpURL: cfg.DocsURL})
	if err != nil {
		return clierr.Wrap(clierr.InvalidContext, "building reporter", err)
	}

	r := runner.NewRunner(commitlint.NewLinter(), rep, rules,
		runner.WithStrict(cfg.Strict),
		runner.WithLogger(logger),
	)

	sum, runErr := r.Run(cmd.Context(), target)
	if sum == nil {
		return clierr.Wrap(clierr.CollaboratorFailure, "linting messages", runErr)
	}

	if _, err := fmt.Fprint(cmd.OutOrStdout(), sum.Report); err != nil {
		return clierr.Wrap(clierr.CollaboratorFailure, "writing report", err)
	}

	if cfg.ReportFile != "" {
		if err := report.WriteArtifact(cfg.ReportFile, []byte(report.JSON{}.Report(sum.Outcomes))); err != nil {
			return clierr.Wrap(clierr.CollaboratorFailure, "writing report file", err)
		}
		logger.Debug("wrote report file", "path", cfg.ReportFile)
	}

	if errors.Is(runErr, runner.ErrViolations) {
		return clierr.Silent(clierr.LintViolation, runErr)
	}
	return runErr
}
