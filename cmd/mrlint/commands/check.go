// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mrlint - mrlint checks merge request commit messages against the Conventional Commits convention in CI.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bartekus/mrlint/cmd/mrlint/internal/clierr"
	"github.com/bartekus/mrlint/internal/config"
	"github.com/bartekus/mrlint/internal/history"
	"github.com/bartekus/mrlint/internal/mergectx"
	"github.com/bartekus/mrlint/internal/policy"
)

type checkOptions struct {
	lintFlags
	envFile  string
	source   string
	repoPath string
}

// NewCheckCommand returns the `mrlint check` command.
func NewCheckCommand(g *globalOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the current merge request pipeline",
		Long: heredoc.Doc(`
			Reads the merge request from the GitLab CI environment and lints the messages
			that will land on the target branch.

			With squash on merge enabled outside a merge train only the merge request title
			is linted, because the squash commit takes its message from the title. Otherwise
			every commit of the merge request is linted.
		`),
		Example: heredoc.Doc(`
			# In a merge request pipeline
			$ mrlint check

			# Locally, with the pipeline variables in a dotenv file
			$ mrlint check --env-file ci.env --source api

			# Enforce 72 column headers and keep a JSON artifact
			$ mrlint check --header-max-length 72 --report-file reports/mrlint.json
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, g)
		},
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "read CI variables from a dotenv file before the process environment")
	cmd.Flags().StringVar(&opts.repoPath, "repo", ".", "path of the git repository (git source)")
	cmd.Flags().StringVar(&opts.source, "source", "", "where commits are read from: git (default) or api")
	opts.register(cmd)

	return cmd
}

func (o *checkOptions) run(cmd *cobra.Command, g *globalOptions) error {
	logger := g.logger(cmd.ErrOrStderr())

	cfg, err := g.loadConfig()
	if err != nil {
		return clierr.WithHint(err, hintFor(config.DefaultDocsURL))
	}
	if cmd.Flags().Changed("source") {
		cfg.Source = o.source
	}
	if err := o.apply(cmd, cfg); err != nil {
		return clierr.WithHint(err, hintFor(cfg.DocsURL))
	}

	if err := o.check(cmd, g, cfg, logger); err != nil {
		if clierr.IsSilent(err) {
			return err
		}
		logger.Error("check failed", "kind", clierr.KindOf(err))
		return clierr.WithHint(err, hintFor(cfg.DocsURL))
	}
	return nil
}

func (o *checkOptions) check(cmd *cobra.Command, g *globalOptions, cfg *config.Config, logger *log.Logger) error {
	ctx := cmd.Context()

	lookup, err := mergectx.Environ(o.envFile)
	if err != nil {
		return clierr.Wrap(clierr.CollaboratorFailure, "loading environment", err)
	}
	mc, err := mergectx.Load(lookup)
	if err != nil {
		return clierr.Wrap(clierr.InvalidContext, "loading merge request context", err)
	}

	mc, err = o.collect(ctx, cfg, mc, logger)
	if err != nil {
		return err
	}

	target, err := policy.Select(mc)
	if err != nil {
		return clierr.Wrap(clierr.InvalidContext, "selecting messages", err)
	}
	logger.Info("linting merge request", "iid", mc.MergeRequestIID, "target", target.Kind(),
		"messages", len(target.Messages()), "squash", mc.SquashEnabled, "merge_train", mc.MergeTrainEvent)

	return lintTarget(cmd, g, cfg, target, logger)
}

// collect fills in what the environment does not carry: merge request data
// from the API, and the commits when the policy needs them.
func (o *checkOptions) collect(ctx context.Context, cfg *config.Config, mc mergectx.MergeContext, logger *log.Logger) (mergectx.MergeContext, error) {
	kind, err := history.ParseKind(cfg.Source)
	if err != nil {
		return mc, clierr.Wrap(clierr.InvalidContext, "choosing commit source", err)
	}

	var src history.Source
	switch kind {
	case history.KindAPI:
		gl, err := history.NewGitLab(mc.APIURL, mc.Token, mc.ProjectID, mc.MergeRequestIID)
		if err != nil {
			return mc, clierr.Wrap(clierr.InvalidContext, "configuring GitLab API", err)
		}
		if mc.Title == "" || !mc.SquashKnown() {
			title, squash, err := gl.MergeRequest(ctx)
			if err != nil {
				return mc, clierr.Wrap(clierr.CollaboratorFailure, "fetching merge request", err)
			}
			mc = mc.WithMergeRequest(title, squash)
			logger.Debug("fetched merge request", "iid", mc.MergeRequestIID, "squash", mc.SquashEnabled)
		}
		src = gl
	default:
		if policy.NeedsCommits(mc) && (mc.BaseSHA == "" || mc.HeadSHA == "") {
			return mc, clierr.New(clierr.InvalidContext, fmt.Sprintf(
				"commit range unknown: %s and %s must be set", mergectx.EnvDiffBaseSHA, mergectx.EnvCommitSHA))
		}
		src = &history.GitRange{RepoPath: o.repoPath, Base: mc.BaseSHA, Head: mc.HeadSHA}
	}

	if !policy.NeedsCommits(mc) {
		logger.Debug("squash on merge outside a merge train, skipping commit lookup")
		return mc, nil
	}

	commits, err := src.Commits(ctx)
	if err != nil {
		return mc, clierr.Wrap(clierr.CollaboratorFailure, "reading commits", err)
	}
	logger.Debug("read commits", "source", kind, "count", len(commits))
	return mc.WithCommits(history.Messages(commits)), nil
}

func hintFor(docsURL string) string {
	if docsURL == "" {
		return ""
	}
	return "See " + docsURL + " for the commit message guidelines."
}
