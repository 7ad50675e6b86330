// SPDX-License-Identifier: AGPL-3.0-or-later

/*
mrlint - mrlint checks merge request commit messages against the Conventional Commits convention in CI.
It knows about squash-on-merge and merge trains, so only the messages that actually land on the target branch are linted.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd constructs the mrlint root Cobra command.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "mrlint",
		Short:         "mrlint - Conventional Commits checks for merge requests",
		Long:          "mrlint validates merge request titles and commit messages against the Conventional Commits convention, honoring squash-on-merge and merge trains.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to the config file (default .mrlint.yaml if present)")
	cmd.PersistentFlags().StringVar(&g.color, "color", "auto", "colorize output: auto, always or never")

	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewCheckCommand(g))
	cmd.AddCommand(NewMessageCommand(g))
	cmd.AddCommand(NewRulesCommand(g))

	return cmd
}
