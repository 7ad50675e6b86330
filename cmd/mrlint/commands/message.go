// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/bartekus/mrlint/cmd/mrlint/internal/clierr"
	"github.com/bartekus/mrlint/internal/commitlint"
	"github.com/bartekus/mrlint/internal/policy"
)

type messageOptions struct {
	lintFlags
	message string
}

// NewMessageCommand returns the `mrlint message` command.
func NewMessageCommand(g *globalOptions) *cobra.Command {
	opts := &messageOptions{}

	cmd := &cobra.Command{
		Use:   "message [FILE]",
		Short: "Lint a single commit message",
		Long: heredoc.Doc(`
			Lints one commit message read from FILE, from --message, or from standard input.
			Git comment lines are removed first, so the command works as a commit-msg hook.
		`),
		Example: heredoc.Doc(`
			$ mrlint message -m "feat(mr): add squash flag"
			$ git log -1 --format=%B | mrlint message

			# .git/hooks/commit-msg
			$ mrlint message "$1"
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, g, args)
		},
	}

	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "message to lint instead of reading a file")
	opts.register(cmd)

	return cmd
}

func (o *messageOptions) run(cmd *cobra.Command, g *globalOptions, args []string) error {
	logger := g.logger(cmd.ErrOrStderr())

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := o.apply(cmd, cfg); err != nil {
		return err
	}

	msg, err := o.read(cmd, args)
	if err != nil {
		return clierr.WithHint(err, hintFor(cfg.DocsURL))
	}

	return lintTarget(cmd, g, cfg, policy.CommitSet([]string{msg}), logger)
}

func (o *messageOptions) read(cmd *cobra.Command, args []string) (string, error) {
	if o.message != "" && len(args) > 0 {
		return "", clierr.New(clierr.InvalidContext, "pass either --message or FILE, not both")
	}
	if o.message != "" {
		return o.message, nil
	}

	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0]) //nolint:gosec // G304: path is chosen by the user
		if errors.Is(err, os.ErrNotExist) {
			return "", clierr.Wrapf(clierr.InvalidContext, err, "%s: no such file", args[0])
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", clierr.Wrap(clierr.CollaboratorFailure, "reading message", err)
	}

	return commitlint.StripComments(string(data)), nil
}
