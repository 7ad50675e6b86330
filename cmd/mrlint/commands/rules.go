package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/mrlint/cmd/mrlint/internal/clierr"
	"github.com/bartekus/mrlint/internal/commitlint"
	"github.com/bartekus/mrlint/internal/report"
)

// NewRulesCommand returns the `mrlint rules` command.
func NewRulesCommand(g *globalOptions) *cobra.Command {
	var (
		format          string
		headerMaxLength int
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("header-max-length") {
				cfg.HeaderMaxLength = headerMaxLength
			}
			rules, err := commitlint.Conventional(cfg.HeaderMaxLength)
			if err != nil {
				return clierr.Wrap(clierr.InvalidContext, "building rules", err)
			}

			switch format {
			case "text":
				_, err = fmt.Fprint(cmd.OutOrStdout(), renderRules(rules))
			case "json":
				err = writeRulesJSON(cmd, rules)
			default:
				return clierr.New(clierr.InvalidContext, fmt.Sprintf("invalid format: %s (must be 'text' or 'json')", format))
			}
			if err != nil {
				return clierr.Wrap(clierr.CollaboratorFailure, "writing rules", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text (default) or json")
	cmd.Flags().IntVar(&headerMaxLength, "header-max-length", commitlint.HeaderMaxLength, "header length limit: 100 or 72")

	return cmd
}

func renderRules(rules commitlint.RuleConfig) string {
	var rows [][]string
	for _, name := range rules.Names() {
		s := rules.Settings[name]
		rows = append(rows, []string{name, s.Level.String(), string(s.When), settingValue(s)})
	}

	var b strings.Builder
	b.WriteString(report.RenderTable([]string{"Rule", "Severity", "When", "Value"}, rows))
	b.WriteString("\nIgnored messages:\n")
	for _, re := range rules.Ignores {
		b.WriteString("- " + re.String() + "\n")
	}
	return b.String()
}

func settingValue(s commitlint.Setting) string {
	switch {
	case s.Length > 0:
		return strconv.Itoa(s.Length)
	case len(s.Values) > 0:
		return strings.Join(s.Values, ", ")
	default:
		return "-"
	}
}

func writeRulesJSON(cmd *cobra.Command, rules commitlint.RuleConfig) error {
	ignores := make([]string, 0, len(rules.Ignores))
	for _, re := range rules.Ignores {
		ignores = append(ignores, re.String())
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"rules":   rules.Settings,
		"ignores": ignores,
	})
}
