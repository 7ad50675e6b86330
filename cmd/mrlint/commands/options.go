package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bartekus/mrlint/cmd/mrlint/internal/clierr"
	"github.com/bartekus/mrlint/internal/config"
	"github.com/bartekus/mrlint/internal/projectroot"
)

// globalOptions holds the persistent flags of the root command.
type globalOptions struct {
	verbose    bool
	configPath string
	color      string
}

func (g *globalOptions) logger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: "mrlint"})
	if g.verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// loadConfig reads the config file. An explicit --config must exist; the
// default file at the repository root is optional.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	path, required := projectroot.Resolve(".", config.DefaultPath), false
	if g.configPath != "" {
		path, required = g.configPath, true
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, clierr.Wrap(clierr.CollaboratorFailure, "loading config", err)
	}
	return cfg, nil
}

// useColor resolves --color against the output writer.
func (g *globalOptions) useColor(w io.Writer) (bool, error) {
	switch g.color {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, clierr.New(clierr.InvalidContext,
			fmt.Sprintf("invalid color mode: %s (must be 'auto', 'always' or 'never')", g.color))
	}
}

// lintFlags are shared by the commands that lint messages.
type lintFlags struct {
	headerMaxLength int
	format          string
	reportFile      string
	strict          bool
}

func (f *lintFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.headerMaxLength, "header-max-length", 0, "header length limit: 100 (default) or 72")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: text (default) or json")
	cmd.Flags().StringVar(&f.reportFile, "report-file", "", "also write a JSON report to this path")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "count warnings as violations")
}

// apply overrides cfg with the flags the user set.
func (f *lintFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("header-max-length") {
		cfg.HeaderMaxLength = f.headerMaxLength
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = f.format
	}
	if cmd.Flags().Changed("report-file") {
		cfg.ReportFile = f.reportFile
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = f.strict
	}
	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidContext, "invalid flags", err)
	}
	return nil
}
