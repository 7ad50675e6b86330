// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report formats lint outcomes for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bartekus/mrlint/internal/commitlint"
)

// Reporter renders the outcomes of one run.
type Reporter interface {
	Report(outcomes []commitlint.Outcome) string
}

// Count sums error and warning problems across outcomes.
func Count(outcomes []commitlint.Outcome) (errs, warns int) {
	for _, o := range outcomes {
		errs += len(o.Errors)
		warns += len(o.Warnings)
	}
	return errs, warns
}

// Text renders outcomes in the commitlint console layout.
type Text struct {
	// Color enables ANSI styling regardless of the output device.
	Color bool
	// Verbose also lists inputs without problems.
	Verbose bool
	// HelpURL is printed after a failing report.
	HelpURL string
}

type textStyles struct {
	err, warn, ok, dim func(...string) string
}

func plain(strs ...string) string { return strings.Join(strs, " ") }

func (t Text) styles() textStyles {
	if !t.Color {
		return textStyles{err: plain, warn: plain, ok: plain, dim: plain}
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return textStyles{
		err:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render,
		warn: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Render,
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render,
		dim:  r.NewStyle().Faint(true).Render,
	}
}

// Report implements Reporter.
func (t Text) Report(outcomes []commitlint.Outcome) string {
	st := t.styles()
	var b strings.Builder

	for _, o := range outcomes {
		hasProblems := len(o.Errors)+len(o.Warnings) > 0
		if !hasProblems && !t.Verbose {
			continue
		}

		fmt.Fprintf(&b, "%s   input: %s\n", st.dim("⧗"), firstLine(o.Input))
		switch {
		case o.Ignored:
			fmt.Fprintf(&b, "%s   ignored\n", st.dim("-"))
		case !hasProblems:
			fmt.Fprintf(&b, "%s   no problems\n", st.ok("✔"))
		}
		for _, p := range o.Errors {
			fmt.Fprintf(&b, "%s   %s %s\n", st.err("✖"), p.Message, st.dim("["+p.Rule+"]"))
		}
		for _, p := range o.Warnings {
			fmt.Fprintf(&b, "%s   %s %s\n", st.warn("⚠"), p.Message, st.dim("["+p.Rule+"]"))
		}
		b.WriteString("\n")
	}

	errs, warns := Count(outcomes)
	mark := st.ok("✔")
	switch {
	case errs > 0:
		mark = st.err("✖")
	case warns > 0:
		mark = st.warn("⚠")
	}
	fmt.Fprintf(&b, "%s   found %d problems, %d warnings\n", mark, errs, warns)

	if (errs > 0 || warns > 0) && t.HelpURL != "" {
		fmt.Fprintf(&b, "ⓘ   Get help: %s\n", t.HelpURL)
	}
	return b.String()
}

// JSON renders outcomes as a single JSON document.
type JSON struct{}

type jsonReport struct {
	Valid        bool                 `json:"valid"`
	ErrorCount   int                  `json:"errorCount"`
	WarningCount int                  `json:"warningCount"`
	Results      []commitlint.Outcome `json:"results"`
}

// Report implements Reporter.
func (JSON) Report(outcomes []commitlint.Outcome) string {
	errs, warns := Count(outcomes)
	if outcomes == nil {
		outcomes = []commitlint.Outcome{}
	}
	data, err := json.MarshalIndent(jsonReport{
		Valid:        errs == 0,
		ErrorCount:   errs,
		WarningCount: warns,
		Results:      outcomes,
	}, "", "  ")
	if err != nil {
		// Outcomes only hold strings and numbers.
		panic(fmt.Sprintf("marshaling report: %v", err))
	}
	return string(data) + "\n"
}

// New returns the Reporter for a format name.
func New(format string, text Text) (Reporter, error) {
	switch format {
	case "text", "":
		return text, nil
	case "json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	return line
}
