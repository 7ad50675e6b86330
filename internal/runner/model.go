package runner

import (
	"github.com/bartekus/mrlint/internal/commitlint"
	"github.com/bartekus/mrlint/internal/policy"
)

// Status is the outcome of a run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Summary aggregates the outcomes of one run.
type Summary struct {
	Target   policy.Kind          `json:"target"`
	Status   Status               `json:"status"`
	Outcomes []commitlint.Outcome `json:"outcomes"` // Same order as the target messages
	Errors   int                  `json:"errors"`
	Warnings int                  `json:"warnings"`
	// Violations is the total compared against zero: errors, plus warnings in strict mode.
	Violations int    `json:"violations"`
	Report     string `json:"-"`
}

// Passed reports whether the run found no violations.
func (s *Summary) Passed() bool { return s.Status == StatusPass }
