// Package runner validates the messages chosen by the selection policy and
// aggregates the results.
package runner

import (
	"context"
	"errors"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/bartekus/mrlint/internal/commitlint"
	"github.com/bartekus/mrlint/internal/policy"
	"github.com/bartekus/mrlint/internal/report"
)

// ErrViolations is returned by Run when the counted violation total is not zero.
var ErrViolations = errors.New("commit message violations found")

// Runner maps each message through a validator and reports the results.
type Runner struct {
	validator commitlint.Validator
	reporter  report.Reporter
	rules     commitlint.RuleConfig
	strict    bool
	limit     int
	logger    *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithStrict counts warnings as violations.
func WithStrict(strict bool) Option {
	return func(r *Runner) { r.strict = strict }
}

// WithConcurrency bounds the number of messages validated at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner with the given collaborators.
func NewRunner(v commitlint.Validator, rep report.Reporter, rules commitlint.RuleConfig, opts ...Option) *Runner {
	r := &Runner{
		validator: v,
		reporter:  rep,
		rules:     rules,
		limit:     runtime.GOMAXPROCS(0),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates every message of target. Validation of separate messages is
// independent, so they run concurrently; outcomes keep the target order.
// The returned error is ErrViolations when the summary did not pass, or the
// context error if ctx is cancelled first.
func (r *Runner) Run(ctx context.Context, target policy.Target) (*Summary, error) {
	messages := target.Messages()
	outcomes := make([]commitlint.Outcome, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, msg := range messages {
		i, msg := i, msg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.validator.Validate(msg, r.rules)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	errs, warns := report.Count(outcomes)
	sum := &Summary{
		Target:     target.Kind(),
		Status:     StatusPass,
		Outcomes:   outcomes,
		Errors:     errs,
		Warnings:   warns,
		Violations: errs,
	}
	if r.strict {
		sum.Violations += warns
	}
	if sum.Violations > 0 {
		sum.Status = StatusFail
	}
	sum.Report = r.reporter.Report(outcomes)

	r.logger.Debug("validated messages", "target", sum.Target, "messages", len(messages),
		"errors", errs, "warnings", warns, "strict", r.strict)

	if !sum.Passed() {
		return sum, ErrViolations
	}
	return sum, nil
}
