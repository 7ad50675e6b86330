// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commitlint checks commit messages against the Conventional Commits
// convention with a fixed rule set.
package commitlint

// Problem is a single rule violation.
type Problem struct {
	Rule     string `json:"rule"`
	Severity Level  `json:"severity"`
	Message  string `json:"message"`
}

// Outcome is the result of validating one message.
type Outcome struct {
	Input    string    `json:"input"`
	Ignored  bool      `json:"ignored,omitempty"`
	Errors   []Problem `json:"errors"`
	Warnings []Problem `json:"warnings"`
}

// Valid reports whether the message has no error-level problems.
func (o Outcome) Valid() bool { return len(o.Errors) == 0 }

// Validator checks a single message against a rule configuration.
type Validator interface {
	Validate(message string, rules RuleConfig) Outcome
}

// Linter is the Validator backed by Registry.
type Linter struct {
	rules []Rule
}

// NewLinter returns a Linter over the registered rules.
func NewLinter() *Linter {
	return &Linter{rules: Registry}
}

// Validate runs every enabled rule over message. Messages matching an ignore
// pattern yield an ignored outcome with no problems.
func (l *Linter) Validate(message string, cfg RuleConfig) Outcome {
	out := Outcome{Input: message, Errors: []Problem{}, Warnings: []Problem{}}
	if cfg.Ignored(message) {
		out.Ignored = true
		return out
	}

	c := Parse(message)
	for _, r := range l.rules {
		s, ok := cfg.Settings[r.Name()]
		if !ok || s.Level == LevelDisabled {
			continue
		}
		if pass, msg := r.Check(c, s); !pass {
			p := Problem{Rule: r.Name(), Severity: s.Level, Message: msg}
			if s.Level == LevelError {
				out.Errors = append(out.Errors, p)
			} else {
				out.Warnings = append(out.Warnings, p)
			}
		}
	}
	return out
}
