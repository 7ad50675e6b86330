// SPDX-License-Identifier: AGPL-3.0-or-later

package commitlint

import (
	"fmt"
	"regexp"
	"sort"
)

// Level is the severity of a rule, numbered as commitlint numbers them.
type Level int

const (
	LevelDisabled Level = 0
	LevelWarning  Level = 1
	LevelError    Level = 2
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "disabled"
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// When states whether a rule condition must hold or must not hold.
type When string

const (
	Always When = "always"
	Never  When = "never"
)

// Setting configures one rule.
type Setting struct {
	Level  Level    `json:"level"`
	When   When     `json:"when,omitempty"`
	Length int      `json:"length,omitempty"`
	Values []string `json:"values,omitempty"`
}

// RuleConfig is the effective rule set of a lint run.
type RuleConfig struct {
	Settings map[string]Setting
	Ignores  []*regexp.Regexp
}

// Header length variants.
const (
	HeaderMaxLength       = 100
	HeaderMaxLengthStrict = 72
)

// Types accepted by type-enum.
var Types = []string{
	"build", "chore", "ci", "docs", "feat", "fix", "perf", "refactor", "revert", "style", "test",
}

// DefaultIgnores are the patterns of messages that are never linted.
var DefaultIgnores = []*regexp.Regexp{
	regexp.MustCompile(`^(R|r)evert `),
	regexp.MustCompile(`^(fixup|squash)!`),
	regexp.MustCompile(`^Merge branch`),
	regexp.MustCompile(`^\d+.\d+.\d+`),
}

// Conventional returns the conventional rule set with the project overrides.
// headerMaxLength selects between the 100 and 72 column variants.
func Conventional(headerMaxLength int) (RuleConfig, error) {
	if headerMaxLength != HeaderMaxLength && headerMaxLength != HeaderMaxLengthStrict {
		return RuleConfig{}, fmt.Errorf("unsupported header max length %d (must be %d or %d)",
			headerMaxLength, HeaderMaxLength, HeaderMaxLengthStrict)
	}

	return RuleConfig{
		Settings: map[string]Setting{
			// Project overrides.
			"header-max-length":    {Level: LevelError, When: Always, Length: headerMaxLength},
			"body-leading-blank":   {Level: LevelError, When: Always},
			"footer-leading-blank": {Level: LevelError, When: Always},
			"subject-case": {Level: LevelDisabled, When: Never,
				Values: []string{"sentence-case", "start-case", "pascal-case", "upper-case"}},
			"body-max-line-length": {Level: LevelWarning, When: Always, Length: 100},

			"type-enum":              {Level: LevelError, When: Always, Values: Types},
			"type-case":              {Level: LevelError, When: Always, Values: []string{"lower-case"}},
			"type-empty":             {Level: LevelError, When: Never},
			"scope-case":             {Level: LevelError, When: Always, Values: []string{"lower-case"}},
			"subject-empty":          {Level: LevelError, When: Never},
			"subject-full-stop":      {Level: LevelError, When: Never, Values: []string{"."}},
			"header-trim":            {Level: LevelError, When: Always},
			"footer-max-line-length": {Level: LevelError, When: Always, Length: 100},
		},
		Ignores: DefaultIgnores,
	}, nil
}

// Names returns the configured rule names, sorted.
func (c RuleConfig) Names() []string {
	names := make([]string, 0, len(c.Settings))
	for name := range c.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ignored reports whether message matches an ignore pattern.
func (c RuleConfig) Ignored(message string) bool {
	for _, re := range c.Ignores {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}
