// SPDX-License-Identifier: AGPL-3.0-or-later

package commitlint

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a single check over a parsed commit.
type Rule interface {
	Name() string
	// Check returns false and a problem description when c violates s.
	Check(c Commit, s Setting) (bool, string)
}

type ruleFunc struct {
	name  string
	check func(c Commit, s Setting) (bool, string)
}

func (r ruleFunc) Name() string { return r.name }

func (r ruleFunc) Check(c Commit, s Setting) (bool, string) { return r.check(c, s) }

// Registry lists every rule the linter knows, in evaluation order.
var Registry = []Rule{
	ruleFunc{"header-trim", headerTrim},
	ruleFunc{"header-max-length", headerMaxLength},
	ruleFunc{"type-empty", typeEmpty},
	ruleFunc{"type-case", typeCase},
	ruleFunc{"type-enum", typeEnum},
	ruleFunc{"scope-case", scopeCase},
	ruleFunc{"subject-empty", subjectEmpty},
	ruleFunc{"subject-case", subjectCase},
	ruleFunc{"subject-full-stop", subjectFullStop},
	ruleFunc{"body-leading-blank", bodyLeadingBlank},
	ruleFunc{"body-max-line-length", bodyMaxLineLength},
	ruleFunc{"footer-leading-blank", footerLeadingBlank},
	ruleFunc{"footer-max-line-length", footerMaxLineLength},
}

// expect applies When to a condition: Always needs it to hold, Never needs it not to.
func expect(s Setting, cond bool) bool {
	if s.When == Never {
		return !cond
	}
	return cond
}

func must(s Setting) string {
	if s.When == Never {
		return "must not"
	}
	return "must"
}

func mayNot(s Setting) string {
	if s.When == Never {
		return "may not"
	}
	return "must"
}

func headerTrim(c Commit, s Setting) (bool, string) {
	trimmed := strings.TrimSpace(c.Header) == c.Header
	return expect(s, trimmed), "header must not be surrounded by whitespace"
}

func headerMaxLength(c Commit, s Setting) (bool, string) {
	n := utf8.RuneCountInString(c.Header)
	return n <= s.Length, fmt.Sprintf("header must not be longer than %d characters, current length is %d", s.Length, n)
}

func typeEmpty(c Commit, s Setting) (bool, string) {
	return expect(s, c.Type == ""), "type " + mayNot(s) + " be empty"
}

func typeCase(c Commit, s Setting) (bool, string) {
	if c.Type == "" {
		return true, ""
	}
	return expect(s, matchesAnyCase(c.Type, s.Values)),
		fmt.Sprintf("type %s be %s", must(s), strings.Join(s.Values, ", "))
}

func typeEnum(c Commit, s Setting) (bool, string) {
	if c.Type == "" {
		return true, ""
	}
	found := false
	for _, v := range s.Values {
		if v == c.Type {
			found = true
			break
		}
	}
	return expect(s, found), fmt.Sprintf("type %s be one of [%s]", must(s), strings.Join(s.Values, ", "))
}

func scopeCase(c Commit, s Setting) (bool, string) {
	if c.Scope == "" {
		return true, ""
	}
	// Scopes may list several entries separated by "/", "\" or ",".
	parts := strings.FieldsFunc(c.Scope, func(r rune) bool { return r == '/' || r == '\\' || r == ',' })
	ok := true
	for _, p := range parts {
		if !matchesAnyCase(strings.TrimSpace(p), s.Values) {
			ok = false
			break
		}
	}
	return expect(s, ok), fmt.Sprintf("scope %s be %s", must(s), strings.Join(s.Values, ", "))
}

func subjectEmpty(c Commit, s Setting) (bool, string) {
	return expect(s, c.Subject == ""), "subject " + mayNot(s) + " be empty"
}

func subjectCase(c Commit, s Setting) (bool, string) {
	if c.Subject == "" {
		return true, ""
	}
	return expect(s, matchesAnyCase(c.Subject, s.Values)),
		fmt.Sprintf("subject %s be %s", must(s), strings.Join(s.Values, ", "))
}

func subjectFullStop(c Commit, s Setting) (bool, string) {
	if c.Subject == "" || len(s.Values) == 0 {
		return true, ""
	}
	ends := strings.HasSuffix(c.Subject, s.Values[0])
	return expect(s, ends), "subject " + mayNot(s) + " end with full stop"
}

func bodyLeadingBlank(c Commit, s Setting) (bool, string) {
	if !c.HasBody() {
		return true, ""
	}
	blank := strings.TrimSpace(c.Lines[0]) == ""
	return expect(s, blank), "body " + must(s) + " have leading blank line"
}

func bodyMaxLineLength(c Commit, s Setting) (bool, string) {
	return linesWithin(c.Body, s.Length), fmt.Sprintf("body's lines must not be longer than %d characters", s.Length)
}

func footerLeadingBlank(c Commit, s Setting) (bool, string) {
	if c.FooterStart < 0 {
		return true, ""
	}
	blank := c.FooterStart > 0 && strings.TrimSpace(c.Lines[c.FooterStart-1]) == ""
	return expect(s, blank), "footer " + must(s) + " have leading blank line"
}

func footerMaxLineLength(c Commit, s Setting) (bool, string) {
	return linesWithin(c.Footer, s.Length), fmt.Sprintf("footer's lines must not be longer than %d characters", s.Length)
}

func linesWithin(lines []string, limit int) bool {
	for _, line := range lines {
		if utf8.RuneCountInString(line) > limit {
			return false
		}
	}
	return true
}

func matchesAnyCase(s string, cases []string) bool {
	for _, name := range cases {
		if isCase(s, name) {
			return true
		}
	}
	return false
}

// isCase reports whether s is written in the named case.
func isCase(s, name string) bool {
	switch name {
	case "lower-case", "lowercase":
		return s == strings.ToLower(s)
	case "upper-case", "uppercase":
		return s == strings.ToUpper(s)
	case "sentence-case", "sentencecase":
		r, _ := utf8.DecodeRuneInString(s)
		return unicode.IsUpper(r)
	case "start-case", "startcase":
		words := strings.Fields(s)
		if len(words) == 0 {
			return false
		}
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			if !unicode.IsUpper(r) {
				return false
			}
		}
		return true
	case "pascal-case", "pascalcase":
		r, _ := utf8.DecodeRuneInString(s)
		return unicode.IsUpper(r) && !strings.ContainsAny(s, " _-")
	case "camel-case", "camelcase":
		r, _ := utf8.DecodeRuneInString(s)
		return unicode.IsLower(r) && !strings.ContainsAny(s, " _-")
	case "kebab-case":
		return s == strings.ToLower(s) && !strings.ContainsAny(s, " _")
	case "snake-case":
		return s == strings.ToLower(s) && !strings.ContainsAny(s, " -")
	default:
		return false
	}
}
