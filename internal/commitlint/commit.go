// SPDX-License-Identifier: AGPL-3.0-or-later

package commitlint

import (
	"regexp"
	"strings"

	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

var (
	// headerPattern is the lenient commitlint header shape. It still yields a
	// type and subject for headers the strict grammar rejects, such as an
	// upper-case type, so the case rules can report on them.
	headerPattern = regexp.MustCompile(`^(\w*)(?:\((.*)\))?!?: (.*)$`)

	notePattern      = regexp.MustCompile(`^[\s*]*(BREAKING CHANGE|BREAKING-CHANGE)[:\s]`)
	referencePattern = regexp.MustCompile(`(?i)^(?:(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?|refs?)\s+)?[\w./-]*#\d+`)
	trailerPattern   = regexp.MustCompile(`^([\w-]+)(?:: | #)`)
)

// Commit is a message split into its conventional parts.
type Commit struct {
	Raw     string
	Header  string
	Type    string
	Scope   string
	Subject string
	// Breaking is set by a "!" before the colon or a BREAKING CHANGE footer.
	Breaking bool

	// Lines holds every line of the message after the header.
	Lines []string
	// Body holds the lines between the header and the footer.
	Body []string
	// Footer holds the trailer lines, starting at the first note, issue
	// reference or trailer token.
	Footer []string
	// FooterStart is the index in Lines of the first footer line, or -1.
	FooterStart int
}

// Parse splits a commit message. Line endings are normalized and trailing
// blank lines dropped; a message that is not conventional yields a Commit
// with an empty type and subject.
func Parse(message string) Commit {
	raw := strings.ReplaceAll(message, "\r\n", "\n")
	raw = strings.TrimRight(raw, "\n")

	lines := strings.Split(raw, "\n")
	c := Commit{
		Raw:         raw,
		Header:      lines[0],
		Lines:       lines[1:],
		FooterStart: -1,
	}

	cc := parseConventional(raw)
	if cc != nil && strings.HasPrefix(c.Header, cc.Type) {
		c.Type, c.Subject = cc.Type, cc.Description
		if cc.Scope != nil {
			c.Scope = *cc.Scope
		}
		c.Breaking = cc.IsBreakingChange()
	} else if m := headerPattern.FindStringSubmatch(c.Header); m != nil {
		c.Type, c.Scope, c.Subject = m[1], m[2], m[3]
		c.Breaking = strings.Contains(c.Header[:len(c.Header)-len(m[3])], "!")
	}

	for i, line := range c.Lines {
		if notePattern.MatchString(line) || referencePattern.MatchString(line) {
			c.FooterStart = i
			c.Breaking = c.Breaking || notePattern.MatchString(line)
			break
		}
	}
	if cc != nil && len(cc.Footers) > 0 {
		if i := trailerStart(c.Lines, cc.Footers); i >= 0 && (c.FooterStart < 0 || i < c.FooterStart) {
			c.FooterStart = i
		}
	}

	if c.FooterStart >= 0 {
		c.Body = c.Lines[:c.FooterStart]
		c.Footer = c.Lines[c.FooterStart:]
	} else {
		c.Body = c.Lines
	}
	return c
}

// parseConventional runs the Conventional Commits grammar over raw. It
// returns nil unless the whole message conforms.
func parseConventional(raw string) *conventionalcommits.ConventionalCommit {
	m := parser.NewMachine(
		parser.WithTypes(conventionalcommits.TypesFreeForm),
		parser.WithBestEffort(),
	)
	res, err := m.Parse([]byte(raw))
	if err != nil || res == nil {
		return nil
	}
	cc, ok := res.(*conventionalcommits.ConventionalCommit)
	if !ok || cc == nil || cc.Type == "" {
		return nil
	}
	return cc
}

// trailerStart returns the index of the first line of the trailer block: the
// last line that follows a blank line and opens with one of the footer tokens
// the grammar found. It returns -1 when there is none.
func trailerStart(lines []string, footers map[string][]string) int {
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i-1]) != "" {
			continue
		}
		m := trailerPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		for token := range footers {
			if strings.EqualFold(token, m[1]) {
				return i
			}
		}
	}
	return -1
}

// HasBody reports whether any non-blank line sits between header and footer.
func (c Commit) HasBody() bool {
	for _, line := range c.Body {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// StripComments removes git comment lines (starting with '#') and everything
// below a scissors line, as git does for COMMIT_EDITMSG.
func StripComments(message string) string {
	var kept []string
	for _, line := range strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "# ------------------------ >8 ------------------------") {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
