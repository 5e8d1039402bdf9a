package engine

import (
	"github.com/dlclark/regexp2"
)

// regexp2Engine compiles with dlclark/regexp2, which supports the full flag
// set (the PCRE analog in this codebase).
type regexp2Engine struct{}

// NewRegexp2 creates the regexp2-backed engine
func NewRegexp2() Engine {
	return regexp2Engine{}
}

func (regexp2Engine) Compile(pattern string, flags Flags) (Matcher, error) {
	opts := regexp2.None
	if flags.Caseless {
		opts |= regexp2.IgnoreCase
	}
	if flags.Multiline {
		opts |= regexp2.Multiline
	}
	if flags.Optimize {
		opts |= regexp2.Compiled
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &regexp2Matcher{re: re, pattern: pattern}, nil
}

type regexp2Matcher struct {
	re      *regexp2.Regexp
	pattern string
}

func (m *regexp2Matcher) Pattern() string { return m.pattern }

func (m *regexp2Matcher) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

// FindIndex translates between regexp2's rune offsets and the byte offsets
// the rest of the code works in.
func (m *regexp2Matcher) FindIndex(s string, start int) (int, int, bool) {
	if start > len(s) {
		return 0, 0, false
	}
	runes := []rune(s)
	runeStart := len([]rune(s[:start]))

	match, err := m.re.FindRunesMatchStartingAt(runes, runeStart)
	if err != nil || match == nil {
		return 0, 0, false
	}

	begin := len(string(runes[:match.Index]))
	end := begin + len(string(runes[match.Index:match.Index+match.Length]))
	return begin, end, true
}

func (m *regexp2Matcher) FindLastIndex(s string, before int) (int, int, bool) {
	return findLast(m, s, before)
}
