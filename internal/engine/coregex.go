package engine

import (
	"errors"

	"github.com/coregx/coregex"
)

// ErrUnsupportedFlags is returned when a compilation asks for flags the
// coregex engine cannot express (its public API has no caseless or
// multiline compile options).
var ErrUnsupportedFlags = errors.New("engine: flags unsupported by coregex")

// coregexEngine compiles with coregx/coregex for plain, case-sensitive
// patterns where its prefilter and SIMD paths pay off on every keystroke.
type coregexEngine struct{}

// NewCoregex creates the coregex-backed engine
func NewCoregex() Engine {
	return coregexEngine{}
}

func (coregexEngine) Compile(pattern string, flags Flags) (Matcher, error) {
	if flags.Caseless || flags.Multiline {
		return nil, ErrUnsupportedFlags
	}

	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &coregexMatcher{re: re, pattern: pattern}, nil
}

type coregexMatcher struct {
	re      *coregex.Regex
	pattern string
}

func (m *coregexMatcher) Pattern() string { return m.pattern }

func (m *coregexMatcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}

func (m *coregexMatcher) FindIndex(s string, start int) (int, int, bool) {
	if start > len(s) {
		return 0, 0, false
	}
	loc := m.re.FindStringIndex(s[start:])
	if loc == nil {
		return 0, 0, false
	}
	return start + loc[0], start + loc[1], true
}

func (m *coregexMatcher) FindLastIndex(s string, before int) (int, int, bool) {
	return findLast(m, s, before)
}
