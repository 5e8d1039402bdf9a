// Package engine abstracts the regular expression engine behind the search
// bar. Matchers are compiled with explicit flags and consumed read-only; a
// replaced matcher is simply dropped for the GC to collect.
package engine

import "unicode/utf8"

// Flags select how a pattern is compiled
type Flags struct {
	Caseless  bool // case-insensitive matching
	Multiline bool // ^/$ match at line boundaries inside the buffer
	Optimize  bool // spend extra compile time for faster matching, if supported
}

// Matcher is a compiled pattern. All offsets are byte offsets into the
// searched string, and start/before arguments must lie on rune boundaries.
type Matcher interface {
	// Pattern returns the effective pattern the matcher was compiled from
	Pattern() string

	// MatchString reports whether the pattern matches anywhere in s
	MatchString(s string) bool

	// FindIndex returns the first match at or after start
	FindIndex(s string, start int) (begin, end int, ok bool)

	// FindLastIndex returns the last match beginning before the given offset
	FindLastIndex(s string, before int) (begin, end int, ok bool)
}

// Engine compiles patterns into matchers
type Engine interface {
	Compile(pattern string, flags Flags) (Matcher, error)
}

// New returns the default engine: coregex for plain compilations (it has no
// caseless/multiline support but a much faster matcher), regexp2 whenever
// case folding or multiline anchors are requested, or when coregex rejects
// the pattern syntax.
func New() Engine {
	return &autoEngine{
		plain:   NewCoregex(),
		folding: NewRegexp2(),
	}
}

type autoEngine struct {
	plain   Engine
	folding Engine
}

func (e *autoEngine) Compile(pattern string, flags Flags) (Matcher, error) {
	if !flags.Caseless && !flags.Multiline {
		if m, err := e.plain.Compile(pattern, flags); err == nil {
			return m, nil
		}
	}
	return e.folding.Compile(pattern, flags)
}

// findLast scans forward to locate the last match starting before the given
// offset. Neither engine searches right-to-left, so this is the shared
// backward-search fallback.
func findLast(m Matcher, s string, before int) (int, int, bool) {
	begin, end, ok := 0, 0, false
	at := 0
	for at <= len(s) {
		b, e, found := m.FindIndex(s, at)
		if !found || b >= before {
			break
		}
		begin, end, ok = b, e, true
		if e > b {
			at = e
		} else {
			// zero-width match, step over one rune
			_, size := utf8.DecodeRuneInString(s[b:])
			at = b + size
			if size == 0 {
				break
			}
		}
	}
	return begin, end, ok
}
