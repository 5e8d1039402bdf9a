package pattern

import (
	"fmt"

	"findbar/internal/engine"
)

// Compiled is the active search pattern. It is owned by the compiler and
// replaced wholesale when the effective parameters change; consumers must
// treat the matcher as borrowed, valid until the next PatternChanged event.
type Compiled struct {
	Pattern   string // effective pattern after escaping and word wrapping
	Caseless  bool
	Multiline bool
	Matcher   engine.Matcher
}

// CompileError wraps an engine compile failure with the effective pattern
// that caused it.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
