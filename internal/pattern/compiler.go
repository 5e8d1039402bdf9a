// Package pattern turns raw search input into a compiled matcher, caching
// the compiled state so that keystroke-driven refreshes only pay for
// compilation when the effective parameters actually change.
package pattern

import (
	"log"

	"github.com/coregx/coregex"

	"findbar/internal/domain"
	"findbar/internal/engine"
	"findbar/internal/eventbus"
)

// Compiler derives the effective pattern from search options and keeps the
// single compiled matcher for the bar that owns it.
type Compiler struct {
	engine engine.Engine
	bus    eventbus.EventBus

	current    *Compiled
	err        error
	recompiles int
}

// NewCompiler creates a compiler publishing pattern changes on the bus
func NewCompiler(eng engine.Engine, bus eventbus.EventBus) *Compiler {
	return &Compiler{engine: eng, bus: bus}
}

// Derive computes the effective pattern and flags from the search options.
// Literal mode escapes metacharacters and keeps ^/$ anchored to the whole
// buffer; regex mode passes the text through and lets anchors match at line
// boundaries.
func Derive(opts domain.SearchOptions) (pattern string, caseless, multiline bool) {
	if opts.UseRegex {
		pattern = opts.Text
		multiline = true
	} else {
		pattern = coregex.QuoteMeta(opts.Text)
	}

	if opts.WholeWord {
		pattern = `\b` + pattern + `\b`
	}

	caseless = !opts.CaseSensitive
	return pattern, caseless, multiline
}

// Refresh recomputes the effective pattern and recompiles if it differs from
// the cached state. Identical derivations are a no-op: this runs on every
// keystroke and every toggle. The returned error is the compile failure, if
// any; the failure is also retained for Err and carried on the change event.
func (c *Compiler) Refresh(opts domain.SearchOptions) error {
	pat, caseless, multiline := Derive(opts)

	if c.current != nil &&
		c.current.Pattern == pat &&
		c.current.Caseless == caseless &&
		c.current.Multiline == multiline {
		return nil
	}

	if opts.Text == "" {
		changed := c.current != nil || c.err != nil
		c.current = nil
		c.err = nil
		if changed {
			c.notify()
		}
		return nil
	}

	c.recompiles++
	matcher, err := c.engine.Compile(pat, engine.Flags{
		Caseless:  caseless,
		Multiline: multiline,
		Optimize:  true,
	})
	if err != nil {
		log.Printf("pattern: compile failed for %q: %v", pat, err)
		c.current = nil
		c.err = &CompileError{Pattern: pat, Err: err}
		c.notify()
		return c.err
	}

	c.current = &Compiled{
		Pattern:   pat,
		Caseless:  caseless,
		Multiline: multiline,
		Matcher:   matcher,
	}
	c.err = nil
	c.notify()
	return nil
}

// Current returns the active compiled pattern, or nil when the search text
// is empty or the last compilation failed.
func (c *Compiler) Current() *Compiled {
	return c.current
}

// Err returns the retained compile error, nil when the pattern is valid or absent
func (c *Compiler) Err() error {
	return c.err
}

// Recompilations returns how many engine compilations have run
func (c *Compiler) Recompilations() int {
	return c.recompiles
}

func (c *Compiler) notify() {
	if c.bus == nil {
		return
	}

	ev := eventbus.PatternChangedEvent{}
	if c.current != nil {
		ev.Pattern = c.current.Pattern
		ev.Active = true
	}
	if c.err != nil {
		ev.Err = c.err.Error()
	}
	c.bus.Publish(ev)
}
