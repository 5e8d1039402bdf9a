package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"findbar/internal/domain"
	"findbar/internal/engine"
	"findbar/internal/eventbus"
)

// recorder collects pattern change events from the bus
type recorder struct {
	events []eventbus.PatternChangedEvent
}

func newRecorder(bus eventbus.EventBus) *recorder {
	r := &recorder{}
	bus.Subscribe(eventbus.EventPatternChanged, func(e eventbus.DomainEvent) {
		r.events = append(r.events, e.(eventbus.PatternChangedEvent))
	})
	return r
}

func newTestCompiler(t *testing.T) (*Compiler, *recorder) {
	t.Helper()
	bus := eventbus.New()
	return NewCompiler(engine.New(), bus), newRecorder(bus)
}

func TestDerive(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		opts          domain.SearchOptions
		wantPattern   string
		wantCaseless  bool
		wantMultiline bool
	}{
		{
			name:        "literal text passes through",
			opts:        domain.SearchOptions{Text: "cat"},
			wantPattern: "cat", wantCaseless: true,
		},
		{
			name:        "literal mode escapes metacharacters",
			opts:        domain.SearchOptions{Text: "a.b*"},
			wantPattern: `a\.b\*`, wantCaseless: true,
		},
		{
			name:        "whole word wraps with boundaries",
			opts:        domain.SearchOptions{Text: "cat", WholeWord: true},
			wantPattern: `\bcat\b`, wantCaseless: true,
		},
		{
			name:        "regex mode is verbatim and multiline",
			opts:        domain.SearchOptions{Text: "a+", UseRegex: true},
			wantPattern: "a+", wantCaseless: true, wantMultiline: true,
		},
		{
			name:        "case sensitive clears caseless",
			opts:        domain.SearchOptions{Text: "cat", CaseSensitive: true},
			wantPattern: "cat",
		},
		{
			name:        "whole word applies after escaping",
			opts:        domain.SearchOptions{Text: "a.b", WholeWord: true},
			wantPattern: `\ba\.b\b`, wantCaseless: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, caseless, multiline := Derive(tt.opts)
			require.Equal(t, tt.wantPattern, pattern)
			require.Equal(t, tt.wantCaseless, caseless)
			require.Equal(t, tt.wantMultiline, multiline)
		})
	}
}

func TestRefreshSkipsRecompilationOnIdenticalTriple(t *testing.T) {
	t.Parallel()
	c, rec := newTestCompiler(t)

	opts := domain.SearchOptions{Text: "needle", CaseSensitive: true}
	require.NoError(t, c.Refresh(opts))
	require.Equal(t, 1, c.Recompilations())
	require.Len(t, rec.events, 1)

	// Same options again: the keystroke-path no-op
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Refresh(opts))
	}
	require.Equal(t, 1, c.Recompilations(), "identical derivation must not recompile")
	require.Len(t, rec.events, 1, "identical derivation must not notify")

	// Whole word changes the effective pattern, so it recompiles once
	opts.WholeWord = true
	require.NoError(t, c.Refresh(opts))
	require.Equal(t, 2, c.Recompilations())
}

func TestRefreshEmptyTextYieldsNoPattern(t *testing.T) {
	t.Parallel()
	c, rec := newTestCompiler(t)

	for _, opts := range []domain.SearchOptions{
		{Text: ""},
		{Text: "", CaseSensitive: true},
		{Text: "", UseRegex: true, WholeWord: true},
	} {
		require.NoError(t, c.Refresh(opts))
		require.Nil(t, c.Current())
		require.NoError(t, c.Err())
	}
	require.Zero(t, c.Recompilations())
	require.Empty(t, rec.events, "staying empty is not a change")
}

func TestRefreshClearsPatternWhenTextCleared(t *testing.T) {
	t.Parallel()
	c, rec := newTestCompiler(t)

	require.NoError(t, c.Refresh(domain.SearchOptions{Text: "needle"}))
	require.NotNil(t, c.Current())
	require.Len(t, rec.events, 1)

	require.NoError(t, c.Refresh(domain.SearchOptions{Text: ""}))
	require.Nil(t, c.Current())
	require.Len(t, rec.events, 2)
	require.False(t, rec.events[1].Active)
}

func TestRefreshLiteralModeMatchesLiterally(t *testing.T) {
	t.Parallel()
	c, _ := newTestCompiler(t)

	require.NoError(t, c.Refresh(domain.SearchOptions{Text: "a.b*", CaseSensitive: true}))
	cur := c.Current()
	require.NotNil(t, cur)

	require.True(t, cur.Matcher.MatchString("see a.b* here"))
	require.False(t, cur.Matcher.MatchString("aXbYYY"), "escaped metacharacters must not act as regex")
}

func TestRefreshCaselessByDefault(t *testing.T) {
	t.Parallel()
	c, _ := newTestCompiler(t)

	require.NoError(t, c.Refresh(domain.SearchOptions{Text: "hello"}))
	cur := c.Current()
	require.NotNil(t, cur)
	require.True(t, cur.Caseless)
	require.True(t, cur.Matcher.MatchString("say HELLO"))
}

func TestRefreshRegexToggleRegeneratesMatcher(t *testing.T) {
	t.Parallel()
	c, rec := newTestCompiler(t)

	opts := domain.SearchOptions{Text: "a+", UseRegex: true}
	require.NoError(t, c.Refresh(opts))
	cur := c.Current()
	require.NotNil(t, cur)
	require.Equal(t, "a+", cur.Pattern)
	require.True(t, cur.Multiline)
	require.True(t, cur.Matcher.MatchString("baaad"))

	opts.UseRegex = false
	require.NoError(t, c.Refresh(opts))
	cur = c.Current()
	require.NotNil(t, cur)
	require.Equal(t, `a\+`, cur.Pattern)
	require.False(t, cur.Multiline)
	require.True(t, cur.Matcher.MatchString("a+b"))
	require.False(t, cur.Matcher.MatchString("aaa"))

	require.Equal(t, 2, c.Recompilations(), "both transitions changed the triple")
	require.Len(t, rec.events, 2)
}

func TestRefreshMultilineAnchors(t *testing.T) {
	t.Parallel()
	c, _ := newTestCompiler(t)

	require.NoError(t, c.Refresh(domain.SearchOptions{Text: "^beta$", UseRegex: true, CaseSensitive: true}))
	cur := c.Current()
	require.NotNil(t, cur)
	require.True(t, cur.Matcher.MatchString("alpha\nbeta\ngamma"))
}

func TestRefreshCompileFailureRetainsError(t *testing.T) {
	t.Parallel()
	c, rec := newTestCompiler(t)

	// Build up a valid pattern first
	require.NoError(t, c.Refresh(domain.SearchOptions{Text: "ok", UseRegex: true}))
	require.NotNil(t, c.Current())

	err := c.Refresh(domain.SearchOptions{Text: "a[", UseRegex: true})
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "a[", cerr.Pattern)

	require.Nil(t, c.Current(), "a failed compile discards the previous matcher")
	require.Error(t, c.Err())

	last := rec.events[len(rec.events)-1]
	require.False(t, last.Active)
	require.NotEmpty(t, last.Err, "the failure is surfaced, not swallowed")

	// Fixing the text recovers
	require.NoError(t, c.Refresh(domain.SearchOptions{Text: "a[b]", UseRegex: true}))
	require.NotNil(t, c.Current())
	require.NoError(t, c.Err())
}

func TestRefreshWholeWordMatching(t *testing.T) {
	t.Parallel()
	c, _ := newTestCompiler(t)

	require.NoError(t, c.Refresh(domain.SearchOptions{Text: "cat", WholeWord: true, CaseSensitive: true}))
	cur := c.Current()
	require.NotNil(t, cur)
	require.Equal(t, `\bcat\b`, cur.Pattern)

	require.True(t, cur.Matcher.MatchString("a cat sat"))
	require.False(t, cur.Matcher.MatchString("concatenate"))
}
