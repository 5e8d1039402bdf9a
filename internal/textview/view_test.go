package textview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"findbar/internal/engine"
)

const sample = "alpha one\nbeta two\nalpha three\ngamma four"

func compile(t *testing.T, pattern string) engine.Matcher {
	t.Helper()
	m, err := engine.New().Compile(pattern, engine.Flags{})
	require.NoError(t, err)
	return m
}

func newSampleView(t *testing.T, pattern string) *View {
	t.Helper()
	v := New()
	v.SetContent(sample)
	v.SetSize(80, 10)
	v.SetMatcher(compile(t, pattern))
	return v
}

func TestFindNextWalksMatchesForward(t *testing.T) {
	t.Parallel()
	v := newSampleView(t, "alpha")

	require.True(t, v.FindNext())
	require.Equal(t, 1, v.CurrentLine())

	require.True(t, v.FindNext())
	require.Equal(t, 3, v.CurrentLine())

	// Without wrap-around the last match is kept
	require.False(t, v.FindNext())
	require.Equal(t, 3, v.CurrentLine())
}

func TestFindNextWrapsWhenEnabled(t *testing.T) {
	t.Parallel()
	v := newSampleView(t, "alpha")
	v.SetWrapAround(true)

	require.True(t, v.FindNext())
	require.True(t, v.FindNext())
	require.Equal(t, 3, v.CurrentLine())

	require.True(t, v.FindNext())
	require.Equal(t, 1, v.CurrentLine(), "wrap-around continues from the top")
}

func TestFindPreviousStartsFromEnd(t *testing.T) {
	t.Parallel()
	v := newSampleView(t, "alpha")

	require.True(t, v.FindPrevious())
	require.Equal(t, 3, v.CurrentLine())

	require.True(t, v.FindPrevious())
	require.Equal(t, 1, v.CurrentLine())

	require.False(t, v.FindPrevious())
	require.Equal(t, 1, v.CurrentLine())
}

func TestFindPreviousWrapsWhenEnabled(t *testing.T) {
	t.Parallel()
	v := newSampleView(t, "alpha")
	v.SetWrapAround(true)

	require.True(t, v.FindPrevious())
	require.True(t, v.FindPrevious())
	require.Equal(t, 1, v.CurrentLine())

	require.True(t, v.FindPrevious())
	require.Equal(t, 3, v.CurrentLine(), "wrap-around continues from the bottom")
}

func TestFindWithoutMatcher(t *testing.T) {
	t.Parallel()
	v := New()
	v.SetContent(sample)

	require.False(t, v.FindNext())
	require.False(t, v.FindPrevious())
	_, _, ok := v.CurrentMatch()
	require.False(t, ok)
}

func TestSetMatcherResetsMatchPosition(t *testing.T) {
	t.Parallel()
	v := newSampleView(t, "alpha")
	require.True(t, v.FindNext())

	v.SetMatcher(compile(t, "gamma"))
	_, _, ok := v.CurrentMatch()
	require.False(t, ok, "the old match belongs to the old pattern")

	require.True(t, v.FindNext())
	require.Equal(t, 4, v.CurrentLine())
}

func TestCurrentMatchOffsets(t *testing.T) {
	t.Parallel()
	v := newSampleView(t, "two")
	require.True(t, v.FindNext())

	begin, end, ok := v.CurrentMatch()
	require.True(t, ok)
	require.Equal(t, "two", sample[begin:end])
}

func TestFindNextScrollsToMatch(t *testing.T) {
	t.Parallel()
	v := New()
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "filler")
	}
	lines = append(lines, "needle at the bottom")
	v.SetContent(strings.Join(lines, "\n"))
	v.SetSize(80, 10)
	v.SetMatcher(compile(t, "needle"))

	require.True(t, v.FindNext())
	require.Equal(t, 51, v.CurrentLine())

	// The match line must be inside the rendered window
	plain := lipgloss.NewStyle()
	out := v.Render(plain, plain)
	require.Contains(t, out, "needle at the bottom")
}

func TestRenderHighlightsMatches(t *testing.T) {
	t.Parallel()
	v := newSampleView(t, "alpha")
	require.True(t, v.FindNext())

	match := lipgloss.NewStyle()
	out := v.Render(match, match)
	require.Contains(t, out, "alpha one")
	require.Contains(t, out, "gamma four")
	require.Equal(t, len(strings.Split(sample, "\n")), len(strings.Split(out, "\n")))
}

func TestScrollClamping(t *testing.T) {
	t.Parallel()
	v := New()
	v.SetContent(sample)
	v.SetSize(80, 2)

	v.ScrollBy(100)
	v.ScrollToBottom()
	v.ScrollBy(-100)
	v.ScrollToTop()

	plain := lipgloss.NewStyle()
	require.Equal(t, "alpha one\nbeta two", v.Render(plain, plain))
}
