package ui

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"findbar/internal/config"
	"findbar/internal/eventbus"
	"findbar/internal/history"
	"findbar/internal/popover"
	"findbar/internal/textview"
)

// Model represents the UI state
type Model struct {
	bus  eventbus.EventBus
	cfg  *config.Config
	pop  *popover.Popover
	view *textview.View
	hist *history.Store

	input  textinput.Model
	styles *Styles

	width  int
	height int

	showBar    bool
	fileName   string
	status     string
	compileErr string

	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	unsubscribe []func()

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model wired to the shared bus
func NewModel(bus eventbus.EventBus, cfg *config.Config, pop *popover.Popover, view *textview.View, hist *history.Store) *Model {
	ti := textinput.New()
	ti.Placeholder = "Find"
	ti.Prompt = ""
	ti.ShowSuggestions = true

	m := &Model{
		bus:          bus,
		cfg:          cfg,
		pop:          pop,
		view:         view,
		hist:         hist,
		input:        ti,
		styles:       NewStyles(),
		helpRenderer: NewHelpRenderer(),
	}

	m.subscribe()

	// Apply configured defaults after subscribing so the view picks up
	// the wrap-around state through the bus like any other change.
	pop.SetCaseSensitive(cfg.Search.CaseSensitive)
	pop.SetWholeWord(cfg.Search.WholeWord)
	pop.SetUseRegex(cfg.Search.Regex)
	pop.SetWrapAround(cfg.Search.WrapAround)

	return m
}

// SetProgram stores the program reference needed for the help pager
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetFileName sets the buffer name shown in the title bar
func (m *Model) SetFileName(name string) {
	m.fileName = name
}

// Close unsubscribes the model from the bus
func (m *Model) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

func (m *Model) subscribe() {
	m.unsubscribe = append(m.unsubscribe,
		m.bus.Subscribe(eventbus.EventPatternChanged, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.PatternChangedEvent)
			m.compileErr = ev.Err
			if cur := m.pop.Current(); cur != nil {
				m.view.SetMatcher(cur.Matcher)
			} else {
				m.view.SetMatcher(nil)
			}
			m.layout()
		}),
		m.bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.SearchRequestedEvent)
			m.runSearch(ev.Backward)
		}),
		m.bus.Subscribe(eventbus.EventWrapAroundChanged, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.WrapAroundChangedEvent)
			m.view.SetWrapAround(ev.Enabled)
		}),
		m.bus.Subscribe(eventbus.EventHistoryChanged, func(e eventbus.DomainEvent) {
			m.updateSuggestions()
		}),
	)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		m.layout()
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("help pager error: %v", msg.err)
			m.status = fmt.Sprintf("help pager: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showBar {
			return m.handleBarKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	return m, nil
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.showBar = true
		m.layout()
		return m, m.input.Focus()
	case "n":
		m.pop.Search(false)
	case "N":
		m.pop.Search(true)
	case "j", "down":
		m.view.ScrollBy(1)
	case "k", "up":
		m.view.ScrollBy(-1)
	case "pgdown", " ":
		m.view.ScrollBy(m.viewHeight())
	case "pgup":
		m.view.ScrollBy(-m.viewHeight())
	case "g":
		m.view.ScrollToTop()
	case "G":
		m.view.ScrollToBottom()
	case "?":
		return m, m.showHelp()
	}
	return m, nil
}

func (m *Model) handleBarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Hide the bar; the compiled pattern stays active so n/N keep working
		m.showBar = false
		m.input.Blur()
		m.layout()
		return m, nil
	case "enter":
		m.pop.Search(false)
		return m, nil
	case "alt+enter":
		m.pop.Search(true)
		return m, nil
	case "alt+c":
		m.pop.SetCaseSensitive(!m.pop.Options().CaseSensitive)
		return m, nil
	case "alt+w":
		m.pop.SetWholeWord(!m.pop.Options().WholeWord)
		return m, nil
	case "alt+r":
		m.pop.SetUseRegex(!m.pop.Options().UseRegex)
		return m, nil
	case "alt+a":
		m.pop.SetWrapAround(!m.pop.WrapAround())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.pop.Options().Text {
		m.pop.SetText(m.input.Value())
		m.updateSuggestions()
	}
	return m, cmd
}

// runSearch performs the buffer search in response to a SearchRequested event
func (m *Model) runSearch(backward bool) {
	var found bool
	if backward {
		found = m.view.FindPrevious()
	} else {
		found = m.view.FindNext()
	}

	switch {
	case found:
		m.status = fmt.Sprintf("line %d of %d", m.view.CurrentLine(), m.view.LineCount())
	case m.view.CurrentLine() > 0:
		m.status = "no more matches"
	default:
		m.status = "no matches"
	}
}

// updateSuggestions feeds history into the entry's inline completion. The
// minimum key length mirrors the history insertion threshold: prefixes of
// three runes or fewer never complete.
func (m *Model) updateSuggestions() {
	if utf8.RuneCountInString(m.input.Value()) > history.MinItemLen {
		m.input.SetSuggestions(m.hist.Items())
	} else {
		m.input.SetSuggestions(nil)
	}
}

func (m *Model) showHelp() tea.Cmd {
	if m.helpOps == nil {
		return nil
	}
	content := m.helpRenderer.RenderHelpContentPlain()
	return func() tea.Msg {
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(content)}
	}
}

// layout recomputes the text view size from the surrounding chrome
func (m *Model) layout() {
	m.view.SetSize(m.width, m.viewHeight())
}

func (m *Model) viewHeight() int {
	h := m.height - 2 // title and status lines
	if m.showBar {
		h -= 2
		if m.compileErr != "" {
			h--
		}
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("findbar — " + m.fileName))
	b.WriteString("\n")

	body := m.view.Render(m.styles.Match, m.styles.CurrentMatch)
	b.WriteString(body)
	// Pad so the bar and status stay anchored to the bottom
	bodyLines := 0
	if body != "" {
		bodyLines = strings.Count(body, "\n") + 1
	}
	for i := bodyLines; i < m.viewHeight(); i++ {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.showBar {
		b.WriteString(m.renderBar())
	}

	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderBar() string {
	var b strings.Builder

	b.WriteString(m.styles.Prompt.Render("/ "))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	opts := m.pop.Options()
	b.WriteString("  ")
	b.WriteString(m.renderToggle("case", opts.CaseSensitive))
	b.WriteString(" ")
	b.WriteString(m.renderToggle("word", opts.WholeWord))
	b.WriteString(" ")
	b.WriteString(m.renderToggle("regex", opts.UseRegex))
	b.WriteString(" ")
	b.WriteString(m.renderToggle("wrap", m.pop.WrapAround()))
	b.WriteString("  ")
	hint := "enter next · alt+enter prev · esc close"
	if !m.pop.CanSearch() {
		hint = "type to search"
	}
	b.WriteString(m.styles.Help.Render(hint))
	b.WriteString("\n")

	if m.compileErr != "" {
		b.WriteString(m.styles.Error.Render("  ✗ " + m.compileErr))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderToggle(name string, on bool) string {
	if on {
		return m.styles.ToggleOn.Render("[" + name + "]")
	}
	return m.styles.ToggleOff.Render("[" + name + "]")
}

func (m *Model) renderStatus() string {
	left := m.status
	if left == "" {
		left = fmt.Sprintf("%d lines", m.view.LineCount())
	}

	hint := "/ search · n/N next/prev · ? help · q quit"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hint)
	if gap < 1 {
		return m.styles.Status.Render(left)
	}
	return m.styles.Status.Render(left) + strings.Repeat(" ", gap) + m.styles.Dim.Render(hint)
}
