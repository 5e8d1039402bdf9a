// Package popover is the search bar controller: it owns the search options,
// drives the pattern compiler on every change, and dispatches search actions
// to whatever consumer renders the text.
package popover

import (
	"findbar/internal/domain"
	"findbar/internal/eventbus"
	"findbar/internal/history"
	"findbar/internal/pattern"
)

// Popover tracks one search bar's state
type Popover struct {
	compiler *pattern.Compiler
	history  *history.Store
	bus      eventbus.EventBus

	opts        domain.SearchOptions
	wrapAround  bool
	textChanged bool // set on text edits, cleared when committed to history
}

// New creates a popover controller. The history store is shared across all
// popovers in the process.
func New(compiler *pattern.Compiler, hist *history.Store, bus eventbus.EventBus) *Popover {
	return &Popover{
		compiler: compiler,
		history:  hist,
		bus:      bus,
	}
}

// SetText updates the raw search text, recompiling as needed
func (p *Popover) SetText(text string) {
	if p.opts.Text == text {
		return
	}
	p.opts.Text = text
	p.refresh()
	p.textChanged = true
}

// SetCaseSensitive toggles case-sensitive matching
func (p *Popover) SetCaseSensitive(on bool) {
	if p.opts.CaseSensitive == on {
		return
	}
	p.opts.CaseSensitive = on
	p.refresh()
}

// SetWholeWord toggles whole-word matching
func (p *Popover) SetWholeWord(on bool) {
	if p.opts.WholeWord == on {
		return
	}
	p.opts.WholeWord = on
	p.refresh()
}

// SetUseRegex toggles regex interpretation of the search text
func (p *Popover) SetUseRegex(on bool) {
	if p.opts.UseRegex == on {
		return
	}
	p.opts.UseRegex = on
	p.refresh()
}

// SetWrapAround flips the wrap-around toggle. The consumer honors this when
// a search passes the end of the buffer.
func (p *Popover) SetWrapAround(on bool) {
	if p.wrapAround == on {
		return
	}
	p.wrapAround = on
	if p.bus != nil {
		p.bus.Publish(eventbus.WrapAroundChangedEvent{Enabled: on})
	}
}

// Options returns the current search options
func (p *Popover) Options() domain.SearchOptions {
	return p.opts
}

// WrapAround reports whether search should wrap at buffer boundaries
func (p *Popover) WrapAround() bool {
	return p.wrapAround
}

// Current returns the active compiled pattern, or nil
func (p *Popover) Current() *pattern.Compiled {
	return p.compiler.Current()
}

// CompileErr returns the retained compile error, if any
func (p *Popover) CompileErr() error {
	return p.compiler.Err()
}

// CanSearch reports whether navigation controls should be enabled
func (p *Popover) CanSearch() bool {
	return p.compiler.Current() != nil
}

// Search dispatches a directional search request. It is a no-op without a
// compiled pattern. Text edited since the last search is committed to
// history first.
func (p *Popover) Search(backward bool) {
	if p.compiler.Current() == nil {
		return
	}

	if p.textChanged {
		if p.history != nil && p.history.Insert(p.opts.Text) && p.bus != nil {
			p.bus.Publish(eventbus.HistoryChangedEvent{Items: p.history.Items()})
		}
		p.textChanged = false
	}

	if p.bus != nil {
		p.bus.Publish(eventbus.SearchRequestedEvent{Backward: backward})
	}
}

func (p *Popover) refresh() {
	// Compile errors are retained by the compiler and carried on the
	// PatternChanged event; nothing more to do here.
	_ = p.compiler.Refresh(p.opts)
}
