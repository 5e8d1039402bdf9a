package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"findbar/internal/config"
	"findbar/internal/engine"
	"findbar/internal/eventbus"
	"findbar/internal/history"
	"findbar/internal/pattern"
	"findbar/internal/popover"
	"findbar/internal/textview"
	"findbar/internal/ui"
)

func main() {
	flag.Parse()

	// Set up logging (bubbletea owns the terminal)
	logFile, err := os.OpenFile("findbar.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	// Build the search components: one engine and compiler per bar, one
	// history store shared by every bar in the process.
	eng := engine.New()
	compiler := pattern.NewCompiler(eng, bus)
	hist := history.NewStore(func() bool { return cfg.HistoryEnabled })
	pop := popover.New(compiler, hist, bus)

	// Load the buffer to search
	content, name, fromStdin, err := loadContent(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "findbar: %v\n", err)
		os.Exit(1)
	}
	view := textview.New()
	view.SetContent(content)

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, pop, view, hist)
	uiModel.SetFileName(name)
	defer uiModel.Close()

	// Create Bubble Tea program
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if fromStdin {
		// The buffer came through stdin, read keys from the tty instead
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Persist the toggles the user ended up with
	popOpts := pop.Options()
	cfg.Search.CaseSensitive = popOpts.CaseSensitive
	cfg.Search.WholeWord = popOpts.WholeWord
	cfg.Search.Regex = popOpts.UseRegex
	cfg.Search.WrapAround = pop.WrapAround()
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// loadContent reads the buffer from the path argument, from a piped stdin,
// or falls back to a built-in sample.
func loadContent(path string) (content, name string, fromStdin bool, err error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", false, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), filepath.Base(path), false, nil
	}

	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", true, nil
	}

	return sampleText, "sample", false, nil
}

const sampleText = `findbar is a search bar for terminal text buffers.

Open the bar with / and start typing: the pattern is recompiled only when
the effective parameters change, so holding a key down does not thrash the
regex engine. Toggle match case, whole word, regex mode and wrap around
with alt+c, alt+w, alt+r and alt+a.

In regex mode ^ and $ match at line boundaries, so ^Open finds the second
paragraph and bar$ finds nothing in this sample. In literal mode the text
a.b* matches only the characters a.b* themselves.

Searches you run (four characters or longer) are remembered for the rest
of the session. Press tab to accept an inline history suggestion.
`
