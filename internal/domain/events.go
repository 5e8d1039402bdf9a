package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPatternChanged    EventType = "PatternChanged"
	EventSearchRequested   EventType = "SearchRequested"
	EventWrapAroundChanged EventType = "WrapAroundChanged"
	EventHistoryChanged    EventType = "HistoryChanged"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PatternChangedEvent is emitted when the compiled search pattern changes:
// a new pattern was compiled, the pattern was cleared, or compilation failed.
type PatternChangedEvent struct {
	Pattern string // effective pattern, "" when no active pattern
	Active  bool   // whether a compiled pattern now exists
	Err     string // compile error message, "" on success
}

func (e PatternChangedEvent) Type() EventType { return EventPatternChanged }

// SearchRequestedEvent is emitted when the user asks to move to the
// next or previous match. The consumer performs the actual buffer search.
type SearchRequestedEvent struct {
	Backward bool
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// WrapAroundChangedEvent is emitted when the wrap-around toggle flips
type WrapAroundChangedEvent struct {
	Enabled bool
}

func (e WrapAroundChangedEvent) Type() EventType { return EventWrapAroundChanged }

// HistoryChangedEvent is emitted when a search term is committed to history
type HistoryChangedEvent struct {
	Items []string // most recent first
}

func (e HistoryChangedEvent) Type() EventType { return EventHistoryChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	HistoryEnabled bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
