package domain

// SearchOptions holds the raw search text and its modifiers as entered in
// the search bar. It is the sole input to pattern derivation.
type SearchOptions struct {
	Text          string // raw user-entered text, not the effective pattern
	CaseSensitive bool
	WholeWord     bool
	UseRegex      bool
}
