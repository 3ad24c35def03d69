package domain

const unknownDescription = "Unknown"

// Theme identifies a reader colour theme.
type Theme string

// Available themes.
const (
	// ThemeDark is the default dark palette.
	ThemeDark Theme = "dark"

	// ThemeLight is a light palette for bright terminals.
	ThemeLight Theme = "light"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// Description returns a human-readable description of the theme.
func (t Theme) Description() string {
	switch t {
	case ThemeDark:
		return "Dark (default palette)"
	case ThemeLight:
		return "Light (for bright terminals)"
	default:
		return unknownDescription
	}
}

// ReaderSettings holds display preferences for the reader.
type ReaderSettings struct {
	// Theme is the colour theme.
	Theme Theme

	// ShowProgress toggles the progress footer in the reader view.
	ShowProgress bool

	// ResumeOnOpen controls whether opening a novel jumps to the last
	// saved reading position instead of the first chunk.
	ResumeOnOpen bool
}

// DefaultReaderSettings returns settings with sensible defaults.
func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{
		Theme:        ThemeDark,
		ShowProgress: true,
		ResumeOnOpen: true,
	}
}

// AllThemes returns all available themes.
func AllThemes() []Theme {
	return []Theme{
		ThemeDark,
		ThemeLight,
	}
}
