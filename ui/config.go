package ui

// Config contains TUI-specific configuration.
type Config struct {
	// WPM is the starting reading speed.
	WPM int

	// Path is the source file being read; empty when reading stdin.
	Path string

	// Watch re-submits the document when Path changes on disk.
	Watch bool

	GlamourStyle    string `env:"GLAMOUR_STYLE" envDefault:"auto"`
	GlamourMaxWidth uint

	EnableMouse bool `env:"SKIM_ENABLE_MOUSE"`

	// For debugging the UI
	GlamourEnabled bool `env:"SKIM_ENABLE_GLAMOUR" envDefault:"true"`
}
