package engine

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/runic/buffer"
)

// Align selects horizontal glyph placement on pixel surfaces
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
)

// UnmarshalText parses an alignment name
func (a *Align) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "left":
		*a = AlignLeft
	case "center":
		*a = AlignCenter
	default:
		return fmt.Errorf("engine: invalid align %q", string(text))
	}
	return nil
}

// Default settings values
const (
	DefaultFPS        = 30.0
	DefaultRenderer   = "text"
	DefaultStateKey   = "runic-state"
	DefaultFontFamily = "monospace"
	DefaultFontSize   = 12.0
	DefaultLineHeight = 1.2
)

// Settings configures a run. The zero value of every field means "use
// the default"; New merges explicit values over the defaults.
type Settings struct {
	// Cols and Rows fix the grid size; 0 auto-fits from the target
	Cols int `toml:"cols"`
	Rows int `toml:"rows"`

	// FPS is the target frame rate gate
	FPS float64 `toml:"fps"`

	// Once stops the loop after the first accepted frame
	Once bool `toml:"once"`

	// Renderer names a registered renderer ("text", "canvas", "tcell")
	Renderer string `toml:"renderer"`

	// AllowSelect leaves mouse reporting off so native terminal text
	// selection keeps working; pointer tracking is disabled
	AllowSelect bool `toml:"allow_select"`

	// RestoreState rehydrates {time, frame, cycle} from the
	// persistence store at boot
	RestoreState bool `toml:"restore_state"`

	// StateKey is the persistence record key
	StateKey string `toml:"state_key"`

	// QuitKeys names the keys that stop the loop, resolved through the
	// terminal key-name table ("escape", "ctrl_c", "f10", ...). Empty
	// takes the defaults.
	QuitKeys []string `toml:"quit_keys"`

	// Passthrough style fields
	Background    buffer.Color  `toml:"background"`
	Color         buffer.Color  `toml:"color"`
	Weight        buffer.Weight `toml:"weight"`
	FontFamily    string        `toml:"font_family"`
	FontSize      float64       `toml:"font_size"`
	LineHeight    float64       `toml:"line_height"`
	LetterSpacing float64       `toml:"letter_spacing"`
	Align         Align         `toml:"align"`
}

// DefaultQuitKeys returns the default quit key names
func DefaultQuitKeys() []string {
	return []string{"escape", "ctrl_c"}
}

// DefaultSettings returns the runtime defaults
func DefaultSettings() Settings {
	return Settings{
		FPS:        DefaultFPS,
		Renderer:   DefaultRenderer,
		StateKey:   DefaultStateKey,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		LineHeight: DefaultLineHeight,
		QuitKeys:   DefaultQuitKeys(),
	}
}

// withDefaults fills zero-valued fields from the defaults
func (s Settings) withDefaults() Settings {
	if s.FPS <= 0 {
		s.FPS = DefaultFPS
	}
	if s.Renderer == "" {
		s.Renderer = DefaultRenderer
	}
	if s.StateKey == "" {
		s.StateKey = DefaultStateKey
	}
	if s.FontFamily == "" {
		s.FontFamily = DefaultFontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = DefaultFontSize
	}
	if s.LineHeight <= 0 {
		s.LineHeight = DefaultLineHeight
	}
	if len(s.QuitKeys) == 0 {
		s.QuitKeys = DefaultQuitKeys()
	}
	if s.Cols < 0 {
		s.Cols = 0
	}
	if s.Rows < 0 {
		s.Rows = 0
	}
	return s
}

// LoadSettings reads a TOML settings file. Absent fields stay zero and
// take the defaults when the runner starts.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("engine: load settings: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("engine: load settings: unknown key %q", undecoded[0].String())
	}
	return s, nil
}
