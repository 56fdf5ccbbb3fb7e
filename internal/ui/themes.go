package ui

import (
	"os"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/moneymask/internal/errors"
)

// Theme is a named color scheme. The ANSI fields hold escape codes and are
// empty in the colorless theme.
type Theme struct {
	Name string

	Accent  string
	Muted   string
	Success string
	Warning string
	Error   string
	Info    string
	Bold    string
	Reset   string

	// TUI is the palette used by the interactive field.
	TUI TUITheme
}

// TUITheme holds lipgloss colors for the interactive field.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Amount  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

func ansi256(code string) string { return "\033[38;5;" + code + "m" }

var (
	// DarkTheme is a green ledger scheme for dark terminals.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  ansi256("43"),
		Muted:   ansi256("245"),
		Success: ansi256("82"),
		Warning: ansi256("220"),
		Error:   ansi256("196"),
		Info:    ansi256("141"),
		Bold:    ansiBold,
		Reset:   ansiReset,
		TUI: TUITheme{
			Text:    lipgloss.Color("#E0E0E0"),
			Border:  lipgloss.Color("#2E7D32"),
			Accent:  lipgloss.Color("#66BB6A"),
			Amount:  lipgloss.Color("#FFFFFF"),
			Success: lipgloss.Color("#9ECE6A"),
			Warning: lipgloss.Color("#FFB347"),
			Error:   lipgloss.Color("#FF4444"),
			Dim:     lipgloss.Color("#666666"),
		},
	}

	// LightTheme uses darker inks for light backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Accent:  ansi256("29"),
		Muted:   ansi256("240"),
		Success: ansi256("28"),
		Warning: ansi256("130"),
		Error:   ansi256("124"),
		Info:    ansi256("54"),
		Bold:    ansiBold,
		Reset:   ansiReset,
		TUI: TUITheme{
			Text:    lipgloss.Color("#202020"),
			Border:  lipgloss.Color("#1B5E20"),
			Accent:  lipgloss.Color("#2E7D32"),
			Amount:  lipgloss.Color("#000000"),
			Success: lipgloss.Color("#1B5E20"),
			Warning: lipgloss.Color("#B35900"),
			Error:   lipgloss.Color("#B00020"),
			Dim:     lipgloss.Color("#808080"),
		},
	}

	// NoColorTheme prints plain text. lipgloss.NoColor keeps the terminal's
	// own colors in the TUI.
	NoColorTheme = Theme{
		Name: "none",
		TUI: TUITheme{
			Text:    lipgloss.NoColor{},
			Border:  lipgloss.NoColor{},
			Accent:  lipgloss.NoColor{},
			Amount:  lipgloss.NoColor{},
			Success: lipgloss.NoColor{},
			Warning: lipgloss.NoColor{},
			Error:   lipgloss.NoColor{},
			Dim:     lipgloss.NoColor{},
		},
	}
)

var themes = map[string]Theme{
	DarkTheme.Name:    DarkTheme,
	LightTheme.Name:   LightTheme,
	NoColorTheme.Name: NoColorTheme,
}

var current atomic.Pointer[Theme]

func init() {
	t := DarkTheme
	current.Store(&t)
}

// ThemeNames lists the registered themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupTheme finds a theme by case-insensitive name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(name)]
	return t, ok
}

// Current returns the active theme.
func Current() Theme { return *current.Load() }

// CurrentTUI returns the TUI palette of the active theme.
func CurrentTUI() TUITheme { return current.Load().TUI }

// Use makes t the active theme and returns the one it replaced.
func Use(t Theme) Theme {
	return *current.Swap(&t)
}

// SetTheme activates a registered theme.
func SetTheme(name string) error {
	t, ok := LookupTheme(name)
	if !ok {
		return apperrors.NewConfigError("unknown theme %q (want %s)", name, strings.Join(ThemeNames(), ", "))
	}
	Use(t)
	return nil
}

// InitTheme picks the theme at startup. noColor, or a NO_COLOR variable of
// any value (https://no-color.org/), wins over name. An empty name selects
// the dark theme.
func InitTheme(name string, noColor bool) error {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		Use(NoColorTheme)
		return nil
	}
	if name == "" {
		name = DarkTheme.Name
	}
	return SetTheme(name)
}
