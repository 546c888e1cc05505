package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color scheme for terminal output. Each field holds an ANSI
// escape sequence, or the empty string when colors are disabled.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string

	// Accent and Border color the lipgloss result box.
	Accent lipgloss.TerminalColor
	Border lipgloss.TerminalColor
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("#FFB347"),
		Border:    lipgloss.Color("#5F87FF"),
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("#AF5F00"),
		Border:    lipgloss.Color("#005FAF"),
	}

	// NoColorTheme disables all color output. It is selected by --no-color
	// or the NO_COLOR environment variable.
	NoColorTheme = Theme{
		Name:   "none",
		Accent: lipgloss.NoColor{},
		Border: lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light" or "none"). Unknown
// names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects the startup theme. Colors are disabled when noColor is
// true or NO_COLOR is present in the environment (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// The accessors below read the active theme on every call, so output
// written after --no-color or NO_COLOR is applied carries no escapes.

// ColorReset ends any styled span.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed marks failures and calculator mismatches.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen marks successful runs and saved profiles.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow marks warnings, durations and the recommended threshold.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue highlights calculator names in the comparison table.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta highlights the requested digit count in the banner.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan highlights numeric settings.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold and ColorUnderline style headings.
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
