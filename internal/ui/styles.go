package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, counts
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)

	// accentColor is the user-configured accent, empty when disabled.
	accentColor string

	styledOutput = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
)

// ConfigureTheme applies the user's accent color preference from config.
// "none", "off", and "default" disable the accent entirely.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		switch strings.ToLower(strings.TrimSpace(accent)) {
		case "none", "off", "default":
			accentColor = ""
			Accent = lipgloss.NewStyle()
			AccentBold = lipgloss.NewStyle().Bold(true)
		}
		return
	}

	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// normalizeAccentColor validates an accent setting: ANSI codes "0".."255" or
// hex "#RGB"/"#RRGGBB" (short form expanded).
func normalizeAccentColor(accent string) (string, bool) {
	accent = strings.TrimSpace(accent)
	if accent == "" {
		return "", false
	}

	if strings.HasPrefix(accent, "#") {
		hex := strings.ToLower(accent[1:])
		for _, r := range hex {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				return "", false
			}
		}
		switch len(hex) {
		case 3:
			expanded := make([]byte, 0, 6)
			for i := 0; i < 3; i++ {
				expanded = append(expanded, hex[i], hex[i])
			}
			return "#" + string(expanded), true
		case 6:
			return "#" + hex, true
		}
		return "", false
	}

	code, err := strconv.Atoi(accent)
	if err != nil || code < 0 || code > 255 {
		return "", false
	}
	return strconv.Itoa(code), true
}

// Styled reports whether stdout is a terminal; callers use plain output when
// piping into files or other tools.
func Styled() bool {
	return styledOutput
}
