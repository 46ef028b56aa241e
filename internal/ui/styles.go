package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, line numbers
// - No colored success/error/warning - use unicode symbols only

const defaultAccentColor = "#A78BFA"

var accentColor = defaultAccentColor

var (
	// Accent style for file paths, entry names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)
)

// ConfigureTheme applies a user-configured accent color. "none", "off" and
// "default" disable the accent; an empty value keeps the built-in default;
// unrecognized values are ignored.
func ConfigureTheme(accent string) {
	trimmed := strings.ToLower(strings.TrimSpace(accent))
	if trimmed == "" {
		return
	}
	switch trimmed {
	case "none", "off", "default":
		applyAccent("")
		return
	}
	if color, ok := normalizeAccentColor(accent); ok {
		applyAccent(color)
	}
}

// AccentColor returns the active accent color, if one is configured.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

func applyAccent(color string) {
	accentColor = color
	if color == "" {
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// normalizeAccentColor validates an accent value: ANSI color codes 0-255
// or hex colors (#RGB and #RRGGBB, the former expanded).
func normalizeAccentColor(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	lower := strings.ToLower(trimmed)
	switch lower {
	case "none", "off", "default":
		return "", false
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}

	if !strings.HasPrefix(lower, "#") {
		return "", false
	}
	hex := lower[1:]
	switch len(hex) {
	case 6:
		if isHex(hex) {
			return "#" + hex, true
		}
	case 3:
		if isHex(hex) {
			var sb strings.Builder
			for i := 0; i < 3; i++ {
				sb.WriteByte(hex[i])
				sb.WriteByte(hex[i])
			}
			return "#" + sb.String(), true
		}
	}
	return "", false
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
