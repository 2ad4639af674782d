// Package styles holds the browser palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the browser palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	StatusBackground lipgloss.Color
}

// DefaultTheme is an amber-on-slate palette; warnings stand out for CVE ids.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:          lipgloss.Color("#E5A50A"),
		Secondary:        lipgloss.Color("#5FAFD7"),
		Foreground:       lipgloss.Color("#D0D0D0"),
		Muted:            lipgloss.Color("#7A7A8C"),
		Success:          lipgloss.Color("#87D787"),
		Warning:          lipgloss.Color("#FF8700"),
		Error:            lipgloss.Color("#FF5F5F"),
		Border:           lipgloss.Color("#3A3A4A"),
		StatusBackground: lipgloss.Color("#1C1C28"),
	}
}

// Styles are the rendered styles for one theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	// CVE marks vulnerability identifiers.
	CVE lipgloss.Style

	// Fixed marks the version a pull request upgrades to.
	Fixed lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles builds styles for theme; nil means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Border).Bold(true),
		Error:    fg(theme.Error),
		Success:  fg(theme.Success),
		CVE:      fg(theme.Warning).Bold(true),
		Fixed:    fg(theme.Success),
		StatusBar: fg(theme.Muted).
			Background(theme.StatusBackground).
			Padding(0, 1),
		Help: fg(theme.Muted).Italic(true),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
