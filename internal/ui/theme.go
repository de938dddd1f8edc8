package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/reel/internal/config"
)

// Theme defines the colours used by the form and the movie cards.
type Theme struct {
	Heading color.Color // Form heading
	Label   color.Color // Field labels and card titles
	Text    color.Color // Input and card text
	Focus   color.Color // Border of the focused input and button
	Error   color.Color // Error messages and inputs showing an error
	Muted   color.Color // Hints, disabled button, placeholders
	Accent  color.Color // Enabled button and success status
}

// ThemeFromConfig converts configured colour strings. Empty strings leave the
// terminal default.
func ThemeFromConfig(c config.Theme) Theme {
	return Theme{
		Heading: parseColor(c.Heading),
		Label:   parseColor(c.Label),
		Text:    parseColor(c.Text),
		Focus:   parseColor(c.Focus),
		Error:   parseColor(c.Error),
		Muted:   parseColor(c.Muted),
		Accent:  parseColor(c.Accent),
	}
}

func parseColor(s string) color.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return lipgloss.Color(s)
}

// styles are the lipgloss styles derived from a theme.
type styles struct {
	heading        lipgloss.Style
	label          lipgloss.Style
	input          lipgloss.Style
	inputFocused   lipgloss.Style
	inputError     lipgloss.Style
	message        lipgloss.Style
	button         lipgloss.Style
	buttonDisabled lipgloss.Style
	muted          lipgloss.Style
	status         lipgloss.Style
	statusError    lipgloss.Style
	card           lipgloss.Style
	cardTitle      lipgloss.Style
	cardText       lipgloss.Style
	footerKey      lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	fg := func(s lipgloss.Style, c color.Color) lipgloss.Style {
		if noColor || c == nil {
			return s
		}
		return s.Foreground(c)
	}
	border := func(c color.Color) lipgloss.Style {
		s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
		if noColor || c == nil {
			return s
		}
		return s.BorderForeground(c)
	}

	// footer keys stay highlighted in no-color mode
	footerKey := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ffffff"))
	if !noColor {
		footerKey = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240"))
	}

	return styles{
		heading:        fg(lipgloss.NewStyle().Bold(true), th.Heading),
		label:          fg(lipgloss.NewStyle().Bold(true), th.Label),
		input:          fg(border(th.Muted), th.Text),
		inputFocused:   fg(border(th.Focus), th.Text),
		inputError:     fg(border(th.Error), th.Text),
		message:        fg(lipgloss.NewStyle(), th.Error),
		button:         fg(lipgloss.NewStyle().Bold(true), th.Accent),
		buttonDisabled: fg(lipgloss.NewStyle().Faint(!noColor), th.Muted),
		muted:          fg(lipgloss.NewStyle(), th.Muted),
		status:         fg(lipgloss.NewStyle(), th.Accent),
		statusError:    fg(lipgloss.NewStyle(), th.Error),
		card:           border(th.Muted),
		cardTitle:      fg(lipgloss.NewStyle().Bold(true), th.Label),
		cardText:       fg(lipgloss.NewStyle(), th.Text),
		footerKey:      footerKey,
	}
}
