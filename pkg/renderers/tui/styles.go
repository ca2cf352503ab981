package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-cardioform/pkg/model"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Status      lipgloss.Style
	Probability lipgloss.Style
	pills       map[model.RiskClass]lipgloss.Style
}

var defaultPalette = map[string]string{
	"text":          "#1f2933",
	"accent":        "#c0392b",
	"risk-low":      "#2e7d32",
	"risk-moderate": "#ef6c00",
	"risk-high":     "#c62828",
}

// NewStyles builds styles from theme tokens, falling back to the built-in
// palette for any token that is absent.
func NewStyles(tokens map[string]string) Styles {
	color := func(key string) lipgloss.Color {
		if value, ok := tokens[key]; ok && value != "" {
			return lipgloss.Color(value)
		}
		return lipgloss.Color(defaultPalette[key])
	}

	pill := func(key string) lipgloss.Style {
		return lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#ffffff")).
			Background(color(key))
	}

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(color("accent")),
		Label:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(color("accent")),
		Status:      lipgloss.NewStyle().Bold(true).Foreground(color("text")),
		Probability: lipgloss.NewStyle().Bold(true),
		pills: map[model.RiskClass]lipgloss.Style{
			model.RiskLow:      pill("risk-low"),
			model.RiskModerate: pill("risk-moderate"),
			model.RiskHigh:     pill("risk-high"),
		},
	}
}

// Pill returns the style for a risk class. Unknown risk gets a plain pill.
func (s Styles) Pill(class model.RiskClass) lipgloss.Style {
	if style, ok := s.pills[class]; ok {
		return style
	}
	return lipgloss.NewStyle().Padding(0, 1).Reverse(true)
}
