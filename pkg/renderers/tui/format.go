package tui

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/render"
)

const bannerSeparator = " · "

// FormatBanner renders the error banner line.
func FormatBanner(styles Styles, label, message string) string {
	return styles.Error.Render(label) + bannerSeparator + message
}

// FormatSummary renders a result summary as a block of lines.
func FormatSummary(styles Styles, summary model.Summary) string {
	var b strings.Builder
	b.WriteString(styles.Status.Render(summary.Status))
	b.WriteString("  ")
	b.WriteString(styles.Pill(summary.RiskClass).Render(summary.RiskLabel))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Risk classification: " + summary.RiskLabel))
	b.WriteString("\n")
	b.WriteString(styles.Probability.Render(summary.Probability))
	b.WriteString("  ")
	b.WriteString(styles.Muted.Render(summary.ProbabilityCaption))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render(summary.InterpretationLead))
	b.WriteString(" ")
	b.WriteString(summary.InterpretationNote)
	return b.String()
}

// FormatPage renders a page snapshot as plain terminal text.
func FormatPage(styles Styles, page *render.Page) string {
	var b strings.Builder
	if page.Title != "" {
		b.WriteString(styles.Title.Render(page.Title))
		b.WriteString("\n\n")
	}
	for _, field := range page.Fields {
		value := field.Value
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		b.WriteString(styles.Label.Render(field.Label))
		b.WriteString(": ")
		b.WriteString(value)
		if helper := plainText(field.Helper); helper != "" {
			b.WriteString("  ")
			b.WriteString(styles.Muted.Render(helper))
		}
		b.WriteString("\n")
	}
	if page.Banner.Visible {
		b.WriteString("\n")
		b.WriteString(FormatBanner(styles, page.Banner.Label, page.Banner.Message))
		b.WriteString("\n")
	}
	if page.Result.Summary != nil {
		b.WriteString("\n")
		b.WriteString(FormatSummary(styles, *page.Result.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

// plainText strips markup from helper text; terminals show it verbatim.
func plainText(text string) string {
	return strings.TrimSpace(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(text)))
}
