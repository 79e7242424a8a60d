package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ReadingRow is one line of the status report.
type ReadingRow struct {
	Label string
	Value string
	Unit  string
	// Missing marks a value that could not be determined.
	Missing bool
}

// labelWidth fits the longest label, "Temperature".
const labelWidth = 12

// RenderReadings renders rows as an aligned, colored list under title.
func RenderReadings(title string, rows []ReadingRow) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(ColorMuted)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	unitStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	okStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle := lipgloss.NewStyle().Foreground(ColorWarning)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for _, row := range rows {
		bullet := okStyle.Render(SymbolComplete)
		value := valueStyle.Render(row.Value)
		if row.Missing {
			bullet = warnStyle.Render(SymbolUnknown)
			value = warnStyle.Render(row.Value)
		}
		b.WriteString("  ")
		b.WriteString(bullet)
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(row.Label))
		b.WriteString(value)
		if row.Unit != "" {
			b.WriteString(" ")
			b.WriteString(unitStyle.Render(row.Unit))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReadingsPlain renders rows as "label: value unit" lines without
// styling, for pipes and log files.
func RenderReadingsPlain(rows []ReadingRow) string {
	var b strings.Builder
	for _, row := range rows {
		line := fmt.Sprintf("%s: %s", strings.ToLower(row.Label), row.Value)
		if row.Unit != "" {
			line += " " + row.Unit
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderFailure renders a failed check line, e.g. "✗ sensor: <msg>".
func RenderFailure(what, msg string) string {
	errStyle := lipgloss.NewStyle().Foreground(ColorError)
	return errStyle.Render(SymbolFail) + " " + what + ": " + msg
}
