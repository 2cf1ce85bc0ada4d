package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/ui/style"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(style.Accent).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(style.Slate)
)

var tableHeaders = []string{"COMPLEX", "GRADING", "OPERATOR", "DIM H", "DOMAIN"}

// grading renders the key's grading segment, "v4_l3" or "v2_l1_h3".
func grading(key domain.GradingKey) string {
	return strings.TrimPrefix(key.String(), key.SubType()+"/")
}

// cohomologyTable renders entries as a bordered table for terminals.
func cohomologyTable(entries []domain.CohomologyEntry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(tableHeaders...)

	for _, e := range entries {
		t.Row(
			e.Key.SubType(),
			grading(e.Key),
			string(e.Kind),
			fmt.Sprintf("%d", e.Dimension),
			e.Domain.String(),
		)
	}

	return t.Render()
}

// cohomologyTSV renders entries as tab-delimited rows for CI logs and
// pipelines.
func cohomologyTSV(entries []domain.CohomologyEntry) string {
	var b strings.Builder
	b.WriteString(strings.Join(tableHeaders, "\t"))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s\t%s\t%s\t%d\t%s",
			e.Key.SubType(),
			grading(e.Key),
			e.Kind,
			e.Dimension,
			e.Domain.String())
	}
	return b.String()
}
