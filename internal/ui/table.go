package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."
const tableColumnGap = 2

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as a left-aligned table.
// Styled cells are measured by their visible width.
func FormatTable(headers []string, rows [][]string) string {
	normalizedHeaders := normalizeRow(headers)
	normalizedRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalizedRows = append(normalizedRows, normalizeRow(row))
	}

	widths := make([]int, len(normalizedHeaders))
	for i, header := range normalizedHeaders {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range normalizedRows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if width := lipgloss.Width(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			padding := widths[i] - lipgloss.Width(cell)
			builder.WriteString(strings.Repeat(" ", padding+tableColumnGap))
		}
		builder.WriteByte('\n')
	}

	writeRow(normalizedHeaders)
	for _, row := range normalizedRows {
		writeRow(row)
	}

	return builder.String()
}

// TruncateTableCell limits cell width while preserving styling.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if lipgloss.Width(value) <= tableCellMaxWidth {
		return value
	}
	return truncate.StringWithTail(value, tableCellMaxWidth, tableCellEllipsis)
}

func normalizeRow(row []string) []string {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = normalizeTableCell(cell)
	}
	return normalized
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}
