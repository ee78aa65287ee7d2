package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	countStyle  = cellStyle.Align(lipgloss.Right)
)

// ArchSummary holds the collection counters of one architecture.
type ArchSummary struct {
	Arch       string
	Scanned    int
	Parsed     int
	Broken     int
	Skipped    int
	Unexpected int
}

// summaryColumns are the table headers; every column after the first is a count.
var summaryColumns = []string{"ARCH", "FILES", "PARSED", "BROKEN", "SKIPPED", "UNEXPECTED"}

// brokenColumn is highlighted when non-zero.
const brokenColumn = 3

// RenderCollectSummary renders per-architecture collection counts, one row
// per architecture in collection order.
func RenderCollectSummary(rows []ArchSummary) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Arch,
			strconv.Itoa(r.Scanned),
			strconv.Itoa(r.Parsed),
			strconv.Itoa(r.Broken),
			strconv.Itoa(r.Skipped),
			strconv.Itoa(r.Unexpected),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		Headers(summaryColumns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cellStyle
			case col == brokenColumn && cells[row][col] != "0":
				return countStyle.Foreground(ColorRed)
			default:
				return countStyle
			}
		})

	return t.String()
}
