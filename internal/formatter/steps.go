package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StepTable aligns rows into space separated columns. Widths are measured in
// terminal cells so wide runes in keys line up. The last column is not padded.
func StepTable(rows [][]string) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(row)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
