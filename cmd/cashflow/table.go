package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

type cell struct {
	text  string
	style lipgloss.Style
}

// writeTable left-aligns columns by the display width of the plain text and
// styles each cell after padding is measured, so colour codes never shift a
// column.
func writeTable(out io.Writer, rows [][]cell) {
	var widths []int
	for _, row := range rows {
		for i, c := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c.text))
		}
	}

	for _, row := range rows {
		var line strings.Builder
		for i, c := range row {
			if i > 0 {
				line.WriteString(columnGap)
			}
			if c.text != "" {
				line.WriteString(c.style.Render(c.text))
			}
			if i < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c.text)))
			}
		}
		fmt.Fprintln(out, strings.TrimRight(line.String(), " "))
	}
}
