package pager

import "github.com/rivo/uniseg"

// TabWidth is the distance between tab stops on the terminal.
const TabWidth = 8

// DisplayWidth returns the number of terminal columns s occupies. Wide
// characters count twice and a tab advances to the next tab stop.
func DisplayWidth(s string) int {
	col := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if gr.Str() == "\t" {
			col += TabWidth - col%TabWidth
			continue
		}
		col += gr.Width()
	}
	return col
}

// Rows returns how many terminal rows a line of the given display width
// takes when wrapped at cols columns. An empty line still takes one row.
func Rows(width, cols int) int {
	if cols < 1 {
		cols = 1
	}
	if width <= cols {
		return 1
	}
	return (width + cols - 1) / cols
}
