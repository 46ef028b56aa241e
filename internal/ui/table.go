package ui

import "strings"

// Table renders aligned columns with plain spacing, no borders. Column
// widths follow the widest cell.
type Table struct {
	cols   int
	rows   [][]string
	widths []int
}

const tablePadding = "  "

// NewTable creates a table with a fixed number of columns.
func NewTable(cols int) *Table {
	return &Table{cols: cols, widths: make([]int, cols)}
}

// AddRow appends one row. Cells beyond the column count are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, t.cols)
	for i := 0; i < t.cols && i < len(cells); i++ {
		row[i] = cells[i]
		if w := len(cells[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the rows left-aligned, with no padding after the last
// column.
func (t *Table) String() string {
	var sb strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(tablePadding)
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.widths[i]-len(cell)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
