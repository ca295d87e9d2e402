package sqlmap

import (
	"database/sql"
	"fmt"
	"strings"
)

// Row holds the cell values of one result row, in column order.
type Row []any

// Table is a fully materialised query result.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

// NewTable builds a table from column names and rows.
func NewTable(columns []string, rows ...Row) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.buildIndex()
	return t
}

// LoadTable reads every remaining row of rows into a Table. It does not close rows.
func LoadTable(rows *sql.Rows) (*Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	t := NewTable(columns)
	for rows.Next() {
		cells := make(Row, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		t.Rows = append(t.Rows, cells)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return t, nil
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// IsEmpty reports whether the table is nil or holds no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Has reports whether the table has a column with exactly this name.
func (t *Table) Has(column string) bool {
	_, ok := t.columnIndex(column)
	return ok
}

// Value returns the cell at row i in the named column, or nil.
func (t *Table) Value(i int, column string) any {
	idx, ok := t.columnIndex(column)
	if !ok || i < 0 || i >= len(t.Rows) {
		return nil
	}
	row := t.Rows[i]
	if idx >= len(row) {
		return nil
	}
	return row[idx]
}

func (t *Table) columnIndex(column string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if t.index == nil {
		t.buildIndex()
	}
	idx, ok := t.index[column]
	return idx, ok
}

// ToLines renders each row as its cell values followed by commas.
// An empty table yields nil.
func (t *Table) ToLines() []string {
	if t.IsEmpty() {
		return nil
	}

	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		var sb strings.Builder
		for i := range t.Columns {
			var cell any
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(AsString(cell))
			sb.WriteByte(',')
		}
		lines = append(lines, sb.String())
	}
	return lines
}
