// backend-go/internal/catalog/table.go
package catalog

import "github.com/procuresmart/backend-go/internal/domain"

// Table is an in-memory tabular dataset with a canonical header.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

func NewTable(name string, columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, ok := index[col]; !ok {
			index[col] = i
		}
	}
	return &Table{Name: name, Columns: columns, Rows: rows, index: index}
}

// EmptyTable returns a table with no columns and no rows.
func EmptyTable(name string) *Table {
	return NewTable(name, nil, nil)
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the cell for the named column, or "" when the column is
// missing or the row is short.
func (t *Table) Value(row []string, column string) string {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// RequireColumns reports a SchemaError for the first missing column.
// Detection is lazy, at query time, so a table that is never consumed
// may carry any shape.
func (t *Table) RequireColumns(columns ...string) error {
	for _, col := range columns {
		if !t.HasColumn(col) {
			return &domain.SchemaError{Table: t.Name, Column: col}
		}
	}
	return nil
}
