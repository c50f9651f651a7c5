package dataset

import (
	"fmt"
	"strconv"
)

// Row holds the cell values of one dataset row, keyed by column name.
type Row map[string]Value

// RowIndex is an ordered collection of rows sharing one column set. Row
// order is preserved exactly as appended; archive and index.csv output
// follow this order.
type RowIndex struct {
	columns []string
	ids     []string
	rows    []Row
}

// NewRowIndex creates an empty index with the given column order.
func NewRowIndex(columns []string) (*RowIndex, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("row index needs at least one column")
	}

	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if col == "" {
			return nil, fmt.Errorf("column name must not be empty")
		}
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = struct{}{}
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return &RowIndex{columns: cols}, nil
}

// Append adds a row with its ordinal position as row ID.
func (x *RowIndex) Append(row Row) error {
	return x.AppendWithID(strconv.Itoa(len(x.rows)), row)
}

// AppendWithID adds a row under an explicit row ID. The row must cover
// exactly the index column set.
func (x *RowIndex) AppendWithID(id string, row Row) error {
	if id == "" {
		return fmt.Errorf("row id must not be empty")
	}
	if len(row) != len(x.columns) {
		return fmt.Errorf("row has %d cells, index has %d columns", len(row), len(x.columns))
	}
	for _, col := range x.columns {
		if _, ok := row[col]; !ok {
			return fmt.Errorf("row is missing column %q", col)
		}
	}

	x.ids = append(x.ids, id)
	x.rows = append(x.rows, row)
	return nil
}

// Len returns the number of rows.
func (x *RowIndex) Len() int {
	return len(x.rows)
}

// Columns returns the column names in index order.
func (x *RowIndex) Columns() []string {
	cols := make([]string, len(x.columns))
	copy(cols, x.columns)
	return cols
}

// Row returns the ID and cells of the row at position i.
func (x *RowIndex) Row(i int) (string, Row) {
	return x.ids[i], x.rows[i]
}

// HasColumn reports whether the index declares the named column.
func (x *RowIndex) HasColumn(name string) bool {
	for _, col := range x.columns {
		if col == name {
			return true
		}
	}
	return false
}

// Select returns a new index containing the rows at the given positions,
// in the given order. Row IDs follow the rows.
func (x *RowIndex) Select(positions []int) (*RowIndex, error) {
	out, err := NewRowIndex(x.columns)
	if err != nil {
		return nil, err
	}
	for _, i := range positions {
		if i < 0 || i >= len(x.rows) {
			return nil, fmt.Errorf("row position %d out of range [0, %d)", i, len(x.rows))
		}
		if err := out.AppendWithID(x.ids[i], x.rows[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
