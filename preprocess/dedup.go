package preprocess

import (
	"fmt"
	"strings"

	"github.com/Prototype-Group/sidekick/dataset"
	"github.com/Prototype-Group/sidekick/encode"
)

// RemoveDuplicateRows returns a new index with later copies of identical
// rows dropped. The first occurrence wins and row order is otherwise
// preserved. Two rows are identical when every cell matches by content,
// media cells included.
func RemoveDuplicateRows(index *dataset.RowIndex) (*dataset.RowIndex, error) {
	seen := make(map[string]struct{}, index.Len())
	keep := make([]int, 0, index.Len())

	for i := 0; i < index.Len(); i++ {
		_, row := index.Row(i)
		key, err := rowKey(index.Columns(), row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	return index.Select(keep)
}

func rowKey(columns []string, row dataset.Row) (string, error) {
	var b strings.Builder
	for _, col := range columns {
		cell, err := fingerprint(row[col])
		if err != nil {
			return "", fmt.Errorf("column %s: %w", col, err)
		}
		b.WriteString(cell)
		b.WriteByte(0)
	}
	return b.String(), nil
}

// fingerprint renders a cell to a comparable string. Scalars use their
// index cell text, paths their location, tensors their shape and data.
// Images are compared by encoded bytes.
func fingerprint(v dataset.Value) (string, error) {
	switch c := v.(type) {
	case dataset.Number:
		return fmt.Sprintf("n:%v", float64(c)), nil
	case dataset.Int:
		return fmt.Sprintf("i:%d", int64(c)), nil
	case dataset.String:
		return "s:" + string(c), nil
	case dataset.Path:
		return "p:" + string(c), nil
	case dataset.Tensor:
		return fmt.Sprintf("t:%v:%v", c.Shape, c.Data), nil
	case dataset.Image:
		data, err := encode.ImageEncoder{}.Encode(c.Image)
		if err != nil {
			return "", err
		}
		return "m:" + string(data), nil
	default:
		return "", fmt.Errorf("cannot fingerprint value of type %T", c)
	}
}
