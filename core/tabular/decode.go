package tabular

import "fmt"

// Result is the outcome of decoding one row into a typed record.
type Result[T any] struct {
	Line   int
	Record T
	Err    error
}

// Decode converts every row with fn. Rows fn rejects keep their error and position.
func Decode[T any](doc *Document, fn func(Row) (T, error)) []Result[T] {
	out := make([]Result[T], 0, len(doc.Rows))
	for _, row := range doc.Rows {
		rec, err := fn(row)
		out = append(out, Result[T]{Line: row.Line, Record: rec, Err: err})
	}
	return out
}

// ColumnMap maps a logical field to the header name that carries it in a feed.
type ColumnMap map[string]string

// Merge returns a copy of m with the non-empty overrides applied.
func (m ColumnMap) Merge(overrides map[string]string) ColumnMap {
	out := make(ColumnMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Column returns the header name for a field, falling back to the field name.
func (m ColumnMap) Column(field string) string {
	if col, ok := m[field]; ok && col != "" {
		return col
	}
	return field
}

// Required returns the value of a field or ErrMissingValue when it is blank.
func Required(row Row, cols ColumnMap, field string) (string, error) {
	v := row.Get(cols.Column(field))
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingValue, field)
	}
	return v, nil
}
