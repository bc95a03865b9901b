package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDocument is returned when a document has no header line.
	ErrEmptyDocument = errors.New("document has no header")
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("required column missing")
	// ErrMissingValue marks a row whose required cell is empty.
	ErrMissingValue = errors.New("required value missing")
)

// ParseError reports a structurally broken document. It aborts the whole run.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse document: %s: %v", e.Reason, e.Err)
	}
	return "parse document: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// RowError reports one malformed line that was dropped.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Options controls how lines are split into cells.
type Options struct {
	// Delimiter separates cells; defaults to ','.
	Delimiter rune
}

// Row is one successfully split data line.
type Row struct {
	// Line is the 1-based position of the row among the parsed lines (header is line 1).
	Line   int
	fields []string
	header *Header
}

// Get returns the trimmed cell for the given header name, or "" when absent.
func (r Row) Get(column string) string {
	idx, ok := r.header.Index(column)
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// Header maps normalized column names to positions.
type Header struct {
	Names []string
	index map[string]int
}

// Index returns the position of a column, matched case-insensitively.
func (h *Header) Index(column string) (int, bool) {
	idx, ok := h.index[normalizeName(column)]
	return idx, ok
}

// Has reports whether the header contains the column.
func (h *Header) Has(column string) bool {
	_, ok := h.Index(column)
	return ok
}

// Document is a parsed table.
type Document struct {
	Header    *Header
	Rows      []Row
	Malformed []RowError
}

// Require returns a ParseError when any of the columns is missing from the header.
func (d *Document) Require(columns ...string) error {
	var missing []string
	for _, col := range columns {
		if !d.Header.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &ParseError{Reason: fmt.Sprintf("header lacks %s", strings.Join(missing, ", ")), Err: ErrMissingColumn}
	}
	return nil
}

// Parse turns header-first lines into a Document. Data lines are parsed one by one
// so that a malformed line is dropped without affecting its neighbours.
func Parse(lines []string, opts Options) (*Document, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, &ParseError{Reason: "missing header", Err: ErrEmptyDocument}
	}

	header, err := parseHeader(lines[0], opts.Delimiter)
	if err != nil {
		return nil, err
	}

	doc := &Document{Header: header, Rows: make([]Row, 0, len(lines)-1)}
	for i, line := range lines[1:] {
		lineNo := i + 2
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, err := splitLine(line, opts.Delimiter)
		if err != nil {
			doc.Malformed = append(doc.Malformed, RowError{Line: lineNo, Err: err})
			continue
		}
		if len(fields) > len(header.Names) {
			doc.Malformed = append(doc.Malformed, RowError{
				Line: lineNo,
				Err:  fmt.Errorf("got %d fields, header has %d", len(fields), len(header.Names)),
			})
			continue
		}
		doc.Rows = append(doc.Rows, Row{Line: lineNo, fields: fields, header: header})
	}

	return doc, nil
}

// parseHeader splits and repairs the header line. One vendor header variant ships an
// unbalanced quote; when strict parsing fails the line is re-split on the delimiter.
func parseHeader(line string, delim rune) (*Header, error) {
	line = strings.TrimPrefix(line, "\ufeff")

	names, err := splitLine(line, delim)
	if err != nil {
		names = strings.Split(line, string(delim))
	}

	h := &Header{Names: make([]string, 0, len(names)), index: make(map[string]int, len(names))}
	for i, name := range names {
		name = strings.TrimSpace(strings.ReplaceAll(name, `"`, ""))
		h.Names = append(h.Names, name)
		key := normalizeName(name)
		if key == "" {
			continue
		}
		if _, dup := h.index[key]; !dup {
			h.index[key] = i
		}
	}
	if len(h.index) == 0 {
		return nil, &ParseError{Reason: "header has no named columns", Err: ErrEmptyDocument}
	}
	return h, nil
}

func splitLine(line string, delim rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.FieldsPerRecord = -1
	return r.Read()
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
