// Package pagination normalizes paging and sorting requests for list queries.
//
// A Request is what the caller asked for. Normalize turns it into a Window the query can run:
// out of range values fall back to defaults and the sort key is resolved against an explicit
// set of sortable fields.
package pagination

import (
	"fmt"
	"strings"
)

const (
	DefaultRecordsNumber = 10
	MaxRecordsNumber     = 200
	FirstPage            = 1
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Request is a page request as received from a client. Nothing is validated on assignment.
type Request struct {
	Page          int
	RecordsNumber int
	SortBy        string
	SortDir       string
}

// Sortable maps the public name of a sortable field to its column.
type Sortable struct {
	fields       map[string]string
	defaultField string
}

// NewSortable returns the sortable fields of a list. defaultField must be one of fields.
func NewSortable(fields map[string]string, defaultField string) (Sortable, error) {
	normalized := make(map[string]string, len(fields))
	for name, column := range fields {
		normalized[strings.ToLower(name)] = column
	}
	if _, ok := normalized[strings.ToLower(defaultField)]; !ok {
		return Sortable{}, fmt.Errorf("default sort field %q is not sortable", defaultField)
	}
	return Sortable{fields: normalized, defaultField: strings.ToLower(defaultField)}, nil
}

// MustNewSortable is NewSortable for package level declarations.
func MustNewSortable(fields map[string]string, defaultField string) Sortable {
	s, err := NewSortable(fields, defaultField)
	if err != nil {
		panic(err)
	}
	return s
}

// Column resolves a field name, case-insensitively. Unknown and empty names resolve to the
// default field.
func (s Sortable) Column(field string) (name, column string) {
	name = strings.ToLower(strings.TrimSpace(field))
	if c, ok := s.fields[name]; ok {
		return name, c
	}
	return s.defaultField, s.fields[s.defaultField]
}

// Window is a normalized Request.
type Window struct {
	Page          int
	RecordsNumber int
	SortBy        string
	Column        string
	Direction     Direction
}

// Normalize applies the paging rules: pages start at 1, a non-positive size means
// DefaultRecordsNumber, sizes above MaxRecordsNumber are capped, and anything but "desc"
// sorts ascending.
func Normalize(r Request, sortable Sortable) Window {
	w := Window{
		Page:          max(r.Page, FirstPage),
		RecordsNumber: r.RecordsNumber,
		Direction:     Asc,
	}

	switch {
	case w.RecordsNumber <= 0:
		w.RecordsNumber = DefaultRecordsNumber
	case w.RecordsNumber > MaxRecordsNumber:
		w.RecordsNumber = MaxRecordsNumber
	}

	if strings.EqualFold(strings.TrimSpace(r.SortDir), string(Desc)) {
		w.Direction = Desc
	}

	w.SortBy, w.Column = sortable.Column(r.SortBy)
	return w
}

func (w Window) Offset() int {
	return (w.Page - 1) * w.RecordsNumber
}

func (w Window) Limit() int {
	return w.RecordsNumber
}

// OrderBy renders the ORDER BY term. The column comes from a Sortable, never from input.
func (w Window) OrderBy() string {
	return fmt.Sprintf("%s %s", w.Column, strings.ToUpper(string(w.Direction)))
}

// TotalPages returns how many pages total records fill. It is at least 1.
func (w Window) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + w.RecordsNumber - 1) / w.RecordsNumber
}
