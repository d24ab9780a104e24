package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

type columnKind int

const (
	textColumn columnKind = iota
	integerColumn
	floatColumn
	referenceColumn
)

type column struct {
	name string
	kind columnKind
}

// table describes the writable columns of an entity. Anything not listed,
// including id, cannot be set through a Fields value.
type table struct {
	name    string
	columns []column
}

var (
	genreTable = table{
		name:    "genre",
		columns: []column{{name: "name", kind: textColumn}},
	}
	directorTable = table{
		name:    "director",
		columns: []column{{name: "name", kind: textColumn}},
	}
	movieTable = table{
		name: "movie",
		columns: []column{
			{name: "title", kind: textColumn},
			{name: "description", kind: textColumn},
			{name: "trailer", kind: textColumn},
			{name: "year", kind: integerColumn},
			{name: "rating", kind: floatColumn},
			{name: "genre_id", kind: referenceColumn},
			{name: "director_id", kind: referenceColumn},
		},
	}
)

// Fields holds validated column assignments for a create or partial update.
// A nil value stores NULL.
type Fields map[string]any

// ParseMovieFields validates a decoded JSON object against the movie columns.
func ParseMovieFields(raw map[string]json.RawMessage) (Fields, error) {
	return movieTable.parse(raw)
}

// ParseDirectorFields validates a decoded JSON object against the director columns.
func ParseDirectorFields(raw map[string]json.RawMessage) (Fields, error) {
	return directorTable.parse(raw)
}

// ParseGenreFields validates a decoded JSON object against the genre columns.
func ParseGenreFields(raw map[string]json.RawMessage) (Fields, error) {
	return genreTable.parse(raw)
}

func (t table) column(name string) (column, bool) {
	for _, c := range t.columns {
		if c.name == name {
			return c, true
		}
	}
	return column{}, false
}

func (t table) parse(raw map[string]json.RawMessage) (Fields, error) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make(Fields, len(raw))
	for _, key := range keys {
		c, ok := t.column(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, key)
		}
		value, err := c.decode(raw[key])
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidInput, key, err)
		}
		fields[key] = value
	}
	return fields, nil
}

func (c column) decode(raw json.RawMessage) (any, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	switch c.kind {
	case textColumn:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.New("expected a string")
		}
		if strings.ContainsRune(v, 0) {
			return nil, errors.New("expected a string without NUL bytes")
		}
		return v, nil
	case integerColumn:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.New("expected an integer")
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, errors.New("integer out of range")
		}
		return v, nil
	case floatColumn:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.New("expected a number")
		}
		return v, nil
	case referenceColumn:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.New("expected an integer id")
		}
		if v <= 0 {
			return nil, errors.New("expected a positive id")
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported column kind %d", c.kind)
}

// columns returns the assigned column names in table order so generated SQL
// is stable.
func (f Fields) columns(t table) []string {
	names := make([]string, 0, len(f))
	for _, c := range t.columns {
		if _, ok := f[c.name]; ok {
			names = append(names, c.name)
		}
	}
	return names
}
