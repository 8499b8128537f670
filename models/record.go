package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotJSONObject is returned when a record or bundle payload does not start
// with a JSON object.
var ErrNotJSONObject = errors.New("expected a JSON object")

// Record is a single exported table row: an ordered mapping from column name
// to the raw column value.
//
// Values are JSON-native (nil, bool, int64, float64, string, json.Number).
// Column order is preserved on both encoding and decoding.
type Record struct {
	// Columns holds the column names in table order.
	Columns []string

	// Values holds one value per entry of Columns.
	Values []any
}

// NewRecord builds a Record from parallel column and value slices.
func NewRecord(columns []string, values []any) Record {
	return Record{Columns: columns, Values: values}
}

// Get returns the value stored under column and whether the column exists.
func (r Record) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Len returns the number of columns in the record.
func (r Record) Len() int {
	return len(r.Columns)
}

// MarshalJSON encodes the record as a JSON object whose keys follow Columns.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Columns) != len(r.Values) {
		return nil, fmt.Errorf("record has %d columns and %d values", len(r.Columns), len(r.Values))
	}

	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, column := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(buf, column); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(buf, r.Values[i]); err != nil {
			return nil, fmt.Errorf("column %q: %w", column, err)
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order. Numbers are kept
// as json.Number so integers survive without float rounding.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	columns := make([]string, 0, 8)
	values := make([]any, 0, 8)
	index := make(map[string]int, 8)

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}

		var value any
		if err = dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding value of %q: %w", key, err)
		}

		// last duplicate wins, position of the first one is kept
		if i, ok := index[key]; ok {
			values[i] = value
			continue
		}
		index[key] = len(columns)
		columns = append(columns, key)
		values = append(values, value)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	r.Columns = columns
	r.Values = values
	return nil
}

// writeJSONValue encodes v without HTML escaping so that text columns keep
// characters like '<' and '&' verbatim.
func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always terminates with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		if want == '{' {
			return ErrNotJSONObject
		}
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
