package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TableExport holds every row of one exported table.
type TableExport struct {
	// Name is the table name as found in the source database.
	Name string

	// Columns lists the table's columns in table order. It is known even
	// for tables without rows when the bundle was produced by an export;
	// a decoded bundle derives it from the first record.
	Columns []string

	// Records holds one entry per row.
	Records []Record
}

// Bundle is the full export: an ordered mapping from table name to records.
//
// The JSON form is a single object {"table": [{"column": value, ...}, ...]}.
// Table order is preserved, so an export listed by name stays sorted.
type Bundle struct {
	Tables []TableExport
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{Tables: make([]TableExport, 0)}
}

// Add appends a table to the bundle.
func (b *Bundle) Add(table TableExport) {
	b.Tables = append(b.Tables, table)
}

// Table looks up a table by name.
func (b *Bundle) Table(name string) (TableExport, bool) {
	for _, t := range b.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableExport{}, false
}

// TableNames returns table names in bundle order.
func (b *Bundle) TableNames() []string {
	names := make([]string, 0, len(b.Tables))
	for _, t := range b.Tables {
		names = append(names, t.Name)
	}
	return names
}

// TotalRecords returns the number of records across all tables.
func (b *Bundle) TotalRecords() int {
	total := 0
	for _, t := range b.Tables {
		total += len(t.Records)
	}
	return total
}

// MarshalJSON implements json.Marshaler.
func (b Bundle) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, table := range b.Tables {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(buf, table.Name); err != nil {
			return nil, err
		}
		buf.WriteString(":[")
		for j, record := range table.Records {
			if j > 0 {
				buf.WriteByte(',')
			}
			raw, err := record.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("table %q row %d: %w", table.Name, j, err)
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler keeping table order.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	tables := make([]TableExport, 0)
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}

		var records []Record
		if err = dec.Decode(&records); err != nil {
			return fmt.Errorf("decoding table %q: %w", name, err)
		}
		if records == nil {
			records = make([]Record, 0)
		}

		table := TableExport{Name: name, Records: records}
		if len(records) > 0 {
			table.Columns = records[0].Columns
		}
		tables = append(tables, table)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	b.Tables = tables
	return nil
}
