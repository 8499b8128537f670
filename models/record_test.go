package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalJSON_PreservesColumnOrder(t *testing.T) {
	r := NewRecord([]string{"zeta", "alpha", "mid"}, []any{int64(1), "a", nil})

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"a","mid":null}`, string(raw))
}

func TestRecord_MarshalJSON_NoHTMLEscaping(t *testing.T) {
	r := NewRecord([]string{"nombre"}, []any{"<Pérez & Cía>"})

	raw, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"nombre":"<Pérez & Cía>"}`, string(raw))
}

func TestRecord_MarshalJSON_MismatchedLengths(t *testing.T) {
	r := Record{Columns: []string{"a", "b"}, Values: []any{1}}

	_, err := r.MarshalJSON()
	require.Error(t, err)
}

func TestRecord_MarshalJSON_Empty(t *testing.T) {
	raw, err := Record{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(raw))
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantColumns []string
		wantValues  []any
		wantErr     bool
	}{
		{
			name:        "keeps key order",
			input:       `{"b": 1, "a": "x", "c": null}`,
			wantColumns: []string{"b", "a", "c"},
			wantValues:  []any{json.Number("1"), "x", nil},
		},
		{
			name:        "large integer kept exact",
			input:       `{"id": 9007199254740993}`,
			wantColumns: []string{"id"},
			wantValues:  []any{json.Number("9007199254740993")},
		},
		{
			name:        "duplicate key keeps first position and last value",
			input:       `{"a": 1, "b": 2, "a": 3}`,
			wantColumns: []string{"a", "b"},
			wantValues:  []any{json.Number("3"), json.Number("2")},
		},
		{
			name:        "empty object",
			input:       `{}`,
			wantColumns: []string{},
			wantValues:  []any{},
		},
		{
			name:    "array is rejected",
			input:   `[1, 2]`,
			wantErr: true,
		},
		{
			name:    "truncated object",
			input:   `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantColumns, r.Columns)
			assert.Equal(t, tt.wantValues, r.Values)
		})
	}
}

func TestRecord_Get(t *testing.T) {
	r := NewRecord([]string{"id", "nombre"}, []any{int64(7), "Ruta 1"})

	v, ok := r.Get("nombre")
	assert.True(t, ok)
	assert.Equal(t, "Ruta 1", v)

	_, ok = r.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, r.Len())
}
