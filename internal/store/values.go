package store

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	byteaPrefix        = `\x`
	timestampLayout    = "2006-01-02 15:04:05"
	timestampMicroPart = ".000000"
)

// exportValue converts a value scanned from SQLite into its JSON form.
//
// Numbers and valid UTF-8 text are kept as they are. Values JSON cannot carry
// are turned into strings: blobs and text that is not valid UTF-8 into
// PostgreSQL bytea hex input, non-finite floats into "+Inf"/"-Inf"/"NaN",
// times into "YYYY-MM-DD HH:MM:SS[.ffffff]" in UTC.
func exportValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if !utf8.ValidString(val) {
			return byteaPrefix + hex.EncodeToString([]byte(val))
		}
		return val
	case int64, bool:
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'g', -1, 64)
		}
		return val
	case []byte:
		return byteaPrefix + hex.EncodeToString(val)
	case time.Time:
		return formatTimestamp(val)
	default:
		return fmt.Sprint(val)
	}
}

// isInvalidText reports whether v is TEXT that exportValue hex-encodes.
func isInvalidText(v any) bool {
	s, ok := v.(string)
	return ok && !utf8.ValidString(s)
}

func formatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampLayout + timestampMicroPart)
}

// toTextValue converts a decoded bundle value into the text PostgreSQL
// receives for it. nil stays nil so the column gets NULL. Objects and arrays
// are sent as their JSON text, which fits json and jsonb columns.
func toTextValue(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case json.Number:
		return val.String(), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case int:
		return strconv.Itoa(val), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
