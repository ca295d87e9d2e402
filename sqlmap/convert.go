package sqlmap

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// DateTimeLayout is the text form used for every time value written to the database.
// It sorts lexicographically, so range filters on text columns work.
const DateTimeLayout = "2006-01-02 15:04:05"

// AsString returns the text form of v. Nil values, nil pointers and invalid
// sql.Null* values all yield "".
func AsString(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		return AsString(rv.Elem().Interface())
	}

	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.UTC().Format(DateTimeLayout)
	case decimal.Decimal:
		return x.String()
	case driver.Valuer:
		val, err := x.Value()
		if err != nil || val == nil {
			return ""
		}
		return AsString(val)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// AsInt converts v to an int, returning 0 when it cannot be parsed.
func AsInt(v any) int {
	return AsIntOr(v, 0)
}

// AsIntOr converts v to an int, returning def when it cannot be parsed.
func AsIntOr(v any, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(AsString(v)))
	if err != nil {
		return def
	}
	return n
}

// AsLong converts v to an int64, returning 0 when it cannot be parsed.
func AsLong(v any) int64 {
	return AsLongOr(v, 0)
}

// AsLongOr converts v to an int64, returning def when it cannot be parsed.
func AsLongOr(v any, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(AsString(v)), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// AsDecimal converts v to a decimal, returning zero when it cannot be parsed.
func AsDecimal(v any) decimal.Decimal {
	return AsDecimalOr(v, decimal.Zero)
}

// AsDecimalOr converts v to a decimal, returning def when it cannot be parsed.
func AsDecimalOr(v any, def decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(AsString(v)))
	if err != nil {
		return def
	}
	return d
}

// AsFloat converts v to a float32, returning 0 when it cannot be parsed.
func AsFloat(v any) float32 {
	return AsFloatOr(v, 0)
}

// AsFloatOr converts v to a float32, returning def when it cannot be parsed.
func AsFloatOr(v any, def float32) float32 {
	f, err := strconv.ParseFloat(strings.TrimSpace(AsString(v)), 32)
	if err != nil {
		return def
	}
	return float32(f)
}

// AsDouble converts v to a float64, returning 0 when it cannot be parsed.
func AsDouble(v any) float64 {
	return AsDoubleOr(v, 0)
}

// AsDoubleOr converts v to a float64, returning def when it cannot be parsed.
func AsDoubleOr(v any, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(AsString(v)), 64)
	if err != nil {
		return def
	}
	return f
}

// AsBool reports whether v is one of the literals "true", "True" or "1".
// Everything else, including "yes", is false.
func AsBool(v any) bool {
	return AsBoolOr(v, false)
}

// AsBoolOr maps "true"/"True"/"1" to true and "false"/"False"/"0" to false.
// Any other text yields def.
func AsBoolOr(v any, def bool) bool {
	switch AsString(v) {
	case "true", "True", "1":
		return true
	case "false", "False", "0":
		return false
	default:
		return def
	}
}

// AsDateTime converts v to a time, returning the zero time when it cannot be parsed.
func AsDateTime(v any) time.Time {
	return AsDateTimeOr(v, time.Time{})
}

// AsDateTimeOr converts v to a time, returning def when it cannot be parsed.
// Text is tried against DateTimeLayout, RFC 3339 and the layouts the SQLite
// driver writes.
func AsDateTimeOr(v any, def time.Time) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	if t, ok := v.(*time.Time); ok {
		if t == nil {
			return def
		}
		return *t
	}

	s := strings.TrimSpace(AsString(v))
	if s == "" {
		return def
	}
	for _, layout := range dateTimeLayouts() {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return def
}

func dateTimeLayouts() []string {
	layouts := []string{DateTimeLayout, time.RFC3339Nano, time.RFC3339}
	return append(layouts, sqlite3.SQLiteTimestampFormats...)
}
