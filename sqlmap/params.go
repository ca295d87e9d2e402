package sqlmap

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Params maps parameter names to values. Names may carry the placeholder
// prefix used in the SQL text ($name, :name, @name) or be bare.
type Params map[string]any

// paramName strips the placeholder prefix from a parameter key.
func paramName(key string) string {
	return strings.TrimLeft(key, "$:@")
}

// sortedNames returns the bare parameter names, longest first so that
// $id is never substituted inside $idx.
func (p Params) sortedNames() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		ni, nj := paramName(names[i]), paramName(names[j])
		if len(ni) != len(nj) {
			return len(ni) > len(nj)
		}
		return ni < nj
	})
	return names
}

// args converts p into named arguments for database/sql.
func (p Params) args() []any {
	if len(p) == 0 {
		return nil
	}
	args := make([]any, 0, len(p))
	for _, key := range p.sortedNames() {
		args = append(args, sql.Named(paramName(key), bindParameter(p[key])))
	}
	return args
}

// bindParameter maps a Go value onto one of SQLite's storage classes:
// INTEGER (int64), REAL (float64), BLOB ([]byte) or TEXT (string).
func bindParameter(value any) any {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return bindParameter(rv.Elem().Interface())
	}

	switch x := value.(type) {
	case nil:
		return nil
	case string:
		return x
	case []byte:
		return x
	case float64:
		return x
	case float32:
		return float64(x)
	case decimal.Decimal:
		return x.String()
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		if uint64(x) > 1<<63-1 {
			return fmt.Sprint(x)
		}
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x > 1<<63-1 {
			return fmt.Sprint(x)
		}
		return int64(x)
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case time.Time:
		return x.UTC().Format(DateTimeLayout)
	case time.Duration:
		return x.String()
	case uuid.UUID:
		return x.String()
	case driver.Valuer:
		val, err := x.Value()
		if err != nil {
			return AsString(value)
		}
		return bindParameter(val)
	default:
		return AsString(value)
	}
}

// expandStatement substitutes quoted parameter values into query, for logging.
func expandStatement(query string, p Params) string {
	if len(p) == 0 {
		return query
	}
	for _, key := range p.sortedNames() {
		name := paramName(key)
		literal := "'" + AsString(bindParameter(p[key])) + "'"
		for _, prefix := range []string{"$", ":", "@"} {
			query = strings.ReplaceAll(query, prefix+name, literal)
		}
	}
	return query
}
