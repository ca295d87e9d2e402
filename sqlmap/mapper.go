// Package sqlmap maps tabular query results onto plain structs and builds
// INSERT/UPDATE statements from them.
//
// Columns match exported fields by exact, case-sensitive name. The struct tag
// `sqlmap:"Column"` renames the column, `sqlmap:",skip"` keeps a field out of
// generated statements (auto-number keys) and `sqlmap:"-"` ignores it.
package sqlmap

import (
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotStruct is returned when the target type is not a struct.
	ErrNotStruct = errors.New("sqlmap: target type is not a struct")
	// ErrNilPOCO is returned when a statement is built from a nil pointer.
	ErrNilPOCO = errors.New("sqlmap: nil object")
	// ErrNoFields is returned when a statement would have no columns.
	ErrNoFields = errors.New("sqlmap: no fields to write")
)

const tagName = "sqlmap"

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
)

// Field describes one mapped struct field.
type Field struct {
	Name   string
	Column string
	Skip   bool
	Index  []int
	Type   reflect.Type
}

// fieldCache holds []Field per reflect.Type for the life of the process.
var fieldCache sync.Map

// Fields returns the mapped fields of T.
func Fields[T any]() ([]Field, error) {
	return fieldsFor(reflect.TypeOf((*T)(nil)).Elem())
}

func fieldsFor(t reflect.Type) ([]Field, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field), nil
	}

	var fields []Field
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}
		// promoted fields of embedded structs are visited on their own
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Type != timeType && sf.Type != decimalType {
			continue
		}

		column, skip, ignore := parseTag(sf)
		if ignore {
			continue
		}
		fields = append(fields, Field{
			Name:   sf.Name,
			Column: column,
			Skip:   skip,
			Index:  sf.Index,
			Type:   sf.Type,
		})
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]Field), nil
}

func parseTag(sf reflect.StructField) (column string, skip bool, ignore bool) {
	tag, ok := sf.Tag.Lookup(tagName)
	if !ok {
		return sf.Name, false, false
	}
	if tag == "-" {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	column = strings.TrimSpace(parts[0])
	if column == "" {
		column = sf.Name
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "skip" {
			skip = true
		}
	}
	return column, skip, false
}

// ToList converts every row of t into a new T. Fields without a matching
// column keep their zero value and unmatched columns are ignored. T may be
// a struct or a pointer to one; pointers are allocated per row.
func ToList[T any](t *Table) ([]T, error) {
	fields, err := Fields[T]()
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(rowsOf(t)))
	for _, row := range rowsOf(t) {
		var item T
		v := reflect.ValueOf(&item).Elem()
		if v.Kind() == reflect.Ptr {
			v.Set(reflect.New(v.Type().Elem()))
			v = v.Elem()
		}
		fillStruct(v, t, row, fields)
		result = append(result, item)
	}
	return result, nil
}

func rowsOf(t *Table) []Row {
	if t.IsEmpty() {
		return nil
	}
	return t.Rows
}

func fillStruct(v reflect.Value, t *Table, row Row, fields []Field) {
	for _, f := range fields {
		idx, ok := t.columnIndex(f.Column)
		if !ok || idx >= len(row) {
			continue
		}
		fv, ok := fieldByIndex(v, f.Index)
		if !ok {
			continue
		}
		setValue(fv, row[idx])
	}
}

// fieldByIndex walks an index path, allocating nil embedded pointers on the way.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, v.CanSet()
}

// setValue coerces cell into the field. Cells that do not parse leave the
// field at its zero value.
func setValue(fv reflect.Value, cell any) {
	switch fv.Type() {
	case timeType:
		fv.Set(reflect.ValueOf(AsDateTime(cell)))
		return
	case decimalType:
		fv.Set(reflect.ValueOf(AsDecimal(cell)))
		return
	}

	switch fv.Kind() {
	case reflect.Ptr:
		if cell == nil {
			return
		}
		elem := reflect.New(fv.Type().Elem())
		setValue(elem.Elem(), cell)
		fv.Set(elem)
	case reflect.Float64:
		fv.SetFloat(AsDouble(cell))
	case reflect.Float32:
		fv.SetFloat(float64(AsFloat(cell)))
	case reflect.Int64:
		fv.SetInt(AsLong(cell))
	case reflect.Int, reflect.Int32, reflect.Int16, reflect.Int8:
		n := AsLong(cell)
		if fv.OverflowInt(n) {
			n = 0
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		n := AsLong(cell)
		if n < 0 || fv.OverflowUint(uint64(n)) {
			n = 0
		}
		fv.SetUint(uint64(n))
	case reflect.Bool:
		fv.SetBool(AsBool(cell))
	case reflect.String:
		fv.SetString(AsString(cell))
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			fv.SetBytes([]byte(AsString(cell)))
		}
	default:
		if fv.CanAddr() && fv.Addr().Type().Implements(scannerType) {
			// a failed Scan leaves the zero value in place
			target := reflect.New(fv.Type())
			if err := target.Interface().(sql.Scanner).Scan(cell); err == nil {
				fv.Set(target.Elem())
			}
			return
		}
		if cell != nil {
			cv := reflect.ValueOf(cell)
			if cv.Type().AssignableTo(fv.Type()) {
				fv.Set(cv)
			}
		}
	}
}
