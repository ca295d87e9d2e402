package sqlmap

import (
	"database/sql/driver"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type valueClass int

const (
	classNull valueClass = iota
	classNumber
	classBool
	classText
)

// PrepValue doubles single quotes so s can sit inside a SQL string literal.
func PrepValue(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// BuildInsert derives an INSERT statement for table from the fields of poco.
// Skipped and nil fields are left out; numbers are written as quoted text,
// booleans as 1/0.
func BuildInsert[T any](poco T, table string) (string, error) {
	cols, err := writableColumns(poco)
	if err != nil {
		return "", err
	}

	names := make([]string, len(cols))
	values := make([]string, len(cols))
	for i, c := range cols {
		names[i] = "[" + c.column + "]"
		switch c.class {
		case classBool:
			values[i] = c.text
		default:
			values[i] = "'" + PrepValue(c.text) + "'"
		}
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + table + "\n")
	sb.WriteString("(" + strings.Join(names, ",") + ")\n")
	sb.WriteString(" VALUES \n")
	sb.WriteString("(" + strings.Join(values, ", \n") + ");\n")
	return sb.String(), nil
}

// BuildUpdate derives an UPDATE statement for table from the fields of poco.
// where is appended verbatim when it is not blank.
func BuildUpdate[T any](poco T, table, where string) (string, error) {
	cols, err := writableColumns(poco)
	if err != nil {
		return "", err
	}

	assignments := make([]string, len(cols))
	for i, c := range cols {
		switch c.class {
		case classNumber, classBool:
			assignments[i] = "[" + c.column + "] = " + c.text
		default:
			assignments[i] = "[" + c.column + "] = '" + PrepValue(c.text) + "'"
		}
	}

	var sb strings.Builder
	sb.WriteString("UPDATE " + table + "\n")
	sb.WriteString("SET " + strings.Join(assignments, ","))

	where = strings.TrimSuffix(strings.TrimSpace(where), ";")
	if where == "" {
		sb.WriteString(";\n")
	} else {
		sb.WriteString("\n" + where + ";\n")
	}
	return sb.String(), nil
}

type columnValue struct {
	column string
	text   string
	class  valueClass
}

func writableColumns(poco any) ([]columnValue, error) {
	v := reflect.ValueOf(poco)
	if !v.IsValid() {
		return nil, ErrNilPOCO
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, ErrNilPOCO
		}
		v = v.Elem()
	}

	fields, err := fieldsFor(v.Type())
	if err != nil {
		return nil, err
	}

	var cols []columnValue
	for _, f := range fields {
		if f.Skip {
			continue
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			// field promoted through a nil embedded pointer
			continue
		}
		text, class := renderValue(fv)
		if class == classNull {
			continue
		}
		cols = append(cols, columnValue{column: f.Column, text: text, class: class})
	}

	if len(cols) == 0 {
		return nil, ErrNoFields
	}
	return cols, nil
}

func renderValue(v reflect.Value) (string, valueClass) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", classNull
		}
		v = v.Elem()
	}

	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time).UTC().Format(DateTimeLayout), classText
	case decimalType:
		return v.Interface().(decimal.Decimal).String(), classNumber
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return AsString(v.Interface()), classNumber
	case reflect.Bool:
		if v.Bool() {
			return "1", classBool
		}
		return "0", classBool
	case reflect.String:
		return v.String(), classText
	}

	if v.CanInterface() {
		if valuer, ok := v.Interface().(driver.Valuer); ok {
			val, err := valuer.Value()
			if err != nil || val == nil {
				return "", classNull
			}
			return renderValue(reflect.ValueOf(val))
		}
	}
	return AsString(v.Interface()), classText
}
