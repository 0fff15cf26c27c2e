package helpers

import (
	"reflect"
	"strings"
)

// Record is a flat column→value view of a row
type Record map[string]interface{}

// ColumnMap flattens a struct (or pointer to one) into a Record keyed by its
// `db` tags. Untagged fields and fields tagged "-" are skipped; a nil pointer
// yields an empty Record.
func ColumnMap(v interface{}) Record {
	record := Record{}

	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return record
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return record
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		column := strings.Split(fieldType.Tag.Get("db"), ",")[0]
		if column == "" || column == "-" {
			continue
		}

		record[column] = val.Field(i).Interface()
	}

	return record
}

// Merge overlays child on parent. On a shared column the child's value wins.
func Merge(parent, child Record) Record {
	merged := make(Record, len(parent)+len(child))
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range child {
		merged[k] = v
	}
	return merged
}
