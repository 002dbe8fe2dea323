package store

import (
	"fmt"
	"reflect"
	"sync"
)

// Column names every record carries.
const (
	ColID        = "id"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
)

type fieldPath struct {
	name  string
	index []int
}

var fieldCache sync.Map // reflect.Type -> []fieldPath

func fieldsOf(t reflect.Type) []fieldPath {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldPath)
	}
	var out []fieldPath
	var walk func(t reflect.Type, prefix []int)
	walk = func(t reflect.Type, prefix []int) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			idx := append(append([]int(nil), prefix...), i)
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				walk(f.Type, idx)
				continue
			}
			tag := f.Tag.Get("db")
			if tag == "" || tag == "-" || !f.IsExported() {
				continue
			}
			out = append(out, fieldPath{name: tag, index: idx})
		}
	}
	walk(t, nil)
	fieldCache.Store(t, out)
	return out
}

// Columns returns the db-tagged fields of a record struct keyed by column
// name. Embedded structs are flattened. Nil pointers are reported as nil.
func Columns(v any) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("store: Columns of non-struct %T", v))
	}
	fields := fieldsOf(rv.Type())
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		fv := rv.FieldByIndex(f.index)
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			out[f.name] = nil
			continue
		}
		out[f.name] = fv.Interface()
	}
	return out
}

// ColumnNames returns the db column names of T in declaration order.
func ColumnNames[T any]() []string {
	var zero T
	fields := fieldsOf(reflect.TypeOf(zero))
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.name
	}
	return out
}

// Matches reports whether rec satisfies every equality filter in q.
// Pointer fields compare by their target; values compare by their string
// form so that typed enums match plain strings.
func Matches(rec any, q Query) bool {
	if len(q.Eq) == 0 {
		return true
	}
	cols := Columns(rec)
	for name, want := range q.Eq {
		got, ok := cols[name]
		if !ok {
			return false
		}
		if !equalValues(got, want) {
			return false
		}
	}
	return true
}

func equalValues(got, want any) bool {
	got, want = deref(got), deref(want)
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}

func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}
