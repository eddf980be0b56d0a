package prototype

import (
	"fmt"
	"reflect"
	"strings"
)

// WalkRefs visits every reference carried by a record, including refs nested
// in slices, arrays, pointers, and embedded structs. The record must be a
// pointer so fields are addressable. Map values are not addressable and are
// skipped; refs do not belong inside maps.
func WalkRefs(rec Prototype, visit func(path string, ref RefField)) {
	walkFields(reflect.ValueOf(rec), "", func(path string, v reflect.Value) bool {
		ref, ok := v.Addr().Interface().(RefField)
		if !ok {
			return false
		}
		visit(path, ref)
		return true
	})
}

// WalkAssets visits every asset token carried by a record, with the same
// traversal rules as WalkRefs.
func WalkAssets(rec Prototype, visit func(path string, asset AssetField)) {
	walkFields(reflect.ValueOf(rec), "", func(path string, v reflect.Value) bool {
		asset, ok := v.Addr().Interface().(AssetField)
		if !ok {
			return false
		}
		visit(path, asset)
		return true
	})
}

func walkFields(v reflect.Value, path string, try func(string, reflect.Value) bool) {
	if !v.IsValid() {
		return
	}
	if v.CanAddr() && try(path, v) {
		return
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			walkFields(v.Elem(), path, try)
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := jsonFieldName(field)
			if name == "-" {
				continue
			}
			child := path
			if !field.Anonymous {
				child = joinPath(path, name)
			}
			walkFields(v.Field(i), child, try)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walkFields(v.Index(i), fmt.Sprintf("%s[%d]", path, i), try)
		}
	}
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
