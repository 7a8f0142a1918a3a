package output

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type structMeta struct {
	fields           []string
	serializedFields []string
	values           []interface{}
}

func parseStructMeta(v interface{}) (structMeta, error) {
	structRfl := reflect.ValueOf(v)

	// Fail if the passed type is not a struct
	if structRfl.Kind() != reflect.Struct {
		return structMeta{}, fmt.Errorf("Expected struct, got: %s", structRfl.Kind().String())
	}

	info := structMeta{}
	for i := 0; i < structRfl.Type().NumField(); i++ {
		fieldRfl := structRfl.Type().Field(i)
		valueRfl := structRfl.Field(i)

		if !fieldRfl.IsExported() {
			continue
		}

		serialized := strings.ToLower(fieldRfl.Name[0:1]) + fieldRfl.Name[1:]
		if v, ok := fieldRfl.Tag.Lookup("serialized"); ok {
			if v == "-" {
				continue
			}
			serialized = v
		}

		info.fields = append(info.fields, fieldRfl.Name)
		info.values = append(info.values, valueRfl.Interface())
		info.serializedFields = append(info.serializedFields, serialized)
	}

	return info, nil
}

func parseSlice(v interface{}) ([]interface{}, error) {
	sliceRfl := reflect.ValueOf(v)

	// Fail if the passed type is not a slice
	if sliceRfl.Kind() != reflect.Slice {
		return []interface{}{}, fmt.Errorf("Expected slice, got: %s", sliceRfl.Kind().String())
	}

	result := make([]interface{}, sliceRfl.Len())
	for i := 0; i < sliceRfl.Len(); i++ {
		result[i] = sliceRfl.Index(i).Interface()
	}
	return result, nil
}

// parseMap returns the keys of a map in sorted order, along with their values
func parseMap(v interface{}) ([]string, []interface{}, error) {
	mapRfl := reflect.ValueOf(v)

	if mapRfl.Kind() != reflect.Map {
		return nil, nil, fmt.Errorf("Expected map, got: %s", mapRfl.Kind().String())
	}

	byKey := map[string]reflect.Value{}
	keys := make([]string, 0, mapRfl.Len())
	for _, k := range mapRfl.MapKeys() {
		key := fmt.Sprintf("%v", k.Interface())
		keys = append(keys, key)
		byKey[key] = k
	}
	sort.Strings(keys)

	values := make([]interface{}, len(keys))
	for i, k := range keys {
		values[i] = mapRfl.MapIndex(byKey[k]).Interface()
	}
	return keys, values, nil
}
