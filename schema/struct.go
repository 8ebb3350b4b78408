package schema

import (
	"reflect"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/providers/structs"
)

// DefaultStructTag is the tag FromStruct reads when none is given.
var DefaultStructTag = "arg"

// FromStruct derives a schema from a tagged struct. Field kinds come
// from the Go types (bool=flag, string=text, ints=int, []string=list)
// unless the tag overrides them, and non-zero field values become the
// declared defaults:
//
//	type opts struct {
//		Verbose int    `arg:"v,count"`
//		Output  string `arg:"o"`
//		Tags    []string `arg:"tag"`
//	}
func FromStruct(v any, tag string) (Schema, error) {
	if tag == "" {
		tag = DefaultStructTag
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New("struct schema source cannot be nil", errors.CategoryBadInput).
				WithTextCode("SCHEMA_INVALID")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.New("schema source must be a struct", errors.CategoryBadInput).
			WithTextCode("SCHEMA_INVALID").
			WithMetadata(map[string]any{
				"source_type": reflect.TypeOf(v).String(),
			})
	}

	// harvest field values keyed by tag name for default lookup
	values, err := structs.Provider(v, tag).Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to read struct values").
			WithTextCode("SCHEMA_STRUCT_READ_FAILED")
	}

	out := Schema{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		raw := field.Tag.Get(tag)
		if raw == "" || raw == "-" {
			continue
		}

		name, kindOverride, _ := strings.Cut(raw, ",")
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		entry, err := entryForField(field, name, Kind(kindOverride))
		if err != nil {
			return nil, err
		}
		applyStructDefault(&entry, values[name])
		out[name] = entry
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func entryForField(field reflect.StructField, name string, override Kind) (Entry, error) {
	kind, err := kindForType(field.Type, name)
	if err != nil {
		return Entry{}, err
	}
	if override != "" {
		if err := override.Valid(); err != nil {
			return Entry{}, err
		}
		kind = override
	}
	return Entry{Type: kind}, nil
}

func kindForType(t reflect.Type, name string) (Kind, error) {
	switch t.Kind() {
	case reflect.Bool:
		return KindFlag, nil
	case reflect.String:
		return KindText, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return KindList, nil
		}
	}
	return "", errors.New("struct field type has no option kind mapping", errors.CategoryValidation).
		WithTextCode("UNSUPPORTED_KIND").
		WithMetadata(map[string]any{
			"option":     name,
			"field_type": t.String(),
		})
}

func applyStructDefault(entry *Entry, value any) {
	if value == nil {
		return
	}
	switch entry.Type {
	case KindText:
		if s, ok := value.(string); ok && s != "" {
			entry.TextDefault = &s
		}
	case KindInt:
		if n, ok := toIntDefault(value); ok && n != 0 {
			entry.IntDefault = &n
		}
	}
}
