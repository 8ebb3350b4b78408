package schema

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goliatone/go-errors"
)

// rawEntry is the wire shape of a config entry before defaults are
// routed into the typed optionals.
type rawEntry struct {
	Option    string  `mapstructure:"option"`
	Type      string  `mapstructure:"type"`
	Default   any     `mapstructure:"default"`
	Separator *string `mapstructure:"separator"`
	Target    *string `mapstructure:"target"`
}

// Option tweaks the Build decoder before raw data is processed.
type Option func(*builder)

type builder struct {
	decoderConfig mapstructure.DecoderConfig
}

func newBuilder() *builder {
	return &builder{
		decoderConfig: mapstructure.DecoderConfig{
			TagName: "mapstructure",
			// defaults carry their dynamic type until routed, so
			// weak coercion would mask wrong-typed fields
			WeaklyTypedInput: false,
		},
	}
}

// WithDecoder lets callers mutate the underlying mapstructure DecoderConfig.
func WithDecoder(fn func(*mapstructure.DecoderConfig)) Option {
	return func(b *builder) {
		if fn == nil {
			return
		}
		fn(&b.decoderConfig)
	}
}

// WithStrictKeys rejects fields the entry shape does not declare.
func WithStrictKeys() Option {
	return func(b *builder) {
		b.decoderConfig.ErrorUnused = true
	}
}

// Build decodes raw schema data into a validated Schema. It accepts
// both external forms: a mapping keyed by option name, or an ordered
// sequence of entries each carrying its own "option" field.
func Build(input any, opts ...Option) (Schema, error) {
	b := newBuilder()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(b)
	}

	raw, err := b.decode(input)
	if err != nil {
		return nil, err
	}

	out := make(Schema, len(raw))
	for name, re := range raw {
		entry, err := re.toEntry(name)
		if err != nil {
			return nil, err
		}
		out[name] = entry
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *builder) decode(input any) (map[string]rawEntry, error) {
	if input == nil {
		return nil, errors.New("schema input cannot be nil", errors.CategoryBadInput).
			WithTextCode("SCHEMA_INVALID")
	}

	switch reflect.ValueOf(input).Kind() {
	case reflect.Slice, reflect.Array:
		var entries []rawEntry
		if err := b.decodeInto(input, &entries); err != nil {
			return nil, err
		}
		out := make(map[string]rawEntry, len(entries))
		for i, entry := range entries {
			if entry.Option == "" {
				return nil, errors.New("schema entry is missing its option identity", errors.CategoryValidation).
					WithTextCode("SCHEMA_INVALID").
					WithMetadata(map[string]any{
						"entry_index": i,
					})
			}
			name := entry.Option
			entry.Option = ""
			out[name] = entry
		}
		return out, nil
	case reflect.Map:
		out := map[string]rawEntry{}
		if err := b.decodeInto(input, &out); err != nil {
			return nil, err
		}
		// map form carries identity in the key; drop any stray
		// option field so it cannot disagree
		for name, entry := range out {
			entry.Option = ""
			out[name] = entry
		}
		return out, nil
	default:
		return nil, errors.New("schema input must be a mapping or a sequence of entries", errors.CategoryBadInput).
			WithTextCode("SCHEMA_INVALID").
			WithMetadata(map[string]any{
				"input_type": reflect.TypeOf(input).String(),
			})
	}
}

func (b *builder) decodeInto(input, target any) error {
	config := b.decoderConfig
	config.Result = target
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to configure schema decoder").
			WithTextCode("SCHEMA_DECODE_FAILED")
	}
	if err := decoder.Decode(input); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "failed to decode schema data").
			WithTextCode("SCHEMA_INVALID")
	}
	return nil
}

// toEntry routes the dynamic default field into the typed optional
// that matches the entry kind, failing on wrong-typed values.
func (re rawEntry) toEntry(name string) (Entry, error) {
	entry := Entry{Type: Kind(re.Type), Separator: re.Separator}
	if re.Target != nil {
		entry.Target = *re.Target
	}

	if re.Default == nil {
		return entry, nil
	}

	switch entry.Type {
	case KindText:
		s, ok := re.Default.(string)
		if !ok {
			return Entry{}, wrongDefault("text option default must be a string", name, re.Default)
		}
		entry.TextDefault = &s
	case KindInt:
		n, ok := toIntDefault(re.Default)
		if !ok {
			return Entry{}, wrongDefault("int option default must be an integer", name, re.Default)
		}
		entry.IntDefault = &n
	default:
		return Entry{}, wrongDefault("option kind does not take a default", name, re.Default)
	}
	return entry, nil
}

// toIntDefault accepts the numeric shapes file parsers produce: JSON
// decodes every number to float64, TOML to int64. Fractional floats
// truncate, mirroring the engine's permissive numeric coercion.
func toIntDefault(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	default:
		return 0, false
	}
}

func wrongDefault(msg, name string, value any) error {
	return errors.New(msg, errors.CategoryValidation).
		WithTextCode("SCHEMA_INVALID").
		WithMetadata(map[string]any{
			"option":       name,
			"default_type": reflect.TypeOf(value).String(),
		})
}
