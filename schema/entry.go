package schema

import (
	"github.com/goliatone/go-errors"
)

// Kind tags a config entry with its parsing behavior.
type Kind string

const (
	KindFlag  Kind = "flag"
	KindText  Kind = "text"
	KindInt   Kind = "int"
	KindCount Kind = "count"
	KindList  Kind = "list"
	KindAlias Kind = "alias"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Valid() error {
	switch k {
	case KindFlag, KindText, KindInt, KindCount, KindList, KindAlias:
		return nil
	default:
		return errors.New("unsupported option kind", errors.CategoryValidation).
			WithTextCode("UNSUPPORTED_KIND").
			WithMetadata(map[string]any{
				"kind": string(k),
				"valid_kinds": []string{
					string(KindFlag),
					string(KindText),
					string(KindInt),
					string(KindCount),
					string(KindList),
					string(KindAlias),
				},
			})
	}
}

// TakesValue reports whether the kind requires an argument when no
// default is available.
func (k Kind) TakesValue() bool {
	switch k {
	case KindText, KindInt, KindList:
		return true
	default:
		return false
	}
}

// Numeric reports whether missing or malformed values for this kind
// should surface as numeric errors.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindCount
}

// Entry declares a single recognized option. Exactly one of the
// optional fields applies per kind: TextDefault for text, IntDefault
// for int, Separator for list, Target for alias. Unset pointers mean
// "no default declared".
type Entry struct {
	// Option carries the entry identity in the sequence form of a
	// schema. Normalize moves it into the map key.
	Option string `mapstructure:"option"`

	Type Kind `mapstructure:"type"`

	TextDefault *string
	IntDefault  *int
	Separator   *string

	// Target names the entry an alias forwards to. One hop only;
	// aliases of aliases are unsupported.
	Target string `mapstructure:"target"`
}

// DefaultValue resolves the declared default for value-taking kinds.
// The second return is false when no default was declared.
func (e Entry) DefaultValue() (any, bool) {
	switch e.Type {
	case KindText:
		if e.TextDefault != nil {
			return *e.TextDefault, true
		}
	case KindInt:
		if e.IntDefault != nil {
			return *e.IntDefault, true
		}
	}
	return nil, false
}

func Flag() Entry  { return Entry{Type: KindFlag} }
func Text() Entry  { return Entry{Type: KindText} }
func Int() Entry   { return Entry{Type: KindInt} }
func Count() Entry { return Entry{Type: KindCount} }
func List() Entry  { return Entry{Type: KindList} }

func Alias(target string) Entry {
	return Entry{Type: KindAlias, Target: target}
}

// WithDefault sets the text default. Later calls override earlier ones.
func (e Entry) WithDefault(value string) Entry {
	e.TextDefault = &value
	return e
}

func (e Entry) WithIntDefault(value int) Entry {
	e.IntDefault = &value
	return e
}

func (e Entry) WithSeparator(sep string) Entry {
	e.Separator = &sep
	return e
}
