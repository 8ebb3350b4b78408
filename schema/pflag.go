package schema

import (
	"strconv"

	"github.com/goliatone/go-errors"
	"github.com/spf13/pflag"
)

// FromFlagSet converts a pflag flag-set definition into a Schema so
// hosts already carrying pflag declarations can migrate without
// restating them. Shorthands become alias entries targeting the long
// name. Flag values are not read; only the declared shape and the
// registered defaults carry over.
func FromFlagSet(fs *pflag.FlagSet) (Schema, error) {
	if fs == nil {
		return nil, errors.New("flagset cannot be nil", errors.CategoryBadInput).
			WithTextCode("NIL_FLAGSET")
	}

	out := Schema{}
	var convErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if convErr != nil {
			return
		}
		entry, err := entryForFlag(f)
		if err != nil {
			convErr = err
			return
		}
		out[f.Name] = entry
		if f.Shorthand != "" && f.Shorthand != f.Name {
			out[f.Shorthand] = Alias(f.Name)
		}
	})
	if convErr != nil {
		return nil, convErr
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func entryForFlag(f *pflag.Flag) (Entry, error) {
	switch f.Value.Type() {
	case "bool":
		return Flag(), nil
	case "count":
		return Count(), nil
	case "string":
		entry := Text()
		if f.DefValue != "" {
			entry = entry.WithDefault(f.DefValue)
		}
		return entry, nil
	case "int", "int8", "int16", "int32", "int64":
		entry := Int()
		if f.DefValue != "" {
			if n, err := strconv.Atoi(f.DefValue); err == nil {
				entry = entry.WithIntDefault(n)
			}
		}
		return entry, nil
	case "stringSlice", "stringArray":
		return List(), nil
	default:
		return Entry{}, errors.New("flag value type has no option kind mapping", errors.CategoryValidation).
			WithTextCode("UNSUPPORTED_KIND").
			WithMetadata(map[string]any{
				"option":    f.Name,
				"flag_type": f.Value.Type(),
			})
	}
}
