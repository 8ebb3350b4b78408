// Package schema declares and validates the option schemas consumed by
// the argparse engine. A Schema maps option names to config entries;
// it can be written literally, normalized from an ordered entry list,
// built from raw decoded data (Build), loaded from JSON/TOML/YAML
// files (LoadFile), derived from tagged structs (FromStruct), or
// converted from a pflag.FlagSet (FromFlagSet).
package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
)

// Schema maps option name to its config entry. Validate must pass
// before a parser will accept it.
type Schema map[string]Entry

// Normalize converts the sequence form into the map form by moving
// each entry's Option field into the key. Duplicate names follow
// last-entry-wins, matching plain map assignment.
func Normalize(entries []Entry) (Schema, error) {
	out := make(Schema, len(entries))
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
}

// Validate checks every entry for structural correctness, then walks
// alias targets to reject dangling references. A valid schema produces
// no observable effect.
func (s Schema) Validate() error {
	for name, entry := range s {
		if err := validateEntry(name, entry); err != nil {
			return err
		}
	}

	// second pass: alias targets must exist
	for name, entry := range s {
		if entry.Type != KindAlias {
			continue
		}
		if _, ok := s[entry.Target]; !ok {
			return errors.New(
				fmt.Sprintf("alias %q references unknown target %q", name, entry.Target),
				errors.CategoryValidation).
				WithTextCode("DANGLING_ALIAS_TARGET").
				WithMetadata(map[string]any{
					"alias":  name,
					"target": entry.Target,
				})
		}
	}
	return nil
}

func validateEntry(name string, entry Entry) error {
	if name == "" {
		return schemaErr("schema entry is missing its option identity", name, entry)
	}
	if strings.Contains(name, "=") {
		return schemaErr("option name must not contain '='", name, entry)
	}
	if entry.Type == "" {
		return schemaErr("schema entry is missing its type tag", name, entry)
	}
	if err := entry.Type.Valid(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "schema entry has an unsupported type tag").
			WithTextCode("SCHEMA_INVALID").
			WithMetadata(map[string]any{
				"option": name,
				"kind":   entry.Type.String(),
			})
	}

	switch entry.Type {
	case KindFlag, KindCount:
		// no additional required fields
	case KindText:
		if entry.IntDefault != nil {
			return schemaErr("text option default must be a string", name, entry)
		}
	case KindInt:
		if entry.TextDefault != nil {
			return schemaErr("int option default must be an integer", name, entry)
		}
	case KindList:
		if entry.TextDefault != nil || entry.IntDefault != nil {
			return schemaErr("list options take a separator, not a default", name, entry)
		}
	case KindAlias:
		if entry.Target == "" {
			return schemaErr("alias entry is missing its target", name, entry)
		}
	}
	return nil
}

func schemaErr(msg, name string, entry Entry) error {
	return errors.New(msg, errors.CategoryValidation).
		WithTextCode("SCHEMA_INVALID").
		WithMetadata(map[string]any{
			"option": name,
			"kind":   entry.Type.String(),
		})
}
