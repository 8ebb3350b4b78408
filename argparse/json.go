package argparse

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/mitchellh/copystructure"
	"github.com/tidwall/sjson"
)

// JSON renders the plain projection of a result: options and
// parameters as flat objects, operands as a string array. List values
// are the only nested sequences.
func (r *Result) JSON() ([]byte, error) {
	out := []byte(`{"options":{},"parameters":{},"operands":[]}`)

	var err error
	for _, name := range r.options.Keys() {
		value, _ := r.options.Get(name)
		out, err = sjson.SetBytes(out, "options."+escapePath(name), value)
		if err != nil {
			return nil, jsonErr(err, name)
		}
	}
	for _, name := range r.parameters.Keys() {
		value, _ := r.parameters.Get(name)
		out, err = sjson.SetBytes(out, "parameters."+escapePath(name), value)
		if err != nil {
			return nil, jsonErr(err, name)
		}
	}
	out, err = sjson.SetBytes(out, "operands", r.Operands())
	if err != nil {
		return nil, jsonErr(err, "operands")
	}
	return out, nil
}

// Map returns a detached snapshot of the result, deep-copied so
// callers cannot reach the frozen containers through it.
func (r *Result) Map() (map[string]any, error) {
	options := make(map[string]any, r.options.Len())
	for _, name := range r.options.Keys() {
		value, _ := r.options.Get(name)
		options[name] = value
	}
	parameters := make(map[string]any, r.parameters.Len())
	for _, name := range r.parameters.Keys() {
		value, _ := r.parameters.Get(name)
		parameters[name] = value
	}

	snapshot := map[string]any{
		"options":    options,
		"parameters": parameters,
		"operands":   r.Operands(),
	}

	cloned, err := copystructure.Copy(snapshot)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to snapshot result").
			WithTextCode("RESULT_SNAPSHOT_FAILED")
	}
	return cloned.(map[string]any), nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
)

// escapePath guards sjson's path syntax against option names that
// carry path metacharacters.
func escapePath(key string) string {
	return pathEscaper.Replace(key)
}

func jsonErr(err error, key string) error {
	return errors.Wrap(err, errors.CategoryOperation, "failed to render result JSON").
		WithTextCode("RESULT_JSON_FAILED").
		WithMetadata(map[string]any{
			"key": key,
		})
}
