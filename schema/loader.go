package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const defaultDelimiter = "."

type FileType string

func (t FileType) String() string {
	return string(t)
}

func (t FileType) Valid() error {
	switch t {
	case FileTypeJSON, FileTypeYAML, FileTypeTOML:
		return nil
	default:
		return errors.New("invalid schema file type", errors.CategoryValidation).
			WithTextCode("INVALID_FILE_TYPE").
			WithMetadata(map[string]any{
				"file_type": string(t),
				"valid_types": []string{
					string(FileTypeJSON),
					string(FileTypeYAML),
					string(FileTypeTOML),
				},
			})
	}
}

func (t FileType) Parser() koanf.Parser {
	switch t {
	case FileTypeJSON:
		return json.Parser()
	case FileTypeTOML:
		return toml.Parser()
	case FileTypeYAML:
		return yaml.Parser()
	default:
		panic(fmt.Errorf("invalid schema file type: %s", t))
	}
}

const (
	FileTypeYAML FileType = "yaml"
	FileTypeTOML FileType = "toml"
	FileTypeJSON FileType = "json"
)

func inferFiletype(path string, defaultFileType ...FileType) FileType {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".toml":
		return FileTypeTOML
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	}

	if len(defaultFileType) > 0 {
		return defaultFileType[0]
	}

	return FileTypeJSON
}

// LoadFile reads a schema declaration from disk. The filetype is
// inferred from the extension, defaulting to JSON. Both the mapping
// and the sequence document shapes are accepted.
func LoadFile(path string, opts ...Option) (Schema, error) {
	filetype := inferFiletype(path)

	k := koanf.New(defaultDelimiter)
	if err := k.Load(file.Provider(path), filetype.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load schema from file").
			WithTextCode("SCHEMA_FILE_LOAD_FAILED").
			WithMetadata(map[string]any{
				"filepath":  path,
				"file_type": string(filetype),
			})
	}

	raw := k.Raw()

	// sequence documents land under a single "entries" key since the
	// top level of JSON/TOML/YAML configs is a mapping
	if entries, ok := raw["entries"]; ok && len(raw) == 1 {
		return Build(entries, opts...)
	}

	return Build(raw, opts...)
}

// FromMap builds a schema out of an in-memory mapping, e.g. one
// unmarshaled by the hosting tool.
func FromMap(data map[string]any, opts ...Option) (Schema, error) {
	if data == nil {
		return nil, errors.New("schema map cannot be nil", errors.CategoryBadInput).
			WithTextCode("SCHEMA_INVALID")
	}

	k := koanf.New(defaultDelimiter)
	if err := k.Load(confmap.Provider(data, defaultDelimiter), nil); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load schema map").
			WithTextCode("SCHEMA_MAP_LOAD_FAILED")
	}

	return Build(k.Raw(), opts...)
}
