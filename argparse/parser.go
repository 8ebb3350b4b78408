package argparse

import (
	"fmt"

	"github.com/goliatone/go-argparse/logger"
	"github.com/goliatone/go-argparse/schema"
	"github.com/goliatone/go-errors"
	"github.com/mitchellh/copystructure"
)

// Parser classifies argument vectors against a validated schema. The
// schema is deep-cloned and frozen at construction, so a Parser is
// safe to share across concurrent Parse calls.
type Parser struct {
	schema schema.Schema
	logger logger.Logger
}

type Option func(*Parser)

func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New validates the schema and builds a parser around a private copy
// of it. Validation failure is fatal to construction.
func New(s schema.Schema, opts ...Option) (*Parser, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	cloned, err := cloneSchema(s)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		schema: cloned,
		logger: logger.NewDefaultLogger("argparse"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Must is New for static schemas where a failure is a programmer error.
func Must(s schema.Schema, opts ...Option) *Parser {
	p, err := New(s, opts...)
	if err != nil {
		panic(fmt.Sprintf("argparse: invalid schema: %v", err))
	}
	return p
}

// Schema returns a detached copy of the parser's schema.
func (p *Parser) Schema() schema.Schema {
	cloned, err := cloneSchema(p.schema)
	if err != nil {
		// the schema already survived one clone, a second cannot
		// introduce uncopyable values
		panic(err)
	}
	return cloned
}

func cloneSchema(s schema.Schema) (schema.Schema, error) {
	cloned, err := copystructure.Copy(s)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to clone schema").
			WithTextCode("SCHEMA_CLONE_FAILED")
	}
	out, ok := cloned.(schema.Schema)
	if !ok {
		return nil, errors.New("cloned schema has an unexpected type", errors.CategoryOperation).
			WithTextCode("SCHEMA_CLONE_FAILED")
	}
	return out, nil
}
