package schema

import (
	"strings"
	"testing"
)

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	s := Schema{
		"force":  Flag(),
		"output": Text().WithDefault("a.out"),
		"level":  Int().WithIntDefault(1),
		"v":      Count(),
		"tag":    List().WithSeparator(";"),
		"o":      Alias("output"),
	}

	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid schema, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name     string
		schema   Schema
		fragment string
	}{
		{
			name:     "missing type",
			schema:   Schema{"x": {}},
			fragment: "missing its type",
		},
		{
			name:     "unsupported kind",
			schema:   Schema{"x": {Type: Kind("bytes")}},
			fragment: "unsupported",
		},
		{
			name:     "alias without target",
			schema:   Schema{"x": {Type: KindAlias}},
			fragment: "missing its target",
		},
		{
			name:     "dangling alias target",
			schema:   Schema{"o": Alias("missing"), "v": Flag()},
			fragment: `alias "o" references unknown target "missing"`,
		},
		{
			name:     "name with equals",
			schema:   Schema{"a=b": Flag()},
			fragment: "must not contain",
		},
		{
			name:     "int default on text",
			schema:   Schema{"x": Text().WithIntDefault(1)},
			fragment: "must be a string",
		},
		{
			name:     "text default on int",
			schema:   Schema{"x": Int().WithDefault("one")},
			fragment: "must be an integer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.schema.Validate()
			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Errorf("expected error to contain %q, got %q", tc.fragment, err.Error())
			}
		})
	}
}

func TestValidateAliasChainTargetAllowed(t *testing.T) {
	// an alias targeting another alias passes validation; the engine
	// rejects the chain when it is exercised
	s := Schema{
		"a":      Alias("b"),
		"b":      Alias("output"),
		"output": Text(),
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected chained alias schema to validate, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	entries := []Entry{
		{Option: "force", Type: KindFlag},
		{Option: "o", Type: KindAlias, Target: "output"},
		{Option: "output", Type: KindText},
	}

	s, err := Normalize(entries)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(s) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(s))
	}
	if s["force"].Type != KindFlag {
		t.Errorf("expected force to be a flag, got %s", s["force"].Type)
	}
	if s["force"].Option != "" {
		t.Error("Option field must be dropped when moved into the key")
	}
	if s["o"].Target != "output" {
		t.Errorf("expected alias target output, got %q", s["o"].Target)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("normalized schema should validate: %v", err)
	}
}

func TestNormalizeRejectsAnonymousEntry(t *testing.T) {
	_, err := Normalize([]Entry{{Type: KindFlag}})
	if err == nil {
		t.Fatal("expected entry without option identity to fail")
	}
}

func TestKindHelpers(t *testing.T) {
	if !KindText.TakesValue() || !KindList.TakesValue() || !KindInt.TakesValue() {
		t.Error("text, int and list take values")
	}
	if KindFlag.TakesValue() || KindCount.TakesValue() {
		t.Error("flag and count take no value")
	}
	if !KindInt.Numeric() || !KindCount.Numeric() {
		t.Error("int and count are numeric")
	}
	if err := Kind("nope").Valid(); err == nil {
		t.Error("expected unsupported kind to be invalid")
	}
}
