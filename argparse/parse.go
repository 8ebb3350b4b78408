package argparse

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-argparse/schema"
	"github.com/goliatone/go-errors"
)

// Parse classifies an argument vector into options, parameters, and
// operands. Tokens are consumed left to right; the only lookahead is
// the single token a short cluster may claim as its value. Each call
// returns a fresh, frozen Result; errors abort the call with nothing
// partial.
func (p *Parser) Parse(args []string) (*Result, error) {
	p.logger.Debug("parse start | tokens=%d", len(args))

	res := newResult()
	restOnly := false

	for i := 0; i < len(args); i++ {
		token := args[i]
		switch {
		case restOnly:
			res.operands = append(res.operands, token)
		case token == "--":
			// only the first -- flips the switch; it is appended
			// like everything at or after it, later ones are
			// ordinary operands
			restOnly = true
			res.operands = append(res.operands, token)
		case isLongOption(token):
			if err := p.parseLong(res, token); err != nil {
				return nil, err
			}
		case isShortCluster(token):
			var lookahead *string
			if i+1 < len(args) {
				lookahead = &args[i+1]
			}
			consumed, err := p.parseCluster(res, token[1:], lookahead)
			if err != nil {
				return nil, err
			}
			if consumed {
				i++
			}
		default:
			if name, value, ok := splitParameter(token); ok {
				if err := res.parameters.Set(name, value); err != nil {
					return nil, err
				}
			} else {
				res.operands = append(res.operands, token)
			}
		}
	}

	res.freeze()
	p.logger.Debug("parse done | options=%d parameters=%d operands=%d",
		res.options.Len(), res.parameters.Len(), len(res.operands))
	return res, nil
}

// ParseAny accepts loosely typed argument vectors, e.g. the []any a
// JSON decoder yields, rejecting anything that is not a sequence of
// strings with a malformed-input error.
func (p *Parser) ParseAny(v any) (*Result, error) {
	if args, ok := v.([]string); ok {
		return p.Parse(args)
	}
	if v == nil {
		return nil, malformedInput("argument list cannot be nil", nil)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, malformedInput("argument list must be a sequence of strings", map[string]any{
			"input_type": reflect.TypeOf(v).String(),
		})
	}

	args := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, ok := rv.Index(i).Interface().(string)
		if !ok {
			return nil, malformedInput("argument list element is not a string", map[string]any{
				"index":        i,
				"element_type": reflect.TypeOf(rv.Index(i).Interface()).String(),
			})
		}
		args[i] = s
	}
	return p.Parse(args)
}

// token predicates are explicit character checks: leading "--",
// leading "-" plus a non-dash, first "=" split for parameters.

func isLongOption(token string) bool {
	return len(token) > 2 && token[0] == '-' && token[1] == '-'
}

func isShortCluster(token string) bool {
	return len(token) >= 2 && token[0] == '-' && token[1] != '-'
}

func splitParameter(token string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(token, "=")
	if !ok || name == "" {
		return "", "", false
	}
	return name, value, true
}

// parseLong resolves a --name or --name=value token. The split is on
// the first "=", a missing "=" leaves the value nil, an empty
// remainder is an empty string value.
func (p *Parser) parseLong(res *Result, token string) error {
	name, rawValue, hasValue := strings.Cut(token[2:], "=")
	entry, ok := p.schema[name]
	if !ok {
		return unknownOption(name, "")
	}
	var value *string
	if hasValue {
		value = &rawValue
	}
	return p.applyOption(res, name, entry, value, "")
}

// parseCluster walks a short cluster character by character. It
// reports whether the lookahead token was consumed as a value so the
// outer loop can skip it.
func (p *Parser) parseCluster(res *Result, cluster string, lookahead *string) (bool, error) {
	for i, r := range cluster {
		name := string(r)
		entry, ok := p.schema[name]
		if !ok {
			return false, unknownOption(name, "")
		}

		storeName, effective, alias := name, entry, ""
		if entry.Type == schema.KindAlias {
			target, targetEntry, err := p.resolveAlias(name, entry)
			if err != nil {
				return false, err
			}
			storeName, effective, alias = target, targetEntry, name
		}

		switch effective.Type {
		case schema.KindFlag, schema.KindCount:
			if err := p.applyOption(res, storeName, effective, nil, alias); err != nil {
				return false, err
			}
		case schema.KindText, schema.KindInt, schema.KindList:
			// the rest of the cluster is an inline value
			if rest := cluster[i+utf8.RuneLen(r):]; rest != "" {
				return false, p.applyOption(res, storeName, effective, &rest, alias)
			}
			// cluster end: declared default wins over the lookahead
			if _, ok := effective.DefaultValue(); ok {
				return false, p.applyOption(res, storeName, effective, nil, alias)
			}
			if lookahead != nil {
				if err := p.applyOption(res, storeName, effective, lookahead, alias); err != nil {
					return false, err
				}
				return true, nil
			}
			return false, missingArgument(storeName, alias, effective.Type.Numeric())
		default:
			return false, unsupportedKind(storeName, effective.Type)
		}
	}
	return false, nil
}

// applyOption coerces and stores one occurrence under the entry's
// accumulation rule: counts sum, lists concatenate, everything else
// last-wins. A nil value means the token carried none.
func (p *Parser) applyOption(res *Result, name string, entry schema.Entry, value *string, alias string) error {
	switch entry.Type {
	case schema.KindFlag:
		// presence marker, any source text is ignored
		return res.options.Set(name, true)

	case schema.KindText:
		if value != nil {
			return res.options.Set(name, *value)
		}
		if entry.TextDefault != nil {
			return res.options.Set(name, *entry.TextDefault)
		}
		return missingArgument(name, alias, false)

	case schema.KindInt:
		if value != nil && *value != "" {
			f, ok := toNumber(*value)
			if !ok {
				return invalidNumber(name, alias, *value)
			}
			return res.options.Set(name, int(f))
		}
		if entry.IntDefault != nil {
			return res.options.Set(name, *entry.IntDefault)
		}
		return missingArgument(name, alias, true)

	case schema.KindCount:
		delta := 1
		if value != nil {
			f, ok := toNumber(*value)
			if !ok {
				return invalidNumber(name, alias, *value)
			}
			delta = int(f)
		}
		current := 0
		if v, ok := res.options.Get(name); ok {
			if n, ok := v.(int); ok {
				current = n
			}
		}
		return res.options.Set(name, current+delta)

	case schema.KindList:
		if value == nil {
			return missingArgument(name, alias, false)
		}
		var parts []string
		if *value != "" {
			separator := ","
			if entry.Separator != nil {
				separator = *entry.Separator
			}
			parts = strings.Split(*value, separator)
		}
		existing := []string{}
		if v, ok := res.options.Get(name); ok {
			if list, ok := v.([]string); ok {
				existing = list
			}
		}
		return res.options.Set(name, append(existing, parts...))

	case schema.KindAlias:
		target, targetEntry, err := p.resolveAlias(name, entry)
		if err != nil {
			return err
		}
		return p.applyOption(res, target, targetEntry, value, name)

	default:
		return unsupportedKind(name, entry.Type)
	}
}

// resolveAlias follows exactly one hop. Aliases of aliases are
// unsupported and fail rather than resolving transitively.
func (p *Parser) resolveAlias(name string, entry schema.Entry) (string, schema.Entry, error) {
	target := entry.Target
	targetEntry, ok := p.schema[target]
	if !ok {
		// construction-time validation rejects dangling targets
		return "", schema.Entry{}, unknownOption(target, name)
	}
	if targetEntry.Type == schema.KindAlias {
		return "", schema.Entry{}, errors.New(
			fmt.Sprintf("alias %q targets alias %q, chained aliases are unsupported", name, target),
			errors.CategoryValidation).
			WithTextCode("UNSUPPORTED_ALIAS_CHAIN").
			WithMetadata(map[string]any{
				"alias":  name,
				"target": target,
			})
	}
	return target, targetEntry, nil
}

// toNumber applies loose numeric coercion: blank strings count as
// zero, fractional values pass and truncate where an integer is
// demanded. Tightening this would reject inputs the permissive
// contract accepts. NaN and infinities are still not numbers here,
// they have no integer truncation.
func toNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func optionLabel(name, alias string) string {
	if alias == "" {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("%q (via alias %q)", name, alias)
}

func optionMeta(name, alias string) map[string]any {
	meta := map[string]any{"option": name}
	if alias != "" {
		meta["alias"] = alias
	}
	return meta
}

func unknownOption(name, alias string) error {
	return errors.New("unknown option "+optionLabel(name, alias), errors.CategoryBadInput).
		WithTextCode("UNKNOWN_OPTION").
		WithMetadata(optionMeta(name, alias))
}

func missingArgument(name, alias string, numeric bool) error {
	msg, code := "missing argument for option ", "MISSING_ARGUMENT"
	if numeric {
		msg, code = "missing numeric argument for option ", "MISSING_NUMERIC_ARGUMENT"
	}
	return errors.New(msg+optionLabel(name, alias), errors.CategoryBadInput).
		WithTextCode(code).
		WithMetadata(optionMeta(name, alias))
}

func invalidNumber(name, alias, value string) error {
	meta := optionMeta(name, alias)
	meta["value"] = value
	return errors.New(
		fmt.Sprintf("invalid numeric value %q for option %s", value, optionLabel(name, alias)),
		errors.CategoryBadInput).
		WithTextCode("INVALID_NUMBER").
		WithMetadata(meta)
}

func unsupportedKind(name string, kind schema.Kind) error {
	return errors.New(
		fmt.Sprintf("option %q has unsupported kind %q", name, kind),
		errors.CategoryValidation).
		WithTextCode("UNSUPPORTED_KIND").
		WithMetadata(map[string]any{
			"option": name,
			"kind":   kind.String(),
		})
}

func malformedInput(msg string, meta map[string]any) error {
	err := errors.New(msg, errors.CategoryBadInput).
		WithTextCode("MALFORMED_INPUT")
	if meta != nil {
		err = err.WithMetadata(meta)
	}
	return err
}
