// Package argparse classifies raw argument vectors against a
// declarative option schema, producing three buckets per call: named
// options, name=value parameters, and positional operands.
//
// The schema (see the schema package) declares six entry kinds: flag,
// text, int, count, list, and alias. It is validated once at parser
// construction and frozen; Parse may then run concurrently on
// different argument lists.
//
// Parsing follows GNU conventions: --name and --name=value long
// options, -abc short clusters with inline or lookahead values, a
// literal -- switching everything that follows into operands.
// Repeated occurrences accumulate per kind: counts sum, lists
// concatenate, everything else keeps the last value. Result
// containers are frozen before they are returned; mutation attempts
// fail with an immutability error.
//
// The package consumes an already-split argument vector. It performs
// no shell tokenization, no operand-count validation, and no
// usage/help formatting; hosts are expected to catch parse errors and
// render their own usage output.
package argparse
