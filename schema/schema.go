// Package schema is the Go-native declaration surface for a lexer: the
// equivalent of the host-language attributes a language with proc-macros
// would attach to an enum. Go has neither macros nor enum variants, so a
// declaration here is plain data — either constructed directly as Go
// values, or parsed from a .lexdecl file by cmd/lexigen.
package schema

import (
	"errors"
	"fmt"
)

// Rule is one declared token pattern.
//
// Exactly one of Token or Regex must be set. Token is matched literally
// (escaped into its regex equivalent before compilation so the engine
// stays uniform); Regex is compiled as-is. A Rule with no Variant reports
// IsSkip, and Declaration.Validate rejects it: skip patterns are listed in
// Declaration.Skip.
type Rule struct {
	// Variant names the token constructor this rule produces. Empty for
	// a skip rule.
	Variant string

	// Token is a literal string to match exactly. Mutually exclusive with Regex.
	Token string

	// Regex is a regex source to match. Mutually exclusive with Token.
	Regex string

	// CarriesText marks that the variant constructor takes the matched
	// byte slice rather than being nullary.
	CarriesText bool

	// More, if non-empty, names a continuation hook to run after the base
	// match, to extend its length before the variant is constructed.
	More string
}

// IsSkip reports whether r is a skip pattern (no variant to dispatch to).
func (r Rule) IsSkip() bool { return r.Variant == "" }

// Source returns the regex source this rule matches (Token escaped into a
// literal regex by quoteLiteral, or Regex verbatim).
func (r Rule) Source() (string, error) {
	switch {
	case r.Token != "" && r.Regex != "":
		return "", fmt.Errorf("%w: rule %q sets both Token and Regex", ErrInvalidRule, r.Variant)
	case r.Token != "":
		return quoteLiteral(r.Token), nil
	case r.Regex != "":
		return r.Regex, nil
	default:
		return "", fmt.Errorf("%w: rule %q sets neither Token nor Regex", ErrInvalidRule, r.Variant)
	}
}

// Declaration is an ordered set of rules: tokens (in the order they should
// win declaration-order ties) followed implicitly by skip patterns.
type Declaration struct {
	Name  string
	Rules []Rule // token rules, in declaration order
	Skip  []string
}

// ErrInvalidRule and ErrDuplicateVariant are returned by Validate.
var (
	ErrInvalidRule      = errors.New("schema: invalid rule")
	ErrDuplicateVariant = errors.New("schema: duplicate variant name")
)

// Validate checks that every rule is well-formed and that variant names
// are unique.
func (d *Declaration) Validate() error {
	seen := make(map[string]bool, len(d.Rules))
	for _, r := range d.Rules {
		if r.IsSkip() {
			return fmt.Errorf("%w: a schema.Rule in Declaration.Rules must name a Variant; use Declaration.Skip for skip patterns", ErrInvalidRule)
		}
		if _, err := r.Source(); err != nil {
			return err
		}
		if seen[r.Variant] {
			return fmt.Errorf("%w: %q", ErrDuplicateVariant, r.Variant)
		}
		seen[r.Variant] = true
	}
	return nil
}
