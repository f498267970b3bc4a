package lexigen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/lexigen/schema"
)

// hookName is the continuation hook named on one rule, carried alongside
// the schema.Declaration since schema itself has no notion of hook
// registries — that belongs to the generator, per the "external
// collaborators" boundary.
type hookName struct {
	variant string
	hook    string
}

// toDeclaration translates a parsed file into a schema.Declaration plus the
// per-variant hook names the caller must resolve against its own hook
// registry.
func toDeclaration(f *file) (*schema.Declaration, []hookName, error) {
	d := &schema.Declaration{Name: f.Name}
	var hooks []hookName

	for _, dd := range f.Decls {
		switch {
		case dd.Rule != nil:
			r := dd.Rule
			rule := schema.Rule{Variant: r.Variant, CarriesText: r.Carries}
			switch {
			case r.Token != nil:
				lit, err := unquoteString(*r.Token)
				if err != nil {
					return nil, nil, fmt.Errorf("lexigen: rule %q: %w", r.Variant, err)
				}
				rule.Token = lit
			case r.Regex != nil:
				rule.Regex = unquoteRaw(*r.Regex)
			default:
				return nil, nil, fmt.Errorf("lexigen: rule %q declares neither token nor regex", r.Variant)
			}
			d.Rules = append(d.Rules, rule)
			if r.More != nil {
				hooks = append(hooks, hookName{variant: r.Variant, hook: *r.More})
			}
		case dd.Skip != nil:
			d.Skip = append(d.Skip, unquoteRaw(dd.Skip.Pattern))
		}
	}

	return d, hooks, nil
}

// unquoteString strips the surrounding double quotes the grammar's String
// token captures verbatim, applying standard Go escape rules.
func unquoteString(s string) (string, error) {
	v, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("invalid string literal %q: %w", s, err)
	}
	return v, nil
}

// unquoteRaw strips the backticks the grammar's RawString token captures
// verbatim. Raw strings have no escape processing, matching Go's own
// backquoted string semantics.
func unquoteRaw(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "`"), "`")
}
