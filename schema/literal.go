package schema

import "regexp"

// quoteLiteral escapes s so it matches only itself as a regex — the Go
// equivalent of the original derive macro's regex_syntax::escape.
func quoteLiteral(s string) string {
	return regexp.QuoteMeta(s)
}
