// Package lexigen is the build-time code generator: it parses a .lexdecl
// declaration file, compiles it through schema/lexnfa/densedfa, and emits a
// generated Go source file wiring a concrete token type into the lexer
// runtime.
package lexigen

import (
	"fmt"

	"github.com/alecthomas/participle"
)

// file is the root of a parsed .lexdecl document.
//
//	lexer <Name>
//
//	rule <Variant> token "<literal>" [carries] [more <hookName>]
//	rule <Variant> regex `<pattern>` [carries] [more <hookName>]
//
//	skip `<pattern>`
type file struct {
	Name  string  `"lexer" @Ident`
	Decls []*decl `@@*`
}

type decl struct {
	Rule *ruleDecl `( @@`
	Skip *skipDecl `| @@ )`
}

type ruleDecl struct {
	Variant string  `"rule" @Ident`
	Token   *string `( "token" @String`
	Regex   *string `| "regex" @RawString )`
	Carries bool    `@"carries"?`
	More    *string `( "more" @Ident )?`
}

type skipDecl struct {
	Pattern string `"skip" @RawString`
}

var parser = participle.MustBuild(&file{})

// parseFile parses the .lexdecl source in src.
func parseFile(src string) (*file, error) {
	f := &file{}
	if err := parser.ParseString(src, f); err != nil {
		return nil, fmt.Errorf("lexigen: parsing declaration: %w", err)
	}
	return f, nil
}
