package lexigen

import (
	"strings"
	"testing"
)

const miniLangDecl = `
lexer MiniLang

rule If token "if"
rule Ident regex ` + "`[a-zA-Z_][a-zA-Z0-9_]*`" + ` carries
rule Number regex ` + "`[0-9]+`" + ` carries
rule RawString regex ` + "`r#\"`" + ` carries more rawStringCloser

skip ` + "`[ \\t\\n]+`" + `
`

func TestParseFile(t *testing.T) {
	f, err := parseFile(miniLangDecl)
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	if f.Name != "MiniLang" {
		t.Fatalf("got name %q, want MiniLang", f.Name)
	}

	var rules, skips int
	for _, d := range f.Decls {
		switch {
		case d.Rule != nil:
			rules++
		case d.Skip != nil:
			skips++
		}
	}
	if rules != 4 || skips != 1 {
		t.Fatalf("got %d rules, %d skips; want 4 rules, 1 skip", rules, skips)
	}
}

func TestToDeclaration(t *testing.T) {
	f, err := parseFile(miniLangDecl)
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	decl, hooks, err := toDeclaration(f)
	if err != nil {
		t.Fatalf("toDeclaration: %v", err)
	}
	if len(decl.Rules) != 4 {
		t.Fatalf("got %d rules, want 4", len(decl.Rules))
	}
	if decl.Rules[0].Token != "if" {
		t.Fatalf("got token %q, want \"if\"", decl.Rules[0].Token)
	}
	if len(decl.Skip) != 1 {
		t.Fatalf("got %d skip patterns, want 1", len(decl.Skip))
	}
	if len(hooks) != 1 || hooks[0].variant != "RawString" || hooks[0].hook != "rawStringCloser" {
		t.Fatalf("got hooks %+v, want one hook on RawString -> rawStringCloser", hooks)
	}
}

func TestCompileAndGenerate(t *testing.T) {
	f, err := parseFile(miniLangDecl)
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	decl, hooks, err := toDeclaration(f)
	if err != nil {
		t.Fatalf("toDeclaration: %v", err)
	}
	c, err := compileDeclaration(decl, hooks)
	if err != nil {
		t.Fatalf("compileDeclaration: %v", err)
	}

	src, err := generate(c, "minilang")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(src)

	for _, want := range []string{
		"package minilang",
		"type MiniLangKind int",
		"MiniLangKindIf",
		"type MiniLangToken struct",
		"func NewMiniLang(",
		"__MiniLangDFABytesLE",
		"__MiniLangDFABytesBE",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("generated source missing %q:\n%s", want, out)
		}
	}
}

func TestCompileRejectsInvalidDeclaration(t *testing.T) {
	bad := `
lexer Bad

rule A token "x"
rule A token "y"
`
	f, err := parseFile(bad)
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	decl, hooks, err := toDeclaration(f)
	if err != nil {
		t.Fatalf("toDeclaration: %v", err)
	}
	if _, err := compileDeclaration(decl, hooks); err == nil {
		t.Fatal("expected a duplicate-variant error")
	}
}
