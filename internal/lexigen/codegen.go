package lexigen

import (
	"bytes"
	"encoding/binary"

	"github.com/coregx/lexigen/schema"
	"github.com/dave/jennifer/jen"
)

// generate renders c as a complete Go source file in pkg, the way
// KromDaniel-regengo's compiler builds one jen.File per compilation unit.
func generate(c *compiled, pkg string) ([]byte, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by lexigen. DO NOT EDIT.")

	name := c.decl.Name
	kindType := name + "Kind"
	tokenType := name + "Token"

	genKindType(f, kindType, c.decl.Rules)
	genTokenType(f, tokenType, kindType)
	genDFABytes(f, name, c)
	genView(f, name)
	genConstructor(f, name, kindType, tokenType, c)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func genKindType(f *jen.File, kindType string, rules []schema.Rule) {
	f.Type().Id(kindType).Int()

	var names []jen.Code
	for i, r := range rules {
		id := kindType + r.Variant
		if i == 0 {
			names = append(names, jen.Id(id).Id(kindType).Op("=").Iota())
		} else {
			names = append(names, jen.Id(id))
		}
	}
	f.Const().Defs(names...)
}

func genTokenType(f *jen.File, tokenType, kindType string) {
	f.Type().Id(tokenType).Struct(
		jen.Id("Kind").Id(kindType),
		jen.Id("Text").String(),
	)
}

func genDFABytes(f *jen.File, name string, c *compiled) {
	le, _ := c.dfa.ToBytes(binary.LittleEndian)
	be, _ := c.dfa.ToBytes(binary.BigEndian)

	f.Var().Id("__" + name + "DFABytesLE").Op("=").Index().Byte().Values(byteValues(le)...)
	f.Var().Id("__" + name + "DFABytesBE").Op("=").Index().Byte().Values(byteValues(be)...)
}

func byteValues(b []byte) []jen.Code {
	vals := make([]jen.Code, len(b))
	for i, v := range b {
		vals[i] = jen.LitByte(v)
	}
	return vals
}

func genView(f *jen.File, name string) {
	f.Var().Id("__" + name + "View").Op("=").Qual(densedfaPkg, "NewView").Call(
		jen.Id("__"+name+"DFABytesLE"),
		jen.Id("__"+name+"DFABytesBE"),
	)
}

// genConstructor emits New<Name>, the wiring glue between the embedded DFA
// and the generic lexer.Iterator/lexer.Dispatch machinery.
func genConstructor(f *jen.File, name, kindType, tokenType string, c *compiled) {
	entries := jen.Dict{}
	// No skip rules means no pattern id is ever >= len(ruleIndex), so every
	// dispatch lands in entries.
	skipFrom := jen.Lit(uint32(len(c.ruleIndex)))
	firstSkip := -1

	for id, ruleIdx := range c.ruleIndex {
		if ruleIdx < 0 {
			if firstSkip < 0 {
				firstSkip = id
			}
			continue
		}
		r := c.decl.Rules[ruleIdx]
		buildFn := jen.Func().Params(jen.Id("m").Index().Byte()).Params(jen.Id(tokenType), jen.Error()).Block(
			tokenBuildBody(tokenType, kindType, r)...,
		)

		entry := jen.Values(jen.Dict{jen.Id("Build"): buildFn})
		if hook := c.hookFor(r.Variant); hook != "" {
			entry = jen.Values(jen.Dict{
				jen.Id("Build"): buildFn,
				jen.Id("Hook"):  jen.Id("hooks").Index(jen.Lit(hook)),
			})
		}
		entries[jen.Lit(uint32(id))] = entry
	}
	if firstSkip >= 0 {
		skipFrom = jen.Lit(uint32(firstSkip))
	}

	f.Comment("New" + name + " builds an iterator over input. hooks must supply an entry")
	f.Comment("for every \"more\" continuation hook the declaration named.")
	f.Func().Id("New" + name).Params(
		jen.Id("input").Index().Byte(),
		jen.Id("hooks").Map(jen.String()).Qual(lexerPkg, "ContinuationHook"),
	).Params(
		jen.Op("*").Qual(lexerPkg, "Iterator").Index(jen.Id(tokenType)),
		jen.Error(),
	).Block(
		jen.List(jen.Id("dfa"), jen.Err()).Op(":=").Id("__"+name+"View").Dot("Get").Call(),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit(name+": loading dfa: %w"), jen.Err())),
		),
		jen.Id("dispatch").Op(":=").Qual(lexerPkg, "Dispatch").Index(jen.Id(tokenType)).Values(jen.Dict{
			jen.Id("SkipFrom"): skipFrom,
			jen.Id("Entries"):  jen.Map(jen.Uint32()).Qual(lexerPkg, "Entry").Index(jen.Id(tokenType)).Values(entries),
		}),
		jen.Return(jen.Qual(lexerPkg, "Lex").Index(jen.Id(tokenType)).Call(
			jen.Id("dfa"), jen.Id("dispatch"), jen.Id("input"),
		), jen.Nil()),
	)
}

func tokenBuildBody(tokenType, kindType string, r schema.Rule) []jen.Code {
	val := jen.Id(tokenType).Values(jen.Dict{
		jen.Id("Kind"): jen.Id(kindType + r.Variant),
	})
	if r.CarriesText {
		val = jen.Id(tokenType).Values(jen.Dict{
			jen.Id("Kind"): jen.Id(kindType + r.Variant),
			jen.Id("Text"): jen.String().Call(jen.Id("m")),
		})
	}
	return []jen.Code{jen.Return(val, jen.Nil())}
}

const (
	lexerPkg    = "github.com/coregx/lexigen/lexer"
	densedfaPkg = "github.com/coregx/lexigen/internal/densedfa"
)
