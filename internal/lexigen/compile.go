package lexigen

import (
	"fmt"

	"github.com/coregx/lexigen/internal/densedfa"
	"github.com/coregx/lexigen/internal/lexnfa"
	"github.com/coregx/lexigen/schema"
)

// compiled holds everything codegen needs once a declaration has been run
// through the core compilation pipeline.
type compiled struct {
	decl      *schema.Declaration
	ruleIndex []int // PatternTable's index into decl.Rules, -1 for skip
	dfa       *densedfa.DFA
	hooks     []hookName
}

// compileDeclaration runs d through schema.PatternTable, lexnfa.CompileMany
// and densedfa.Compile, the same pipeline lexer/iterator_test.go exercises
// directly against hand-built patterns.
func compileDeclaration(d *schema.Declaration, hooks []hookName) (*compiled, error) {
	patterns, ruleIndex, err := schema.PatternTable(d)
	if err != nil {
		return nil, fmt.Errorf("lexigen: %w", err)
	}

	nfa, err := lexnfa.CompileMany(patterns, lexnfa.CompilerConfig{})
	if err != nil {
		return nil, fmt.Errorf("lexigen: compiling patterns to an NFA: %w", err)
	}

	dfa, err := densedfa.Compile(nfa, densedfa.Options{Minimize: true})
	if err != nil {
		return nil, fmt.Errorf("lexigen: determinizing DFA: %w", err)
	}

	return &compiled{decl: d, ruleIndex: ruleIndex, dfa: dfa, hooks: hooks}, nil
}

// hookFor returns the continuation hook name declared for variant, or ""
// if none was declared.
func (c *compiled) hookFor(variant string) string {
	for _, h := range c.hooks {
		if h.variant == variant {
			return h.hook
		}
	}
	return ""
}
