package lexnfa

// Pattern is one entry of a declaration's ordered pattern table: a single
// regex source (literals already escaped by the caller via regexp.QuoteMeta)
// together with the declaration-order id it should be tagged with in the
// unioned NFA.
type Pattern struct {
	ID     int
	Source string
}

// CompileMany compiles every pattern's fragment into one shared Builder and
// unions them behind a single start state, each fragment's end wired to its
// own pattern-tagged StateMatch. Patterns are expected in declaration
// order — tokens first, then skip patterns — since that order is exactly
// the tie-break the dense DFA compiler applies when two patterns match the
// same-length prefix.
func CompileMany(patterns []Pattern, config CompilerConfig) (*NFA, error) {
	if len(patterns) == 0 {
		return nil, &BuildError{Message: "no patterns to compile"}
	}

	builder := NewBuilder()
	compiler := NewCompiler(builder, config)

	starts := make([]StateID, 0, len(patterns))
	for _, p := range patterns {
		start, end, err := compiler.CompileFragment(p.Source)
		if err != nil {
			return nil, &CompileError{PatternID: p.ID, Pattern: p.Source, Err: err}
		}
		matchID := builder.AddMatchFor(p.ID)
		if err := builder.Patch(end, matchID); err != nil {
			// Every fragment the compiler returns ends in a patchable
			// ByteRange or Epsilon state; any other end is reported here.
			return nil, &CompileError{PatternID: p.ID, Pattern: p.Source, Err: err}
		}
		starts = append(starts, start)
	}

	builder.SetStart(compiler.buildSplitChain(starts))
	return builder.Build(len(patterns))
}
