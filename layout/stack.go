// Package layout is an illustrative, non-core client: it shows how a
// consumer can sit on top of lexer.Iterator and turn plain column offsets
// into synthesized Indent/Dedent/Newline pseudo-tokens, the way an
// indentation-sensitive grammar (Python, YAML, Haskell's layout rule)
// needs. It depends only on the engine's consumer contract — a function
// returning (lexer.Token[T], error) — never on a concrete token type, so
// it works unmodified with any generated lexer.
package layout

import "github.com/coregx/lexigen/lexer"

// Source is anything shaped like an Iterator's Next method.
type Source[T any] func() (lexer.Token[T], error)

// Synth builds the pseudo-tokens this package injects into the stream.
// Col is the target column for Indent/Dedent (the new indentation level
// for Indent, the level being returned to for Dedent); it is unused by
// Newline.
type Synth[T any] struct {
	Indent  func(col int) T
	Dedent  func(col int) T
	Newline func() T
}

// Stack wraps a token source with an indentation column stack. The first
// token on every line (any token whose predecessor's end and own start
// straddle a '\n' in input) is checked against the stack: a deeper column
// pushes and yields Indent, a shallower column pops one or more levels and
// yields one Dedent per level, and an equal column yields nothing extra.
// A Newline pseudo-token precedes the indentation check on every line
// after the first.
//
// Not safe for concurrent use, same as the Iterator it wraps.
type Stack[T any] struct {
	source Source[T]
	input  []byte
	synth  Synth[T]

	levels  []int
	pending []lexer.Token[T]
	prevEnd int
	started bool
	done    bool
}

// NewStack returns a Stack reading from source over input, using synth to
// build its pseudo-tokens.
func NewStack[T any](input []byte, source Source[T], synth Synth[T]) *Stack[T] {
	return &Stack[T]{source: source, input: input, synth: synth, levels: []int{0}}
}

// Next returns the next token, real or synthesized.
func (s *Stack[T]) Next() (lexer.Token[T], error) {
	if len(s.pending) > 0 {
		tok := s.pending[0]
		s.pending = s.pending[1:]
		return tok, nil
	}
	if s.done {
		var zero lexer.Token[T]
		return zero, lexer.ErrDone
	}

	tok, err := s.source()
	if err == lexer.ErrDone {
		s.done = true
		s.queueFinalDedents()
		return s.Next()
	}
	if err != nil {
		var zero lexer.Token[T]
		return zero, err
	}

	crossedLine := s.started && containsNewline(s.input[s.prevEnd:tok.Start])
	firstToken := !s.started
	s.started = true
	s.prevEnd = tok.End

	if firstToken {
		return tok, nil
	}
	if !crossedLine {
		return tok, nil
	}

	s.pending = append(s.pending, lexer.Token[T]{Value: s.synth.Newline()})
	col := columnOf(s.input, tok.Start)
	if err := s.adjustIndent(col, tok.Start); err != nil {
		var zero lexer.Token[T]
		return zero, err
	}
	s.pending = append(s.pending, tok)

	first := s.pending[0]
	s.pending = s.pending[1:]
	return first, nil
}

func (s *Stack[T]) adjustIndent(col, offset int) error {
	top := s.levels[len(s.levels)-1]
	switch {
	case col > top:
		s.levels = append(s.levels, col)
		s.pending = append(s.pending, lexer.Token[T]{Value: s.synth.Indent(col)})
	case col < top:
		for len(s.levels) > 1 && s.levels[len(s.levels)-1] > col {
			s.levels = s.levels[:len(s.levels)-1]
			s.pending = append(s.pending, lexer.Token[T]{Value: s.synth.Dedent(col)})
		}
		if s.levels[len(s.levels)-1] != col {
			return &lexer.Error{Offset: offset}
		}
	}
	return nil
}

func (s *Stack[T]) queueFinalDedents() {
	for len(s.levels) > 1 {
		s.levels = s.levels[:len(s.levels)-1]
		s.pending = append(s.pending, lexer.Token[T]{Value: s.synth.Dedent(s.levels[len(s.levels)-1])})
	}
}

func containsNewline(b []byte) bool {
	for _, c := range b {
		if c == '\n' {
			return true
		}
	}
	return false
}

// columnOf returns the zero-based column of offset within input, i.e. the
// distance back to the preceding '\n' (or the start of input).
func columnOf(input []byte, offset int) int {
	col := 0
	for i := offset - 1; i >= 0 && input[i] != '\n'; i-- {
		col++
	}
	return col
}
