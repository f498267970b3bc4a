package lexer

import "github.com/coregx/lexigen/internal/densedfa"

// Token pairs a constructed variant value with the byte range it came from.
type Token[T any] struct {
	Value      T
	Start, End int
}

// Iterator owns an input buffer and a consumed-byte cursor, repeatedly
// running the Scan Step against the embedded DFA and dispatching each
// match to either a skip (advance, continue) or a token constructor.
//
// Not safe for concurrent use — exactly one goroutine should drive Next.
type Iterator[T any] struct {
	dfa      *densedfa.DFA
	input    []byte
	consumed int
	dispatch Dispatch[T]

	// stopErr is set the first time Next hits a scan-time error; per the
	// error-then-stop policy it is returned again, unchanged, on every
	// later call, since consumed never advanced past it.
	stopErr error
}

// Lex returns an Iterator over input using dfa and dispatch.
func Lex[T any](dfa *densedfa.DFA, dispatch Dispatch[T], input []byte) *Iterator[T] {
	return &Iterator[T]{dfa: dfa, input: input, dispatch: dispatch}
}

// Reset rewinds the iterator to the start of its input, clearing any
// stopped-on error.
func (it *Iterator[T]) Reset() {
	it.consumed = 0
	it.stopErr = nil
}

// Consumed returns how many bytes of the input have been consumed so far.
func (it *Iterator[T]) Consumed() int { return it.consumed }

// Next produces the next token, skipping over any skip-pattern matches in
// between. It returns ErrDone once the input is exhausted, and returns (and
// keeps returning) a scan-time *Error if no pattern matches at the current
// offset or a continuation hook fails to extend the match starting there —
// see the package-level error-then-stop policy on Error.
func (it *Iterator[T]) Next() (Token[T], error) {
	if it.stopErr != nil {
		var zero Token[T]
		return zero, it.stopErr
	}

	for {
		if it.consumed >= len(it.input) {
			var zero Token[T]
			return zero, ErrDone
		}

		remaining := it.input[it.consumed:]
		patternID, length, ok := densedfa.Step(it.dfa, remaining)
		if !ok {
			it.stopErr = &Error{Offset: it.consumed}
			var zero Token[T]
			return zero, it.stopErr
		}

		if it.dispatch.IsSkip(patternID) {
			it.consumed += length
			continue
		}

		entry, has := it.dispatch.Entries[patternID]
		if !has {
			it.stopErr = &Error{Offset: it.consumed}
			var zero Token[T]
			return zero, it.stopErr
		}

		matched := remaining[:length]
		if entry.Hook != nil {
			extra, ok := entry.Hook(matched, remaining[length:])
			if !ok {
				it.stopErr = &Error{Offset: it.consumed}
				var zero Token[T]
				return zero, it.stopErr
			}
			length += extra
			matched = remaining[:length]
		}

		value, err := entry.Build(matched)
		if err != nil {
			it.stopErr = err
			var zero Token[T]
			return zero, err
		}

		start := it.consumed
		it.consumed += length
		return Token[T]{Value: value, Start: start, End: it.consumed}, nil
	}
}
