package lexer

import "iter"

// All adapts it into a Go 1.23 range-over-func sequence, stopping (without
// yielding a final error pair) once it.Next reaches ErrDone. Any other
// error is yielded once and iteration stops, consistent with Next's
// error-then-stop behavior — a caller that wants to keep driving the
// iterator past a scan error should call Next directly instead of range.
func All[T any](it *Iterator[T]) iter.Seq2[Token[T], error] {
	return func(yield func(Token[T], error) bool) {
		for {
			tok, err := it.Next()
			if err == ErrDone {
				return
			}
			if !yield(tok, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
