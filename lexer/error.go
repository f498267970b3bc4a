package lexer

import (
	"errors"
	"fmt"
)

// ErrDone is returned by Iterator.Next once the whole input has been
// consumed and no further tokens remain. It is a sentinel, not a scan
// failure — callers compare against it with errors.Is.
var ErrDone = errors.New("lexer: no more tokens")

// Error reports that no declared pattern matched at Offset, or that the
// continuation hook of the token starting at Offset failed. Per the
// error-then-stop policy, an Iterator that produces this does not advance
// past Offset: every subsequent Next() call returns the same Error again
// until the caller calls Reset.
type Error struct {
	Offset int
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: lexical error at offset %d", e.Offset)
}

// ErrHookFailed wraps a continuation hook's failure to extend a match.
type ErrHookFailed struct {
	Offset  int
	Variant string
}

func (e *ErrHookFailed) Error() string {
	return fmt.Sprintf("lexer: continuation hook for %s failed at offset %d", e.Variant, e.Offset)
}
