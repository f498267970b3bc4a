package lexer

// ContinuationHook extends a base match. matched is the bytes the DFA
// already matched; remaining is everything after that. It returns how many
// additional bytes to fold into the token (extra, added to the base
// match's length) and whether the extension succeeded — a raw-string
// literal whose closing delimiter never shows up before end of input is
// the canonical case where ok is false.
type ContinuationHook func(matched, remaining []byte) (extra int, ok bool)

// Entry is one pattern id's dispatch rule: how to turn a matched byte
// slice into a token value of type T, and an optional hook to extend the
// match first.
type Entry[T any] struct {
	Build func(matched []byte) (T, error)
	Hook  ContinuationHook
}

// Dispatch maps pattern ids to construction rules. Patterns with id >=
// SkipFrom are skip patterns (advance the cursor, produce no token); this
// mirrors schema.PatternTable's convention of appending skip patterns
// after every token rule.
type Dispatch[T any] struct {
	Entries  map[uint32]Entry[T]
	SkipFrom uint32
}

// IsSkip reports whether patternID names a skip pattern.
func (d Dispatch[T]) IsSkip(patternID uint32) bool {
	return patternID >= d.SkipFrom
}
