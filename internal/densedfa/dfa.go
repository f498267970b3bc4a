// Package densedfa turns a multi-pattern lexnfa.NFA into a single dense,
// fully materialized DFA: subset construction over a reduced byte alphabet,
// optional Moore minimization, and a byte-blob serialization suitable for
// embedding as a compile-time constant and reloading at process start
// without re-running either step.
package densedfa

// NoMatch marks a DFA state that accepts no pattern.
const NoMatch = ^uint32(0)

// DeadState is the sentinel state with no outgoing transitions and no
// match — every transition table has it at index 0.
const DeadState uint32 = 0

// DFA is a dense transition table over a reduced byte alphabet, plus one
// extra column for the end-of-input symbol.
//
// Transitions are stored as a flat slice: state s's transition for class c
// is Transitions[s*stride+c], where stride = AlphabetLen+1 (the +1 is the
// EOI column, last column index AlphabetLen).
type DFA struct {
	Classes     [256]byte
	AlphabetLen int
	NumStates   int
	Start       uint32
	Transitions []uint32
	MatchPat    []uint32 // per state: NoMatch, or the lowest accepting pattern id
}

func (d *DFA) stride() int { return d.AlphabetLen + 1 }

// NextState returns the state reached from s on byte b.
func (d *DFA) NextState(s uint32, b byte) uint32 {
	class := d.Classes[b]
	return d.Transitions[int(s)*d.stride()+int(class)]
}

// NextEOIState returns the state reached from s on end-of-input. None of
// the patterns this generator supports observe a distinct post-EOI
// transition (no look-around), so this is the identity transition; it
// exists so callers can drive the DFA through the same interface the
// original automaton exposes.
func (d *DFA) NextEOIState(s uint32) uint32 {
	return d.Transitions[int(s)*d.stride()+d.AlphabetLen]
}

// IsMatchState reports whether s accepts some pattern.
func (d *DFA) IsMatchState(s uint32) bool {
	return d.MatchPat[s] != NoMatch
}

// IsDeadState reports whether s has no way to ever reach a match.
func (d *DFA) IsDeadState(s uint32) bool {
	return s == DeadState
}

// MatchPattern returns the pattern id accepted by state s, the lowest
// declaration-order id among any patterns that close simultaneously in s.
func (d *DFA) MatchPattern(s uint32) uint32 {
	return d.MatchPat[s]
}

// StartState returns the DFA's entry state.
func (d *DFA) StartState() uint32 {
	return d.Start
}
