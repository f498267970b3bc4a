package densedfa

// Step runs the DFA over s from its start state, tracking the longest
// prefix seen so far that lands on an accepting state. It stops as soon as
// the DFA reaches the dead state or runs out of input, and returns the
// last accepting (patternID, length) it saw. ok is false if no prefix of s
// matched anything — which includes an accepting start state, since the
// engine must never advance by zero: a pattern that can match empty (`a*`,
// `[a-z]*`, `a?`) never wins a zero-length match here.
//
// This mirrors the original lexi-matic derive macro's dfa_search_next: walk
// byte by byte, remember the most recent match, keep going past it because
// a longer match might still be found, stop at the first dead end.
func Step(dfa *DFA, s []byte) (patternID uint32, length int, ok bool) {
	state := dfa.StartState()
	bestPattern := NoMatch
	bestLen := 0

	if dfa.IsMatchState(state) {
		bestPattern, bestLen = dfa.MatchPattern(state), 0
	}

	for i, b := range s {
		state = dfa.NextState(state, b)
		if dfa.IsDeadState(state) {
			break
		}
		if dfa.IsMatchState(state) {
			bestPattern, bestLen = dfa.MatchPattern(state), i+1
		}
	}

	if bestPattern == NoMatch || bestLen == 0 {
		return 0, 0, false
	}
	return bestPattern, bestLen, true
}
