package densedfa

import (
	"hash/fnv"
	"sort"

	"github.com/coregx/lexigen/internal/lexnfa"
)

// Options configures DFA compilation.
type Options struct {
	// Minimize runs Moore partition refinement after subset construction.
	// The zero value (false) leaves the raw subset-construction automaton
	// as is; callers that want minimization set it to true.
	Minimize bool
}

// stateSet is a canonicalized, hashable set of NFA state ids — the
// DFA-construction analogue of dfa/lazy's cache key, but built once per
// discovered state instead of memoized behind a cache eviction policy.
type stateSet struct {
	ids []lexnfa.StateID
	key uint64
}

func newStateSet(ids map[lexnfa.StateID]bool) stateSet {
	sorted := make([]lexnfa.StateID, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	var buf [4]byte
	for _, id := range sorted {
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		h.Write(buf[:])
	}
	return stateSet{ids: sorted, key: h.Sum64()}
}

func epsilonClosure(nfa *lexnfa.NFA, start lexnfa.StateID, out map[lexnfa.StateID]bool) {
	if start == lexnfa.InvalidState || out[start] {
		return
	}
	out[start] = true
	s := nfa.State(start)
	switch s.Kind() {
	case lexnfa.StateEpsilon:
		epsilonClosure(nfa, s.Epsilon(), out)
	case lexnfa.StateSplit:
		l, r := s.Split()
		epsilonClosure(nfa, l, out)
		epsilonClosure(nfa, r, out)
	}
}

// matchPatternOf returns the lowest pattern id accepted by any Match state
// in set, or NoMatch if none. Declaration order is encoded directly in
// pattern id, so "lowest id" is exactly the spec's tie-break rule.
func matchPatternOf(nfa *lexnfa.NFA, set []lexnfa.StateID) uint32 {
	best := NoMatch
	for _, id := range set {
		s := nfa.State(id)
		if s.IsMatch() {
			pid := uint32(s.PatternID())
			if best == NoMatch || pid < best {
				best = pid
			}
		}
	}
	return best
}

// Compile performs subset construction over nfa's byte-class alphabet (plus
// one EOI column) into a dense DFA, then minimizes it when opts.Minimize is
// true.
func Compile(nfa *lexnfa.NFA, opts Options) (*DFA, error) {
	classes := nfa.ByteClasses()
	alphabetLen := classes.AlphabetLen()
	reps := classes.Representatives()

	startSet := map[lexnfa.StateID]bool{}
	epsilonClosure(nfa, nfa.Start(), startSet)
	start := newStateSet(startSet)

	dead := newStateSet(map[lexnfa.StateID]bool{})

	indexOf := map[uint64]int{dead.key: 0}
	discovered := []stateSet{dead}

	startIdx := len(discovered)
	indexOf[start.key] = startIdx
	discovered = append(discovered, start)
	worklist := []int{startIdx}

	stride := alphabetLen + 1
	var transitions []uint32

	for len(worklist) > 0 {
		idx := worklist[0]
		worklist = worklist[1:]
		set := discovered[idx]

		row := make([]uint32, stride)
		for classIdx, rep := range reps {
			moved := map[lexnfa.StateID]bool{}
			for _, id := range set.ids {
				s := nfa.State(id)
				switch s.Kind() {
				case lexnfa.StateByteRange:
					lo, hi, next := s.ByteRange()
					if rep >= lo && rep <= hi {
						epsilonClosure(nfa, next, moved)
					}
				case lexnfa.StateSparse:
					for _, tr := range s.Transitions() {
						if rep >= tr.Lo && rep <= tr.Hi {
							epsilonClosure(nfa, tr.Next, moved)
						}
					}
				}
			}
			target := newStateSet(moved)
			targetIdx, ok := indexOf[target.key]
			if !ok {
				targetIdx = len(discovered)
				indexOf[target.key] = targetIdx
				discovered = append(discovered, target)
				worklist = append(worklist, targetIdx)
			}
			row[classIdx] = uint32(targetIdx)
		}
		// EOI column: identity, see DFA.NextEOIState.
		row[alphabetLen] = uint32(idx)

		for len(transitions) < (idx+1)*stride {
			transitions = append(transitions, make([]uint32, stride)...)
		}
		copy(transitions[idx*stride:(idx+1)*stride], row)
	}

	matchPat := make([]uint32, len(discovered))
	matchPat[0] = NoMatch
	for i, set := range discovered {
		if i == 0 {
			continue
		}
		matchPat[i] = matchPatternOf(nfa, set.ids)
	}

	dfa := &DFA{
		Classes:     classes.Table(),
		AlphabetLen: alphabetLen,
		NumStates:   len(discovered),
		Start:       uint32(startIdx),
		Transitions: transitions,
		MatchPat:    matchPat,
	}

	if opts.Minimize {
		return minimize(dfa), nil
	}
	return dfa, nil
}
