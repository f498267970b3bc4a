package lexnfa

// Builder constructs an NFA incrementally. Several patterns can be
// compiled into the same Builder one after another — state ids keep
// incrementing across calls — which is how CompileMany produces one NFA
// out of many independently-compiled pattern fragments.
type Builder struct {
	states       []State
	start        StateID
	byteClassSet *ByteClassSet
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		states:       make([]State, 0, 64),
		start:        InvalidState,
		byteClassSet: NewByteClassSet(),
	}
}

// AddMatchFor adds an accepting state tagged with patternID.
func (b *Builder) AddMatchFor(patternID int) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateMatch, patternID: patternID})
	return id
}

// AddByteRange adds a state consuming one byte in [lo, hi] and moving to next.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	b.byteClassSet.SetRange(lo, hi)
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateByteRange, lo: lo, hi: hi, next: next})
	return id
}

// AddSparse adds a state with several byte-range arms (a character class).
func (b *Builder) AddSparse(transitions []Transition) StateID {
	for _, t := range transitions {
		b.byteClassSet.SetRange(t.Lo, t.Hi)
	}
	id := StateID(len(b.states))
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{id: id, kind: StateSparse, transitions: trans})
	return id
}

// AddSplit adds an alternation fork with no priority distinction.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddQuantifierSplit adds a fork for greedy quantifiers: left is the
// "repeat" branch, right is "exit". Declaration-order tie-breaking doesn't
// depend on thread priority the way a backtracker would, but keeping the
// distinction makes the split chain read the same way the teacher's does.
func (b *Builder) AddQuantifierSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right, isQuantifierSplit: true})
	return id
}

// AddEpsilon adds a state with a single unconditional transition.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// Patch rewrites the forward reference of a ByteRange or Epsilon state.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state id out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon:
		s.next = target
		return nil
	default:
		return &BuildError{Message: "cannot patch state of kind " + s.kind.String(), StateID: stateID}
	}
}

// SetStart sets the NFA's single entry state.
func (b *Builder) SetStart(start StateID) { b.start = start }

// States returns the number of states added so far.
func (b *Builder) States() int { return len(b.states) }

// Build finalizes the NFA. patternCount is the number of distinct patterns
// unioned into the builder.
func (b *Builder) Build(patternCount int) (*NFA, error) {
	if b.start == InvalidState {
		return nil, &BuildError{Message: "start state not set"}
	}
	if int(b.start) >= len(b.states) {
		return nil, &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	return &NFA{
		states:       b.states,
		start:        b.start,
		patternCount: patternCount,
		byteClasses:  b.byteClassSet.ByteClasses(),
	}, nil
}
