package lexnfa

import "testing"

// walk runs a compiled NFA against input using simple epsilon-closure
// simulation, returning the pattern id of the first accepting state found
// (if several, the one with lowest id — NFA construction order mirrors
// declaration order) and whether input was fully consumed by some path.
func walk(t *testing.T, n *NFA, input []byte) (patternID int, matched bool) {
	t.Helper()
	current := map[StateID]bool{}
	addClosure(n, n.Start(), current)

	best := -1
	for s := range current {
		if st := n.State(s); st.IsMatch() {
			if best == -1 || st.PatternID() < best {
				best = st.PatternID()
			}
		}
	}
	if best != -1 && len(input) == 0 {
		return best, true
	}

	for _, b := range input {
		next := map[StateID]bool{}
		for s := range current {
			st := n.State(s)
			switch st.Kind() {
			case StateByteRange:
				lo, hi, target := st.ByteRange()
				if b >= lo && b <= hi {
					addClosure(n, target, next)
				}
			case StateSparse:
				for _, tr := range st.Transitions() {
					if b >= tr.Lo && b <= tr.Hi {
						addClosure(n, tr.Next, next)
					}
				}
			}
		}
		current = next
		if len(current) == 0 {
			return -1, false
		}
	}

	best = -1
	for s := range current {
		if st := n.State(s); st.IsMatch() {
			if best == -1 || st.PatternID() < best {
				best = st.PatternID()
			}
		}
	}
	return best, best != -1
}

func addClosure(n *NFA, id StateID, set map[StateID]bool) {
	if id == InvalidState || set[id] {
		return
	}
	set[id] = true
	st := n.State(id)
	switch st.Kind() {
	case StateEpsilon:
		addClosure(n, st.Epsilon(), set)
	case StateSplit:
		l, r := st.Split()
		addClosure(n, l, set)
		addClosure(n, r, set)
	}
}

func TestCompileManyDeclarationOrderTieBreak(t *testing.T) {
	patterns := []Pattern{
		{ID: 0, Source: "if"},
		{ID: 1, Source: "[a-z]+"},
	}
	nfa, err := CompileMany(patterns, CompilerConfig{})
	if err != nil {
		t.Fatalf("CompileMany: %v", err)
	}

	// "if" matches both the literal keyword (id 0) and the identifier
	// class (id 1); declaration order means the keyword wins.
	id, matched := walk(t, nfa, []byte("if"))
	if !matched || id != 0 {
		t.Fatalf("got (%d, %v), want (0, true)", id, matched)
	}

	// "ifx" only matches the identifier pattern.
	id, matched = walk(t, nfa, []byte("ifx"))
	if !matched || id != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", id, matched)
	}
}

func TestCompileManyNegatedClassCoversNonASCII(t *testing.T) {
	patterns := []Pattern{{ID: 0, Source: `"[^"]*"`}}
	nfa, err := CompileMany(patterns, CompilerConfig{})
	if err != nil {
		t.Fatalf("CompileMany: %v", err)
	}
	id, matched := walk(t, nfa, []byte("\"héllo\""))
	if !matched || id != 0 {
		t.Fatalf("got (%d, %v), want (0, true)", id, matched)
	}
}

func TestCompileManyRejectsOversizedUnicodeClass(t *testing.T) {
	_, err := CompileMany([]Pattern{{ID: 0, Source: `\p{L}`}}, CompilerConfig{})
	if err == nil {
		t.Fatal("expected an error for a non-ASCII class that neither fits the small-alternation path nor the full-coverage shortcut")
	}
}
