package layout

import (
	"errors"
	"testing"

	"github.com/coregx/lexigen/lexer"
)

type pseudo struct {
	kind string
	col  int
}

// fakeSource replays a fixed token list, standing in for a real
// lexer.Iterator so the indentation logic can be tested without wiring a
// full DFA.
func fakeSource(toks []lexer.Token[pseudo]) Source[pseudo] {
	i := 0
	return func() (lexer.Token[pseudo], error) {
		if i >= len(toks) {
			var zero lexer.Token[pseudo]
			return zero, lexer.ErrDone
		}
		t := toks[i]
		i++
		return t, nil
	}
}

func synth() Synth[pseudo] {
	return Synth[pseudo]{
		Indent:  func(col int) pseudo { return pseudo{kind: "indent", col: col} },
		Dedent:  func(col int) pseudo { return pseudo{kind: "dedent", col: col} },
		Newline: func() pseudo { return pseudo{kind: "newline"} },
	}
}

func drain(t *testing.T, s *Stack[pseudo]) []pseudo {
	t.Helper()
	var out []pseudo
	for {
		tok, err := s.Next()
		if errors.Is(err, lexer.ErrDone) {
			return out
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, tok.Value)
	}
}

func TestStackIndentAndDedent(t *testing.T) {
	// a
	// b
	//   c
	// d
	input := []byte("a\nb\n  c\nd")
	toks := []lexer.Token[pseudo]{
		{Value: pseudo{kind: "id", col: -1}, Start: 0, End: 1},
		{Value: pseudo{kind: "id", col: -1}, Start: 2, End: 3},
		{Value: pseudo{kind: "id", col: -1}, Start: 6, End: 7},
		{Value: pseudo{kind: "id", col: -1}, Start: 8, End: 9},
	}
	s := NewStack(input, fakeSource(toks), synth())
	got := drain(t, s)

	wantKinds := []string{"id", "newline", "id", "newline", "indent", "id", "newline", "dedent", "id"}
	if len(got) != len(wantKinds) {
		t.Fatalf("got %d tokens %+v, want %d kinds %v", len(got), got, len(wantKinds), wantKinds)
	}
	for i, k := range wantKinds {
		if got[i].kind != k {
			t.Fatalf("token %d: got kind %q, want %q (full: %+v)", i, got[i].kind, k, got)
		}
	}
}

func TestStackMismatchedDedentErrors(t *testing.T) {
	// a
	//   b
	//  c   <- column 1, matches no open level (0 or 2)
	input := []byte("a\n  b\n c")
	toks := []lexer.Token[pseudo]{
		{Value: pseudo{kind: "id"}, Start: 0, End: 1},
		{Value: pseudo{kind: "id"}, Start: 4, End: 5},
		{Value: pseudo{kind: "id"}, Start: 7, End: 8},
	}
	s := NewStack(input, fakeSource(toks), synth())

	var lexErr *lexer.Error
	for i := 0; i < 10; i++ {
		_, err := s.Next()
		if err != nil {
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *lexer.Error, got %v", err)
			}
			return
		}
	}
	t.Fatal("expected a dedent-mismatch error")
}
