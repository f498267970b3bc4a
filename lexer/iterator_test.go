package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/lexigen/internal/densedfa"
	"github.com/coregx/lexigen/internal/lexnfa"
)

type tok struct {
	kind string
	text string
}

func buildDFA(t *testing.T, patterns []lexnfa.Pattern) *densedfa.DFA {
	t.Helper()
	nfa, err := lexnfa.CompileMany(patterns, lexnfa.CompilerConfig{})
	if err != nil {
		t.Fatalf("CompileMany: %v", err)
	}
	dfa, err := densedfa.Compile(nfa, densedfa.Options{Minimize: true})
	if err != nil {
		t.Fatalf("densedfa.Compile: %v", err)
	}
	return dfa
}

func miniLangFixture(t *testing.T) (*densedfa.DFA, Dispatch[tok]) {
	t.Helper()
	patterns := []lexnfa.Pattern{
		{ID: 0, Source: "if"},
		{ID: 1, Source: "[a-zA-Z_][a-zA-Z0-9_]*"},
		{ID: 2, Source: "[0-9]+"},
		{ID: 3, Source: "[ \t\n]+"}, // skip
	}
	dfa := buildDFA(t, patterns)
	dispatch := Dispatch[tok]{
		SkipFrom: 3,
		Entries: map[uint32]Entry[tok]{
			0: {Build: func(m []byte) (tok, error) { return tok{kind: "if"}, nil }},
			1: {Build: func(m []byte) (tok, error) { return tok{kind: "ident", text: string(m)}, nil }},
			2: {Build: func(m []byte) (tok, error) { return tok{kind: "num", text: string(m)}, nil }},
		},
	}
	return dfa, dispatch
}

func TestIteratorSkipsWhitespaceAndDispatches(t *testing.T) {
	dfa, dispatch := miniLangFixture(t)
	it := Lex(dfa, dispatch, []byte("if  x1 42"))

	want := []tok{{kind: "if"}, {kind: "ident", text: "x1"}, {kind: "num", text: "42"}}
	for i, w := range want {
		got, err := it.Next()
		if err != nil {
			t.Fatalf("token %d: unexpected error %v", i, err)
		}
		if got.Value != w {
			t.Fatalf("token %d: got %+v, want %+v", i, got.Value, w)
		}
	}
	if _, err := it.Next(); !errors.Is(err, ErrDone) {
		t.Fatalf("expected ErrDone, got %v", err)
	}
}

func TestIteratorErrorThenStop(t *testing.T) {
	dfa, dispatch := miniLangFixture(t)
	it := Lex(dfa, dispatch, []byte("x1 @@@ 42"))

	if _, err := it.Next(); err != nil {
		t.Fatalf("first token: unexpected error %v", err)
	}

	_, err1 := it.Next()
	var scanErr *Error
	if !errors.As(err1, &scanErr) {
		t.Fatalf("expected *Error, got %v", err1)
	}
	if scanErr.Offset != 3 {
		t.Fatalf("got offset %d, want 3", scanErr.Offset)
	}

	// Per the error-then-stop policy, consumed must not have advanced:
	// calling Next again yields the identical error at the same offset,
	// indefinitely, rather than skipping the bad byte and continuing.
	_, err2 := it.Next()
	if err2 != err1 {
		t.Fatalf("expected the identical error on a repeat call, got a different one: %v vs %v", err1, err2)
	}
	_, err3 := it.Next()
	if err3 != err1 {
		t.Fatalf("expected the identical error on a third call, got: %v", err3)
	}
}

func TestIteratorResetClearsStoppedError(t *testing.T) {
	dfa, dispatch := miniLangFixture(t)
	it := Lex(dfa, dispatch, []byte("@@@"))

	_, err1 := it.Next()
	if err1 == nil {
		t.Fatal("expected a scan error")
	}
	it.Reset()
	_, err2 := it.Next()
	if err2 == nil {
		t.Fatal("expected the same scan error again after reset, since the input didn't change")
	}
	// A cleared stopped error means Next scanned again and built a fresh
	// error rather than returning the stored one.
	if err2 == err1 {
		t.Fatal("expected Reset to clear the stopped error, got the stored one back")
	}
	var scanErr *Error
	if !errors.As(err2, &scanErr) || scanErr.Offset != 0 {
		t.Fatalf("expected *Error at offset 0 after reset, got %v", err2)
	}
}

func TestIteratorContinuationHookExtendsMatch(t *testing.T) {
	// The raw-string scenario: the base pattern matches the opening
	// delimiter r#*" (a variable count of '#'), and a hook derives the
	// matching closer's hash count from what the DFA actually matched,
	// then scans forward for it — the one part of this token a regular
	// language can't express, since the DFA carries no count.
	patterns := []lexnfa.Pattern{{ID: 0, Source: `r#*"`}}
	dfa := buildDFA(t, patterns)

	hook := func(matched, remaining []byte) (extra int, ok bool) {
		hashes := strings.Count(string(matched), "#")
		terminator := `"` + strings.Repeat("#", hashes)
		idx := indexOf(remaining, []byte(terminator))
		if idx < 0 {
			return 0, false
		}
		return idx + len(terminator), true
	}
	dispatch := Dispatch[tok]{
		SkipFrom: 1,
		Entries: map[uint32]Entry[tok]{
			0: {Hook: hook, Build: func(m []byte) (tok, error) { return tok{kind: "rawstr", text: string(m)}, nil }},
		},
	}

	it := Lex(dfa, dispatch, []byte(`r#"abc"#`))
	got, err := it.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `r#"abc"#`
	if got.Value.text != want {
		t.Fatalf("got %q, want %q", got.Value.text, want)
	}
	if got.Start != 0 || got.End != 8 {
		t.Fatalf("got span [%d,%d), want [0,8)", got.Start, got.End)
	}

	// A bare '"' not followed by the opener's hash count must not satisfy
	// the closer — only "#, the reversed opener suffix, may end the token.
	it2 := Lex(dfa, dispatch, []byte(`r#"quote " here"#`))
	got2, err := it2.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want2 := `r#"quote " here"#`
	if got2.Value.text != want2 {
		t.Fatalf("got %q, want %q", got2.Value.text, want2)
	}
}

func indexOf(haystack, needle []byte) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
