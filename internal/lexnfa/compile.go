package lexnfa

import (
	"fmt"
	"regexp/syntax"
)

// CompilerConfig configures a single pattern's compilation.
type CompilerConfig struct {
	// DotNewline makes '.' match '\n' as well as every other byte.
	DotNewline bool

	// MaxRecursionDepth bounds AST recursion to avoid a stack overflow on a
	// pathologically nested declared pattern. Zero means DefaultMaxDepth.
	MaxRecursionDepth int
}

// DefaultMaxDepth is used when CompilerConfig.MaxRecursionDepth is zero.
const DefaultMaxDepth = 100

// Compiler compiles regexp/syntax ASTs into NFA fragments inside a shared
// Builder. A single Compiler is reused across every pattern in a
// declaration so state ids stay unique across the whole union.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int
}

// NewCompiler returns a compiler that appends fragments to builder.
func NewCompiler(builder *Builder, config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = DefaultMaxDepth
	}
	return &Compiler{config: config, builder: builder}
}

// CompileFragment parses source and compiles it into a fragment, returning
// the (start, end) states of the fragment. end still needs to be patched
// to wherever the fragment should continue (typically a StateMatch).
func (c *Compiler) CompileFragment(source string) (start, end StateID, err error) {
	re, err := syntax.Parse(source, syntax.Perl)
	if err != nil {
		return InvalidState, InvalidState, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	c.depth = 0
	return c.compile(re)
}

func (c *Compiler) compile(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		c.depth--
		return InvalidState, InvalidState, ErrTooComplex
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpLiteral:
		return c.compileLiteral(re)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyChar:
		return c.compileAny(true)
	case syntax.OpAnyCharNotNL:
		return c.compileAny(c.config.DotNewline)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0])
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0])
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max)
	case syntax.OpEmptyMatch:
		return c.compileEmptyMatch()
	case syntax.OpBeginText, syntax.OpBeginLine:
		// Every scan is already anchored at the start of the remaining
		// input, so a leading ^/\A is a no-op rather than an assertion.
		return c.compileEmptyMatch()
	case syntax.OpNoMatch:
		return c.compileNoMatch()
	default:
		return InvalidState, InvalidState, fmt.Errorf("%w: unsupported operator %v", ErrInvalidPattern, re.Op)
	}
}

func (c *Compiler) compileLiteral(re *syntax.Regexp) (start, end StateID, err error) {
	if len(re.Rune) == 0 {
		return c.compileEmptyMatch()
	}
	foldCase := re.Flags&syntax.FoldCase != 0
	var prev, first StateID = InvalidState, InvalidState
	for _, r := range re.Rune {
		var next StateID
		if foldCase && isASCIILetter(r) {
			next, err = c.compileFoldedRune(r, prev, &first)
		} else {
			next, err = c.compileRune(r, prev, &first)
		}
		if err != nil {
			return InvalidState, InvalidState, err
		}
		prev = next
	}
	return first, prev, nil
}

func (c *Compiler) compileRune(r rune, prev StateID, first *StateID) (StateID, error) {
	var buf [4]byte
	n := encodeRune(buf[:], r)
	for i := 0; i < n; i++ {
		id := c.builder.AddByteRange(buf[i], buf[i], InvalidState)
		if *first == InvalidState {
			*first = id
		}
		if prev != InvalidState {
			if err := c.builder.Patch(prev, id); err != nil {
				return InvalidState, err
			}
		}
		prev = id
	}
	return prev, nil
}

func (c *Compiler) compileFoldedRune(r rune, prev StateID, first *StateID) (StateID, error) {
	upper, lower := toUpperASCII(r), toLowerASCII(r)
	upperStart, upperEnd, err := c.compileSingleRune(upper)
	if err != nil {
		return InvalidState, err
	}
	lowerStart, lowerEnd, err := c.compileSingleRune(lower)
	if err != nil {
		return InvalidState, err
	}
	join := c.builder.AddEpsilon(InvalidState)
	if err := c.builder.Patch(upperEnd, join); err != nil {
		return InvalidState, err
	}
	if err := c.builder.Patch(lowerEnd, join); err != nil {
		return InvalidState, err
	}
	split := c.builder.AddSplit(upperStart, lowerStart)
	if prev == InvalidState {
		*first = split
	} else if err := c.builder.Patch(prev, split); err != nil {
		return InvalidState, err
	}
	return join, nil
}

func (c *Compiler) compileSingleRune(r rune) (start, end StateID, err error) {
	var buf [4]byte
	n := encodeRune(buf[:], r)
	var prev, first StateID = InvalidState, InvalidState
	for i := 0; i < n; i++ {
		id := c.builder.AddByteRange(buf[i], buf[i], InvalidState)
		if first == InvalidState {
			first = id
		}
		if prev != InvalidState {
			if err := c.builder.Patch(prev, id); err != nil {
				return InvalidState, InvalidState, err
			}
		}
		prev = id
	}
	return first, prev, nil
}

func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// compileCharClass handles [ranges]. Pure-ASCII classes compile directly to
// byte ranges. Non-ASCII classes are in-scope only as far as the Non-goal
// "Unicode-class regex features beyond what a byte-oriented DFA supports"
// allows: a small rune set expands into an alternation of literals, and a
// negated class that covers the entirety of non-ASCII Unicode (the common
// case, e.g. [^"] in a string body) gets the efficient any-UTF8-sequence
// treatment. Anything else is ErrTooComplex.
func (c *Compiler) compileCharClass(ranges []rune) (start, end StateID, err error) {
	if len(ranges) == 0 {
		return c.compileNoMatch()
	}

	allASCII := true
	for _, r := range ranges {
		if r > 127 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return c.compileASCIIRanges(ranges)
	}

	var nonASCIILo, nonASCIIHi rune = -1, -1
	nonASCIICount := 0
	for i := 0; i < len(ranges); i += 2 {
		if ranges[i+1] >= 0x80 {
			nonASCIICount++
			nonASCIILo, nonASCIIHi = ranges[i], ranges[i+1]
		}
	}
	coversAllNonASCII := nonASCIICount == 1 && nonASCIILo <= 0x80 && nonASCIIHi >= 0x10FFFF

	totalChars := int64(0)
	for i := 0; i < len(ranges); i += 2 {
		totalChars += int64(ranges[i+1]-ranges[i]) + 1
		if totalChars > 256 && !coversAllNonASCII {
			return InvalidState, InvalidState, fmt.Errorf("%w: unicode class too large for direct byte-range compilation", ErrTooComplex)
		}
	}

	if coversAllNonASCII {
		return c.compileASCIIPlusAnyNonASCII(ranges)
	}

	var alts []*syntax.Regexp
	for i := 0; i < len(ranges); i += 2 {
		for r := ranges[i]; r <= ranges[i+1]; r++ {
			alts = append(alts, &syntax.Regexp{Op: syntax.OpLiteral, Rune: []rune{r}})
		}
	}
	if len(alts) == 1 {
		return c.compile(alts[0])
	}
	return c.compileAlternate(alts)
}

func (c *Compiler) compileASCIIRanges(ranges []rune) (start, end StateID, err error) {
	var transitions []Transition
	for i := 0; i < len(ranges); i += 2 {
		transitions = append(transitions, Transition{Lo: byte(ranges[i]), Hi: byte(ranges[i+1])})
	}
	if len(transitions) == 1 {
		t := transitions[0]
		id := c.builder.AddByteRange(t.Lo, t.Hi, InvalidState)
		return id, id, nil
	}
	target := c.builder.AddEpsilon(InvalidState)
	for i := range transitions {
		transitions[i].Next = target
	}
	id := c.builder.AddSparse(transitions)
	return id, target, nil
}

// compileASCIIPlusAnyNonASCII builds: the class's ASCII ranges, plus a
// branch matching any valid multi-byte UTF-8 sequence, plus a branch for
// invalid standalone UTF-8 bytes (so a negated class like [^"] behaves
// like Go's stdlib regexp: one non-ASCII codepoint consumes its whole
// encoding, not just its lead byte).
func (c *Compiler) compileASCIIPlusAnyNonASCII(ranges []rune) (start, end StateID, err error) {
	target := c.builder.AddEpsilon(InvalidState)
	var branches []StateID

	for i := 0; i < len(ranges); i += 2 {
		if ranges[i+1] < 0x80 {
			id := c.builder.AddByteRange(byte(ranges[i]), byte(ranges[i+1]), target)
			branches = append(branches, id)
		} else if ranges[i] < 0x80 {
			id := c.builder.AddByteRange(byte(ranges[i]), 0x7F, target)
			branches = append(branches, id)
		}
	}
	branches = append(branches, c.utf8MultiByteBranches(target)...)
	invalid := c.builder.AddSparse([]Transition{
		{Lo: 0x80, Hi: 0xBF, Next: target},
		{Lo: 0xC0, Hi: 0xC1, Next: target},
		{Lo: 0xF5, Hi: 0xFF, Next: target},
	})
	branches = append(branches, invalid)

	return c.buildSplitChain(branches), target, nil
}

// compileAny compiles '.': any UTF-8 codepoint, optionally excluding '\n'.
func (c *Compiler) compileAny(includeNL bool) (start, end StateID, err error) {
	target := c.builder.AddEpsilon(InvalidState)
	var branches []StateID
	if includeNL {
		branches = append(branches, c.builder.AddByteRange(0x00, 0x7F, target))
	} else {
		branches = append(branches, c.builder.AddSparse([]Transition{
			{Lo: 0x00, Hi: 0x09, Next: target},
			{Lo: 0x0B, Hi: 0x7F, Next: target},
		}))
	}
	branches = append(branches, c.utf8MultiByteBranches(target)...)
	return c.buildSplitChain(branches), target, nil
}

// utf8MultiByteBranches returns one fragment start per valid UTF-8
// multi-byte lead-byte class (2/3/4-byte sequences, surrogates excluded),
// each ending at target.
func (c *Compiler) utf8MultiByteBranches(target StateID) []StateID {
	cont := func(next StateID) StateID { return c.builder.AddByteRange(0x80, 0xBF, next) }
	var branches []StateID

	// 2-byte: C2-DF, 80-BF
	branches = append(branches, c.builder.AddByteRange(0xC2, 0xDF, cont(target)))

	// 3-byte, avoiding the surrogate gap D800-DFFF
	branches = append(branches, c.builder.AddByteRange(0xE0, 0xE0,
		c.builder.AddByteRange(0xA0, 0xBF, cont(target))))
	branches = append(branches, c.builder.AddByteRange(0xE1, 0xEC, cont(cont(target))))
	branches = append(branches, c.builder.AddByteRange(0xED, 0xED,
		c.builder.AddByteRange(0x80, 0x9F, cont(target))))
	branches = append(branches, c.builder.AddByteRange(0xEE, 0xEF, cont(cont(target))))

	// 4-byte
	branches = append(branches, c.builder.AddByteRange(0xF0, 0xF0,
		c.builder.AddByteRange(0x90, 0xBF, cont(cont(target)))))
	branches = append(branches, c.builder.AddByteRange(0xF1, 0xF3, cont(cont(cont(target)))))
	branches = append(branches, c.builder.AddByteRange(0xF4, 0xF4,
		c.builder.AddByteRange(0x80, 0x8F, cont(cont(target)))))

	return branches
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmptyMatch()
	}
	start, end, err = c.compile(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, sub := range subs[1:] {
		nextStart, nextEnd, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(end, nextStart); err != nil {
			return InvalidState, InvalidState, err
		}
		end = nextEnd
	}
	return start, end, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmptyMatch()
	}
	if len(subs) == 1 {
		return c.compile(subs[0])
	}
	starts := make([]StateID, 0, len(subs))
	ends := make([]StateID, 0, len(subs))
	for _, sub := range subs {
		s, e, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		starts = append(starts, s)
		ends = append(ends, e)
	}
	join := c.builder.AddEpsilon(InvalidState)
	for _, e := range ends {
		if err := c.builder.Patch(e, join); err != nil {
			return InvalidState, InvalidState, err
		}
	}
	return c.buildSplitChain(starts), join, nil
}

func (c *Compiler) buildSplitChain(targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	if len(targets) == 2 {
		return c.builder.AddSplit(targets[0], targets[1])
	}
	return c.builder.AddSplit(targets[0], c.buildSplitChain(targets[1:]))
}

func (c *Compiler) compileStar(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddQuantifierSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddQuantifierSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return subStart, end, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddQuantifierSplit(subStart, end)
	if err := c.builder.Patch(subEnd, end); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

func (c *Compiler) compileRepeat(sub *syntax.Regexp, min, max int) (start, end StateID, err error) {
	if max == -1 {
		return c.compileRepeatMin(sub, min)
	}
	if min == max {
		return c.compileRepeatExact(sub, min)
	}
	return c.compileRepeatRange(sub, min, max)
}

func (c *Compiler) compileRepeatExact(sub *syntax.Regexp, n int) (start, end StateID, err error) {
	if n == 0 {
		return c.compileEmptyMatch()
	}
	subs := make([]*syntax.Regexp, n)
	for i := range subs {
		subs[i] = sub
	}
	return c.compileConcat(subs)
}

func (c *Compiler) compileRepeatMin(sub *syntax.Regexp, min int) (start, end StateID, err error) {
	if min == 0 {
		return c.compileStar(sub)
	}
	subs := make([]*syntax.Regexp, min)
	for i := range subs {
		subs[i] = sub
	}
	subs = append(subs, &syntax.Regexp{Op: syntax.OpStar, Sub: []*syntax.Regexp{sub}})
	return c.compileConcat(subs)
}

func (c *Compiler) compileRepeatRange(sub *syntax.Regexp, min, max int) (start, end StateID, err error) {
	if min > max {
		return InvalidState, InvalidState, fmt.Errorf("%w: invalid repeat range {%d,%d}", ErrInvalidPattern, min, max)
	}
	subs := make([]*syntax.Regexp, 0, max)
	for i := 0; i < min; i++ {
		subs = append(subs, sub)
	}
	for i := 0; i < max-min; i++ {
		subs = append(subs, &syntax.Regexp{Op: syntax.OpQuest, Sub: []*syntax.Regexp{sub}})
	}
	return c.compileConcat(subs)
}

func (c *Compiler) compileEmptyMatch() (start, end StateID, err error) {
	id := c.builder.AddEpsilon(InvalidState)
	return id, id, nil
}

func (c *Compiler) compileNoMatch() (start, end StateID, err error) {
	return c.builder.AddEpsilon(InvalidState), c.builder.AddEpsilon(InvalidState), nil
}

func encodeRune(buf []byte, r rune) int {
	switch {
	case r < 0x80:
		buf[0] = byte(r)
		return 1
	case r < 0x800:
		buf[0] = byte(0xC0 | (r >> 6))
		buf[1] = byte(0x80 | (r & 0x3F))
		return 2
	case r < 0x10000:
		buf[0] = byte(0xE0 | (r >> 12))
		buf[1] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[2] = byte(0x80 | (r & 0x3F))
		return 3
	default:
		buf[0] = byte(0xF0 | (r >> 18))
		buf[1] = byte(0x80 | ((r >> 12) & 0x3F))
		buf[2] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[3] = byte(0x80 | (r & 0x3F))
		return 4
	}
}
