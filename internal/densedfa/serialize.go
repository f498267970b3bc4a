package densedfa

import "encoding/binary"

// header layout, all fixed-width so the blob can be memory-mapped or
// embedded as a Go byte-slice literal without further parsing logic:
//
//	magic        uint32  "LXDF"
//	version      uint32
//	alphabetLen  uint32
//	numStates    uint32
//	start        uint32
//	classes      [256]byte
//	matchPat     [numStates]uint32
//	transitions  [numStates*(alphabetLen+1)]uint32
//
// The whole blob is padded to a multiple of 4 bytes (it already is, since
// every field is a multiple of 4 except the 256-byte class table, which is
// itself a multiple of 4) — the alignment guarantee the original
// bit-for-bit reinterpretation relied on. Go decodes through encoding/binary
// rather than reinterpreting the blob in place, so the alignment promise is
// kept for documentation/debugging parity rather than being load-bearing.
const (
	magic       uint32 = 0x4C584446 // "LXDF"
	formatVersion uint32 = 1
	headerWords        = 5 // magic, version, alphabetLen, numStates, start
)

// ToBytes serializes the DFA for order, returning the blob and its length.
// A generator calls this twice — once with binary.LittleEndian, once with
// binary.BigEndian — and embeds both; internal/densedfa.View picks the
// matching one at generated-code init time via binary.NativeEndian.
func (d *DFA) ToBytes(order binary.ByteOrder) ([]byte, int) {
	stride := d.stride()
	size := headerWords*4 + 256 + d.NumStates*4 + d.NumStates*stride*4
	buf := make([]byte, size)

	off := 0
	putU32 := func(v uint32) {
		order.PutUint32(buf[off:], v)
		off += 4
	}
	putU32(magic)
	putU32(formatVersion)
	putU32(uint32(d.AlphabetLen))
	putU32(uint32(d.NumStates))
	putU32(d.Start)

	copy(buf[off:], d.Classes[:])
	off += 256

	for _, m := range d.MatchPat {
		putU32(m)
	}
	for _, t := range d.Transitions {
		putU32(t)
	}

	return buf, size
}

// Deserialize decodes a blob previously produced by ToBytes with the same
// byte order.
func Deserialize(blob []byte, order binary.ByteOrder) (*DFA, error) {
	if len(blob) < headerWords*4+256 {
		return nil, errShortBlob
	}
	off := 0
	getU32 := func() uint32 {
		v := order.Uint32(blob[off:])
		off += 4
		return v
	}
	if got := getU32(); got != magic {
		return nil, errBadMagic
	}
	if got := getU32(); got != formatVersion {
		return nil, errBadVersion
	}
	alphabetLen := int(getU32())
	numStates := int(getU32())
	start := getU32()

	var classes [256]byte
	copy(classes[:], blob[off:off+256])
	off += 256

	stride := alphabetLen + 1
	wantLen := off + numStates*4 + numStates*stride*4
	if len(blob) < wantLen {
		return nil, errShortBlob
	}

	matchPat := make([]uint32, numStates)
	for i := range matchPat {
		matchPat[i] = getU32()
	}
	transitions := make([]uint32, numStates*stride)
	for i := range transitions {
		transitions[i] = getU32()
	}

	return &DFA{
		Classes:     classes,
		AlphabetLen: alphabetLen,
		NumStates:   numStates,
		Start:       start,
		Transitions: transitions,
		MatchPat:    matchPat,
	}, nil
}
