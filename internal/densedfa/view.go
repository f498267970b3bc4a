package densedfa

import (
	"encoding/binary"
	"sync"
)

// View lazily decodes whichever of bytesLE/bytesBE matches the running
// process's native byte order into an executable *DFA, the first time it
// is called. Every subsequent call returns the same *DFA without touching
// the blob again — the Go idiom for the derive macro's OnceLock-backed
// zero-copy reinterpretation, adapted to decode once into native slices
// rather than reinterpret the blob's bytes in place (this repo never uses
// unsafe).
type View struct {
	bytesLE, bytesBE []byte

	once sync.Once
	dfa  *DFA
	err  error
}

// NewView wraps the pair of endian-specific blobs a generator embeds.
func NewView(bytesLE, bytesBE []byte) *View {
	return &View{bytesLE: bytesLE, bytesBE: bytesBE}
}

// nativeIsLittleEndian is computed once: true on amd64/arm64/most modern
// platforms, false on the handful of big-endian GOARCHes.
var nativeIsLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == binary.LittleEndian.Uint16([]byte{1, 0})

// Get returns the deserialized DFA, decoding it on the first call.
func (v *View) Get() (*DFA, error) {
	v.once.Do(func() {
		if nativeIsLittleEndian {
			v.dfa, v.err = Deserialize(v.bytesLE, binary.LittleEndian)
		} else {
			v.dfa, v.err = Deserialize(v.bytesBE, binary.BigEndian)
		}
	})
	return v.dfa, v.err
}
