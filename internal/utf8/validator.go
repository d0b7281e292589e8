// Package utf8 provides an incremental UTF-8 validity check used by the
// lexer's pre-flight pass over source text, adapted from the editor buffer
// validator in the teacher repository this module descends from. Unlike
// the teacher's validator, which only reports a yes/no verdict for an
// editor's "can this buffer be displayed" check, this one also tracks the
// byte offset of the first invalid byte, so the lexer can name the exact
// offending position in a CompileError instead of failing the whole input
// anonymously.
package utf8

type state uint8

const (
	stateValid = state(iota)
	stateInvalid
	stateAwaitingOneByte
	stateAwaitingTwoBytesA
	stateAwaitingTwoBytesB
	stateAwaitingTwoBytesC
	stateAwaitingThreeBytesA
	stateAwaitingThreeBytesB
	stateAwaitingThreeBytesC
)

// Validator checks whether a byte string is valid UTF-8 text.
// It rejects invalid start bytes, missing continuation bytes, surrogate
// code points, overlong byte sequences, and 4-byte sequences outside the
// Unicode range. The lexer runs source text through this before scanning
// so malformed input fails as a single, clearly-positioned compile error
// instead of producing garbled tokens partway through a multi-byte
// sequence.
type Validator struct {
	state state

	// pos is the number of bytes consumed across all ValidateBytes calls.
	pos int
	// seqStart is the byte offset where the multi-byte sequence currently
	// in progress began; meaningful only while state is not stateValid.
	seqStart int
	// invalidAt is the byte offset of the first invalid byte seen, or -1
	// if none has been seen yet.
	invalidAt int
}

// NewValidator returns a Validator ready to check a fresh byte string.
func NewValidator() *Validator {
	return &Validator{state: stateValid, invalidAt: -1}
}

// ValidateBytes checks whether appending buf to the bytes processed so far
// would still be valid UTF-8. It returns false as soon as an invalid byte
// sequence is seen; callers should stop feeding more input once this
// returns false. The offset of the first invalid byte, if any, is
// available afterward from InvalidOffset.
func (v *Validator) ValidateBytes(buf []byte) bool {
	// ASCII-only input can't change an already-valid state; check this
	// first since source text is overwhelmingly ASCII.
	if v.state == stateValid && isAscii(buf) {
		v.pos += len(buf)
		return true
	}

	for i, b := range buf {
		v.processByte(v.pos+i, b)
	}
	v.pos += len(buf)

	return v.state != stateInvalid
}

// ValidateEnd reports whether the bytes processed so far end on a complete
// codepoint boundary (no dangling multi-byte sequence). A dangling
// sequence counts as invalid starting at the byte that opened it.
func (v *Validator) ValidateEnd() bool {
	if v.state != stateValid && v.state != stateInvalid {
		v.markInvalid(v.seqStart)
		v.state = stateInvalid
	}
	return v.state == stateValid
}

// InvalidOffset returns the byte offset of the first invalid byte
// encountered, and whether one has been seen. Call this only after
// ValidateBytes/ValidateEnd have reported failure.
func (v *Validator) InvalidOffset() (int, bool) {
	return v.invalidAt, v.invalidAt >= 0
}

func (v *Validator) markInvalid(offset int) {
	if v.invalidAt < 0 {
		v.invalidAt = offset
	}
}

func (v *Validator) processByte(offset int, b byte) {
	// Implements the state machine described at
	// http://bjoern.hoehrmann.de/utf-8/decoder/dfa/
	switch v.state {

	case stateValid:
		v.seqStart = offset
		switch {
		case b >= 0x00 && b <= 0x7f:
			v.state = stateValid
		case b >= 0xc2 && b <= 0xdf:
			v.state = stateAwaitingOneByte
		case (b >= 0xe1 && b <= 0xec) || (b >= 0xee && b <= 0xef):
			v.state = stateAwaitingTwoBytesA
		case b == 0xe0:
			v.state = stateAwaitingTwoBytesB
		case b == 0xed:
			v.state = stateAwaitingTwoBytesC
		case b == 0xf0:
			v.state = stateAwaitingThreeBytesA
		case b >= 0xf1 && b <= 0xf3:
			v.state = stateAwaitingThreeBytesB
		case b == 0xf4:
			v.state = stateAwaitingThreeBytesC
		default:
			v.state = stateInvalid
			v.markInvalid(offset)
		}

	case stateAwaitingOneByte:
		if b >= 0x80 && b <= 0xbf {
			v.state = stateValid
		} else {
			v.state = stateInvalid
			v.markInvalid(v.seqStart)
		}

	case stateAwaitingTwoBytesA:
		if b >= 0x80 && b <= 0xbf {
			v.state = stateAwaitingOneByte
		} else {
			v.state = stateInvalid
			v.markInvalid(v.seqStart)
		}

	case stateAwaitingTwoBytesB:
		if b >= 0xa0 && b <= 0xbf {
			v.state = stateAwaitingOneByte
		} else {
			v.state = stateInvalid
			v.markInvalid(v.seqStart)
		}

	case stateAwaitingTwoBytesC:
		if b >= 0x80 && b <= 0x9f {
			v.state = stateAwaitingOneByte
		} else {
			v.state = stateInvalid
			v.markInvalid(v.seqStart)
		}

	case stateAwaitingThreeBytesA:
		if b >= 0x90 && b <= 0xbf {
			v.state = stateAwaitingTwoBytesA
		} else {
			v.state = stateInvalid
			v.markInvalid(v.seqStart)
		}

	case stateAwaitingThreeBytesB:
		if b >= 0x80 && b <= 0xbf {
			v.state = stateAwaitingTwoBytesA
		} else {
			v.state = stateInvalid
			v.markInvalid(v.seqStart)
		}

	case stateAwaitingThreeBytesC:
		if b >= 0x80 && b <= 0x8f {
			v.state = stateAwaitingTwoBytesA
		} else {
			v.state = stateInvalid
			v.markInvalid(v.seqStart)
		}

	default:
		v.state = stateInvalid
		v.markInvalid(v.seqStart)
	}
}

func isAscii(buf []byte) bool {
	var x byte
	for _, b := range buf {
		x |= b & 0x80
	}
	return x == 0
}
