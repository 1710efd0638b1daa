package hashmix

// Granularity is the unit an accumulator consumes per absorption step.
type Granularity uint8

const (
	// Bytewise accumulators absorb one byte per step.
	Bytewise Granularity = iota + 1
	// Wordwise accumulators absorb one 32-bit word per step.
	Wordwise
)

func (g Granularity) String() string {
	switch g {
	case Bytewise:
		return "bytewise"
	case Wordwise:
		return "wordwise"
	default:
		return "unknown"
	}
}

// ByteAbsorber is the byte-wise accumulator protocol. AbsorbByte returns the
// state after folding in b; the receiver is left untouched.
//
// Any type implementing it can be used with MixBytewise for every Value.
type ByteAbsorber[A any] interface {
	AbsorbByte(b byte) A
}

// WordAbsorber is the word-wise accumulator protocol. AbsorbWord returns the
// state after folding in w; the receiver is left untouched.
//
// Any type implementing it can be used with MixWordwise for every Value.
type WordAbsorber[A any] interface {
	AbsorbWord(w uint32) A
}

// Accumulator is implemented by the accumulators of this package.
//
// An accumulator speaks both protocols but declares which one it natively
// consumes through Granularity; Mix decomposes values accordingly. The
// non-native method follows the decomposition rules: a byte-wise accumulator
// absorbs a word as its four bytes, least significant first, and a word-wise
// accumulator absorbs a byte as one zero-extended word.
type Accumulator[A any] interface {
	ByteAbsorber[A]
	WordAbsorber[A]

	// Granularity reports the unit the accumulator natively consumes.
	Granularity() Granularity

	// Sum32 returns the 32-bit digest without modifying the accumulator.
	Sum32() (int32, error)

	// MustSum32 is like Sum32 but panics on an uninitialized accumulator.
	MustSum32() int32
}
