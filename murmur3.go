package hashmix

import "math/bits"

// DefaultMurmur3Seed is the seed used by NewMurmur3.
const DefaultMurmur3Seed uint32 = 9225900

const (
	c1_32 uint32 = 0xcc9e2d51
	c2_32 uint32 = 0x1b873593
)

var _ Accumulator[Murmur3] = Murmur3{}

// Murmur3 is a word-wise streaming variant of the 32-bit MurmurHash3.
//
// Input always arrives in whole words, so there is no tail-byte step: every
// absorbed word, including the lone last unit of an odd-length string, adds
// four bytes to the length folded in by Sum32.
//
// The zero value is uninitialized; use NewMurmur3 or NewMurmur3WithSeed.
type Murmur3 struct {
	hash        uint32 // Unfinalized running hash.
	length      uint32 // Bytes absorbed, mod 2^32.
	initialized bool
}

// NewMurmur3 returns a Murmur3 seeded with DefaultMurmur3Seed.
func NewMurmur3() Murmur3 {
	return NewMurmur3WithSeed(DefaultMurmur3Seed)
}

// NewMurmur3WithSeed returns a Murmur3 set with an explicit seed value.
func NewMurmur3WithSeed(seed uint32) Murmur3 {
	return Murmur3{hash: seed, initialized: true}
}

// Granularity implements Accumulator.
func (Murmur3) Granularity() Granularity { return Wordwise }

// AbsorbWord implements WordAbsorber.
func (h Murmur3) AbsorbWord(k uint32) Murmur3 {
	h.length += 4

	k *= c1_32
	k = bits.RotateLeft32(k, 15)
	k *= c2_32

	h.hash ^= k
	h.hash = bits.RotateLeft32(h.hash, 13)
	h.hash = h.hash*5 + 0xe6546b64
	return h
}

// AbsorbByte absorbs b as one zero-extended word.
func (h Murmur3) AbsorbByte(b byte) Murmur3 {
	return h.AbsorbWord(uint32(b))
}

// Len returns the number of bytes accounted for so far, four per word.
func (h Murmur3) Len() uint32 { return h.length }

// Sum32 finalizes a copy of the running hash.
func (h Murmur3) Sum32() (int32, error) {
	if !h.initialized {
		return 0, &UninitializedError{Algorithm: "murmur3"}
	}

	h1 := h.hash
	h1 ^= h.length
	h1 *= 0x85ebca6b
	h1 ^= h1 >> 13
	h1 *= 0xc2b2ae35
	h1 ^= h1 >> 16

	return int32(h1), nil
}

// MustSum32 is like Sum32 but panics on an uninitialized accumulator.
func (h Murmur3) MustSum32() int32 { return must(h.Sum32()) }
