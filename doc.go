// Package hashmix folds typed values into fast, non-cryptographic hash
// accumulators.
//
// An accumulator is a small value that holds the running state of one mixing
// algorithm. Values of any supported kind are decomposed into a canonical
// sequence of bytes or 32-bit words and absorbed one unit at a time; the
// digest is read without disturbing the state, so mixing can continue.
//
// # Quick Start
//
//	h := hashmix.NewMurmur3()
//	h = hashmix.Mix(h, "user")
//	h = hashmix.Mix(h, int64(42))
//	h = hashmix.Mix(h, true)
//	bucket := h.MustSum32()
//
// # Algorithms
//
//   - FNV1A32, FNV1A64: byte-wise FNV-1a with the low state bit forced to 1
//     after every byte, which removes FNV's zero fixed point.
//   - Murmur3: word-wise streaming MurmurHash3 (32-bit), seedable.
//
// # Decomposition
//
// Decomposition does not depend on host endianness, so digests are
// reproducible across platforms:
//
//	Type                        Byte-wise               Word-wise
//	bool, int8, uint8           1 byte                  1 word (zero-extended)
//	int16, uint16, Char         2 bytes, LSB first      1 word (zero-extended)
//	int32, uint32, float32      4 bytes, LSB first      1 word
//	int64, uint64, float64      8 bytes, LSB first      low word, high word
//	int, uint                   as 64-bit               as 64-bit
//	Decimal, uuid.UUID, Uint128 16 bytes                4 words
//	string (as UTF-16)          2 bytes per code unit   pairs, odd unit last
//	[]byte                      each byte               1 word per byte
//
// Anything else goes through MixAny, which mixes a best-effort 32-bit hash
// code. Those codes are stable only within a single process.
//
// # Uninitialized accumulators
//
// The zero value of every accumulator is uninitialized. Sum32 on it returns
// ErrUninitialized rather than a plausible-looking digest.
//
// # Custom algorithms
//
// Any value type with an AbsorbByte method can use MixBytewise, and any type
// with an AbsorbWord method can use MixWordwise, for the whole Value set.
// Implementing Accumulator as well makes it usable with Mix.
package hashmix
