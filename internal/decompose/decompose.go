package decompose

import (
	"encoding/binary"
	"iter"
	"unicode/utf16"
)

// Bool returns 1 for true and 0 for false.
func Bool(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// Bytes16 returns the bytes of v, least significant first.
func Bytes16(v uint16) [2]byte {
	return [2]byte{byte(v), byte(v >> 8)}
}

// Bytes32 returns the bytes of v, least significant first.
func Bytes32(v uint32) [4]byte {
	return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// Bytes64 returns the bytes of v, least significant first.
func Bytes64(v uint64) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b
}

// Words64 returns the low and high words of v, in that order.
func Words64(v uint64) [2]uint32 {
	return [2]uint32{uint32(v), uint32(v >> 32)}
}

// Words128 reads b as four little-endian words in ascending offset order.
func Words128(b [16]byte) [4]uint32 {
	return [4]uint32{
		binary.LittleEndian.Uint32(b[0:4]),
		binary.LittleEndian.Uint32(b[4:8]),
		binary.LittleEndian.Uint32(b[8:12]),
		binary.LittleEndian.Uint32(b[12:16]),
	}
}

// Bytes128 lays out four words as sixteen bytes, each word least significant
// byte first. It is the inverse of Words128.
func Bytes128(w [4]uint32) [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint32(b[0:4], w[0])
	binary.LittleEndian.PutUint32(b[4:8], w[1])
	binary.LittleEndian.PutUint32(b[8:12], w[2])
	binary.LittleEndian.PutUint32(b[12:16], w[3])
	return b
}

// Pair packs two UTF-16 code units into one word, lo in the low half.
func Pair(lo, hi uint16) uint32 {
	return uint32(lo) | uint32(hi)<<16
}

// Fold64 folds a 64-bit value into 32 bits by XOR-ing its halves.
func Fold64(v uint64) uint32 {
	return uint32(v) ^ uint32(v>>32)
}

// UTF16 yields the UTF-16 code units of s in order.
func UTF16(s string) iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for _, r := range s {
			if r < 0x10000 {
				if !yield(uint16(r)) {
					return
				}
				continue
			}
			r1, r2 := utf16.EncodeRune(r)
			if !yield(uint16(r1)) || !yield(uint16(r2)) {
				return
			}
		}
	}
}

// UTF16Len returns the number of UTF-16 code units in s.
func UTF16Len(s string) int {
	n := 0
	for range UTF16(s) {
		n++
	}
	return n
}

// StringWords yields the word-wise decomposition of s: floor(n/2) pairs of
// code units, then the last unit alone when n is odd.
func StringWords(s string) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		var (
			pending uint16
			held    bool
		)
		for u := range UTF16(s) {
			if !held {
				pending, held = u, true
				continue
			}
			if !yield(Pair(pending, u)) {
				return
			}
			held = false
		}
		if held {
			yield(uint32(pending))
		}
	}
}
