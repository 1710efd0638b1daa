package hashmix

import "github.com/hupe1980/hashmix/internal/decompose"

const (
	// offset32 FNV-1a 32-bit offset basis.
	// See https://en.wikipedia.org/wiki/Fowler–Noll–Vo_hash_function#FNV-1a_hash
	offset32 = 2166136261
	// prime32 FNV-1a 32-bit prime.
	prime32 = 16777619

	// offset64 FNV-1a 64-bit offset basis.
	offset64 = 14695981039346656037
	// prime64 FNV-1a 64-bit prime.
	prime64 = 1099511628211
)

// Make sure interfaces are correctly implemented.
var (
	_ Accumulator[FNV1A32] = FNV1A32{}
	_ Accumulator[FNV1A64] = FNV1A64{}
)

// FNV1A32 is a byte-wise FNV-1a accumulator with 32 bits of state.
//
// Unlike plain FNV-1a, the lowest bit of the state is set after every byte.
// Plain FNV-1a never leaves a zero state once a zero byte is absorbed into
// it; forcing the bit costs one bit of entropy and removes that fixed point.
//
// The zero value is uninitialized; use NewFNV1A32.
type FNV1A32 struct {
	hash        uint32
	initialized bool
}

// NewFNV1A32 returns an FNV1A32 set to the offset basis.
func NewFNV1A32() FNV1A32 {
	return FNV1A32{hash: offset32, initialized: true}
}

// Granularity implements Accumulator.
func (FNV1A32) Granularity() Granularity { return Bytewise }

// AbsorbByte implements ByteAbsorber.
func (h FNV1A32) AbsorbByte(b byte) FNV1A32 {
	h.hash ^= uint32(b)
	h.hash *= prime32
	h.hash |= 1
	return h
}

// AbsorbWord absorbs the four bytes of w, least significant first.
func (h FNV1A32) AbsorbWord(w uint32) FNV1A32 {
	return absorb32(h, w)
}

// Sum32 returns the state reinterpreted as a signed integer.
func (h FNV1A32) Sum32() (int32, error) {
	if !h.initialized {
		return 0, &UninitializedError{Algorithm: "fnv1a32"}
	}
	return int32(h.hash), nil
}

// MustSum32 is like Sum32 but panics on an uninitialized accumulator.
func (h FNV1A32) MustSum32() int32 { return must(h.Sum32()) }

// FNV1A64 is a byte-wise FNV-1a accumulator with 64 bits of state. It
// applies the same low-bit fix-up as FNV1A32.
//
// The zero value is uninitialized; use NewFNV1A64.
type FNV1A64 struct {
	hash        uint64
	initialized bool
}

// NewFNV1A64 returns an FNV1A64 set to the offset basis.
func NewFNV1A64() FNV1A64 {
	return FNV1A64{hash: offset64, initialized: true}
}

// Granularity implements Accumulator.
func (FNV1A64) Granularity() Granularity { return Bytewise }

// AbsorbByte implements ByteAbsorber.
func (h FNV1A64) AbsorbByte(b byte) FNV1A64 {
	h.hash ^= uint64(b)
	h.hash *= prime64
	h.hash |= 1
	return h
}

// AbsorbWord absorbs the four bytes of w, least significant first.
func (h FNV1A64) AbsorbWord(w uint32) FNV1A64 {
	return absorb32(h, w)
}

// Sum32 returns the two halves of the state XOR-ed together.
func (h FNV1A64) Sum32() (int32, error) {
	if !h.initialized {
		return 0, &UninitializedError{Algorithm: "fnv1a64"}
	}
	return int32(decompose.Fold64(h.hash)), nil
}

// MustSum32 is like Sum32 but panics on an uninitialized accumulator.
func (h FNV1A64) MustSum32() int32 { return must(h.Sum32()) }

// Sum64 returns the full state reinterpreted as a signed integer.
func (h FNV1A64) Sum64() (int64, error) {
	if !h.initialized {
		return 0, &UninitializedError{Algorithm: "fnv1a64"}
	}
	return int64(h.hash), nil
}

// MustSum64 is like Sum64 but panics on an uninitialized accumulator.
func (h FNV1A64) MustSum64() int64 { return must(h.Sum64()) }
