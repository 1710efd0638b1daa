package hashmix

import (
	"math"

	"github.com/google/uuid"
	"lukechampine.com/uint128"

	"github.com/hupe1980/hashmix/internal/decompose"
)

// Mix folds v into a and returns the new accumulator.
//
// The value is decomposed into bytes or words depending on the accumulator's
// Granularity. a itself is not modified, so calls chain:
//
//	h := hashmix.NewMurmur3()
//	h = hashmix.Mix(h, "key")
//	h = hashmix.Mix(h, int64(42))
func Mix[A Accumulator[A], V Value](a A, v V) A {
	if a.Granularity() == Wordwise {
		return MixWordwise(a, v)
	}
	return MixBytewise(a, v)
}

// MixAll folds every value of vs into a, in order.
func MixAll[A Accumulator[A], V Value](a A, vs ...V) A {
	for _, v := range vs {
		a = Mix(a, v)
	}
	return a
}

// MixBytewise decomposes v into bytes and folds them into a in canonical
// order.
func MixBytewise[A ByteAbsorber[A], V Value](a A, v V) A {
	switch x := any(v).(type) {
	case bool:
		return a.AbsorbByte(decompose.Bool(x))
	case int8:
		return a.AbsorbByte(uint8(x))
	case uint8:
		return a.AbsorbByte(x)
	case int16:
		return absorb16(a, uint16(x))
	case uint16:
		return absorb16(a, x)
	case Char:
		return absorb16(a, uint16(x))
	case int32:
		return absorb32(a, uint32(x))
	case uint32:
		return absorb32(a, x)
	case float32:
		return absorb32(a, math.Float32bits(x))
	case int64:
		return absorb64(a, uint64(x))
	case uint64:
		return absorb64(a, x)
	case float64:
		return absorb64(a, math.Float64bits(x))
	case int:
		return absorb64(a, uint64(x))
	case uint:
		return absorb64(a, uint64(x))
	case Decimal:
		b := decompose.Bytes128(x.layout())
		return absorbBytes(a, b[:])
	case uuid.UUID:
		return absorbBytes(a, x[:])
	case uint128.Uint128:
		return absorb64(absorb64(a, x.Lo), x.Hi)
	case string:
		for u := range decompose.UTF16(x) {
			a = absorb16(a, u)
		}
		return a
	case []byte:
		return absorbBytes(a, x)
	}
	return a
}

// MixWordwise decomposes v into 32-bit words and folds them into a in
// canonical order. Values narrower than a word are zero-extended.
func MixWordwise[A WordAbsorber[A], V Value](a A, v V) A {
	switch x := any(v).(type) {
	case bool:
		return a.AbsorbWord(uint32(decompose.Bool(x)))
	case int8:
		return a.AbsorbWord(uint32(uint8(x)))
	case uint8:
		return a.AbsorbWord(uint32(x))
	case int16:
		return a.AbsorbWord(uint32(uint16(x)))
	case uint16:
		return a.AbsorbWord(uint32(x))
	case Char:
		return a.AbsorbWord(uint32(x))
	case int32:
		return a.AbsorbWord(uint32(x))
	case uint32:
		return a.AbsorbWord(x)
	case float32:
		return a.AbsorbWord(math.Float32bits(x))
	case int64:
		return absorbWords64(a, uint64(x))
	case uint64:
		return absorbWords64(a, x)
	case float64:
		return absorbWords64(a, math.Float64bits(x))
	case int:
		return absorbWords64(a, uint64(x))
	case uint:
		return absorbWords64(a, uint64(x))
	case Decimal:
		return absorbWords128(a, x.layout())
	case uuid.UUID:
		return absorbWords128(a, decompose.Words128(x))
	case uint128.Uint128:
		return absorbWords64(absorbWords64(a, x.Lo), x.Hi)
	case string:
		for w := range decompose.StringWords(x) {
			a = a.AbsorbWord(w)
		}
		return a
	case []byte:
		for _, c := range x {
			a = a.AbsorbWord(uint32(c))
		}
		return a
	}
	return a
}

func absorbBytes[A ByteAbsorber[A]](a A, b []byte) A {
	for _, c := range b {
		a = a.AbsorbByte(c)
	}
	return a
}

func absorb16[A ByteAbsorber[A]](a A, v uint16) A {
	b := decompose.Bytes16(v)
	return a.AbsorbByte(b[0]).AbsorbByte(b[1])
}

func absorb32[A ByteAbsorber[A]](a A, v uint32) A {
	b := decompose.Bytes32(v)
	return a.AbsorbByte(b[0]).AbsorbByte(b[1]).AbsorbByte(b[2]).AbsorbByte(b[3])
}

func absorb64[A ByteAbsorber[A]](a A, v uint64) A {
	b := decompose.Bytes64(v)
	return absorbBytes(a, b[:])
}

func absorbWords64[A WordAbsorber[A]](a A, v uint64) A {
	w := decompose.Words64(v)
	return a.AbsorbWord(w[0]).AbsorbWord(w[1])
}

func absorbWords128[A WordAbsorber[A]](a A, w [4]uint32) A {
	return a.AbsorbWord(w[0]).AbsorbWord(w[1]).AbsorbWord(w[2]).AbsorbWord(w[3])
}
