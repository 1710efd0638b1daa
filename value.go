package hashmix

import (
	"github.com/google/uuid"
	"lukechampine.com/uint128"
)

// Char is a UTF-16 code unit.
type Char uint16

// Value is the closed set of types with a canonical decomposition.
//
// int and uint are always decomposed as 64-bit values so digests do not
// depend on the platform word size. Strings are mixed as UTF-16 code units.
type Value interface {
	bool | int8 | uint8 | int16 | uint16 | Char |
		int32 | uint32 | float32 |
		int64 | uint64 | float64 | int | uint |
		Decimal | uuid.UUID | uint128.Uint128 |
		string | []byte
}
