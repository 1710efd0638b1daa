package hashmix

import (
	"fmt"
	"hash/maphash"
	"reflect"

	"github.com/google/uuid"
	"lukechampine.com/uint128"

	"github.com/hupe1980/hashmix/internal/decompose"
)

// HashCoder is implemented by types that supply their own 32-bit hash code
// to MixAny and MixComparable.
type HashCoder interface {
	HashCode() int32
}

// fallbackSeed is fixed for the life of the process. Fallback hash codes are
// therefore stable within a process and differ between processes.
var fallbackSeed = maphash.MakeSeed()

// MixAny folds an arbitrary value into a. Values whose dynamic type is in the
// Value set use their canonical decomposition; anything else is reduced to
// HashCode(v) and mixed as an int32.
func MixAny[A Accumulator[A]](a A, v any) A {
	switch x := v.(type) {
	case bool:
		return Mix(a, x)
	case int8:
		return Mix(a, x)
	case uint8:
		return Mix(a, x)
	case int16:
		return Mix(a, x)
	case uint16:
		return Mix(a, x)
	case Char:
		return Mix(a, x)
	case int32:
		return Mix(a, x)
	case uint32:
		return Mix(a, x)
	case float32:
		return Mix(a, x)
	case int64:
		return Mix(a, x)
	case uint64:
		return Mix(a, x)
	case float64:
		return Mix(a, x)
	case int:
		return Mix(a, x)
	case uint:
		return Mix(a, x)
	case Decimal:
		return Mix(a, x)
	case uuid.UUID:
		return Mix(a, x)
	case uint128.Uint128:
		return Mix(a, x)
	case string:
		return Mix(a, x)
	case []byte:
		return Mix(a, x)
	}
	return Mix(a, HashCode(v))
}

// MixComparable folds the hash code of a comparable value into a. Like a map
// insert, it panics if T is an interface type holding a non-comparable value.
func MixComparable[A Accumulator[A], T comparable](a A, v T) A {
	if hc, ok := any(v).(HashCoder); ok {
		return Mix(a, hc.HashCode())
	}
	return Mix(a, int32(decompose.Fold64(maphash.Comparable(fallbackSeed, v))))
}

// HashCode returns a best-effort 32-bit hash code for v:
//
//   - nil hashes to 0;
//   - a HashCoder supplies its own code;
//   - comparable values hash their contents with hash/maphash;
//   - maps, slices, channels, funcs and pointers hash their identity;
//   - anything else hashes its %#v formatting.
//
// The result is stable within a process only.
func HashCode(v any) int32 {
	switch x := v.(type) {
	case nil:
		return 0
	case HashCoder:
		return x.HashCode()
	}

	rv := reflect.ValueOf(v)
	if rv.Comparable() {
		return int32(decompose.Fold64(maphash.Comparable(fallbackSeed, v)))
	}

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return int32(decompose.Fold64(uint64(rv.Pointer())))
	}

	return int32(decompose.Fold64(maphash.String(fallbackSeed, fmt.Sprintf("%#v", v))))
}
