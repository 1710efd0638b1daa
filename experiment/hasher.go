package experiment

import (
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/hashmix"
	"github.com/hupe1980/hashmix/internal/decompose"
)

// Hasher reduces corpus items to 32-bit digests.
//
// Implementations must be safe for concurrent use; a Runner calls the same
// Hasher from one goroutine per corpus.
type Hasher interface {
	Name() string
	HashString(s string) int32
	HashBytes(b []byte) int32
	HashUint64(v uint64) int32
}

// Cloner is implemented by stateful hashers. A Runner hashes each corpus
// with its own clone so results do not depend on scheduling.
type Cloner interface {
	Clone() Hasher
}

func fresh(h Hasher) Hasher {
	if c, ok := h.(Cloner); ok {
		return c.Clone()
	}
	return h
}

type accumulatorHasher[A hashmix.Accumulator[A]] struct {
	name  string
	newFn func() A
}

// NewAccumulatorHasher adapts a hashmix accumulator to Hasher. Every call
// starts from newFn(), mixes the item in and reads the digest.
//
// newFn must return an initialized accumulator; the hash methods panic with
// hashmix.ErrUninitialized otherwise.
func NewAccumulatorHasher[A hashmix.Accumulator[A]](name string, newFn func() A) Hasher {
	return &accumulatorHasher[A]{name: name, newFn: newFn}
}

func (h *accumulatorHasher[A]) Name() string { return h.name }

func (h *accumulatorHasher[A]) HashString(s string) int32 {
	return sum(hashmix.Mix(h.newFn(), s))
}

func (h *accumulatorHasher[A]) HashBytes(b []byte) int32 {
	return sum(hashmix.Mix(h.newFn(), b))
}

func (h *accumulatorHasher[A]) HashUint64(v uint64) int32 {
	return sum(hashmix.Mix(h.newFn(), v))
}

func sum[A hashmix.Accumulator[A]](a A) int32 {
	return a.MustSum32()
}

// FNV1A32 returns a Hasher backed by hashmix.FNV1A32.
func FNV1A32() Hasher {
	return NewAccumulatorHasher("fnv1a32", hashmix.NewFNV1A32)
}

// FNV1A64 returns a Hasher backed by hashmix.FNV1A64, folded to 32 bits.
func FNV1A64() Hasher {
	return NewAccumulatorHasher("fnv1a64", hashmix.NewFNV1A64)
}

// Murmur3 returns a Hasher backed by hashmix.Murmur3 with the default seed.
func Murmur3() Hasher {
	return NewAccumulatorHasher("murmur3", hashmix.NewMurmur3)
}

// Terribad returns the classic "h = h*17 + x" hasher, seeded with 17.
// Integers are reduced by XOR-ing their halves.
func Terribad() Hasher { return terribad{} }

type terribad struct{}

func (terribad) Name() string { return "terribad" }

func (terribad) HashString(s string) int32 {
	h := int32(17)
	for u := range decompose.UTF16(s) {
		h = h*17 + int32(u)
	}
	return h
}

func (terribad) HashBytes(b []byte) int32 {
	h := int32(17)
	for _, c := range b {
		h = h*17 + int32(c)
	}
	return h
}

func (terribad) HashUint64(v uint64) int32 {
	return int32(decompose.Fold64(v))
}

// constDigest is the digest Const returns for every input.
const constDigest int32 = 4

// Const returns a Hasher that maps every input to the same digest.
func Const() Hasher { return constHasher{} }

type constHasher struct{}

func (constHasher) Name() string            { return "const" }
func (constHasher) HashString(string) int32 { return constDigest }
func (constHasher) HashBytes([]byte) int32  { return constDigest }
func (constHasher) HashUint64(uint64) int32 { return constDigest }

// Noise returns a Hasher that ignores its input and draws each digest from
// a PCG generator seeded with seed. It is not a hash function; its collision
// count is what an ideal 32-bit hash would produce.
func Noise(seed uint64) Hasher {
	return &noise{seed: seed, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type noise struct {
	seed uint64
	mu   sync.Mutex
	rng  *rand.Rand
}

func (*noise) Name() string { return "noise" }

// Clone restarts the stream from the original seed.
func (n *noise) Clone() Hasher { return Noise(n.seed) }

func (n *noise) next() int32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return int32(n.rng.Uint32())
}

func (n *noise) HashString(string) int32 { return n.next() }
func (n *noise) HashBytes([]byte) int32  { return n.next() }
func (n *noise) HashUint64(uint64) int32 { return n.next() }

// Runtime returns a Hasher backed by hashmix.HashCode, the process-seeded
// fallback used for values outside the canonical set.
func Runtime() Hasher { return runtimeHasher{} }

type runtimeHasher struct{}

func (runtimeHasher) Name() string              { return "runtime" }
func (runtimeHasher) HashString(s string) int32 { return hashmix.HashCode(s) }
func (runtimeHasher) HashBytes(b []byte) int32  { return hashmix.HashCode(string(b)) }
func (runtimeHasher) HashUint64(v uint64) int32 { return hashmix.HashCode(v) }
