package experiment

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/hashmix/corpus"
)

const (
	// DefaultBucketBits is the default distribution resolution: 2^16 buckets.
	DefaultBucketBits = 16

	// MaxBucketBits bounds the distribution resolution.
	MaxBucketBits = 24
)

// ErrInvalidBucketBits is returned for bucket resolutions outside
// [1, MaxBucketBits].
var ErrInvalidBucketBits = errors.New("invalid bucket bits")

// Digests yields h's digest of every item in c: words as strings, blobs as
// bytes, numbers as uint64.
func Digests(h Hasher, c *corpus.Corpus) iter.Seq[int32] {
	return func(yield func(int32) bool) {
		for _, w := range c.Words {
			if !yield(h.HashString(w)) {
				return
			}
		}
		for _, b := range c.Blobs {
			if !yield(h.HashBytes(b)) {
				return
			}
		}
		for _, n := range c.Numbers {
			if !yield(h.HashUint64(n)) {
				return
			}
		}
	}
}

// Collisions counts digests already seen. The first occurrence of a digest is
// free; every later occurrence counts once.
type Collisions struct {
	seen  *roaring.Bitmap
	count uint64
}

// NewCollisions returns an empty counter.
func NewCollisions() *Collisions {
	return &Collisions{seen: roaring.New()}
}

// Add records d and reports whether it collided.
func (c *Collisions) Add(d int32) bool {
	if c.seen.CheckedAdd(uint32(d)) {
		return false
	}
	c.count++
	return true
}

// Count returns the number of collisions so far.
func (c *Collisions) Count() uint64 { return c.count }

// Distinct returns the number of distinct digests so far.
func (c *Collisions) Distinct() uint64 { return c.seen.GetCardinality() }

// CountCollisions returns the number of digests that repeat an earlier one.
func CountCollisions(digests iter.Seq[int32]) uint64 {
	c := NewCollisions()
	for d := range digests {
		c.Add(d)
	}
	return c.Count()
}

// Buckets tracks which of 2^bits buckets have received a digest. A digest
// lands in the bucket named by its top bits.
type Buckets struct {
	bits   uint
	filled *bitset.BitSet
	items  uint64
}

// NewBuckets returns an empty occupancy map with 2^bits buckets.
func NewBuckets(bits uint) (*Buckets, error) {
	if bits == 0 || bits > MaxBucketBits {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidBucketBits, bits, MaxBucketBits)
	}
	return &Buckets{bits: bits, filled: bitset.New(1 << bits)}, nil
}

// Add records d.
func (b *Buckets) Add(d int32) {
	b.filled.Set(uint(uint32(d) >> (32 - b.bits)))
	b.items++
}

// Distribution summarises bucket occupancy.
type Distribution struct {
	Bits     uint    `json:"bits" yaml:"bits"`
	Buckets  uint64  `json:"buckets" yaml:"buckets"`
	Items    uint64  `json:"items" yaml:"items"`
	Filled   uint64  `json:"filled" yaml:"filled"`
	Expected float64 `json:"expected" yaml:"expected"`
}

// Ratio returns Filled/Expected. Values near 1 indicate uniform spread;
// values well below 1 indicate clustering.
func (d Distribution) Ratio() float64 {
	if d.Expected == 0 {
		return 0
	}
	return float64(d.Filled) / d.Expected
}

// Distribution returns the current occupancy.
func (b *Buckets) Distribution() Distribution {
	m := uint64(1) << b.bits
	return Distribution{
		Bits:     b.bits,
		Buckets:  m,
		Items:    b.items,
		Filled:   uint64(b.filled.Count()),
		Expected: ExpectedFilled(b.items, m),
	}
}

// ExpectedFilled returns the expected number of non-empty buckets after n
// uniformly random throws into m buckets: m(1 - e^(-n/m)).
func ExpectedFilled(n, m uint64) float64 {
	if m == 0 {
		return 0
	}
	fm := float64(m)
	return fm * -math.Expm1(-float64(n)/fm)
}

// Distribute places every digest into 2^bits buckets.
func Distribute(digests iter.Seq[int32], bits uint) (Distribution, error) {
	b, err := NewBuckets(bits)
	if err != nil {
		return Distribution{}, err
	}
	for d := range digests {
		b.Add(d)
	}
	return b.Distribution(), nil
}
