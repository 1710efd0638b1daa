package hash

import (
	"hash"
	"hash/crc32"
	"io"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Reader checksums everything read through it.
type Reader struct {
	r io.Reader
	h hash.Hash32
	n int64
}

// NewReader wraps r. The checksum covers bytes returned by Read, so it is
// complete only once r has been drained.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: crc32.New(crc32cTable)}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		_, _ = r.h.Write(p[:n])
		r.n += int64(n)
	}
	return n, err
}

// Sum32 returns the CRC32-C of the bytes read so far.
func (r *Reader) Sum32() uint32 { return r.h.Sum32() }

// Size returns the number of bytes read so far.
func (r *Reader) Size() int64 { return r.n }
