package corpus

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/hashmix/internal/decompose"
	"github.com/hupe1980/hashmix/internal/hash"
)

// DefaultSequentialCount is the size of the sequential-number corpus used by
// the reference collision experiment.
const DefaultSequentialCount = 216553

// maxLineSize bounds a single word list line.
const maxLineSize = 1 << 20

// Words is a deduplicated list of words in first occurrence order.
type Words []string

// Corpus is a named experiment input. Exactly one of Words, Blobs and
// Numbers is populated.
type Corpus struct {
	Name     string
	Words    Words
	Blobs    [][]byte
	Numbers  []uint64
	Checksum uint32 // CRC32-C of the word source; 0 for number corpora.
}

// Len returns the number of items in the corpus.
func (c *Corpus) Len() int {
	return len(c.Words) + len(c.Blobs) + len(c.Numbers)
}

// ErrUnknownEncoding is returned by ParseEncoding for unsupported names.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding selects how Bytes turns words into byte records.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16LE:
		return "utf16le"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding maps "utf8" or "utf16le" to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "utf8", "utf-8":
		return UTF8, nil
	case "utf16le", "utf-16le":
		return UTF16LE, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
	}
}

// Bytes returns a corpus whose blobs are c's words encoded with enc. The
// checksum is carried over; numbers are dropped.
func (c *Corpus) Bytes(enc Encoding) *Corpus {
	blobs := make([][]byte, len(c.Words))
	for i, w := range c.Words {
		blobs[i] = encode(w, enc)
	}
	return &Corpus{
		Name:     c.Name + "[" + enc.String() + "]",
		Blobs:    blobs,
		Checksum: c.Checksum,
	}
}

func encode(w string, enc Encoding) []byte {
	if enc != UTF16LE {
		return []byte(w)
	}
	buf := make([]byte, 0, 2*decompose.UTF16Len(w))
	for u := range decompose.UTF16(w) {
		buf = binary.LittleEndian.AppendUint16(buf, u)
	}
	return buf
}

// Sequential returns the n integers from, from+1, ..., from+n-1.
func Sequential(from, n uint64) []uint64 {
	numbers := make([]uint64, n)
	for i := range numbers {
		numbers[i] = from + uint64(i)
	}
	return numbers
}

// NewSequential wraps Sequential(from, n) in a named corpus.
func NewSequential(from, n uint64) *Corpus {
	name := "sequential[empty]"
	if n > 0 {
		name = fmt.Sprintf("sequential[%d..%d]", from, from+n-1)
	}
	return &Corpus{Name: name, Numbers: Sequential(from, n)}
}

// NewWords returns a corpus holding the distinct entries of words. Its
// checksum is that of the same list read from a file, one word per line.
func NewWords(name string, words []string) *Corpus {
	w := dedupe(words)

	var sb strings.Builder
	for _, word := range w {
		sb.WriteString(word)
		sb.WriteByte('\n')
	}

	return &Corpus{Name: name, Words: w, Checksum: hash.CRC32C([]byte(sb.String()))}
}

// ReadWords reads one word per line from r. Trailing carriage returns are
// stripped; blank lines and lines starting with '#' are skipped; repeated
// words are kept once.
func ReadWords(r io.Reader) (Words, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var words []string
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return dedupe(words), nil
}

// Read decompresses r according to name's extension and reads it as a word
// list, checksumming the decompressed bytes.
func Read(name string, r io.Reader) (*Corpus, error) {
	dec, err := Decompress(name, r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dec.Close() }()

	cr := hash.NewReader(dec)
	words, err := ReadWords(cr)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", name, err)
	}

	return &Corpus{
		Name:     name,
		Words:    words,
		Checksum: cr.Sum32(),
	}, nil
}

func dedupe(words []string) Words {
	seen := make(map[string]struct{}, len(words))
	out := make(Words, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
