package corpus

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashmix/internal/hash"
)

const sampleList = "# english words\r\napple\r\nbanana\n\ncherry\napple\n  \n#comment\nbanana\n"

func TestReadWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Words
	}{
		{"empty", "", Words{}},
		{"comments and blanks", "#x\n\n#y\n", Words{}},
		{"crlf", "a\r\nb\r\n", Words{"a", "b"}},
		{"dedupe keeps first", "b\na\nb\nc\na\n", Words{"b", "a", "c"}},
		{"no trailing newline", "one\ntwo", Words{"one", "two"}},
		{"whitespace is a word", "  \n", Words{"  "}},
		{"unicode", "héllo\n😀\n", Words{"héllo", "😀"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadWords(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadWords_LongLine(t *testing.T) {
	long := strings.Repeat("x", 100_000)
	got, err := ReadWords(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0], 100_000)
}

func TestSequential(t *testing.T) {
	assert.Equal(t, []uint64{1, 2, 3, 4}, Sequential(1, 4))
	assert.Empty(t, Sequential(7, 0))

	c := NewSequential(1, DefaultSequentialCount)
	assert.Equal(t, "sequential[1..216553]", c.Name)
	assert.Equal(t, DefaultSequentialCount, c.Len())
	assert.Equal(t, uint64(216553), c.Numbers[len(c.Numbers)-1])
	assert.Empty(t, c.Words)
	assert.Zero(t, c.Checksum)

	assert.Equal(t, "sequential[empty]", NewSequential(1, 0).Name)
}

func TestNewWords(t *testing.T) {
	c := NewWords("fruit", []string{"a", "b", "a"})
	assert.Equal(t, Words{"a", "b"}, c.Words)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, hash.CRC32C([]byte("a\nb\n")), c.Checksum)

	read, err := Read("fruit", strings.NewReader("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, read.Checksum, c.Checksum)
}

func TestCorpus_Bytes(t *testing.T) {
	c := NewWords("mixed", []string{"ab", "\u00e9", "\U0001F600"})

	t.Run("UTF8", func(t *testing.T) {
		b := c.Bytes(UTF8)
		assert.Equal(t, "mixed[utf8]", b.Name)
		assert.Equal(t, [][]byte{[]byte("ab"), {0xc3, 0xa9}, {0xf0, 0x9f, 0x98, 0x80}}, b.Blobs)
		assert.Equal(t, c.Checksum, b.Checksum)
		assert.Empty(t, b.Words)
		assert.Equal(t, 3, b.Len())
	})

	t.Run("UTF16LE", func(t *testing.T) {
		b := c.Bytes(UTF16LE)
		assert.Equal(t, "mixed[utf16le]", b.Name)
		assert.Equal(t, [][]byte{
			{'a', 0, 'b', 0},
			{0xe9, 0},
			{0x3d, 0xd8, 0x00, 0xde},
		}, b.Blobs)
	})

	t.Run("NumbersDropped", func(t *testing.T) {
		assert.Zero(t, NewSequential(1, 10).Bytes(UTF8).Len())
	})
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"utf8": UTF8, "UTF-8": UTF8, "utf16le": UTF16LE, "utf-16le": UTF16LE} {
		got, err := ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, strings.ToLower(strings.ReplaceAll(in, "-", "")), got.String())
	}

	_, err := ParseEncoding("latin1")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
	assert.Equal(t, "Encoding(9)", Encoding(9).String())
}

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		name string
		want Compression
	}{
		{"words.txt", CompressionNone},
		{"words", CompressionNone},
		{"words.txt.gz", CompressionGzip},
		{"WORDS.GZ", CompressionGzip},
		{"words.zst", CompressionZSTD},
		{"words.zstd", CompressionZSTD},
		{"dir.lz4/words.lz4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompressionFor(tt.name))
		})
	}

	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "gzip", CompressionGzip.String())
	assert.Equal(t, "zstd", CompressionZSTD.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
}

func TestRead_Compressed(t *testing.T) {
	want := Words{"apple", "banana", "cherry", "  "}
	checksum := hash.CRC32C([]byte(sampleList))

	for _, name := range []string{"words.txt", "words.txt.gz", "words.zst", "words.lz4"} {
		t.Run(name, func(t *testing.T) {
			data := compress(t, name, []byte(sampleList))

			c, err := Read(name, bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, name, c.Name)
			assert.Equal(t, want, c.Words)
			assert.Equal(t, checksum, c.Checksum)
		})
	}
}

func TestRead_CorruptGzip(t *testing.T) {
	_, err := Read("words.gz", strings.NewReader("not gzip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip words.gz")
}

// compress encodes data with the codec implied by name.
func compress(t *testing.T, name string, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser

	switch CompressionFor(name) {
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZSTD:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	case CompressionLZ4:
		w = lz4.NewWriter(&buf)
	default:
		return data
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}
