package experiment

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashmix/corpus"
)

func testCorpora() []*corpus.Corpus {
	words := corpus.NewWords("words", []string{"aR", "bA", "apple", "banana", "cherry", "apple"})
	words.Checksum = 0xdeadbeef
	return []*corpus.Corpus{words, corpus.NewSequential(1, 10000)}
}

func TestRunner_Run(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	r := NewRunner(
		WithConcurrency(2),
		WithBucketBits(8),
		WithMetricsCollector(metrics),
	)

	report, err := r.Run(context.Background(), testCorpora(), []Hasher{Const(), Terribad(), FNV1A32(), Murmur3()})
	require.NoError(t, err)

	assert.Equal(t, uint(8), report.BucketBits)
	assert.Equal(t, CurrentPlatform(), report.Platform)
	require.Len(t, report.Corpora, 2)

	words := report.Corpora[0]
	assert.Equal(t, "words", words.Name)
	assert.Equal(t, 5, words.Items)
	assert.Equal(t, uint32(0xdeadbeef), words.Checksum)
	require.Len(t, words.Results, 4)

	byName := map[string]Result{}
	for _, res := range words.Results {
		byName[res.Hasher] = res
		assert.Equal(t, 5, res.Items)
		assert.Equal(t, uint(8), res.Distribution.Bits)
	}
	assert.Equal(t, uint64(4), byName["const"].Collisions)
	assert.Equal(t, uint64(1), byName["terribad"].Collisions)
	assert.Equal(t, uint64(0), byName["fnv1a32"].Collisions)
	assert.Equal(t, uint64(0), byName["murmur3"].Collisions)

	// Fewest collisions first, ties by name.
	assert.Equal(t, []string{"fnv1a32", "murmur3", "terribad", "const"}, hasherNames(words.Results))

	numbers := report.Corpora[1]
	assert.Equal(t, 10000, numbers.Items)
	assert.Equal(t, []string{"fnv1a32", "murmur3", "terribad", "const"}, hasherNames(numbers.Results))
	assert.Equal(t, uint64(9999), numbers.Results[3].Collisions)
	assert.Equal(t, uint64(1), numbers.Results[3].Distribution.Filled)

	stats := metrics.GetStats()
	assert.Equal(t, int64(8), stats.RunCount)
	assert.Equal(t, int64(0), stats.RunErrors)
	assert.Equal(t, int64(4*5+4*10000), stats.Items)
}

func TestRunner_NoiseIndependentOfConcurrency(t *testing.T) {
	corpora := []*corpus.Corpus{
		corpus.NewSequential(1, 50000),
		corpus.NewSequential(1, 50000),
		corpus.NewWords("words", []string{"apple", "banana", "cherry"}),
	}
	noise := Noise(DefaultNoiseSeed)

	run := func(concurrency int) []CorpusResult {
		report, err := NewRunner(WithConcurrency(concurrency), WithBucketBits(12)).
			Run(context.Background(), corpora, []Hasher{noise})
		require.NoError(t, err)
		return report.Corpora
	}

	serial := run(1)
	for range 3 {
		parallel := run(4)
		require.Len(t, parallel, len(serial))
		for i := range serial {
			want, got := serial[i].Results[0], parallel[i].Results[0]
			assert.Equal(t, want.Collisions, got.Collisions, serial[i].Name)
			assert.Equal(t, want.Distribution, got.Distribution, serial[i].Name)
		}
	}

	// Identical corpora see identical streams.
	assert.Equal(t, serial[0].Results[0].Collisions, serial[1].Results[0].Collisions)
	assert.Equal(t, serial[0].Results[0].Distribution, serial[1].Results[0].Distribution)
}

func TestRunner_Errors(t *testing.T) {
	r := NewRunner()

	_, err := r.Run(context.Background(), testCorpora(), nil)
	assert.ErrorIs(t, err, ErrNoHashers)

	_, err = r.Run(context.Background(), nil, Default())
	assert.ErrorIs(t, err, ErrNoCorpora)

	_, err = NewRunner(WithBucketBits(40)).Run(context.Background(), testCorpora(), Default())
	assert.ErrorIs(t, err, ErrInvalidBucketBits)
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metrics := &BasicMetricsCollector{}
	_, err := NewRunner(WithMetricsCollector(metrics)).Run(ctx, testCorpora(), []Hasher{FNV1A32()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Positive(t, metrics.GetStats().RunErrors)
}

func TestRunner_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := NewRunner(WithLogger(logger), WithProgressInterval(time.Hour))
	_, err := r.Run(context.Background(), testCorpora(), []Hasher{Murmur3()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=hashing")
	assert.Contains(t, out, "corpus=sequential[1..10000]")
	assert.Contains(t, out, "hasher=murmur3")
	assert.Contains(t, out, `msg="run completed"`)
	assert.Contains(t, out, `msg="experiment completed"`)
	assert.Contains(t, out, "runs=2")
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(WithConcurrency(-1), WithLogger(nil), WithMetricsCollector(nil))
	assert.Positive(t, r.opts.concurrency)
	assert.Equal(t, uint(DefaultBucketBits), r.opts.bucketBits)
	assert.Equal(t, DefaultProgressInterval, r.opts.progressInterval)
	assert.NotNil(t, r.opts.logger)
	assert.Equal(t, NoopMetricsCollector{}, r.opts.metrics)
}

func hasherNames(results []Result) []string {
	names := make([]string, len(results))
	for i, res := range results {
		names[i] = res.Hasher
	}
	return names
}
