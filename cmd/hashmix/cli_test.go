package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashmix/corpus"
	"github.com/hupe1980/hashmix/experiment"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("hashmix"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	return &cli, kctx
}

func TestParse_Defaults(t *testing.T) {
	cli, kctx := parse(t, "collisions")

	assert.Equal(t, "collisions", kctx.Command())
	assert.Equal(t, "info", cli.LogLevel)
	assert.Equal(t, "pretty", cli.LogFormat)
	assert.Equal(t, uint64(216553), cli.Collisions.Numbers)
	assert.Equal(t, uint(16), cli.Collisions.Buckets)
	assert.Equal(t, "text", cli.Collisions.Format)
	assert.Equal(t, "string", cli.Collisions.Encoding)
	assert.Empty(t, cli.Collisions.Words)
	assert.Empty(t, cli.Collisions.Hasher)
}

func TestParse_Flags(t *testing.T) {
	cli, _ := parse(t,
		"--log-level=debug", "--log-format=json",
		"collisions",
		"--words", "a.txt", "--words", "s3://bucket/b.txt.gz",
		"--hasher", "murmur3", "--hasher", "const",
		"--numbers", "10", "--buckets", "8", "--format", "yaml", "--concurrency", "2",
	)

	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, "json", cli.LogFormat)
	assert.Equal(t, []string{"a.txt", "s3://bucket/b.txt.gz"}, cli.Collisions.Words)
	assert.Equal(t, []string{"murmur3", "const"}, cli.Collisions.Hasher)
	assert.Equal(t, uint64(10), cli.Collisions.Numbers)
	assert.Equal(t, uint(8), cli.Collisions.Buckets)
	assert.Equal(t, "yaml", cli.Collisions.Format)
	assert.Equal(t, 2, cli.Collisions.Concurrency)
	assert.True(t, cli.Collisions.needsObjectStore())
}

func TestParse_InvalidEnum(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"collisions", "--format", "xml"})
	assert.Error(t, err)
}

func TestParse_Env(t *testing.T) {
	t.Setenv("HASHMIX_FORMAT", "json")
	t.Setenv("HASHMIX_NUMBERS", "0")

	cli, _ := parse(t, "collisions")
	assert.Equal(t, "json", cli.Collisions.Format)
	assert.Zero(t, cli.Collisions.Numbers)
}

func TestCollisionsCmd_Run(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("aR\nbA\napple\n"), 0o600))

	var stdout, stderr bytes.Buffer
	g := &Globals{LogLevel: "debug", LogFormat: "text", stdout: &stdout, stderr: &stderr}
	cmd := &CollisionsCmd{
		Words:   []string{words},
		Numbers: 100,
		Hasher:  []string{"terribad", "fnv1a32"},
		Buckets: 8,
		Format:  "json",
	}

	require.NoError(t, cmd.Run(context.Background(), g))

	var report experiment.Report
	require.NoError(t, gojson.Unmarshal(stdout.Bytes(), &report))
	require.Len(t, report.Corpora, 2)

	assert.Equal(t, "words.txt", report.Corpora[0].Name)
	assert.Equal(t, "fnv1a32", report.Corpora[0].Results[0].Hasher)
	assert.Equal(t, "terribad", report.Corpora[0].Results[1].Hasher)
	assert.Equal(t, uint64(1), report.Corpora[0].Results[1].Collisions)

	assert.Equal(t, "sequential[1..100]", report.Corpora[1].Name)
	assert.Contains(t, stderr.String(), "corpus loaded")
}

func TestCollisionsCmd_RunBytes(t *testing.T) {
	words := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("aR\nbA\napple\n"), 0o600))

	var stdout bytes.Buffer
	g := &Globals{LogLevel: "error", LogFormat: "text", stdout: &stdout, stderr: &bytes.Buffer{}}
	cmd := &CollisionsCmd{
		Words:    []string{words},
		Encoding: "utf8",
		Hasher:   []string{"terribad"},
		Buckets:  8,
		Format:   "json",
	}

	require.NoError(t, cmd.Run(context.Background(), g))

	var report experiment.Report
	require.NoError(t, gojson.Unmarshal(stdout.Bytes(), &report))
	require.Len(t, report.Corpora, 1)
	assert.Equal(t, "words.txt[utf8]", report.Corpora[0].Name)
	assert.Equal(t, 3, report.Corpora[0].Items)
	assert.Equal(t, uint64(1), report.Corpora[0].Results[0].Collisions)
}

func TestCollisionsCmd_Errors(t *testing.T) {
	g := &Globals{LogLevel: "info", LogFormat: "json", stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}

	err := (&CollisionsCmd{Numbers: 10, Buckets: 8, Format: "text", Hasher: []string{"sha1"}}).Run(context.Background(), g)
	assert.ErrorIs(t, err, experiment.ErrUnknownHasher)

	err = (&CollisionsCmd{Buckets: 8, Format: "text"}).Run(context.Background(), g)
	assert.ErrorIs(t, err, experiment.ErrNoCorpora)

	err = (&CollisionsCmd{Words: []string{"ftp://x/y"}, Buckets: 8, Format: "text"}).Run(context.Background(), g)
	assert.ErrorIs(t, err, corpus.ErrUnsupportedSource)
}

func TestHashersCmd_Run(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, HashersCmd{}.Run(&Globals{stdout: &stdout}))
	assert.Equal(t, "const\nfnv1a32\nfnv1a64\nmurmur3\nnoise\nruntime\nterribad\n", stdout.String())
}

func TestGlobals_Logger(t *testing.T) {
	for _, format := range []string{"text", "json", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var stderr bytes.Buffer
			g := &Globals{LogLevel: "warn", LogFormat: format, stderr: &stderr}

			l := g.logger()
			l.Info("hidden")
			l.Warn("shown")

			assert.NotContains(t, stderr.String(), "hidden")
			assert.Contains(t, stderr.String(), "shown")
		})
	}
}
