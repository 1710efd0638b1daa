package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	charmlog "github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/hashmix/corpus"
	"github.com/hupe1980/hashmix/experiment"
)

// CLI is the command line of hashmix.
type CLI struct {
	Globals

	Collisions CollisionsCmd `cmd:"" help:"Count collisions and bucket spread per hasher."`
	Hashers    HashersCmd    `cmd:"" help:"List the available hashers."`
}

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `help:"Minimum log level (${enum})." enum:"debug,info,warn,error" default:"info" env:"HASHMIX_LOG_LEVEL"`
	LogFormat string `help:"Log encoding (${enum})." enum:"text,json,pretty" default:"pretty" env:"HASHMIX_LOG_FORMAT"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

func (g *Globals) out() io.Writer {
	if g.stdout == nil {
		return os.Stdout
	}
	return g.stdout
}

func (g *Globals) logger() *experiment.Logger {
	w := g.stderr
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	switch g.LogFormat {
	case "json":
		return experiment.NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case "text":
		return experiment.NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	default:
		return experiment.NewLogger(charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
		}))
	}
}

// CollisionsCmd runs the collision experiment.
type CollisionsCmd struct {
	Words       []string `help:"Word list to hash: a path, file:// or s3://bucket/key URI. Repeatable." placeholder:"URI" env:"HASHMIX_WORDS"`
	Encoding    string   `help:"Hash words as strings or as byte records (${enum})." enum:"string,utf8,utf16le" default:"string" env:"HASHMIX_ENCODING"`
	Numbers     uint64   `help:"Also hash the integers 1..N; 0 disables." default:"216553" env:"HASHMIX_NUMBERS"`
	Hasher      []string `help:"Hasher to run; repeatable. Defaults to all." placeholder:"NAME" env:"HASHMIX_HASHERS"`
	Buckets     uint     `help:"Distribution resolution in bits." default:"16" env:"HASHMIX_BUCKETS"`
	Format      string   `help:"Report format (${enum})." enum:"text,json,yaml,toml" default:"text" env:"HASHMIX_FORMAT"`
	Concurrency int      `help:"Maximum concurrent runs; 0 uses GOMAXPROCS." default:"0" env:"HASHMIX_CONCURRENCY"`

	S3Endpoint  string `help:"S3-compatible endpoint served through the MinIO client instead of AWS." placeholder:"HOST:PORT" env:"HASHMIX_S3_ENDPOINT"`
	S3AccessKey string `help:"Access key for --s3-endpoint." env:"HASHMIX_S3_ACCESS_KEY"`
	S3SecretKey string `help:"Secret key for --s3-endpoint." env:"HASHMIX_S3_SECRET_KEY"`
	S3Insecure  bool   `help:"Use plain HTTP for --s3-endpoint." env:"HASHMIX_S3_INSECURE"`
}

// Run implements the collisions command.
func (c *CollisionsCmd) Run(ctx context.Context, g *Globals) error {
	logger := g.logger()

	format, err := experiment.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	hashers := experiment.Default()
	if len(c.Hasher) > 0 {
		if hashers, err = experiment.NewRegistry().LookupAll(c.Hasher...); err != nil {
			return err
		}
	}

	var (
		encode bool
		enc    corpus.Encoding
	)
	if c.Encoding != "" && c.Encoding != "string" {
		if enc, err = corpus.ParseEncoding(c.Encoding); err != nil {
			return err
		}
		encode = true
	}

	loader, err := c.loader(ctx, logger)
	if err != nil {
		return err
	}

	var corpora []*corpus.Corpus
	for _, uri := range c.Words {
		cp, err := loader.Load(ctx, uri)
		if err != nil {
			return err
		}
		if encode {
			cp = cp.Bytes(enc)
		}
		corpora = append(corpora, cp)
	}
	if c.Numbers > 0 {
		corpora = append(corpora, corpus.NewSequential(1, c.Numbers))
	}

	runner := experiment.NewRunner(
		experiment.WithLogger(logger),
		experiment.WithConcurrency(c.Concurrency),
		experiment.WithBucketBits(c.Buckets),
	)

	report, err := runner.Run(ctx, corpora, hashers)
	if err != nil {
		return err
	}

	return report.Render(g.out(), format)
}

func (c *CollisionsCmd) loader(ctx context.Context, logger *experiment.Logger) (*corpus.Loader, error) {
	opts := []corpus.LoaderOption{corpus.WithLoaderLogger(logger.Logger)}

	if !c.needsObjectStore() {
		return corpus.NewLoader(opts...), nil
	}

	if c.S3Endpoint != "" {
		client, err := minio.New(c.S3Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(c.S3AccessKey, c.S3SecretKey, ""),
			Secure: !c.S3Insecure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return corpus.NewLoader(append(opts, corpus.WithMinioClient(client))...), nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	return corpus.NewLoader(append(opts, corpus.WithS3Client(s3.NewFromConfig(cfg)))...), nil
}

func (c *CollisionsCmd) needsObjectStore() bool {
	for _, uri := range c.Words {
		if strings.HasPrefix(strings.ToLower(uri), "s3://") {
			return true
		}
	}
	return false
}

// HashersCmd lists the built-in hashers.
type HashersCmd struct{}

// Run implements the hashers command.
func (HashersCmd) Run(g *Globals) error {
	for _, name := range experiment.BuiltinNames() {
		if _, err := fmt.Fprintln(g.out(), name); err != nil {
			return err
		}
	}
	return nil
}
