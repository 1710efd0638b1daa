package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedSource is returned for URIs with an unknown scheme.
	ErrUnsupportedSource = errors.New("unsupported corpus source")

	// ErrInvalidS3URI is returned for s3:// URIs without a bucket or key.
	ErrInvalidS3URI = errors.New("invalid s3 uri")

	// ErrNoObjectStore is returned when an s3:// URI is loaded by a Loader
	// that was built without an object store.
	ErrNoObjectStore = errors.New("no object store configured")

	// ErrNotFound is returned when the source object does not exist.
	ErrNotFound = errors.New("corpus not found")
)

// ObjectStore opens objects addressed by s3://bucket/key URIs.
type ObjectStore interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

type loaderOptions struct {
	store  ObjectStore
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

// WithObjectStore serves s3:// sources from store.
func WithObjectStore(store ObjectStore) LoaderOption {
	return func(o *loaderOptions) {
		o.store = store
	}
}

// WithS3Client serves s3:// sources through the AWS SDK.
func WithS3Client(c S3Client) LoaderOption {
	return WithObjectStore(NewS3Store(c))
}

// WithLoaderLogger sets the logger used to report loaded corpora.
// If nil is passed, logging is disabled.
func WithLoaderLogger(l *slog.Logger) LoaderOption {
	return func(o *loaderOptions) {
		o.logger = l
	}
}

// Loader reads word-list corpora from local files or S3.
type Loader struct {
	opts loaderOptions
}

// NewLoader creates a Loader.
func NewLoader(optFns ...LoaderOption) *Loader {
	opts := loaderOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{opts: opts}
}

// Load reads the word list at uri. Supported forms are bare paths,
// file:///path and s3://bucket/key.
func (l *Loader) Load(ctx context.Context, uri string) (*Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return l.loadFile(uri)
	}

	switch strings.ToLower(scheme) {
	case "file":
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, uri)
		}
		return l.loadFile(u.Path)
	case "s3":
		bucket, key, err := parseS3(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, uri)
		}
		return l.loadObject(ctx, bucket, key)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, uri)
	}
}

func (l *Loader) loadFile(name string) (*Corpus, error) {
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	c, err := Read(name, f)
	if err != nil {
		return nil, err
	}
	c.Name = filepath.Base(name)

	l.opts.logger.Info("corpus loaded",
		slog.String("source", name),
		slog.Int("words", len(c.Words)),
		slog.Any("checksum", c.Checksum),
	)
	return c, nil
}

func (l *Loader) loadObject(ctx context.Context, bucket, key string) (*Corpus, error) {
	if l.opts.store == nil {
		return nil, ErrNoObjectStore
	}

	uri := "s3://" + bucket + "/" + key

	body, err := l.opts.store.Open(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
		}
		return nil, fmt.Errorf("get %s: %w", uri, err)
	}
	defer func() { _ = body.Close() }()

	c, err := Read(key, contextReader{ctx: ctx, r: body})
	if err != nil {
		return nil, err
	}
	c.Name = path.Base(key)

	l.opts.logger.Info("corpus loaded",
		slog.String("source", uri),
		slog.Int("words", len(c.Words)),
		slog.Any("checksum", c.Checksum),
	)
	return c, nil
}

func parseS3(rest string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", ErrInvalidS3URI
	}
	return bucket, key, nil
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
