package experiment

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/hashmix/corpus"
)

var (
	// ErrNoHashers is returned by Run when no hashers are given.
	ErrNoHashers = errors.New("no hashers")

	// ErrNoCorpora is returned by Run when no corpora are given.
	ErrNoCorpora = errors.New("no corpora")
)

const (
	// DefaultProgressInterval is the minimum time between progress logs of a
	// single run.
	DefaultProgressInterval = 2 * time.Second

	// batchSize is the number of items hashed between cancellation checks.
	batchSize = 4096
)

type options struct {
	logger           *Logger
	metrics          MetricsCollector
	concurrency      int
	bucketBits       uint
	progressInterval time.Duration
}

// Option configures a Runner.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified after every run.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithConcurrency limits the number of runs in flight. Values below 1 select
// GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithBucketBits sets the distribution resolution to 2^bits buckets.
func WithBucketBits(bits uint) Option {
	return func(o *options) {
		o.bucketBits = bits
	}
}

// WithProgressInterval sets the minimum time between progress logs of a
// single run.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// Runner executes collision and distribution experiments.
type Runner struct {
	opts options
}

// NewRunner creates a Runner.
func NewRunner(optFns ...Option) *Runner {
	opts := options{
		logger:           NoopLogger(),
		metrics:          NoopMetricsCollector{},
		bucketBits:       DefaultBucketBits,
		progressInterval: DefaultProgressInterval,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.concurrency < 1 {
		opts.concurrency = runtime.GOMAXPROCS(0)
	}
	return &Runner{opts: opts}
}

// Run hashes every corpus with every hasher. Runs proceed concurrently; the
// first failure or cancellation of ctx stops the rest.
func (r *Runner) Run(ctx context.Context, corpora []*corpus.Corpus, hashers []Hasher) (*Report, error) {
	if len(hashers) == 0 {
		return nil, ErrNoHashers
	}
	if len(corpora) == 0 {
		return nil, ErrNoCorpora
	}
	if _, err := NewBuckets(r.opts.bucketBits); err != nil {
		return nil, err
	}

	start := time.Now()

	report := &Report{
		Platform:   CurrentPlatform(),
		BucketBits: r.opts.bucketBits,
		Corpora:    make([]CorpusResult, len(corpora)),
	}
	for i, c := range corpora {
		report.Corpora[i] = CorpusResult{
			Name:     c.Name,
			Items:    c.Len(),
			Checksum: c.Checksum,
			Results:  make([]Result, len(hashers)),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.concurrency)

	for i, c := range corpora {
		for j, h := range hashers {
			g.Go(func() error {
				res, err := r.run(gctx, c, fresh(h))
				if err != nil {
					return err
				}
				report.Corpora[i].Results[j] = res
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.sort()
	r.opts.logger.LogReport(ctx, len(corpora), len(corpora)*len(hashers), time.Since(start))

	return report, nil
}

func (r *Runner) run(ctx context.Context, c *corpus.Corpus, h Hasher) (Result, error) {
	log := r.opts.logger.WithCorpus(c.Name, c.Len()).WithHasher(h.Name())
	progress := rate.Sometimes{Interval: r.opts.progressInterval}

	start := time.Now()
	res, err := r.analyze(ctx, c, h, func(done int) {
		progress.Do(func() { log.LogProgress(ctx, done, c.Len()) })
	})
	res.Duration = time.Since(start)

	log.LogRun(ctx, res, err)
	r.opts.metrics.RecordRun(h.Name(), c.Len(), res.Duration, err)

	return res, err
}

func (r *Runner) analyze(ctx context.Context, c *corpus.Corpus, h Hasher, progress func(done int)) (Result, error) {
	collisions := NewCollisions()
	buckets, err := NewBuckets(r.opts.bucketBits)
	if err != nil {
		return Result{}, err
	}

	done := 0
	for d := range Digests(h, c) {
		collisions.Add(d)
		buckets.Add(d)

		done++
		if done%batchSize == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			progress(done)
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	return Result{
		Hasher:       h.Name(),
		Items:        done,
		Collisions:   collisions.Count(),
		Distribution: buckets.Distribution(),
	}, nil
}
