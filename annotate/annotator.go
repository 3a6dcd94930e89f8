// Copyright 2025 Variant Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package annotate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/variantlab/genechat/ai"
	"github.com/variantlab/genechat/core"
)

const (
	// defaultPoolSize bounds simultaneous in-flight lookups. The free
	// tiers of the upstream providers tolerate very little parallelism.
	defaultPoolSize = 1

	// defaultCallInterval spaces lookups to stay inside a 10-requests-
	// per-minute budget with headroom.
	defaultCallInterval = 7 * time.Second

	// defaultRetryDelay is used when a throttling rejection carries no
	// server-suggested delay.
	defaultRetryDelay = 24 * time.Second
)

// Annotator enriches variants through concurrent, rate-aware knowledge
// lookups. The worker pool and rate gate are shared across all concurrent
// Annotate invocations on the same Annotator.
type Annotator struct {
	searcher   ai.Searcher
	pool       *ants.Pool
	gate       *rateGate
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures an Annotator.
type Option func(*settings)

type settings struct {
	poolSize     int
	callInterval time.Duration
	retryDelay   time.Duration
	logger       *slog.Logger
}

// WithPoolSize sets how many lookups may run simultaneously.
// Default is 1; values below 1 are clamped to 1.
func WithPoolSize(size int) Option {
	return func(s *settings) {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
	}
}

// WithCallInterval sets the minimum delay between consecutive lookups.
// Zero disables rate spacing.
func WithCallInterval(interval time.Duration) Option {
	return func(s *settings) {
		s.callInterval = interval
	}
}

// WithRetryDelay sets the fallback delay before the single retry of a
// throttled lookup, used when the rejection names no delay of its own.
func WithRetryDelay(delay time.Duration) Option {
	return func(s *settings) {
		s.retryDelay = delay
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// New creates an Annotator backed by the given searcher.
func New(searcher ai.Searcher, opts ...Option) (*Annotator, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &settings{
		poolSize:     defaultPoolSize,
		callInterval: defaultCallInterval,
		retryDelay:   defaultRetryDelay,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, err
	}

	return &Annotator{
		searcher:   searcher,
		pool:       pool,
		gate:       newRateGate(s.callInterval),
		retryDelay: s.retryDelay,
		logger:     s.logger,
	}, nil
}

// Annotate runs one knowledge lookup per variant and returns the enriched
// records in input order. userNote, when non-empty, is embedded in every
// query as caller-supplied context.
//
// The batch is all-or-nothing: the first unrecovered lookup failure
// cancels the remaining tasks and surfaces as a single aggregate error.
func (a *Annotator) Annotate(ctx context.Context, variants []core.Variant, userNote string) ([]core.AnnotatedVariant, error) {
	results := make([]core.AnnotatedVariant, len(variants))
	if len(variants) == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(variants))
	var wg sync.WaitGroup

	for i := range variants {
		wg.Add(1)
		submitErr := a.pool.Submit(func() {
			defer wg.Done()

			summary, err := a.annotateOne(ctx, &variants[i], userNote)
			if err != nil {
				errs[i] = err
				cancel() // abort the rest of the batch
				return
			}
			results[i] = core.AnnotatedVariant{
				Variant:       variants[i],
				SearchSummary: summary,
			}
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
			cancel()
			break
		}
	}

	wg.Wait()

	// Report the first real failure; siblings killed by the batch cancel
	// would otherwise mask the cause.
	var batchErr error
	var batchIdx int
	for i, err := range errs {
		if err == nil {
			continue
		}
		if batchErr == nil || (errors.Is(batchErr, context.Canceled) && !errors.Is(err, context.Canceled)) {
			batchErr, batchIdx = err, i
		}
	}
	if batchErr != nil {
		v := &variants[batchIdx]
		return nil, fmt.Errorf("%w: variant %s:%d: %w", ErrAnnotationFailed, v.Chromosome, v.Position, batchErr)
	}

	return results, nil
}

// annotateOne waits for a rate slot, runs the lookup, and on a throttling
// rejection retries exactly once after the suggested delay. A second
// failure of any kind propagates.
func (a *Annotator) annotateOne(ctx context.Context, v *core.Variant, userNote string) (string, error) {
	query := buildQuery(v, userNote)

	if err := a.gate.wait(ctx); err != nil {
		return "", err
	}

	summary, err := a.searcher.Search(ctx, query)
	if err == nil {
		return summary, nil
	}

	throttle, ok := ai.AsThrottle(err)
	if !ok {
		return "", err
	}

	delay := throttle.RetryAfter
	if delay <= 0 {
		delay = a.retryDelay
	}
	a.logger.Warn("lookup throttled, retrying once",
		"chromosome", v.Chromosome, "position", v.Position, "delay", delay)

	if err := sleepFor(ctx, delay); err != nil {
		return "", err
	}
	if err := a.gate.wait(ctx); err != nil {
		return "", err
	}

	return a.searcher.Search(ctx, query)
}

// Release releases the worker pool.
// The annotator should not be used after calling Release.
func (a *Annotator) Release() {
	a.pool.Release()
}
