// Package scheduler keeps the cached catalog snapshot warm on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Warmer reloads the catalog cache and reports how many listings it holds.
type Warmer interface {
	Warm(ctx context.Context) (int, error)
}

// CacheWarmer wraps robfig/cron and runs the catalog warm-up.
type CacheWarmer struct {
	cron    *cron.Cron
	warmer  Warmer
	spec    string
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a CacheWarmer for a cron spec such as "@every 10m".
func New(warmer Warmer, spec string, logger *zap.Logger) *CacheWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	cronLog := cronLogger{logger.Sugar().With("component", "catalog_warmer")}
	return &CacheWarmer{
		cron:    cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
		warmer:  warmer,
		spec:    spec,
		timeout: time.Minute,
		logger:  logger,
	}
}

// Start registers the job, starts the scheduler and runs one warm-up
// immediately so the first request does not pay for the load.
func (w *CacheWarmer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	if _, err := w.cron.AddFunc(w.spec, func() { w.run(ctx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule catalog warmer %q: %w", w.spec, err)
	}

	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.cron.Start()
	w.logger.Sugar().Infow("catalog warmer started", "spec", w.spec)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
	return nil
}

// Stop halts the schedule and waits for running warm-ups to return.
func (w *CacheWarmer) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}

	<-w.cron.Stop().Done()
	cancel()
	w.wg.Wait()
	w.logger.Sugar().Infow("catalog warmer stopped")
}

func (w *CacheWarmer) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	n, err := w.warmer.Warm(ctx)
	if err != nil {
		w.logger.Sugar().Errorw("catalog warm failed", "error", err, "duration", time.Since(start))
		return
	}
	w.logger.Sugar().Infow("catalog warmed", "cars", n, "duration", time.Since(start))
}

// cronLogger routes robfig/cron diagnostics through zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
