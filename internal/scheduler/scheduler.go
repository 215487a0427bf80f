// Package scheduler keeps the response cache warm by rebuilding the catalog
// on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ryanm101/gameroom/internal/logging"
)

// Job refreshes whatever the warmer keeps warm.
type Job func(ctx context.Context)

// Warmer runs a Job on a cron schedule. Runs never overlap.
type Warmer struct {
	cron     *cron.Cron
	schedule string
	job      Job
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a warmer. An empty schedule disables scheduled runs;
// RunNow still works.
func New(schedule string, job Job) *Warmer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Warmer{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		schedule: schedule,
		job:      job,
		logger:   logging.For("scheduler"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the job and starts the scheduler. It fails on an invalid
// schedule expression.
func (w *Warmer) Start() error {
	if w.schedule == "" {
		w.logger.Info("cache warm-up disabled")
		return nil
	}

	if _, err := w.cron.AddFunc(w.schedule, func() { w.RunNow(w.ctx) }); err != nil {
		return fmt.Errorf("invalid warm schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	w.logger.Info("cache warm-up scheduled", "schedule", w.schedule)
	return nil
}

// Stop cancels an in-flight run and waits for it to return.
func (w *Warmer) Stop() {
	w.cancel()
	<-w.cron.Stop().Done()
	w.logger.Info("cache warm-up stopped")
}

// RunNow runs the job once in the caller's goroutine.
func (w *Warmer) RunNow(ctx context.Context) {
	start := time.Now()
	w.job(ctx)
	w.logger.Info("cache warmed", "duration", time.Since(start))
}
