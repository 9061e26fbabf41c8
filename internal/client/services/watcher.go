package services

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sethvargo/go-retry"

	"github.com/juralis/paperdrop/internal/client/client"
	"github.com/juralis/paperdrop/internal/logging"
)

// Prober waits for the server to come within reach, backing off between
// probes so an offline day in the field does not hammer the radio link.
type Prober struct {
	client  client.Client
	logger  logging.Logger
	base    time.Duration
	maxWait time.Duration
}

func NewProber(c client.Client, logger logging.Logger, base, maxWait time.Duration) *Prober {
	if base <= 0 {
		base = time.Second
	}
	if maxWait <= 0 {
		maxWait = time.Minute
	}
	return &Prober{client: c, logger: logger.With("component", "prober"), base: base, maxWait: maxWait}
}

// WaitUntilReachable blocks until a probe succeeds or ctx is cancelled.
// Probes follow a fibonacci backoff capped at maxWait.
func (p *Prober) WaitUntilReachable(ctx context.Context) error {
	b := retry.NewFibonacci(p.base)
	b = retry.WithCappedDuration(p.maxWait, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := p.client.Ping(ctx); err != nil {
			p.logger.Debug(ctx, "server not reachable yet", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Watcher couples the reachability probe with a periodic fallback schedule:
// every tick it waits for the server and drains the queue once.
type Watcher struct {
	engine   *SyncEngine
	prober   *Prober
	logger   logging.Logger
	schedule string
}

func NewWatcher(engine *SyncEngine, prober *Prober, logger logging.Logger, schedule string) *Watcher {
	if schedule == "" {
		schedule = "@every 5m"
	}
	return &Watcher{engine: engine, prober: prober, logger: logger.With("component", "watcher"), schedule: schedule}
}

// Run blocks until ctx is cancelled. A first cycle starts immediately.
func (w *Watcher) Run(ctx context.Context) error {
	trigger := make(chan struct{}, 1)
	kick := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	cr := cron.New()
	if _, err := cr.AddFunc(w.schedule, kick); err != nil {
		return err
	}
	cr.Start()
	defer cr.Stop()

	kick()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trigger:
			if err := w.prober.WaitUntilReachable(ctx); err != nil {
				return err
			}
			res, err := w.engine.SyncOnce(ctx)
			if errors.Is(err, ErrSyncInProgress) {
				continue
			}
			if err != nil {
				w.logger.Error(ctx, "sync cycle failed", "error", err)
				continue
			}
			w.logger.Info(ctx, "sync cycle finished", "sent", res.Sent, "evicted", res.Evicted, "remaining", res.Remaining)
		}
	}
}
