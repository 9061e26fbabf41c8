// Package services implements the client's sync engine: draining the durable
// queue to the server and deciding which failures are worth retrying.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/juralis/paperdrop/internal/client/client"
	"github.com/juralis/paperdrop/internal/client/models"
	"github.com/juralis/paperdrop/internal/client/repositories/uploads"
	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/logging"
)

// ErrSyncInProgress is returned when a cycle is requested while another one
// is still draining the queue.
var ErrSyncInProgress = errors.New("sync cycle already running")

// Result summarizes one sync cycle.
type Result struct {
	Sent      int
	Evicted   int
	Remaining int
}

// Evicted describes a queue item dropped after a permanent rejection.
type Evicted struct {
	Upload *models.PendingUpload
	Err    error
}

// SyncEngine drains the local queue. At most one cycle runs at a time;
// items are sent oldest first so capture order is preserved on the server.
type SyncEngine struct {
	queue  uploads.Repository
	client client.Client
	logger logging.Logger

	// single-flight slot
	slot chan struct{}

	// optional observers, for the CLI and tests
	OnQueueLength func(int)
	OnEvicted     func(Evicted)
}

func NewSyncEngine(queue uploads.Repository, c client.Client, logger logging.Logger) *SyncEngine {
	slot := make(chan struct{}, 1)
	slot <- struct{}{}
	return &SyncEngine{
		queue:  queue,
		client: c,
		logger: logger.With("component", "sync"),
		slot:   slot,
	}
}

// SyncOnce runs a single cycle over a snapshot of the queue. A retryable
// failure leaves the item queued for the next cycle; a permanent rejection
// evicts it. Either way the cycle moves on to the remaining items.
func (s *SyncEngine) SyncOnce(ctx context.Context) (*Result, error) {
	select {
	case <-s.slot:
	default:
		return nil, ErrSyncInProgress
	}
	defer func() { s.slot <- struct{}{} }()

	snapshot, err := s.queue.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}

	res := &Result{Remaining: len(snapshot)}
	for _, item := range snapshot {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		info, err := s.client.UploadDocument(ctx, item)
		if err == nil {
			if err := s.queue.Remove(ctx, item.LocalID); err != nil {
				return res, fmt.Errorf("remove %d from queue: %w", item.LocalID, err)
			}
			res.Sent++
			res.Remaining--
			s.notifyQueueLength(ctx)
			s.logger.Info(ctx, "upload acknowledged", "local_id", item.LocalID, "document_id", info.ID)
			continue
		}

		if common.ClassifyError(err) == common.Permanent {
			if rmErr := s.queue.Remove(ctx, item.LocalID); rmErr != nil {
				return res, fmt.Errorf("remove %d from queue: %w", item.LocalID, rmErr)
			}
			res.Evicted++
			res.Remaining--
			s.notifyQueueLength(ctx)
			s.logger.Warn(ctx, "upload rejected, evicting", "local_id", item.LocalID, "error", err)
			if s.OnEvicted != nil {
				s.OnEvicted(Evicted{Upload: item, Err: err})
			}
			continue
		}

		s.logger.Info(ctx, "upload failed, will retry", "local_id", item.LocalID, "error", err)
	}
	return res, nil
}

func (s *SyncEngine) notifyQueueLength(ctx context.Context) {
	if s.OnQueueLength == nil {
		return
	}
	if n, err := s.queue.Count(ctx); err == nil {
		s.OnQueueLength(n)
	}
}

// QueueLength reports the current queue depth.
func (s *SyncEngine) QueueLength(ctx context.Context) (int, error) {
	return s.queue.Count(ctx)
}
