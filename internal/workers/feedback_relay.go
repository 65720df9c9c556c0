// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
)

// FeedbackRelay forwards stored feedback to a [adapter.FeedbackSink] from a
// bounded queue. Enqueue never blocks: when the queue is full the event is
// dropped and a warning is logged.
type FeedbackRelay struct {
	sink        adapter.FeedbackSink
	queue       chan models.Feedback
	concurrency int
	timeout     time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewFeedbackRelay(sink adapter.FeedbackSink, cfg config.Workers, sendTimeout time.Duration, log *logger.Logger) *FeedbackRelay {
	size := cfg.FeedbackQueueSize
	if size <= 0 {
		size = 1
	}
	concurrency := cfg.FeedbackConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &FeedbackRelay{
		sink:        sink,
		queue:       make(chan models.Feedback, size),
		concurrency: concurrency,
		timeout:     sendTimeout,
		logger:      log,
	}
}

// Enqueue reports whether feedback was accepted.
func (r *FeedbackRelay) Enqueue(feedback models.Feedback) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.Warn().
			Str("func", "FeedbackRelay.Enqueue").
			Int64("feedback_id", feedback.ID).
			Msg("relay is stopped, feedback dropped")
		return false
	}

	select {
	case r.queue <- feedback:
		return true
	default:
		r.logger.Warn().
			Str("func", "FeedbackRelay.Enqueue").
			Int64("feedback_id", feedback.ID).
			Str("run_id", feedback.RunID).
			Int("queue_size", cap(r.queue)).
			Msg("feedback queue is full, feedback dropped")
		return false
	}
}

func (r *FeedbackRelay) Run(ctx context.Context) {
	for range r.concurrency {
		r.wg.Add(1)
		go r.loop(ctx)
	}
}

// Stop closes the queue and waits until the queued events are sent or the
// run context is cancelled.
func (r *FeedbackRelay) Stop() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *FeedbackRelay) loop(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case feedback, ok := <-r.queue:
			if !ok {
				return
			}
			r.send(ctx, feedback)
		}
	}
}

func (r *FeedbackRelay) send(ctx context.Context, feedback models.Feedback) {
	sendCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.sink.Send(sendCtx, feedback); err != nil {
		r.logger.Err(err).
			Str("func", "FeedbackRelay.send").
			Int64("feedback_id", feedback.ID).
			Str("run_id", feedback.RunID).
			Msg("failed to forward feedback")
		return
	}

	r.logger.Debug().
		Str("func", "FeedbackRelay.send").
		Int64("feedback_id", feedback.ID).
		Msg("feedback forwarded")
}
