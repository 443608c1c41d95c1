package worker

import (
	"context"
	"log/slog"
	"sync/atomic"

	"quickpoll/internal/metrics"
)

type Kind string

const (
	KindVote   Kind = "vote"
	KindLike   Kind = "like"
	KindUnlike Kind = "unlike"
)

// ActivityEvent is emitted after a vote, like or unlike has been committed.
type ActivityEvent struct {
	Kind     Kind
	PollID   int64
	UserID   int64
	OptionID int64
}

type ActivityWorker struct {
	Ch        <-chan ActivityEvent
	logger    *slog.Logger
	processed atomic.Int64
}

func NewActivityWorker(ch <-chan ActivityEvent, logger *slog.Logger) *ActivityWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityWorker{Ch: ch, logger: logger}
}

// Run consumes events until ctx is done or the channel is closed.
func (w *ActivityWorker) Run(ctx context.Context) {
	w.logger.Info("activity worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("activity worker stopped", "processed", w.processed.Load())
			return
		case ev, ok := <-w.Ch:
			if !ok {
				w.logger.Info("activity channel closed", "processed", w.processed.Load())
				return
			}
			w.handle(ev)
		}
	}
}

func (w *ActivityWorker) handle(ev ActivityEvent) {
	metrics.IncActivity(string(ev.Kind))
	w.processed.Add(1)

	attrs := []any{"kind", ev.Kind, "poll_id", ev.PollID, "user_id", ev.UserID}
	if ev.Kind == KindVote {
		attrs = append(attrs, "option_id", ev.OptionID)
	}
	w.logger.Debug("activity", attrs...)
}

func (w *ActivityWorker) Processed() int64 {
	return w.processed.Load()
}

// Publish hands ev to the worker without blocking; a full queue drops the
// event and reports false.
func Publish(ch chan<- ActivityEvent, ev ActivityEvent) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- ev:
		return true
	default:
		return false
	}
}
