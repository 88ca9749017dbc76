package recurring

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is used when a worker is given a non-positive interval.
const DefaultInterval = time.Hour

// Worker runs ProcessDue on a fixed interval until its context ends.
type Worker struct {
	svc      *Service
	interval time.Duration
}

func NewWorker(svc *Service, interval time.Duration) *Worker {
	if interval <= 0 {
		slog.Warn("invalid recurring interval, using default", "interval", interval, "default", DefaultInterval)
		interval = DefaultInterval
	}

	return &Worker{svc: svc, interval: interval}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	res, err := w.svc.ProcessDue(ctx, w.svc.now())
	if err != nil {
		slog.Error("failed to process recurring transactions", "error", err)
	}

	if res.Transactions > 0 {
		slog.Info("created recurring transactions", "templates", res.Templates, "transactions", res.Transactions)
	}
}
