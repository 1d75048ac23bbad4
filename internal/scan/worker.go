package scan

import (
	"context"
	"log/slog"
	"time"
)

// JobResult is what a finished recognition job hands back to the interactive
// layer.
type JobResult struct {
	Path   string
	Result Result
	Err    error
}

// Worker runs recognitions off the interactive thread with exactly one job in
// flight at a time. Submit blocks while a job is running, which is what
// enforces the at-most-one-concurrent-recognition rule; the interactive layer
// awaits the returned channel.
type Worker struct {
	orc     *Orchestrator
	logger  *slog.Logger
	slot    chan struct{}
	timeout time.Duration
}

func NewWorker(orc *Orchestrator, timeout time.Duration, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &Worker{
		orc:     orc,
		logger:  logger,
		slot:    make(chan struct{}, 1),
		timeout: timeout,
	}
}

// Submit queues one file for recognition. It blocks until the slot is free or
// ctx is done, then runs the job in the background and delivers exactly one
// JobResult on the returned channel.
func (w *Worker) Submit(ctx context.Context, path string) (<-chan JobResult, error) {
	select {
	case w.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	out := make(chan JobResult, 1)
	go func() {
		defer func() { <-w.slot }()

		jobCtx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		start := time.Now()
		res, err := w.orc.Process(jobCtx, path)
		if err != nil {
			w.logger.Error("scan.worker.failed", "path", path, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds())
		} else {
			w.logger.Info("scan.worker.done", "path", path,
				"accepted", res.Outcome.Accepted,
				"elapsed_ms", time.Since(start).Milliseconds())
		}
		out <- JobResult{Path: path, Result: res, Err: err}
		close(out)
	}()
	return out, nil
}
