package pdftext

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// stderrCap limits how much of a failing command's stderr is logged.
const stderrCap = 8 << 10

// Runner lets tests stand in for the external binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner shells out for real. It carries the owning Extractor's logger so
// exec events go through the same handler as the rest of the pipeline.
type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		stderr := errb.String()
		if len(stderr) > stderrCap {
			stderr = stderr[:stderrCap] + "...(truncated)"
		}
		r.logger.Error("pdftext.exec.failed",
			"cmd", name,
			"elapsed_ms", elapsed,
			"error", err,
			"stderr", stderr,
		)
	} else {
		r.logger.Debug("pdftext.exec.ok",
			"cmd", name,
			"elapsed_ms", elapsed,
			"stdout_bytes", out.Len(),
		)
	}
	return out.Bytes(), errb.Bytes(), err
}
