// Package pdftext wraps the external pdftotext binary. It answers one
// question: does this PDF carry a usable text layer, and if so, what does it
// say. Scanned PDFs with no text layer come back empty and the caller falls
// through to the multimodal path.
package pdftext

import (
	"context"
	"log/slog"
	"strings"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return NewExtractorWithRunner(cfg, execRunner{logger: logger}, logger)
}

// NewExtractorWithRunner substitutes the process runner, so callers can stand
// in a fake instead of the real binary.
func NewExtractorWithRunner(cfg Config, r Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: r, logger: logger}
}

// Extract runs pdftotext and returns the text layer. An empty string means
// the PDF has no extractable text; that is not an error.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		e.logger.Warn("pdftext.extract_failed", "path", path, "stderr", string(errb), "error", err)
		return "", err
	}
	text := string(out)
	if strings.TrimSpace(text) == "" {
		e.logger.Debug("pdftext.no_text_layer", "path", path)
		return "", nil
	}
	return text, nil
}
