// Package scan ties the external collaborators to the extraction core: file
// in, raw completion out of the inference endpoint, candidate and verdict out
// of the extractor.
package scan

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vizitka/card-scanner/constants"
	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/extract"
	"github.com/vizitka/card-scanner/internal/llm"
	"github.com/vizitka/card-scanner/internal/pdftext"
)

// Result is one finished recognition: the verbatim model text plus the
// extraction verdict over it.
type Result struct {
	RawText string
	Outcome extract.Outcome
}

type Orchestrator struct {
	rec    llm.Recognizer
	pdf    *pdftext.Extractor
	logger *slog.Logger
}

func NewOrchestrator(rec llm.Recognizer, pdf *pdftext.Extractor, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{rec: rec, pdf: pdf, logger: logger}
}

// Recognize sends one file to the inference endpoint and returns the raw
// completion text. A PDF with a usable text layer goes as a text-only
// request; everything else is base64-encoded and attached inline. Transport
// failures pass through untouched; they are never converted into fallback
// candidates.
func (o *Orchestrator) Recognize(ctx context.Context, path string) (string, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	o.logger.Info("scan.recognize.start", "path", path, "ext", ext)

	if constants.MapExtToFormat(ext) == constants.PDF && o.pdf != nil {
		text, err := o.pdf.Extract(ctx, path)
		if err != nil {
			o.logger.Warn("scan.pdf_text_failed", "path", path, "error", err)
		}
		if strings.TrimSpace(text) != "" {
			o.logger.Info("scan.recognize.text_only", "path", path, "text_len", len(text))
			return o.rec.Recognize(ctx, llm.RecognizeRequest{Text: text})
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", common.WrapError(err, "read "+path)
	}
	raw, err := o.recognizeBytes(ctx, data, ext)
	if err != nil {
		return "", err
	}
	o.logger.Info("scan.recognize.ok", "path", path, "elapsed_ms", time.Since(start).Milliseconds())
	return raw, nil
}

// RecognizeBytes handles in-memory uploads from the web surface. Uploaded
// content always goes down the multimodal path; the text-layer probe needs a
// file on disk and the web form never had one.
func (o *Orchestrator) RecognizeBytes(ctx context.Context, data []byte, filename string) (string, error) {
	return o.recognizeBytes(ctx, data, constants.NormalizeExt(filepath.Ext(filename)))
}

func (o *Orchestrator) recognizeBytes(ctx context.Context, data []byte, ext string) (string, error) {
	req := llm.RecognizeRequest{
		Instruction: llm.BuildScanPrompt(),
		Attachment: &llm.Attachment{
			Data:     base64.StdEncoding.EncodeToString(data),
			MIMEType: constants.MIMEForExt(ext),
		},
	}
	return o.rec.Recognize(ctx, req)
}

// Process runs the full chain for one file: recognize, extract, validate.
// The error return carries transport and I/O failures only; malformed model
// content lands in the Outcome as a rejected fallback, never here.
func (o *Orchestrator) Process(ctx context.Context, path string) (Result, error) {
	raw, err := o.Recognize(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return o.evaluate(raw), nil
}

// ProcessBytes is Process for in-memory uploads.
func (o *Orchestrator) ProcessBytes(ctx context.Context, data []byte, filename string) (Result, error) {
	raw, err := o.RecognizeBytes(ctx, data, filename)
	if err != nil {
		return Result{}, err
	}
	return o.evaluate(raw), nil
}

func (o *Orchestrator) evaluate(raw string) Result {
	candidate, diag := extract.Extract(raw)
	outcome := extract.Validate(candidate, diag)
	if diag.Fallback {
		o.logger.Warn("scan.extract.fallback", "raw_len", len(raw))
	}
	return Result{RawText: raw, Outcome: outcome}
}
