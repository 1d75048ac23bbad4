package gigachat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/llm"
)

// token performs the client-credentials exchange: base64 credentials in, a
// short-lived bearer token out. Every call gets a fresh RqUID. Tokens are not
// cached across requests; the exchange is its own fallible step with its own
// error surface.
func (c *Client) token(ctx context.Context) (string, error) {
	rid := uuid.New().String()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.AuthTimeout)
	defer cancel()

	form := url.Values{"scope": {c.cfg.Scope}}
	headers := map[string]string{
		"Authorization": "Basic " + c.cfg.APIKey,
		"RqUID":         rid,
	}

	raw, status, err := llm.SendForm(ctx, c.http, c.cfg.AuthURL, form, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.auth.failed", "rq_uid", rid, "status", status, "error", err)
		return "", &common.TransportError{Op: "auth", Status: status, Body: string(raw), Cause: err}
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"`
	}
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", &common.TransportError{Op: "auth", Status: status, Body: string(raw), Cause: fmt.Errorf("decode token response: %w", err)}
	}
	if tok.AccessToken == "" {
		return "", &common.TransportError{Op: "auth", Status: status, Body: string(raw), Cause: fmt.Errorf("empty access_token")}
	}

	c.logger.Info("llm.auth.ok", "rq_uid", rid)
	return tok.AccessToken, nil
}

// Recognize implements llm.Recognizer. It acquires a bearer token, builds one
// chat/completions call (multimodal when an attachment is present), and
// returns the completion text verbatim. All parsing of that text is the
// extractor's problem, never ours.
func (c *Client) Recognize(ctx context.Context, req llm.RecognizeRequest) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.recognize.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(req.Text),
		"has_attachment", req.Attachment != nil,
	)

	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	var content any
	switch {
	case req.Attachment != nil:
		content = []map[string]any{
			{"type": "text", "text": req.Instruction},
			{"type": "image_url", "image_url": map[string]any{
				"url": "data:" + req.Attachment.MIMEType + ";base64," + req.Attachment.Data,
			}},
		}
	case req.Text != "":
		content = llm.BuildTextScanPrompt(req.Text)
	default:
		content = req.Instruction
	}

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{"role": "user", "content": content},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + token}

	raw, status, httpErr := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if httpErr != nil {
		c.logger.Error("llm.recognize.http_error",
			"req_id", rid, "status", status, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", &common.TransportError{Op: "completion", Status: status, Body: string(raw), Cause: httpErr}
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.recognize.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", &common.TransportError{Op: "completion", Status: status, Body: string(raw), Cause: fmt.Errorf("decode completion response: %w", err)}
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.recognize.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", &common.TransportError{Op: "completion", Status: status, Body: string(raw), Cause: fmt.Errorf("no choices in completion response")}
	}

	content0 := cc.Choices[0].Message.Content
	c.logger.Info("llm.recognize.ok",
		"req_id", rid,
		"content_len", len(content0),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content0, nil
}
