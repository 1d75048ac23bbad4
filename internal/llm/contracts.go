package llm

import "context"

// ContactFields is the normalized shape we want from the model.
type ContactFields struct {
	Name        string   `json:"name"`
	Phones      []string `json:"phones"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
}

// Attachment is an inline payload sent alongside the instruction.
type Attachment struct {
	Data     string // base64-encoded file content
	MIMEType string // application/pdf or image/*
}

// RecognizeRequest describes one completion call. Either Text carries an
// already-extracted PDF text layer (text-only request), or Attachment carries
// the raw file (multimodal request). Never both.
type RecognizeRequest struct {
	Instruction string
	Text        string
	Attachment  *Attachment
}

// Recognizer is the inference endpoint as the pipeline sees it: one request
// in, the raw completion text out. Parsing is someone else's job.
type Recognizer interface {
	Recognize(ctx context.Context, req RecognizeRequest) (string, error)
}
