// Package extract turns a raw model completion into a contact candidate and
// decides whether that candidate is acceptable. It never inspects transport
// state: text in, candidate out.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/vizitka/card-scanner/internal/llm"
)

// Candidate is an unvalidated contact parsed from one model completion.
type Candidate struct {
	Name        string   `json:"name"`
	Phones      []string `json:"phones"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
}

// Diagnostic reports how the candidate was obtained.
type Diagnostic struct {
	// Fallback is true when no parseable JSON object was found and the whole
	// completion text was stuffed into Description instead.
	Fallback bool
	Warnings []string
}

// Extract scans raw completion text for a JSON object and decodes it into a
// Candidate.
//
// The span match is deliberately crude: leftmost '{' through the last '}' in
// the text. A completion holding several JSON fragments, or prose containing
// a stray closing brace after the object, will select the wrong span; such
// replies fall back rather than being second-guessed.
//
// A parsed span goes through the sanitizer before decoding, which trims
// surrounding whitespace from the text fields: a padded model value is kept
// trimmed, not byte for byte.
//
// When no span is found, or the span does not parse, Extract synthesizes a
// fallback Candidate: all structured fields empty, Description set to the
// entire raw text. Malformed content is a warning here, never an error.
func Extract(raw string) (Candidate, Diagnostic) {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last < first {
		return fallback(raw)
	}
	span := raw[first : last+1]

	var probe map[string]any
	if err := json.Unmarshal([]byte(span), &probe); err != nil {
		return fallback(raw)
	}

	var diag Diagnostic

	cleaned, _, err := llm.NormalizeAndSanitizeJSON([]byte(span), nil)
	if err != nil {
		return fallback(raw)
	}
	if err := llm.ValidateContactJSON(cleaned); err != nil {
		// Structural drift is worth surfacing but only the name gate decides
		// acceptance, so this stays a warning.
		diag.Warnings = append(diag.Warnings, "model output does not match contact schema")
	}

	var c Candidate
	if err := json.Unmarshal(cleaned, &c); err != nil {
		return fallback(raw)
	}
	if c.Phones == nil {
		c.Phones = []string{}
	}
	return c, diag
}

func fallback(raw string) (Candidate, Diagnostic) {
	return Candidate{
			Phones:      []string{},
			Description: raw,
		}, Diagnostic{
			Fallback: true,
			Warnings: []string{"JSON not found in model output"},
		}
}
