package llm

import (
	"encoding/json"
	"strings"
)

// BuildScanPrompt composes the instruction paired with an attached card image
// or PDF. The schema is embedded verbatim so the model has no excuse to
// improvise field names.
func BuildScanPrompt() string {
	parts := []string{
		"You are a business-card digitizer. Read all text visible in the attached file.",
		"Find the company name (name), phone numbers (phones), email, and address.",
		"Return ONLY a JSON object that matches this JSON Schema:",
		mustJSON(BuildContactJSONSchema()),
		"Keep phone numbers exactly as printed, in the order they appear.",
		"Put any remaining text that fits no field into 'description'.",
		"If a field is not present, use an empty string (or empty array for phones). Never output null.",
	}
	return strings.Join(parts, "\n")
}

// BuildTextScanPrompt is the text-only variant used when a PDF already has an
// extractable text layer: the text rides inside the instruction instead of an
// attachment.
func BuildTextScanPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are a business-card digitizer. Below is the text extracted from a business card or contact document.\n")
	b.WriteString("Find the company name (name), phone numbers (phones), email, and address.\n")
	b.WriteString("Return ONLY a JSON object that matches this JSON Schema:\n")
	b.WriteString(mustJSON(BuildContactJSONSchema()))
	b.WriteString("\nKeep phone numbers exactly as printed, in the order they appear.\n")
	b.WriteString("Put any remaining text that fits no field into 'description'.\n")
	b.WriteString("If a field is not present, use an empty string (or empty array for phones). Never output null.\n")
	b.WriteString("\nDocument text:\n")
	b.WriteString(text)
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
