package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractWellFormed checks that a completion holding a single well-formed
// JSON object surrounded by prose parses into a matching candidate.
func TestExtractWellFormed(t *testing.T) {
	raw := `Hello {"name": "Acme", "phones": ["+1-555-0100"], "email": "", "address": "", "description": ""} bye`

	c, diag := Extract(raw)

	assert.False(t, diag.Fallback)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, []string{"+1-555-0100"}, c.Phones)
	assert.Equal(t, "", c.Email)
	assert.Equal(t, "", c.Address)
	assert.Equal(t, "", c.Description)

	outcome := Validate(c, diag)
	assert.True(t, outcome.Accepted)
	assert.Equal(t, c, outcome.Record)
}

// TestExtractDefaultsMissingKeys checks that keys absent from the model's
// JSON default to empty values instead of failing.
func TestExtractDefaultsMissingKeys(t *testing.T) {
	c, diag := Extract(`{"name": "ООО Ромашка"}`)

	assert.False(t, diag.Fallback)
	assert.Equal(t, "ООО Ромашка", c.Name)
	assert.Equal(t, []string{}, c.Phones)
	assert.Equal(t, "", c.Email)
	assert.Equal(t, "", c.Address)
	assert.Equal(t, "", c.Description)
}

// TestExtractTrimsPaddedFields pins the sanitizer's trimming: padded model
// values come out trimmed, not byte for byte.
func TestExtractTrimsPaddedFields(t *testing.T) {
	c, diag := Extract(`{"name": "  Acme  ", "email": " info@acme.example "}`)

	assert.False(t, diag.Fallback)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "info@acme.example", c.Email)
}

// TestExtractNoBraces checks the fallback: text with no JSON at all becomes a
// candidate with everything in the description, which the validator then
// rejects for the missing name while keeping the text reachable.
func TestExtractNoBraces(t *testing.T) {
	raw := "The card reads: Acme Corp, call us any time."

	c, diag := Extract(raw)

	assert.True(t, diag.Fallback)
	assert.Equal(t, "", c.Name)
	assert.Equal(t, []string{}, c.Phones)
	assert.Equal(t, raw, c.Description)

	outcome := Validate(c, diag)
	assert.False(t, outcome.Accepted)
	assert.Equal(t, RejectedMissingName, outcome.Reason)
	// Were persistence attempted anyway, the raw text would survive as the
	// fallback description.
	assert.Equal(t, raw, c.Description)
}

// TestExtractMalformedJSON checks that a span which does not parse is treated
// the same as no span at all.
func TestExtractMalformedJSON(t *testing.T) {
	raw := `something {"name": "Acme", "phones": [} broken`

	c, diag := Extract(raw)

	assert.True(t, diag.Fallback)
	assert.Equal(t, "", c.Name)
	assert.Equal(t, raw, c.Description)
}

// TestExtractGreedySpan documents the accepted limitation: the span runs from
// the first '{' to the last '}' in the text, so two top-level JSON fragments
// produce an unparseable span and fall back.
func TestExtractGreedySpan(t *testing.T) {
	raw := `{"name": "First"} and {"name": "Second"}`

	c, diag := Extract(raw)

	assert.True(t, diag.Fallback)
	assert.Equal(t, raw, c.Description)
}

// TestExtractMarkdownFence checks that a fenced completion still parses: the
// fence characters sit outside the brace span.
func TestExtractMarkdownFence(t *testing.T) {
	raw := "```json\n{\"name\": \"Acme\", \"phones\": [\"+7 495 000-00-00\", \"+7 495 000-00-01\"]}\n```"

	c, diag := Extract(raw)

	require.False(t, diag.Fallback)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, []string{"+7 495 000-00-00", "+7 495 000-00-01"}, c.Phones)
}

// TestExtractPhonesOrderPreserved checks that phone order and formatting
// survive untouched.
func TestExtractPhonesOrderPreserved(t *testing.T) {
	c, _ := Extract(`{"name": "A", "phones": ["222", "111", "222"]}`)

	assert.Equal(t, []string{"222", "111", "222"}, c.Phones)
}

// TestValidateWhitespaceName checks that a whitespace-only name is rejected.
func TestValidateWhitespaceName(t *testing.T) {
	c, diag := Extract(`{"name": "   "}`)

	outcome := Validate(c, diag)
	assert.False(t, outcome.Accepted)
	assert.Equal(t, RejectedMissingName, outcome.Reason)
}

// TestValidateCarriesWarning checks that extraction warnings survive into an
// accepted outcome.
func TestValidateCarriesWarning(t *testing.T) {
	outcome := Validate(
		Candidate{Name: "Acme", Phones: []string{}},
		Diagnostic{Warnings: []string{"model output does not match contact schema"}},
	)

	assert.True(t, outcome.Accepted)
	assert.Equal(t, "model output does not match contact schema", outcome.Warning)
}

func TestCandidateContact(t *testing.T) {
	c := Candidate{
		Name:        "Acme",
		Phones:      []string{"+1"},
		Email:       "a@acme.example",
		Address:     "somewhere",
		Description: "desc",
	}

	contact := c.Contact()
	assert.Equal(t, c.Name, contact.Name)
	assert.Equal(t, c.Phones, contact.Phones)
	assert.Equal(t, c.Email, contact.Email)
	assert.Equal(t, c.Address, contact.Address)
	assert.Equal(t, c.Description, contact.Description)
	assert.Zero(t, contact.ID)
	assert.True(t, contact.CreatedAt.IsZero())
}
