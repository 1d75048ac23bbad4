package pdftext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func TestExtractInvokesPdftotext(t *testing.T) {
	r := &stubRunner{stdout: []byte("Acme Corp\n")}
	e := NewExtractorWithRunner(Config{}, r, nil)

	text, err := e.Extract(context.Background(), "/tmp/card.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp\n", text)

	assert.Equal(t, "pdftotext", r.gotName)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "/tmp/card.pdf", "-"}, r.gotArgs)
}

func TestExtractCustomBinaryPath(t *testing.T) {
	r := &stubRunner{stdout: []byte("x")}
	e := NewExtractorWithRunner(Config{Pdftotext: "/opt/poppler/bin/pdftotext"}, r, nil)

	_, err := e.Extract(context.Background(), "/tmp/card.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/opt/poppler/bin/pdftotext", r.gotName)
}

// A scanned PDF with no text layer is not an error; the caller falls through
// to the multimodal path.
func TestExtractEmptyTextLayer(t *testing.T) {
	r := &stubRunner{stdout: []byte("  \n\t\n")}
	e := NewExtractorWithRunner(Config{}, r, nil)

	text, err := e.Extract(context.Background(), "/tmp/scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractRunFailure(t *testing.T) {
	r := &stubRunner{stderr: []byte("Syntax Error: file is damaged"), err: errors.New("exit status 1")}
	e := NewExtractorWithRunner(Config{}, r, nil)

	_, err := e.Extract(context.Background(), "/tmp/broken.pdf")
	assert.Error(t, err)
}
