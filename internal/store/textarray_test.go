package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextArrayValue(t *testing.T) {
	v, err := TextArray{"+7 495 123-45-67", "+1"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"+7 495 123-45-67","+1"}`, v)

	v, err = TextArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = TextArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestTextArrayValueEscapes(t *testing.T) {
	v, err := TextArray{`say "hi"`, `back\slash`}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"say \"hi\"","back\\slash"}`, v)
}

func TestTextArrayScan(t *testing.T) {
	var a TextArray
	require.NoError(t, a.Scan([]byte(`{"+7 495 123-45-67","+1"}`)))
	assert.Equal(t, TextArray{"+7 495 123-45-67", "+1"}, a)

	require.NoError(t, a.Scan("{}"))
	assert.Equal(t, TextArray{}, a)

	require.NoError(t, a.Scan(nil))
	assert.Nil(t, a)
}

func TestTextArrayScanUnquoted(t *testing.T) {
	var a TextArray
	require.NoError(t, a.Scan("{abc,def}"))
	assert.Equal(t, TextArray{"abc", "def"}, a)
}

func TestTextArrayScanEscapes(t *testing.T) {
	var a TextArray
	require.NoError(t, a.Scan(`{"say \"hi\"","back\\slash"}`))
	assert.Equal(t, TextArray{`say "hi"`, `back\slash`}, a)
}

func TestTextArrayRoundTrip(t *testing.T) {
	in := TextArray{"+7 (495) 123-45-67", `odd "quoted" one`, ""}
	v, err := in.Value()
	require.NoError(t, err)

	var out TextArray
	require.NoError(t, out.Scan(v.(string)))
	assert.Equal(t, in, out)
}

func TestTextArrayScanMalformed(t *testing.T) {
	var a TextArray
	assert.Error(t, a.Scan("not an array"))
	assert.Error(t, a.Scan(42))
}
