package tkhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swindon-rs/tk-http-sub000/hdr"
)

func TestDetermineRequestBodyLengthFixed(t *testing.T) {
	h := hdr.NewList(4)
	require.NoError(t, h.Add("Content-Length", "12"))
	body, both, err := DetermineRequestBodyLength(h)
	require.NoError(t, err)
	assert.False(t, both)
	assert.Equal(t, BodyFixed, body.Kind)
	assert.EqualValues(t, 12, body.Length)
}

func TestDetermineRequestBodyLengthChunkedWins(t *testing.T) {
	h := hdr.NewList(4)
	require.NoError(t, h.Add("Content-Length", "12"))
	require.NoError(t, h.Add("Transfer-Encoding", "chunked"))
	body, both, err := DetermineRequestBodyLength(h)
	require.NoError(t, err)
	assert.True(t, both)
	assert.Equal(t, BodyChunked, body.Kind)
}

func TestDetermineRequestBodyLengthEmpty(t *testing.T) {
	h := hdr.NewList(4)
	body, both, err := DetermineRequestBodyLength(h)
	require.NoError(t, err)
	assert.False(t, both)
	assert.Equal(t, BodyEmpty, body.Kind)
}

func TestDetermineRequestBodyLengthDuplicateContentLength(t *testing.T) {
	h := hdr.NewList(4)
	require.NoError(t, h.Add("Content-Length", "5"))
	h.AddRaw("Content-Length", "5")
	_, _, err := DetermineRequestBodyLength(h)
	assert.ErrorIs(t, err, ErrInvalidContentLen)
}

func TestDetermineResponseBodyLengthHead(t *testing.T) {
	h := hdr.NewList(4)
	require.NoError(t, h.Add("Content-Length", "500"))
	body, err := DetermineResponseBodyLength(true, 200, h)
	require.NoError(t, err)
	assert.Equal(t, BodyFixed, body.Kind)
	assert.EqualValues(t, 0, body.Length)
}

func TestDetermineResponseBodyLengthNoContent(t *testing.T) {
	h := hdr.NewList(4)
	body, err := DetermineResponseBodyLength(false, 204, h)
	require.NoError(t, err)
	assert.Equal(t, BodyFixed, body.Kind)
	assert.EqualValues(t, 0, body.Length)
}

func TestDetermineResponseBodyLengthEOF(t *testing.T) {
	h := hdr.NewList(4)
	body, err := DetermineResponseBodyLength(false, 200, h)
	require.NoError(t, err)
	assert.Equal(t, BodyEOF, body.Kind)
}
