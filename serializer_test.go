package tkhttp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swindon-rs/tk-http-sub000/hdr"
)

func TestResponseMessageFixedBody(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	require.NoError(t, msg.ResponseStatus(200, "OK"))
	require.NoError(t, msg.AddHeader("X-Test", "1"))
	require.NoError(t, msg.AddLength(5))
	expectBody, err := msg.DoneHeaders()
	require.NoError(t, err)
	assert.True(t, expectBody)
	msg.WriteBody([]byte("hello"))
	msg.Done()
	assert.True(t, msg.IsComplete())

	assert.Equal(t, "HTTP/1.1 200 OK\r\nX-Test: 1\r\nContent-Length: 5\r\n\r\nhello", buf.String())
}

func TestAddHeaderRejectsInjectedValue(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	require.NoError(t, msg.ResponseStatus(200, "OK"))
	err := msg.AddHeader("X-Evil", "v\r\nInjected: true")
	assert.ErrorIs(t, err, hdr.ErrInvalidFieldValue)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", buf.String())
}

func TestAddHeaderRejectsInvalidName(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	require.NoError(t, msg.ResponseStatus(200, "OK"))
	err := msg.AddHeader("X-Evil\r\nInjected", "true")
	assert.ErrorIs(t, err, hdr.ErrInvalidFieldName)
}

func TestResponseMessageHeadOmitsBody(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, true, false)
	require.NoError(t, msg.ResponseStatus(200, "OK"))
	require.NoError(t, msg.AddLength(500))
	expectBody, err := msg.DoneHeaders()
	require.NoError(t, err)
	assert.False(t, expectBody)
	msg.WriteBody(make([]byte, 500))
	msg.Done()

	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 500\r\n\r\n", buf.String())
}

func TestResponseMessageNoContentForcesBodyless(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	require.NoError(t, msg.ResponseStatus(204, "No Content"))
	expectBody, err := msg.DoneHeaders()
	require.NoError(t, err)
	assert.False(t, expectBody)
	msg.Done()
	assert.Equal(t, "HTTP/1.1 204 No Content\r\n\r\n", buf.String())
}

func TestResponseMessageChunkedBody(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	require.NoError(t, msg.ResponseStatus(200, "OK"))
	require.NoError(t, msg.AddChunked())
	_, err := msg.DoneHeaders()
	require.NoError(t, err)
	msg.WriteBody([]byte("hello"))
	msg.WriteBody([]byte(" world!"))
	msg.Done()

	assert.Equal(t,
		"HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n7\r\n world!\r\n0\r\n\r\n",
		buf.String())
}

func TestResponseMessageCloseAddsConnectionHeader(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP10, false, true)
	require.NoError(t, msg.ResponseStatus(200, "OK"))
	require.NoError(t, msg.AddLength(0))
	msg.DoneHeaders()
	msg.Done()
	assert.Contains(t, buf.String(), "Connection: close\r\n")
}

func TestMessageDuplicateContentLengthRejected(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	msg.ResponseStatus(200, "OK")
	require.NoError(t, msg.AddLength(1))
	err := msg.AddLength(2)
	assert.ErrorIs(t, err, ErrDuplicateContentLength)
}

func TestMessageChunkedThenLengthRejected(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	msg.ResponseStatus(200, "OK")
	require.NoError(t, msg.AddChunked())
	err := msg.AddLength(5)
	assert.ErrorIs(t, err, ErrContentLengthAfterTransferEncoding)
}

func TestMessageWithoutLengthFailsOnDoneHeaders(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	msg.ResponseStatus(200, "OK")
	_, err := msg.DoneHeaders()
	assert.ErrorIs(t, err, ErrCantDetermineBodySize)
}

func TestMessageFixedBodyOverrunPanics(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	msg.ResponseStatus(200, "OK")
	require.NoError(t, msg.AddLength(2))
	msg.DoneHeaders()
	assert.Panics(t, func() { msg.WriteBody([]byte("abc")) })
}

func TestRequestMessageRequestLine(t *testing.T) {
	var buf bytes.Buffer
	msg := NewRequestMessage(&buf)
	msg.RequestLine("GET", "/", HTTP11)
	require.NoError(t, msg.AddHeader("Host", "example.com"))
	require.NoError(t, msg.AddLength(0))
	msg.DoneHeaders()
	msg.Done()
	assert.Equal(t, "GET / HTTP/1.1\r\nHost: example.com\r\nContent-Length: 0\r\n\r\n", buf.String())
}

func TestResponseContinueThenFinalStatus(t *testing.T) {
	var buf bytes.Buffer
	msg := NewResponseMessage(&buf, HTTP11, false, false)
	msg.ResponseContinue()
	require.NoError(t, msg.ResponseStatus(200, "OK"))
	require.NoError(t, msg.AddLength(0))
	msg.DoneHeaders()
	msg.Done()
	assert.Equal(t, "HTTP/1.1 100 Continue\r\n\r\nHTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n", buf.String())
}
