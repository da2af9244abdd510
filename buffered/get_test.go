package buffered

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swindon-rs/tk-http-sub000/client"
)

func TestNormalizeHostPassesThroughASCII(t *testing.T) {
	got, err := normalizeHost("example.com:8080")
	require.NoError(t, err)
	assert.Equal(t, "example.com:8080", got)
}

func TestNormalizeHostConvertsUnicodeToPunycode(t *testing.T) {
	got, err := normalizeHost("münchen.de")
	require.NoError(t, err)
	assert.Equal(t, "xn--mnchen-3ya.de", got)
}

func TestGetWritesRequestLineAndNormalizedHost(t *testing.T) {
	u, err := url.Parse("http://münchen.de/a/b?x=1")
	require.NoError(t, err)

	ft := newFakeTransport("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")
	proto := client.New(ft, client.DefaultConfig())

	var got *Response
	codec := Get(u, func(resp *Response, _ error) { got = resp })
	proto.Submit(codec)
	proto.Close()

	err = proto.Run()
	require.NoError(t, err)
	assert.Contains(t, ft.out.String(), "GET /a/b?x=1 HTTP/1.1\r\n")
	assert.Contains(t, ft.out.String(), "Host: xn--mnchen-3ya.de\r\n")
	require.NotNil(t, got)
	assert.Equal(t, "ok", string(got.Body))
}
