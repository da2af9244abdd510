package client

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
)

type fakeTransport struct {
	in     *bytes.Reader
	out    bytes.Buffer
	closed bool
}

func newFakeTransport(input string) *fakeTransport {
	return &fakeTransport{in: bytes.NewReader([]byte(input))}
}

func (f *fakeTransport) Read(p []byte) (int, error) {
	if f.in.Len() == 0 {
		return 0, io.EOF
	}
	return f.in.Read(p)
}
func (f *fakeTransport) Write(p []byte) (int, error)      { return f.out.Write(p) }
func (f *fakeTransport) SetReadDeadline(time.Time) error  { return nil }
func (f *fakeTransport) SetWriteDeadline(time.Time) error { return nil }
func (f *fakeTransport) Close() error                     { f.closed = true; return nil }

type getCodec struct {
	path string
	body []byte
	code int
}

func (c *getCodec) StartWrite(enc *Encoder) error {
	enc.RequestLine("GET", c.path, tkhttp.HTTP11)
	if err := enc.AddHeader("Host", "example.com"); err != nil {
		return err
	}
	if err := enc.AddLength(0); err != nil {
		return err
	}
	if _, err := enc.DoneHeaders(); err != nil {
		return err
	}
	enc.Done()
	return nil
}

func (c *getCodec) HeadersReceived(head *tkhttp.Head) (tkhttp.RecvMode, error) {
	c.code = head.StatusCode
	return tkhttp.BufferedUpfront(1 << 20), nil
}

func (c *getCodec) DataReceived(chunk []byte, end bool) (int, error) {
	c.body = append(c.body, chunk...)
	return len(chunk), nil
}

func TestClientRoundTrip(t *testing.T) {
	ft := newFakeTransport("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")
	proto := New(ft, DefaultConfig())
	codec := &getCodec{path: "/"}
	proto.Submit(codec)
	proto.Close()

	err := proto.Run()
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.1\r\nHost: example.com\r\nContent-Length: 0\r\n\r\n", ft.out.String())
	assert.Equal(t, 200, codec.code)
	assert.Equal(t, "ok", string(codec.body))
}

func TestClientChunkedResponseThenPipelinedResponse(t *testing.T) {
	input := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"5\r\nhello\r\n7\r\n world!\r\n0\r\n\r\n" +
		"HTTP/1.1 200 OK\r\nContent-Length: 2\r\nConnection: close\r\n\r\nok"
	ft := newFakeTransport(input)
	config := DefaultConfig()
	config.InflightRequestLimit = 2
	proto := New(ft, config)
	first := &getCodec{path: "/a"}
	second := &getCodec{path: "/b"}
	proto.Submit(first)
	proto.Submit(second)
	proto.Close()

	err := proto.Run()
	require.NoError(t, err)
	assert.Equal(t, "hello world!", string(first.body))
	assert.Equal(t, "ok", string(second.body))
}

func TestClientResetBeforeHeaders(t *testing.T) {
	ft := newFakeTransport("")
	proto := New(ft, DefaultConfig())
	codec := &getCodec{path: "/"}
	proto.Submit(codec)
	proto.Close()

	err := proto.Run()
	assert.ErrorIs(t, err, ErrResetOnResponseHeaders)
}
