package buffered

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/client"
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

func TestClientCodecBuffersResponse(t *testing.T) {
	ft := newFakeTransport("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello")
	proto := client.New(ft, client.DefaultConfig())

	var got *Response
	codec := NewClientCodec(
		func(enc *client.Encoder) error {
			enc.RequestLine("GET", "/widgets", tkhttp.HTTP11)
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
		},
		func(resp *Response, err error) {
			require.NoError(t, err)
			got = resp
		},
	)
	proto.Submit(codec)
	proto.Close()

	err := proto.Run()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 200, got.Code)
	assert.Equal(t, "OK", got.Reason)
	assert.Equal(t, "hello", string(got.Body))
}
