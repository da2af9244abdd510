package iobuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBufferWriteAndBytes(t *testing.T) {
	w := NewWriteBuffer()
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(w.Bytes()))
	assert.Equal(t, 5, w.Len())
}

func TestWriteBufferConsume(t *testing.T) {
	w := NewWriteBuffer()
	w.Write([]byte("hello world"))
	w.Consume(6)
	assert.Equal(t, "world", string(w.Bytes()))
}

func TestWriteBufferReset(t *testing.T) {
	w := NewWriteBuffer()
	w.Write([]byte("hello"))
	w.Reset()
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Bytes())
}
