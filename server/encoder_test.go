package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/hdr"
)

func TestEncoderAddHeaderRejectsInjection(t *testing.T) {
	var buf bytes.Buffer
	msg := tkhttp.NewResponseMessage(&buf, tkhttp.HTTP11, false, false)
	enc := newEncoder(msg)
	require.NoError(t, enc.Status(200, "OK"))

	err := enc.AddHeader("X-Evil", "v\r\nInjected: true")
	assert.ErrorIs(t, err, hdr.ErrInvalidFieldValue)
}
