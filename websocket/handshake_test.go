package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/hdr"
)

func TestAcceptRFC6455Vector(t *testing.T) {
	got := Accept("dGhlIHNhbXBsZSBub25jZQ==")
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", got)
}

func TestValidateUpgradeAccepts(t *testing.T) {
	h := hdr.NewList(8)
	require.NoError(t, h.Add("Connection", "Upgrade"))
	require.NoError(t, h.Add("Upgrade", "websocket"))
	require.NoError(t, h.Add("Sec-WebSocket-Version", "13"))
	require.NoError(t, h.Add("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ=="))
	head := &tkhttp.Head{Headers: h, Body: tkhttp.Empty()}
	head.AccumulateConnectionTokens()

	req, err := ValidateUpgrade(head)
	require.NoError(t, err)
	assert.Equal(t, "dGhlIHNhbXBsZSBub25jZQ==", req.Key)
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", Accept(req.Key))
}

func TestValidateUpgradeRejectsWrongVersion(t *testing.T) {
	h := hdr.NewList(8)
	require.NoError(t, h.Add("Connection", "Upgrade"))
	require.NoError(t, h.Add("Upgrade", "websocket"))
	require.NoError(t, h.Add("Sec-WebSocket-Version", "8"))
	require.NoError(t, h.Add("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ=="))
	head := &tkhttp.Head{Headers: h, Body: tkhttp.Empty()}
	head.AccumulateConnectionTokens()

	_, err := ValidateUpgrade(head)
	assert.ErrorIs(t, err, ErrNotUpgrade)
}

func TestVerifyAcceptMismatch(t *testing.T) {
	err := VerifyAccept("dGhlIHNhbXBsZSBub25jZQ==", "wrong")
	assert.ErrorIs(t, err, ErrAcceptMismatch)
}
