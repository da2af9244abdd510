package tkhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMethodKnownToken(t *testing.T) {
	m := ParseMethod("POST")
	assert.Equal(t, MethodPost, m.Kind())
	assert.Equal(t, "POST", m.String())
}

func TestParseMethodExtensionToken(t *testing.T) {
	m := ParseMethod("PROPFIND")
	assert.Equal(t, MethodOther, m.Kind())
	assert.Equal(t, "PROPFIND", m.String())
}

func TestMethodIsHead(t *testing.T) {
	assert.True(t, ParseMethod("HEAD").IsHead())
	assert.False(t, ParseMethod("GET").IsHead())
}

func TestMethodIsConnect(t *testing.T) {
	assert.True(t, ParseMethod("CONNECT").IsConnect())
	assert.False(t, ParseMethod("GET").IsConnect())
}
