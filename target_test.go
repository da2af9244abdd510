package tkhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestTargetOrigin(t *testing.T) {
	tgt, ok := ParseRequestTarget("/foo/bar?x=1")
	require.True(t, ok)
	assert.Equal(t, TargetOrigin, tgt.Form)
	assert.Equal(t, "/foo/bar?x=1", tgt.Path)
}

func TestParseRequestTargetAbsolute(t *testing.T) {
	tgt, ok := ParseRequestTarget("https://example.com/foo")
	require.True(t, ok)
	assert.Equal(t, TargetAbsolute, tgt.Form)
	assert.Equal(t, "https", tgt.Scheme)
	assert.Equal(t, "example.com", tgt.Authority)
	assert.Equal(t, "/foo", tgt.Path)
}

func TestParseRequestTargetAuthority(t *testing.T) {
	tgt, ok := ParseRequestTarget("example.com:443")
	require.True(t, ok)
	assert.Equal(t, TargetAuthority, tgt.Form)
	assert.Equal(t, "example.com:443", tgt.Authority)
}

func TestParseRequestTargetAsterisk(t *testing.T) {
	tgt, ok := ParseRequestTarget("*")
	require.True(t, ok)
	assert.Equal(t, TargetAsterisk, tgt.Form)
}

func TestParseRequestTargetEmptyRejected(t *testing.T) {
	_, ok := ParseRequestTarget("")
	assert.False(t, ok)
}
